package repositories

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE/ILIKE metacharacters in user-supplied search
// text so it is matched literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
