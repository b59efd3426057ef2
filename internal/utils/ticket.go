package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewTicketNumber issues a human-readable ticket identifier of the shape
// TKT-<last 6 hex chars of the event id>-<8 random hex chars>, all uppercased.
// The random suffix comes from crypto/rand; collisions are rejected by the
// unique index on attendees.ticket_number.
func NewTicketNumber(eventID uuid.UUID) string {
	compact := strings.ReplaceAll(eventID.String(), "-", "")
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)

	return fmt.Sprintf("TKT-%s-%s",
		strings.ToUpper(compact[len(compact)-6:]),
		strings.ToUpper(hex.EncodeToString(suffix)),
	)
}
