package services

import "eventhub-backend/internal/repositories"

type StatsService struct {
	repo *repositories.Repository
}

func NewStatsService(repo *repositories.Repository) *StatsService {
	return &StatsService{repo: repo}
}

type Stats struct {
	Users     int64 `json:"users"`
	Events    int64 `json:"events"`
	Attendees int64 `json:"attendees"`
}

func (s *StatsService) Overview() (*Stats, error) {
	users, err := s.repo.UserRepo.Count()
	if err != nil {
		return nil, err
	}
	events, err := s.repo.EventRepo.Count()
	if err != nil {
		return nil, err
	}
	attendees, err := s.repo.AttendeeRepo.Count()
	if err != nil {
		return nil, err
	}

	return &Stats{Users: users, Events: events, Attendees: attendees}, nil
}
