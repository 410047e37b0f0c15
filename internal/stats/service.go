package stats

import (
	"context"
)

type Service interface {
	Dashboard(ctx context.Context, window Window) (*Dashboard, error)
}

type statsService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &statsService{repo: repo}
}

func (s *statsService) Dashboard(ctx context.Context, window Window) (*Dashboard, error) {
	switch window {
	case WindowToday, WindowWeek, WindowMonth, WindowYear, WindowAll:
	default:
		window = WindowMonth
	}

	trainees, err := s.repo.CountTrainees(ctx)
	if err != nil {
		return nil, err
	}
	trainings, err := s.repo.CountTrainings(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountCertificates(ctx, WindowAll)
	if err != nil {
		return nil, err
	}
	inWindow, err := s.repo.CountCertificates(ctx, window)
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.CertificatesByTrainingType(ctx, window)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentCertificates(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Window:               window,
		TotalTrainees:        trainees,
		TotalTrainings:       trainings,
		TotalCertificates:    total,
		CertificatesInWindow: inWindow,
		ByTrainingType:       byType,
		RecentCertificates:   recent,
	}, nil
}
