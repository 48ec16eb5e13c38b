// Package deactivation содержит бизнес-логику приостановок: участник
// помечается неактивным на текущий месяц и возвращается обратно удалением
// этой пометки.
package deactivation

import (
	"context"
	"log/slog"
	"time"

	"github.com/franchu01/soma/internal/lib/monthkey"
	"github.com/franchu01/soma/internal/models"
)

// Repository определяет методы хранилища приостановок.
type Repository interface {
	CreateDeactivation(ctx context.Context, event models.DeactivationEvent) error
	RemoveDeactivation(ctx context.Context, event models.DeactivationEvent) (int, error)
	ListDeactivations(ctx context.Context) (models.EventMap, error)
}

// Service реализует бизнес-логику приостановок.
type Service struct {
	repo Repository
	log  *slog.Logger
	loc  *time.Location
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger, loc *time.Location) *Service {
	return &Service{
		repo: repo,
		log:  log,
		loc:  loc,
	}
}

// Deactivate помечает участника неактивным на текущий месяц.
// Повторная приостановка того же месяца — no-op.
func (s *Service) Deactivate(ctx context.Context, email string) (string, error) {
	month := monthkey.Current(time.Now().In(s.loc))
	event := models.DeactivationEvent{Email: email, Month: month}
	if err := s.repo.CreateDeactivation(ctx, event); err != nil {
		return "", err
	}

	s.log.Info("deactivated member", slog.String("email", email), slog.String("month", month))
	return month, nil
}

// Reactivate удаляет приостановку текущего месяца. Отсутствие строки —
// no-op без ошибки; возвращается количество удалённых строк.
func (s *Service) Reactivate(ctx context.Context, email string) (int, error) {
	month := monthkey.Current(time.Now().In(s.loc))
	event := models.DeactivationEvent{Email: email, Month: month}
	count, err := s.repo.RemoveDeactivation(ctx, event)
	if err != nil {
		return 0, err
	}

	s.log.Info("reactivated member", slog.String("email", email),
		slog.String("month", month), slog.Int("removed", count))
	return count, nil
}

// List возвращает снимок всех приостановок.
func (s *Service) List(ctx context.Context) (models.EventMap, error) {
	return s.repo.ListDeactivations(ctx)
}
