// Package payment содержит бизнес-логику фиксации оплат по месяцам.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/franchu01/soma/internal/lib/monthkey"
	"github.com/franchu01/soma/internal/models"
)

// ErrInvalidMonth — месячный ключ не соответствует формату "YYYY-MM"
// или месяц вне диапазона 01..12.
var ErrInvalidMonth = errors.New("month must be a valid YYYY-MM key")

// Repository определяет методы хранилища оплат.
type Repository interface {
	CreatePayment(ctx context.Context, event models.PaymentEvent) error
	ListPayments(ctx context.Context) (models.EventMap, error)
}

// Service реализует бизнес-логику оплат.
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

// Record фиксирует оплату. Месяц по умолчанию — текущий в авторитетной
// зоне; явно переданный ключ валидируется. Повторная фиксация месяца
// дедуплицируется на записи и проходит без ошибки.
func (s *Service) Record(ctx context.Context, req models.DummyPayment) (string, error) {
	month := req.Month
	if month == "" {
		month = monthkey.Current(time.Now().In(s.loc))
	} else if !monthkey.Valid(month) {
		return "", fmt.Errorf("%q: %w", month, ErrInvalidMonth)
	}

	event := models.PaymentEvent{Email: req.Email, Month: month}
	if err := s.repo.CreatePayment(ctx, event); err != nil {
		return "", err
	}

	s.log.Info("recorded payment", slog.String("email", req.Email), slog.String("month", month))
	return month, nil
}

// List возвращает снимок всех оплат.
func (s *Service) List(ctx context.Context) (models.EventMap, error) {
	return s.repo.ListPayments(ctx)
}
