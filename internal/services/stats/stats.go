// Package stats вычисляет производное состояние участников и агрегаты
// из снимков трёх таблиц: статус оплаты и активности текущего месяца,
// дни просрочки, сводку и годовые ряды по месяцам.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/franchu01/soma/internal/lib/monthkey"
	"github.com/franchu01/soma/internal/models"
)

// ErrUnknownMetric — запрошенная метрика годового ряда не поддерживается.
var ErrUnknownMetric = errors.New("unknown metric")

// Repository определяет снимки хранилища, из которых считается статистика.
type Repository interface {
	ListMembers(ctx context.Context) ([]*models.Member, error)
	ListPayments(ctx context.Context) (models.EventMap, error)
	ListDeactivations(ctx context.Context) (models.EventMap, error)
}

// Service загружает снимки и передаёт их чистым функциям расчёта.
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

// snapshot загружает все три таблицы одним заходом.
func (s *Service) snapshot(ctx context.Context) ([]*models.Member, models.EventMap, models.EventMap, error) {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	deactivations, err := s.repo.ListDeactivations(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return members, payments, deactivations, nil
}

// Statuses возвращает производное состояние каждого участника на сейчас.
func (s *Service) Statuses(ctx context.Context) ([]models.MemberStatus, error) {
	members, payments, deactivations, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return BuildStatuses(members, payments, deactivations, time.Now().In(s.loc)), nil
}

// Summary возвращает агрегаты текущего месяца, опционально по филиалу.
func (s *Service) Summary(ctx context.Context, site string) (models.Summary, error) {
	members, payments, deactivations, err := s.snapshot(ctx)
	if err != nil {
		return models.Summary{}, err
	}
	return BuildSummary(members, payments, deactivations, time.Now().In(s.loc), site), nil
}

// Series возвращает годовой ряд выбранной метрики, опционально по филиалу.
// Нулевой year означает текущий год.
func (s *Service) Series(ctx context.Context, metric string, year int, site string) (models.Series, error) {
	switch metric {
	case models.MetricRegistrations, models.MetricDeactivations, models.MetricPayments:
	default:
		return models.Series{}, fmt.Errorf("%q: %w", metric, ErrUnknownMetric)
	}
	if year == 0 {
		year = time.Now().In(s.loc).Year()
	}

	members, payments, deactivations, err := s.snapshot(ctx)
	if err != nil {
		return models.Series{}, err
	}
	return BuildSeries(members, payments, deactivations, metric, year, site), nil
}

// BuildStatuses — чистая функция производного состояния: участник оплатил
// месяц, если текущий месячный ключ есть в его оплатах; активен, если ключа
// нет в приостановках; дни просрочки считаются от дня напоминания.
func BuildStatuses(members []*models.Member, payments, deactivations models.EventMap, now time.Time) []models.MemberStatus {
	current := monthkey.Current(now)
	result := make([]models.MemberStatus, 0, len(members))
	for _, m := range members {
		paid := payments.Contains(m.Email, current)
		active := !deactivations.Contains(m.Email, current)
		debtDays := 0
		if active {
			debtDays = monthkey.DebtDays(now, m.ReminderDay, paid)
		}
		result = append(result, models.MemberStatus{
			Member:        *m,
			Active:        active,
			PaidThisMonth: paid,
			DebtDays:      debtDays,
		})
	}
	return result
}

// BuildSummary — агрегаты текущего месяца. В долгу — активные без оплаты.
func BuildSummary(members []*models.Member, payments, deactivations models.EventMap, now time.Time, site string) models.Summary {
	current := monthkey.Current(now)
	var summary models.Summary
	for _, m := range members {
		if site != "" && m.Site != site {
			continue
		}
		summary.Total++
		paid := payments.Contains(m.Email, current)
		active := !deactivations.Contains(m.Email, current)
		if paid {
			summary.Paid++
		}
		if active && !paid {
			summary.InDebt++
		}
		if !active {
			summary.DeactivatedMonth++
		}
	}
	return summary
}

// BuildSeries — 12 корзин по месяцам года year. Регистрации корзинуются по
// дате создания участника, оплаты и приостановки — по месячному ключу
// события. События других лет не учитываются. При фильтре по филиалу
// события участников других филиалов (и неизвестных email) пропускаются.
func BuildSeries(members []*models.Member, payments, deactivations models.EventMap, metric string, year int, site string) models.Series {
	series := models.Series{Metric: metric, Year: year}

	siteOf := make(map[string]string, len(members))
	for _, m := range members {
		siteOf[m.Email] = m.Site
	}

	switch metric {
	case models.MetricRegistrations:
		for _, m := range members {
			if site != "" && m.Site != site {
				continue
			}
			if m.CreatedAt.Year() == year {
				series.Counts[int(m.CreatedAt.Month())-1]++
			}
		}
	case models.MetricPayments:
		bucketEvents(&series, payments, siteOf, year, site)
	case models.MetricDeactivations:
		bucketEvents(&series, deactivations, siteOf, year, site)
	}
	return series
}

func bucketEvents(series *models.Series, events models.EventMap, siteOf map[string]string, year int, site string) {
	for email, keys := range events {
		if site != "" && siteOf[email] != site {
			continue
		}
		for _, key := range keys {
			eventYear, month, ok := splitKey(key)
			if !ok || eventYear != year {
				continue
			}
			series.Counts[month-1]++
		}
	}
}

// splitKey разбирает "YYYY-MM" на год и месяц без аллокации time.Time.
func splitKey(key string) (year, month int, ok bool) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
