package stats

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/franchu01/soma/internal/models"
)

// MockRepository реализует интерфейс stats.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListMembers(ctx context.Context) ([]*models.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Member), args.Error(1)
}

func (m *MockRepository) ListPayments(ctx context.Context) (models.EventMap, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.EventMap), args.Error(1)
}

func (m *MockRepository) ListDeactivations(ctx context.Context) (models.EventMap, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.EventMap), args.Error(1)
}

func newMember(email, name, site string, reminderDay int, createdAt time.Time) *models.Member {
	return &models.Member{
		Email:       email,
		Name:        name,
		CreatedAt:   createdAt,
		ReminderDay: reminderDay,
		Site:        site,
	}
}

func TestBuildStatuses(t *testing.T) {
	now := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)
	registered := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	members := []*models.Member{
		newMember("paid@example.com", "Paid Member", models.SiteTemperley, 10, registered),
		newMember("debtor@example.com", "Debtor Member", models.SiteTemperley, 10, registered),
		newMember("paused@example.com", "Paused Member", models.SiteCalzada, 10, registered),
	}
	payments := models.EventMap{
		"paid@example.com": {"2026-08", "2026-09"},
		// Оплата за другой месяц текущим не считается
		"debtor@example.com": {"2026-08"},
	}
	deactivations := models.EventMap{
		"paused@example.com": {"2026-09"},
	}

	statuses := BuildStatuses(members, payments, deactivations, now)
	require.Len(t, statuses, 3)

	byEmail := make(map[string]models.MemberStatus, len(statuses))
	for _, st := range statuses {
		byEmail[st.Email] = st
	}

	paid := byEmail["paid@example.com"]
	assert.True(t, paid.Active)
	assert.True(t, paid.PaidThisMonth)
	assert.Equal(t, 0, paid.DebtDays)

	debtor := byEmail["debtor@example.com"]
	assert.True(t, debtor.Active)
	assert.False(t, debtor.PaidThisMonth)
	assert.Equal(t, 5, debtor.DebtDays)

	paused := byEmail["paused@example.com"]
	assert.False(t, paused.Active)
	assert.False(t, paused.PaidThisMonth)
	// У приостановленных долг не копится
	assert.Equal(t, 0, paused.DebtDays)
}

func TestBuildSummary(t *testing.T) {
	now := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)
	registered := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	members := []*models.Member{
		newMember("paid@example.com", "Paid Member", models.SiteTemperley, 10, registered),
		newMember("debtor@example.com", "Debtor Member", models.SiteTemperley, 10, registered),
		newMember("paused@example.com", "Paused Member", models.SiteCalzada, 10, registered),
	}
	payments := models.EventMap{
		"paid@example.com": {"2026-09"},
	}
	deactivations := models.EventMap{
		"paused@example.com": {"2026-09"},
	}

	summary := BuildSummary(members, payments, deactivations, now, "")
	assert.Equal(t, models.Summary{Total: 3, Paid: 1, InDebt: 1, DeactivatedMonth: 1}, summary)

	temperley := BuildSummary(members, payments, deactivations, now, models.SiteTemperley)
	assert.Equal(t, models.Summary{Total: 2, Paid: 1, InDebt: 1, DeactivatedMonth: 0}, temperley)

	calzada := BuildSummary(members, payments, deactivations, now, models.SiteCalzada)
	assert.Equal(t, models.Summary{Total: 1, Paid: 0, InDebt: 0, DeactivatedMonth: 1}, calzada)
}

func TestBuildSeriesPayments(t *testing.T) {
	registered := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	members := []*models.Member{
		newMember("a@example.com", "A", models.SiteTemperley, 10, registered),
		newMember("b@example.com", "B", models.SiteCalzada, 10, registered),
	}
	payments := models.EventMap{
		"a@example.com": {"2026-03", "2026-03", "2025-03"},
		"b@example.com": {"2026-03", "2026-07"},
	}

	series := BuildSeries(members, payments, nil, models.MetricPayments, 2026, "")
	assert.Equal(t, models.MetricPayments, series.Metric)
	assert.Equal(t, 2026, series.Year)
	// Три оплаты в марте 2026, оплата марта 2025 не попадает
	assert.Equal(t, 3, series.Counts[2])
	assert.Equal(t, 1, series.Counts[6])

	var total int
	for _, c := range series.Counts {
		total += c
	}
	assert.Equal(t, 4, total)

	filtered := BuildSeries(members, payments, nil, models.MetricPayments, 2026, models.SiteCalzada)
	assert.Equal(t, 1, filtered.Counts[2])
	assert.Equal(t, 1, filtered.Counts[6])
}

func TestBuildSeriesRegistrations(t *testing.T) {
	members := []*models.Member{
		newMember("a@example.com", "A", models.SiteTemperley, 10, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)),
		newMember("b@example.com", "B", models.SiteTemperley, 10, time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)),
		newMember("c@example.com", "C", models.SiteCalzada, 10, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)),
	}

	series := BuildSeries(members, nil, nil, models.MetricRegistrations, 2026, "")
	assert.Equal(t, 2, series.Counts[2])

	prior := BuildSeries(members, nil, nil, models.MetricRegistrations, 2025, "")
	assert.Equal(t, 1, prior.Counts[2])
}

func TestSeriesUnknownMetric(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	service := NewService(new(MockRepository), logger, time.UTC)

	_, err := service.Series(context.Background(), "visits", 2026, "")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestStatusesRepositoryError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mockRepo := new(MockRepository)
	mockRepo.On("ListMembers", mock.Anything).Return(nil, errors.New("db error"))

	service := NewService(mockRepo, logger, time.UTC)

	_, err := service.Statuses(context.Background())
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestSummaryUsesSnapshot(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	registered := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	mockRepo := new(MockRepository)
	mockRepo.On("ListMembers", mock.Anything).Return([]*models.Member{
		newMember("a@example.com", "A", models.SiteTemperley, 10, registered),
	}, nil)
	mockRepo.On("ListPayments", mock.Anything).Return(models.EventMap{}, nil)
	mockRepo.On("ListDeactivations", mock.Anything).Return(models.EventMap{}, nil)

	service := NewService(mockRepo, logger, time.UTC)

	summary, err := service.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)
	mockRepo.AssertExpectations(t)
}
