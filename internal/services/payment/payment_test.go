package payment

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

	"github.com/franchu01/soma/internal/lib/monthkey"
	"github.com/franchu01/soma/internal/models"
	"github.com/franchu01/soma/internal/storage/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreatePayment(ctx context.Context, event models.PaymentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRepository) ListPayments(ctx context.Context) (models.EventMap, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.EventMap), args.Error(1)
}

func newTestService(repo Repository) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewService(repo, logger, time.UTC)
}

func TestRecordDefaultsToCurrentMonth(t *testing.T) {
	mockRepo := new(MockRepository)
	current := monthkey.Current(time.Now().UTC())

	mockRepo.On("CreatePayment", mock.Anything, models.PaymentEvent{
		Email: "ana@example.com",
		Month: current,
	}).Return(nil)

	service := newTestService(mockRepo)

	month, err := service.Record(context.Background(), models.DummyPayment{Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, current, month)
	mockRepo.AssertExpectations(t)
}

func TestRecordExplicitMonth(t *testing.T) {
	mockRepo := new(MockRepository)

	mockRepo.On("CreatePayment", mock.Anything, models.PaymentEvent{
		Email: "ana@example.com",
		Month: "2026-03",
	}).Return(nil)

	service := newTestService(mockRepo)

	month, err := service.Record(context.Background(), models.DummyPayment{
		Email: "ana@example.com",
		Month: "2026-03",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03", month)
	mockRepo.AssertExpectations(t)
}

func TestRecordInvalidMonth(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	tests := []string{"marzo", "2026-13", "2026-3", "2026-03-01"}
	for _, month := range tests {
		_, err := service.Record(context.Background(), models.DummyPayment{
			Email: "ana@example.com",
			Month: month,
		})
		assert.ErrorIs(t, err, ErrInvalidMonth, month)
	}
	mockRepo.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
}

func TestRecordMissingMember(t *testing.T) {
	mockRepo := new(MockRepository)

	mockRepo.On("CreatePayment", mock.Anything, mock.AnythingOfType("models.PaymentEvent")).
		Return(repository.ErrMemberMissing)

	service := newTestService(mockRepo)

	_, err := service.Record(context.Background(), models.DummyPayment{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, repository.ErrMemberMissing)
}

func TestList(t *testing.T) {
	mockRepo := new(MockRepository)

	events := models.EventMap{"ana@example.com": {"2026-08", "2026-09"}}
	mockRepo.On("ListPayments", mock.Anything).Return(events, nil)

	service := newTestService(mockRepo)

	got, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestListError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("ListPayments", mock.Anything).Return(nil, errors.New("db error"))

	service := newTestService(mockRepo)

	_, err := service.List(context.Background())
	assert.Error(t, err)
}
