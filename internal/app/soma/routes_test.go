package soma

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/franchu01/soma/internal/config"
	"github.com/franchu01/soma/internal/lib/jwt"
	"github.com/franchu01/soma/internal/models"
	deactivationservice "github.com/franchu01/soma/internal/services/deactivation"
	memberservice "github.com/franchu01/soma/internal/services/member"
	paymentservice "github.com/franchu01/soma/internal/services/payment"
	statsservice "github.com/franchu01/soma/internal/services/stats"
	"github.com/franchu01/soma/internal/storage/repository"
)

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) CreateMember(_ context.Context, member models.Member) error {
	args := m.Called(member)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateMember(_ context.Context, originalEmail string, member models.Member) error {
	args := m.Called(originalEmail, member)
	return args.Error(0)
}

func (m *MockMemberRepository) RemoveMember(_ context.Context, email string) (int, error) {
	args := m.Called(email)
	return args.Int(0), args.Error(1)
}

func (m *MockMemberRepository) ListMembers(_ context.Context) ([]*models.Member, error) {
	args := m.Called()
	return nil, args.Error(1)
}

type MockDeactivationRepository struct {
	mock.Mock
}

func (m *MockDeactivationRepository) CreateDeactivation(_ context.Context, event models.DeactivationEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockDeactivationRepository) RemoveDeactivation(_ context.Context, event models.DeactivationEvent) (int, error) {
	args := m.Called(event)
	return args.Int(0), args.Error(1)
}

func (m *MockDeactivationRepository) ListDeactivations(_ context.Context) (models.EventMap, error) {
	args := m.Called()
	return nil, args.Error(1)
}

type noopCache struct{}

func (noopCache) Get(string, any) (bool, error)        { return false, nil }
func (noopCache) Set(string, any, time.Duration) error { return nil }
func (noopCache) Invalidate(string) error              { return nil }

// Маршруты с {email} принимают адреса с точками в доменной части.
// Общие middleware не должны обрезать параметр по последней точке.
func TestRegisterRoutesKeepsFullEmailParam(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	loc := time.UTC
	maker := jwt.NewJWTMaker("test-secret", time.Hour)

	memberRepo := new(MockMemberRepository)
	deactivationRepo := new(MockDeactivationRepository)

	memberSvc := memberservice.NewService(memberRepo, noopCache{}, logger, loc)
	paymentSvc := paymentservice.NewService(nil, logger, loc)
	deactivationSvc := deactivationservice.NewService(deactivationRepo, logger, loc)
	statsSvc := statsservice.NewService(nil, logger, loc)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &config.Config{}, maker, &repository.Storage{},
		memberSvc, paymentSvc, deactivationSvc, statsSvc)

	token, err := maker.GenerateToken("admin")
	require.NoError(t, err)

	t.Run("Редактирование сохраняет email с точкой", func(t *testing.T) {
		memberRepo.On("UpdateMember", "ana@example.com", mock.Anything).Return(nil).Once()

		body := bytes.NewBufferString(
			`{"email": "ana@example.com", "name": "Ana Gomez", "reminder_day": 10, "site": "Temperley"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/members/ana@example.com", body)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		memberRepo.AssertExpectations(t)
	})

	t.Run("Удаление сохраняет email с точкой", func(t *testing.T) {
		memberRepo.On("RemoveMember", "ana@example.com").Return(1, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/members/ana@example.com", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		memberRepo.AssertExpectations(t)
	})

	t.Run("Реактивация сохраняет email с точкой", func(t *testing.T) {
		deactivationRepo.On("RemoveDeactivation",
			mock.MatchedBy(func(event models.DeactivationEvent) bool {
				return event.Email == "ana@example.com"
			})).Return(1, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/deactivations/ana@example.com", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		deactivationRepo.AssertExpectations(t)
	})
}
