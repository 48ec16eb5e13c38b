// Package update реализует HTTP-обработчик редактирования участника.
//
// Участник идентифицируется исходным email из URL. Смена email
// каскадируется в события оплат и приостановок атомарно.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/franchu01/soma/internal/http/response"
	"github.com/franchu01/soma/internal/lib/sl"
	"github.com/franchu01/soma/internal/models"
	memberservice "github.com/franchu01/soma/internal/services/member"
	"github.com/franchu01/soma/internal/storage/repository"
)

// Handler управляет HTTP-запросами редактирования участников.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики редактирования.
type Service interface {
	Update(ctx context.Context, originalEmail string, req models.DummyMemberUpdate) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отредактировать участника
// @Description Обновляет участника по исходному email. Смена email атомарно переносится в историю оплат и приостановок.
// @Tags Members
// @Accept  json
// @Produce  json
// @Param email path string true "Исходный email участника"
// @Param request body models.DummyMemberUpdate true "Новые данные участника"
// @Success 200 {object} response.Response "Успешное редактирование"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 409 {object} response.ErrorResponse "Новый email или имя уже заняты"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members/{email} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	originalEmail := chi.URLParam(r, "email")
	if originalEmail == "" {
		log.Error("missing email url parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing email"))
		return
	}

	var req models.DummyMemberUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Update(r.Context(), originalEmail, req); err != nil {
		switch {
		case errors.Is(err, repository.ErrMemberNotFound):
			log.Error("member not found", slog.String("email", originalEmail))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
		case errors.Is(err, repository.ErrEmailTaken):
			log.Error("new email already registered", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email already registered"))
		case errors.Is(err, repository.ErrNameTaken):
			log.Error("new name already registered", slog.String("name", req.Name))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("name already registered"))
		case errors.Is(err, memberservice.ErrUnknownSite):
			log.Error("unknown site", slog.String("site", req.Site))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown site"))
		default:
			log.Error("failed to update member", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update member"))
		}
		return
	}

	log.Info("success to update member", slog.String("email", originalEmail))
	render.JSON(w, r, response.OK())
}
