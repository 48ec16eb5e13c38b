// Package create реализует HTTP-обработчик приостановки участника
// на текущий месяц.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/franchu01/soma/internal/http/response"
	"github.com/franchu01/soma/internal/lib/sl"
	"github.com/franchu01/soma/internal/models"
)

// Handler управляет HTTP-запросами приостановки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики приостановки.
type Service interface {
	Deactivate(ctx context.Context, email string) (string, error)
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
// @Summary Приостановить участника
// @Description Помечает участника неактивным на текущий месяц. Повторная приостановка — no-op.
// @Tags Deactivations
// @Accept  json
// @Produce  json
// @Param request body models.DummyDeactivation true "Email участника"
// @Success 200 {object} response.Response "Месяц приостановки"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /deactivations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.deactivation.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyDeactivation
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

	month, err := h.service.Deactivate(r.Context(), req.Email)
	if err != nil {
		log.Error("failed to deactivate member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not deactivate member"))
		return
	}

	log.Info("success to deactivate member", slog.String("email", req.Email), slog.String("month", month))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"month": month,
	}))
}
