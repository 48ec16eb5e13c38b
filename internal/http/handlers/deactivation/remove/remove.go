// Package remove реализует HTTP-обработчик возврата участника:
// приостановка текущего месяца снимается, отсутствие её — no-op.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/franchu01/soma/internal/http/response"
	"github.com/franchu01/soma/internal/lib/sl"
)

// Handler управляет HTTP-запросами возврата участников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики возврата.
type Service interface {
	Reactivate(ctx context.Context, email string) (int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Вернуть участника
// @Description Снимает приостановку текущего месяца. Без приостановки — no-op без ошибки.
// @Tags Deactivations
// @Produce  json
// @Param email path string true "Email участника"
// @Success 200 {object} response.Response "Количество удалённых строк"
// @Failure 400 {object} response.ErrorResponse "Отсутствует email"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /deactivations/{email} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.deactivation.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")
	if email == "" {
		log.Error("missing email url parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing email"))
		return
	}

	count, err := h.service.Reactivate(r.Context(), email)
	if err != nil {
		log.Error("failed to reactivate member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not reactivate member"))
		return
	}

	log.Info("success to reactivate member", slog.String("email", email), slog.Int("removed", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed_count": count,
	}))
}
