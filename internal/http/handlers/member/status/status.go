// Package status реализует HTTP-обработчик производного состояния
// участников: активность, оплата текущего месяца и дни просрочки.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/franchu01/soma/internal/http/response"
	"github.com/franchu01/soma/internal/lib/sl"
	"github.com/franchu01/soma/internal/models"
)

// Handler управляет HTTP-запросами производного состояния.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс расчёта производного состояния.
type Service interface {
	Statuses(ctx context.Context) ([]models.MemberStatus, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Состояние участников
// @Description Возвращает участников вместе с активностью, оплатой текущего месяца и днями просрочки.
// @Tags Members
// @Produce  json
// @Success 200 {object} response.Response "Состояние участников"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	statuses, err := h.service.Statuses(r.Context())
	if err != nil {
		log.Error("failed to compute member statuses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute member statuses"))
		return
	}

	log.Info("success to compute member statuses", slog.Int("count", len(statuses)))
	render.JSON(w, r, response.StatusOKWithData(statuses))
}
