// Package paymentlist реализует HTTP-обработчик снимка оплат.
package paymentlist

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

// Handler управляет HTTP-запросами снимка оплат.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения снимка оплат.
type Service interface {
	List(ctx context.Context) (models.EventMap, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Снимок оплат
// @Description Возвращает отображение email -> список месячных ключей оплат.
// @Tags Payments
// @Produce  json
// @Success 200 {object} response.Response "Снимок оплат"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	payments, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payments"))
		return
	}

	log.Info("success to list payments", slog.Int("members", len(payments)))
	render.JSON(w, r, response.StatusOKWithData(payments))
}
