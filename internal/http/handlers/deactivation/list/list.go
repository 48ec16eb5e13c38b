// Package list реализует HTTP-обработчик снимка приостановок.
package list

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

// Handler управляет HTTP-запросами снимка приостановок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения снимка приостановок.
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
// @Summary Снимок приостановок
// @Description Возвращает отображение email -> список месячных ключей приостановок.
// @Tags Deactivations
// @Produce  json
// @Success 200 {object} response.Response "Снимок приостановок"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /deactivations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.deactivation.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	deactivations, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list deactivations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list deactivations"))
		return
	}

	log.Info("success to list deactivations", slog.Int("members", len(deactivations)))
	render.JSON(w, r, response.StatusOKWithData(deactivations))
}
