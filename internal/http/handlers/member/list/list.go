// Package list реализует HTTP-обработчик списка участников.
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

// Handler управляет HTTP-запросами списка участников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения снимка участников.
type Service interface {
	List(ctx context.Context) ([]*models.Member, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список участников
// @Description Возвращает полный снимок таблицы участников.
// @Tags Members
// @Produce  json
// @Success 200 {object} response.Response "Список участников"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	members, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list members", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list members"))
		return
	}

	log.Info("success to list members", slog.Int("count", len(members)))
	render.JSON(w, r, response.StatusOKWithData(members))
}
