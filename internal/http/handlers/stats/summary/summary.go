// Package summary реализует HTTP-обработчик сводки текущего месяца.
package summary

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

// Handler управляет HTTP-запросами сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс расчёта сводки.
type Service interface {
	Summary(ctx context.Context, site string) (models.Summary, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка текущего месяца
// @Description Возвращает агрегаты: всего, оплатили, в долгу, приостановлены. Параметр site фильтрует по филиалу.
// @Tags Stats
// @Produce  json
// @Param site query string false "Филиал"
// @Success 200 {object} response.Response "Сводка"
// @Failure 400 {object} response.ErrorResponse "Неизвестный филиал"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /stats/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.summary"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	site := r.URL.Query().Get("site")
	if site != "" && !models.ValidSite(site) {
		log.Error("unknown site", slog.String("site", site))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown site"))
		return
	}

	summary, err := h.service.Summary(r.Context(), site)
	if err != nil {
		log.Error("failed to build summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build summary"))
		return
	}

	log.Info("success to build summary", slog.Int("total", summary.Total))
	render.JSON(w, r, response.StatusOKWithData(summary))
}
