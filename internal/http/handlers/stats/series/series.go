// Package series реализует HTTP-обработчик годовых рядов: регистрации,
// приостановки или оплаты по 12 месяцам выбранного года.
package series

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/franchu01/soma/internal/http/response"
	"github.com/franchu01/soma/internal/lib/sl"
	"github.com/franchu01/soma/internal/models"
	statsservice "github.com/franchu01/soma/internal/services/stats"
)

// Handler управляет HTTP-запросами годовых рядов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс расчёта годового ряда.
type Service interface {
	Series(ctx context.Context, metric string, year int, site string) (models.Series, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Годовой ряд метрики
// @Description Возвращает 12 корзин по месяцам года для метрики registrations, deactivations или payments.
// @Tags Stats
// @Produce  json
// @Param metric query string true "Метрика: registrations | deactivations | payments"
// @Param year query int false "Год, по умолчанию текущий"
// @Param site query string false "Филиал"
// @Success 200 {object} response.Response "Годовой ряд"
// @Failure 400 {object} response.ErrorResponse "Неизвестная метрика, год или филиал"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /stats/series [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.series"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	metric := r.URL.Query().Get("metric")

	site := r.URL.Query().Get("site")
	if site != "" && !models.ValidSite(site) {
		log.Error("unknown site", slog.String("site", site))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown site"))
		return
	}

	year := 0
	if rawYear := r.URL.Query().Get("year"); rawYear != "" {
		var err error
		year, err = strconv.Atoi(rawYear)
		if err != nil {
			log.Error("failed to decode year", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("year must be an integer"))
			return
		}
	}

	series, err := h.service.Series(r.Context(), metric, year, site)
	if err != nil {
		if errors.Is(err, statsservice.ErrUnknownMetric) {
			log.Error("unknown metric", slog.String("metric", metric))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown metric"))
			return
		}
		log.Error("failed to build series", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build series"))
		return
	}

	log.Info("success to build series", slog.String("metric", metric), slog.Int("year", series.Year))
	render.JSON(w, r, response.StatusOKWithData(series))
}
