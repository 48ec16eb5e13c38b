// Package paymentcreate реализует HTTP-обработчик фиксации оплаты.
//
// Месяц оплаты по умолчанию — текущий; явно переданный ключ "YYYY-MM"
// валидируется. Оплата несуществующего участника отвечает 404.
package paymentcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/franchu01/soma/internal/http/response"
	"github.com/franchu01/soma/internal/lib/sl"
	"github.com/franchu01/soma/internal/models"
	paymentservice "github.com/franchu01/soma/internal/services/payment"
	"github.com/franchu01/soma/internal/storage/repository"
)

// Handler управляет HTTP-запросами фиксации оплат.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики оплат.
type Service interface {
	Record(ctx context.Context, req models.DummyPayment) (string, error)
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
// @Summary Зафиксировать оплату
// @Description Записывает оплату участника за месяц. Без поля month берётся текущий месяц.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyPayment true "Email и опциональный месяц"
// @Success 200 {object} response.Response "Месяц зафиксированной оплаты"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или месяц"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPayment
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

	month, err := h.service.Record(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrInvalidMonth):
			log.Error("invalid month key", slog.String("month", req.Month))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("month must be a valid YYYY-MM key"))
		case errors.Is(err, repository.ErrMemberMissing):
			log.Error("member does not exist", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member does not exist"))
		default:
			log.Error("failed to record payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not record payment"))
		}
		return
	}

	log.Info("success to record payment", slog.String("email", req.Email), slog.String("month", month))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"month": month,
	}))
}
