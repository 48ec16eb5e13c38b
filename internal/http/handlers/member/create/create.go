// Package create реализует HTTP-обработчик регистрации участника.
//
// Handler принимает JSON с данными участника, валидирует их и вызывает
// бизнес-логику регистрации. Дубликат email или имени отвечает конфликтом.
package create

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
	memberservice "github.com/franchu01/soma/internal/services/member"
	"github.com/franchu01/soma/internal/storage/repository"
)

// Handler управляет HTTP-запросами регистрации участников.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, req models.DummyMember) error
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
// @Summary Зарегистрировать участника
// @Description Создает нового участника зала. Email и имя должны быть уникальны.
// @Tags Members
// @Accept  json
// @Produce  json
// @Param request body models.DummyMember true "Данные участника"
// @Success 200 {object} response.Response "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 409 {object} response.ErrorResponse "Email или имя уже заняты"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMember
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Register(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			log.Error("email already registered", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email already registered"))
		case errors.Is(err, repository.ErrNameTaken):
			log.Error("name already registered", slog.String("name", req.Name))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("name already registered"))
		case errors.Is(err, memberservice.ErrUnknownSite):
			log.Error("unknown site", slog.String("site", req.Site))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown site"))
		default:
			log.Error("failed to register member", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not register member"))
		}
		return
	}

	log.Info("success to register member", slog.String("email", req.Email))
	render.JSON(w, r, response.OK())
}
