// Package export реализует HTTP-обработчик выгрузки таблиц в CSV:
// участников, оплат и приостановок.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/franchu01/soma/internal/http/response"
	"github.com/franchu01/soma/internal/lib/sl"
	"github.com/franchu01/soma/internal/models"
)

// Service описывает снимки, доступные для выгрузки.
type Service interface {
	ListMembers(ctx context.Context) ([]*models.Member, error)
	ListPayments(ctx context.Context) (models.EventMap, error)
	ListDeactivations(ctx context.Context) (models.EventMap, error)
}

// Handler управляет HTTP-запросами выгрузки CSV.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выгрузка CSV
// @Description Отдаёт таблицу members, payments или deactivations файлом CSV.
// @Tags Export
// @Produce  text/csv
// @Param entity path string true "members | payments | deactivations"
// @Success 200 {string} string "CSV-файл"
// @Failure 400 {object} response.ErrorResponse "Неизвестная таблица"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /export/{entity} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.export"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	entity := chi.URLParam(r, "entity")

	var records [][]string
	var err error
	switch entity {
	case "members":
		records, err = h.memberRecords(r.Context())
	case "payments":
		records, err = h.eventRecords(r.Context(), h.service.ListPayments)
	case "deactivations":
		records, err = h.eventRecords(r.Context(), h.service.ListDeactivations)
	default:
		log.Error("unknown export entity", slog.String("entity", entity))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown export entity"))
		return
	}
	if err != nil {
		log.Error("failed to build export", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build export"))
		return
	}

	filename := fmt.Sprintf("soma-%s-%s.csv", entity, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		log.Error("failed to write csv", sl.Err(err))
		return
	}

	log.Info("success to export", slog.String("entity", entity), slog.Int("rows", len(records)-1))
}

func (h *Handler) memberRecords(ctx context.Context) ([][]string, error) {
	members, err := h.service.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	records := [][]string{{"email", "name", "created_at", "reminder_day", "site"}}
	for _, m := range members {
		records = append(records, []string{
			m.Email,
			m.Name,
			m.CreatedAt.Format("2006-01-02"),
			strconv.Itoa(m.ReminderDay),
			m.Site,
		})
	}
	return records, nil
}

func (h *Handler) eventRecords(ctx context.Context, list func(context.Context) (models.EventMap, error)) ([][]string, error) {
	events, err := list(ctx)
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(events))
	for email := range events {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	records := [][]string{{"email", "month"}}
	for _, email := range emails {
		for _, key := range events[email] {
			records = append(records, []string{email, key})
		}
	}
	return records, nil
}
