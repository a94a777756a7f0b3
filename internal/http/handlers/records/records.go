// Package records реализует HTTP-обработчики медицинской карты.
package records

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Service описывает бизнес-логику записей медицинской карты.
type Service interface {
	List(ctx context.Context, id models.Identity) (*models.GroupedRecords, error)
	Add(ctx context.Context, id models.Identity, in models.RecordInput) (*models.MedicalRecord, error)
	Update(ctx context.Context, id models.Identity, recordID int64, in models.RecordInput) (*models.MedicalRecord, error)
	Deactivate(ctx context.Context, id models.Identity, recordID int64) error
	Delete(ctx context.Context, id models.Identity, recordID int64) error
}

// EntryRequest запись медицинской карты. Тип проверяет сервис.
type EntryRequest struct {
	Type          string  `json:"type" validate:"required" example:"allergy"`
	Name          string  `json:"name" validate:"required,max=255" example:"Penicillin"`
	Description   string  `json:"description,omitempty"`
	Severity      string  `json:"severity,omitempty" validate:"max=50" example:"severe"`
	DiagnosedDate *string `json:"diagnosed_date,omitempty" example:"2024-09-01"`
}

func (req EntryRequest) input() (models.RecordInput, error) {
	in := models.RecordInput{
		Type:        models.RecordType(req.Type),
		Name:        req.Name,
		Description: req.Description,
		Severity:    req.Severity,
	}
	if req.DiagnosedDate != nil && *req.DiagnosedDate != "" {
		d, err := time.Parse(models.DateLayout, *req.DiagnosedDate)
		if err != nil {
			return in, apperr.Validation("diagnosed_date must be in YYYY-MM-DD format")
		}
		in.DiagnosedDate = &d
	}
	return in, nil
}

// Handler обрабатывает HTTP-запросы медицинской карты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler медицинской карты с валидатором запросов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// List godoc
// @Summary Медицинская карта
// @Description Активные записи, сгруппированные по типу.
// @Tags MedicalRecords
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.GroupedRecords}
// @Failure 401 {object} response.ErrorResponse
// @Router /medical-records [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.records.List")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	res, err := h.service.List(r.Context(), id)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}

// Add godoc
// @Summary Добавить запись в карту
// @Tags MedicalRecords
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EntryRequest true "Запись: allergy, medication или condition"
// @Success 201 {object} response.Response{data=models.MedicalRecord}
// @Failure 422 {object} response.ErrorResponse
// @Router /medical-records/entry [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.records.Add")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	var req EntryRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	res, err := h.service.Add(r.Context(), id, in)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.Created(w, r, res)
}

// Update godoc
// @Summary Изменить запись карты
// @Tags MedicalRecords
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Param request body EntryRequest true "Новое содержимое"
// @Success 200 {object} response.Response{data=models.MedicalRecord}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /medical-records/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.records.Update")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	recordID, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	var req EntryRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	res, err := h.service.Update(r.Context(), id, recordID, in)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}

// Deactivate godoc
// @Summary Скрыть запись карты
// @Tags MedicalRecords
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /medical-records/{id} [delete]
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.records.Deactivate")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	recordID, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	if err := h.service.Deactivate(r.Context(), id, recordID); err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, map[string]any{"message": "medical entry removed", "id": recordID})
}

// Delete godoc
// @Summary Удалить запись карты безвозвратно
// @Tags MedicalRecords
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /medical-records/{id}/permanent [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.records.Delete")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	recordID, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id, recordID); err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, map[string]any{"message": "medical entry deleted", "id": recordID})
}
