// Package record медицинская карта: аллергии, лекарства и хронические состояния.
package record

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/careconnect/internal/lib/access"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Repository хранилище медицинских записей.
type Repository interface {
	ListActiveRecords(ctx context.Context, ownerID string) ([]models.MedicalRecord, error)
	CreateRecord(ctx context.Context, ownerID string, in models.RecordInput) (*models.MedicalRecord, error)
	GetRecord(ctx context.Context, id int64) (*models.MedicalRecord, error)
	GetRecordAnyState(ctx context.Context, id int64) (*models.MedicalRecord, error)
	UpdateRecord(ctx context.Context, id int64, in models.RecordInput) (*models.MedicalRecord, error)
	DeactivateRecord(ctx context.Context, id int64) error
	DeleteRecord(ctx context.Context, id int64) error
}

// Service операции над медицинской картой.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает сервис медицинской карты.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func validate(in models.RecordInput) error {
	if !in.Type.Valid() {
		return apperr.Validation(fmt.Sprintf("invalid record type %q: must be allergy, medication or condition", in.Type))
	}
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Validation("name is required")
	}
	return nil
}

// List возвращает активные записи субъекта, сгруппированные по типу.
func (s *Service) List(ctx context.Context, id models.Identity) (*models.GroupedRecords, error) {
	const op = "record.List"

	records, err := s.repo.ListActiveRecords(ctx, id.AccountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grouped := &models.GroupedRecords{
		Allergies:   []models.MedicalRecord{},
		Medications: []models.MedicalRecord{},
		Conditions:  []models.MedicalRecord{},
	}
	for _, r := range records {
		switch r.Type {
		case models.RecordAllergy:
			grouped.Allergies = append(grouped.Allergies, r)
		case models.RecordMedication:
			grouped.Medications = append(grouped.Medications, r)
		case models.RecordCondition:
			grouped.Conditions = append(grouped.Conditions, r)
		}
	}
	return grouped, nil
}

// Add добавляет запись. Неизвестный тип отклоняется до обращения к хранилищу.
func (s *Service) Add(ctx context.Context, id models.Identity, in models.RecordInput) (*models.MedicalRecord, error) {
	const op = "record.Add"

	if err := validate(in); err != nil {
		return nil, err
	}
	created, err := s.repo.CreateRecord(ctx, id.AccountID, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("medical record added",
		slog.Int64("record_id", created.ID),
		slog.String("type", string(in.Type)))
	return created, nil
}

// Update меняет активную запись.
func (s *Service) Update(ctx context.Context, id models.Identity, recordID int64, in models.RecordInput) (*models.MedicalRecord, error) {
	const op = "record.Update"

	if err := validate(in); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetRecord(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.CheckOwner(id, existing.OwnerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdateRecord(ctx, recordID, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// Deactivate скрывает запись из карты, не удаляя ее.
func (s *Service) Deactivate(ctx context.Context, id models.Identity, recordID int64) error {
	const op = "record.Deactivate"

	existing, err := s.repo.GetRecord(ctx, recordID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := access.CheckOwner(id, existing.OwnerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeactivateRecord(ctx, recordID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет запись безвозвратно, в том числе уже скрытую.
func (s *Service) Delete(ctx context.Context, id models.Identity, recordID int64) error {
	const op = "record.Delete"

	existing, err := s.repo.GetRecordAnyState(ctx, recordID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := access.CheckOwner(id, existing.OwnerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeleteRecord(ctx, recordID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("medical record deleted", slog.Int64("record_id", recordID))
	return nil
}
