package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"trackhub/internal/authz"
	"trackhub/internal/dto"
	"trackhub/internal/entities"
	"trackhub/internal/repositories"
	"trackhub/internal/rules"
	apperrors "trackhub/pkg/errors"
	"trackhub/pkg/types"
)

const interventionDateLayout = "2006-01-02"

type InterventionServiceInterface interface {
	GetInterventions(ctx context.Context, filter types.Filter) ([]dto.InterventionResponseDTO, uint64, error)
	GetByEquipment(ctx context.Context, equipmentID uint64) ([]dto.InterventionResponseDTO, error)
	FindIntervention(ctx context.Context, id uint64) (*dto.InterventionResponseDTO, error)
	CreateIntervention(ctx context.Context, requester authz.Requester, payload dto.CreateInterventionDTO) (*dto.InterventionResponseDTO, error)
	UpdateIntervention(ctx context.Context, id uint64, payload dto.UpdateInterventionDTO) (*dto.InterventionResponseDTO, error)
	DeleteIntervention(ctx context.Context, id uint64) error
}

type InterventionService struct {
	interventionRepo repositories.InterventionRepositoryInterface
	equipmentRepo    repositories.EquipmentRepositoryInterface
	txManager        repositories.TxManagerInterface
	cache            repositories.CacheRepositoryInterface
	logger           *zap.Logger
}

func NewInterventionService(
	interventionRepo repositories.InterventionRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) InterventionServiceInterface {
	return &InterventionService{
		interventionRepo: interventionRepo,
		equipmentRepo:    equipmentRepo,
		txManager:        txManager,
		cache:            cache,
		logger:           logger,
	}
}

func interventionToResponse(i *entities.Intervention) *dto.InterventionResponseDTO {
	return &dto.InterventionResponseDTO{
		ID:                 i.ID,
		Date:               i.Date.Format(interventionDateLayout),
		Description:        i.Description,
		DurationMinutes:    i.DurationMinutes,
		EquipmentID:        i.EquipmentID,
		EquipmentName:      null.NewString(i.EquipmentName.String, i.EquipmentName.Valid),
		UserID:             null.NewInt64(i.UserID.Int64, i.UserID.Valid),
		TechnicianName:     null.NewString(i.TechnicianName.String, i.TechnicianName.Valid),
		OutcomeID:          null.NewInt64(i.OutcomeID.Int64, i.OutcomeID.Valid),
		OutcomeDescription: null.NewString(i.OutcomeDescription.String, i.OutcomeDescription.Valid),
		CreatedAt:          i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          i.UpdatedAt.Format(time.RFC3339),
	}
}

// parseInterventionDate accepts YYYY-MM-DD and falls back to today's
// date when the field is missing or malformed.
func parseInterventionDate(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	parsed, err := time.Parse(interventionDateLayout, raw)
	if err != nil {
		return time.Now()
	}
	return parsed
}

func (s *InterventionService) GetInterventions(ctx context.Context, filter types.Filter) ([]dto.InterventionResponseDTO, uint64, error) {
	interventions, total, err := s.interventionRepo.GetInterventions(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	list := make([]dto.InterventionResponseDTO, 0, len(interventions))
	for i := range interventions {
		list = append(list, *interventionToResponse(&interventions[i]))
	}
	return list, total, nil
}

func (s *InterventionService) GetByEquipment(ctx context.Context, equipmentID uint64) ([]dto.InterventionResponseDTO, error) {
	if _, err := s.equipmentRepo.FindByID(ctx, nil, equipmentID); err != nil {
		return nil, err
	}

	interventions, err := s.interventionRepo.GetByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	list := make([]dto.InterventionResponseDTO, 0, len(interventions))
	for i := range interventions {
		list = append(list, *interventionToResponse(&interventions[i]))
	}
	return list, nil
}

func (s *InterventionService) FindIntervention(ctx context.Context, id uint64) (*dto.InterventionResponseDTO, error) {
	intervention, err := s.interventionRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return interventionToResponse(intervention), nil
}

func (s *InterventionService) CreateIntervention(ctx context.Context, requester authz.Requester, payload dto.CreateInterventionDTO) (*dto.InterventionResponseDTO, error) {
	intervention := entities.Intervention{
		Date:            parseInterventionDate(payload.Date),
		Description:     payload.Description,
		DurationMinutes: payload.DurationMinutes,
		EquipmentID:     payload.EquipmentID,
		UserID:          sql.NullInt64{Int64: payload.UserID.Int64, Valid: payload.UserID.Valid},
		OutcomeID:       sql.NullInt64{Int64: payload.OutcomeID.Int64, Valid: payload.OutcomeID.Valid},
	}
	// A technician logging work without naming a user is recording
	// their own intervention.
	if !intervention.UserID.Valid && requester.Authenticated {
		intervention.UserID = sql.NullInt64{Int64: int64(requester.ID), Valid: true}
	}

	var newID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.interventionRepo.Create(ctx, tx, intervention)
		if err != nil {
			return err
		}
		newID = id

		if intervention.OutcomeID.Valid {
			return s.syncEquipmentStatus(ctx, tx, intervention.EquipmentID, uint64(intervention.OutcomeID.Int64))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.interventionRepo.FindByID(ctx, nil, newID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("intervention created", zap.Uint64("interventionID", newID), zap.Uint64("equipmentID", intervention.EquipmentID))
	invalidateDashboardStats(ctx, s.cache, s.logger)
	return interventionToResponse(created), nil
}

func (s *InterventionService) UpdateIntervention(ctx context.Context, id uint64, payload dto.UpdateInterventionDTO) (*dto.InterventionResponseDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.interventionRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}

		merged := *current
		if payload.Date.Valid {
			merged.Date = parseInterventionDate(payload.Date.String)
		}
		if payload.Description.Valid {
			merged.Description = payload.Description.String
		}
		if payload.DurationMinutes.Valid {
			merged.DurationMinutes = payload.DurationMinutes.Int
		}
		if payload.EquipmentID.Valid {
			merged.EquipmentID = uint64(payload.EquipmentID.Int64)
		}
		if payload.UserID.Valid {
			merged.UserID = sql.NullInt64{Int64: payload.UserID.Int64, Valid: true}
		}
		if payload.OutcomeID.Valid {
			merged.OutcomeID = sql.NullInt64{Int64: payload.OutcomeID.Int64, Valid: true}
		}

		if err := s.interventionRepo.Update(ctx, tx, id, merged); err != nil {
			return err
		}

		// The stored outcome drives the sync even when the request
		// only moved the intervention to different equipment.
		if merged.OutcomeID.Valid {
			return s.syncEquipmentStatus(ctx, tx, merged.EquipmentID, uint64(merged.OutcomeID.Int64))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.interventionRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("intervention updated", zap.Uint64("interventionID", id))
	invalidateDashboardStats(ctx, s.cache, s.logger)
	return interventionToResponse(updated), nil
}

func (s *InterventionService) DeleteIntervention(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.interventionRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("intervention deleted", zap.Uint64("interventionID", id))
	invalidateDashboardStats(ctx, s.cache, s.logger)
	return nil
}

// syncEquipmentStatus derives the equipment status from the recorded
// outcome. Equipment that no longer exists is skipped rather than
// failing the whole operation.
func (s *InterventionService) syncEquipmentStatus(ctx context.Context, tx pgx.Tx, equipmentID uint64, outcomeID uint64) error {
	statusID, ok := rules.StatusForOutcome(outcomeID)
	if !ok {
		return nil
	}

	if err := s.equipmentRepo.UpdateStatus(ctx, tx, equipmentID, statusID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Debug("status sync skipped, equipment missing", zap.Uint64("equipmentID", equipmentID))
			return nil
		}
		return err
	}
	return nil
}
