package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"trackhub/internal/dto"
	"trackhub/internal/entities"
	"trackhub/internal/repositories"
	"trackhub/pkg/types"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentResponseDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentResponseDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentResponseDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentResponseDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) (*dto.EquipmentDeleteResultDTO, error)
}

type EquipmentService struct {
	equipmentRepo    repositories.EquipmentRepositoryInterface
	interventionRepo repositories.InterventionRepositoryInterface
	txManager        repositories.TxManagerInterface
	cache            repositories.CacheRepositoryInterface
	logger           *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	interventionRepo repositories.InterventionRepositoryInterface,
	txManager repositories.TxManagerInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo:    equipmentRepo,
		interventionRepo: interventionRepo,
		txManager:        txManager,
		cache:            cache,
		logger:           logger,
	}
}

func equipmentToResponse(e *entities.Equipment) *dto.EquipmentResponseDTO {
	return &dto.EquipmentResponseDTO{
		ID:                e.ID,
		Name:              e.Name,
		Description:       null.NewString(e.Description.String, e.Description.Valid),
		TypeID:            e.TypeID,
		TypeDescription:   null.NewString(e.TypeDescription.String, e.TypeDescription.Valid),
		StatusID:          e.StatusID,
		StatusDescription: null.NewString(e.StatusDescription.String, e.StatusDescription.Valid),
		LocationID:        null.NewInt64(e.LocationID.Int64, e.LocationID.Valid),
		LocationName:      null.NewString(e.LocationName.String, e.LocationName.Valid),
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         e.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentResponseDTO, uint64, error) {
	equipments, total, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	list := make([]dto.EquipmentResponseDTO, 0, len(equipments))
	for i := range equipments {
		list = append(list, *equipmentToResponse(&equipments[i]))
	}
	return list, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentResponseDTO, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return equipmentToResponse(equipment), nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentResponseDTO, error) {
	equipment := entities.Equipment{
		Name:        payload.Name,
		Description: sql.NullString{String: payload.Description.String, Valid: payload.Description.Valid},
		TypeID:      payload.TypeID,
		StatusID:    payload.StatusID,
		LocationID:  sql.NullInt64{Int64: payload.LocationID.Int64, Valid: payload.LocationID.Valid},
	}

	newID, err := s.equipmentRepo.Create(ctx, nil, equipment)
	if err != nil {
		return nil, err
	}

	created, err := s.equipmentRepo.FindByID(ctx, nil, newID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("equipment created", zap.Uint64("equipmentID", newID))
	invalidateDashboardStats(ctx, s.cache, s.logger)
	return equipmentToResponse(created), nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentResponseDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.equipmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}

		merged := *current
		if payload.Name.Valid {
			merged.Name = payload.Name.String
		}
		if payload.Description.Valid {
			merged.Description = sql.NullString{String: payload.Description.String, Valid: true}
		}
		if payload.TypeID.Valid {
			merged.TypeID = uint64(payload.TypeID.Int64)
		}
		if payload.StatusID.Valid {
			merged.StatusID = uint64(payload.StatusID.Int64)
		}
		if payload.LocationID.Valid {
			merged.LocationID = sql.NullInt64{Int64: payload.LocationID.Int64, Valid: true}
		}

		return s.equipmentRepo.Update(ctx, tx, id, merged)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.equipmentRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("equipment updated", zap.Uint64("equipmentID", id))
	invalidateDashboardStats(ctx, s.cache, s.logger)
	return equipmentToResponse(updated), nil
}

// DeleteEquipment removes the equipment together with its history.
// The interventions go first, inside the same transaction, so a
// failure midway leaves everything in place.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) (*dto.EquipmentDeleteResultDTO, error) {
	var removed int64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.equipmentRepo.FindByID(ctx, tx, id); err != nil {
			return err
		}

		count, err := s.interventionRepo.DeleteByEquipment(ctx, tx, id)
		if err != nil {
			return err
		}
		removed = count

		return s.equipmentRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("equipment deleted",
		zap.Uint64("equipmentID", id), zap.Int64("removedInterventions", removed))
	invalidateDashboardStats(ctx, s.cache, s.logger)
	return &dto.EquipmentDeleteResultDTO{DeletedInterventions: removed}, nil
}
