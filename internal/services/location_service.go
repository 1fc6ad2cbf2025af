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

type LocationServiceInterface interface {
	GetLocations(ctx context.Context, filter types.Filter) ([]dto.LocationResponseDTO, uint64, error)
	FindLocation(ctx context.Context, id uint64) (*dto.LocationResponseDTO, error)
	CreateLocation(ctx context.Context, payload dto.CreateLocationDTO) (*dto.LocationResponseDTO, error)
	UpdateLocation(ctx context.Context, id uint64, payload dto.UpdateLocationDTO) (*dto.LocationResponseDTO, error)
	DeleteLocation(ctx context.Context, id uint64) error
}

type LocationService struct {
	locationRepo repositories.LocationRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewLocationService(
	locationRepo repositories.LocationRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) LocationServiceInterface {
	return &LocationService{
		locationRepo: locationRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func locationToResponse(l *entities.Location) *dto.LocationResponseDTO {
	return &dto.LocationResponseDTO{
		ID:         l.ID,
		Name:       l.Name,
		Building:   null.NewString(l.Building.String, l.Building.Valid),
		Floor:      null.NewString(l.Floor.String, l.Floor.Valid),
		Department: null.NewString(l.Department.String, l.Department.Valid),
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  l.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *LocationService) GetLocations(ctx context.Context, filter types.Filter) ([]dto.LocationResponseDTO, uint64, error) {
	locations, total, err := s.locationRepo.GetLocations(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	list := make([]dto.LocationResponseDTO, 0, len(locations))
	for i := range locations {
		list = append(list, *locationToResponse(&locations[i]))
	}
	return list, total, nil
}

func (s *LocationService) FindLocation(ctx context.Context, id uint64) (*dto.LocationResponseDTO, error) {
	location, err := s.locationRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return locationToResponse(location), nil
}

func (s *LocationService) CreateLocation(ctx context.Context, payload dto.CreateLocationDTO) (*dto.LocationResponseDTO, error) {
	location := entities.Location{
		Name:       payload.Name,
		Building:   sql.NullString{String: payload.Building.String, Valid: payload.Building.Valid},
		Floor:      sql.NullString{String: payload.Floor.String, Valid: payload.Floor.Valid},
		Department: sql.NullString{String: payload.Department.String, Valid: payload.Department.Valid},
	}

	newID, err := s.locationRepo.Create(ctx, nil, location)
	if err != nil {
		return nil, err
	}

	created, err := s.locationRepo.FindByID(ctx, nil, newID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("location created", zap.Uint64("locationID", newID))
	return locationToResponse(created), nil
}

func (s *LocationService) UpdateLocation(ctx context.Context, id uint64, payload dto.UpdateLocationDTO) (*dto.LocationResponseDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.locationRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}

		merged := *current
		if payload.Name.Valid {
			merged.Name = payload.Name.String
		}
		if payload.Building.Valid {
			merged.Building = sql.NullString{String: payload.Building.String, Valid: true}
		}
		if payload.Floor.Valid {
			merged.Floor = sql.NullString{String: payload.Floor.String, Valid: true}
		}
		if payload.Department.Valid {
			merged.Department = sql.NullString{String: payload.Department.String, Valid: true}
		}

		return s.locationRepo.Update(ctx, tx, id, merged)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.locationRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("location updated", zap.Uint64("locationID", id))
	return locationToResponse(updated), nil
}

func (s *LocationService) DeleteLocation(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.locationRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("location deleted", zap.Uint64("locationID", id))
	return nil
}
