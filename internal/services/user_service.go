package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"trackhub/internal/authz"
	"trackhub/internal/dto"
	"trackhub/internal/entities"
	"trackhub/internal/repositories"
	"trackhub/internal/rules"
	apperrors "trackhub/pkg/errors"
	"trackhub/pkg/types"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserResponseDTO, uint64, error)
	GetTechnicians(ctx context.Context) ([]dto.ShortUserDTO, error)
	FindUser(ctx context.Context, requester authz.Requester, id uint64) (*dto.UserResponseDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserResponseDTO, error)
	UpdateUser(ctx context.Context, requester authz.Requester, id uint64, payload dto.UpdateUserDTO) (*dto.UserResponseDTO, error)
	DeleteUser(ctx context.Context, requester authz.Requester, id uint64) error
}

type UserService struct {
	userRepo  repositories.UserRepositoryInterface
	txManager repositories.TxManagerInterface
	cache     repositories.CacheRepositoryInterface
	logger    *zap.Logger

	// adminMu serializes every mutation that can change the number of
	// administrators. The count check and the write must not
	// interleave with another such mutation, or two concurrent
	// demotions could each see two admins and leave zero behind.
	adminMu sync.Mutex
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepo:  userRepo,
		txManager: txManager,
		cache:     cache,
		logger:    logger,
	}
}

func userToResponse(u *entities.User) *dto.UserResponseDTO {
	return &dto.UserResponseDTO{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Email:     null.NewString(u.Email.String, u.Email.Valid),
		Phone:     null.NewString(u.Phone.String, u.Phone.Valid),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserResponseDTO, uint64, error) {
	users, total, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	list := make([]dto.UserResponseDTO, 0, len(users))
	for i := range users {
		list = append(list, *userToResponse(&users[i]))
	}
	return list, total, nil
}

func (s *UserService) GetTechnicians(ctx context.Context) ([]dto.ShortUserDTO, error) {
	technicians, err := s.userRepo.GetTechnicians(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]dto.ShortUserDTO, 0, len(technicians))
	for i := range technicians {
		list = append(list, dto.ShortUserDTO{ID: technicians[i].ID, FullName: technicians[i].FullName()})
	}
	return list, nil
}

func (s *UserService) FindUser(ctx context.Context, requester authz.Requester, id uint64) (*dto.UserResponseDTO, error) {
	if !requester.IsAdmin() && requester.ID != id {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserResponseDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		Username:     payload.Username,
		PasswordHash: string(hash),
		Role:         entities.Role(payload.Role),
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        sql.NullString{String: payload.Email.String, Valid: payload.Email.Valid},
		Phone:        sql.NullString{String: payload.Phone.String, Valid: payload.Phone.Valid},
	}
	if !user.Role.Valid() {
		return nil, apperrors.ErrBadRequest
	}

	newID, err := s.userRepo.Create(ctx, nil, user)
	if err != nil {
		return nil, err
	}

	created, err := s.userRepo.FindByID(ctx, nil, newID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Uint64("userID", newID), zap.String("role", payload.Role))
	invalidateDashboardStats(ctx, s.cache, s.logger)
	return userToResponse(created), nil
}

func (s *UserService) UpdateUser(ctx context.Context, requester authz.Requester, id uint64, payload dto.UpdateUserDTO) (*dto.UserResponseDTO, error) {
	if !requester.IsAdmin() && requester.ID != id {
		return nil, apperrors.ErrForbidden
	}
	if payload.Role.Valid && !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	s.adminMu.Lock()
	defer s.adminMu.Unlock()

	var updated *entities.User
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.userRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}

		merged := *current
		if payload.Username.Valid {
			merged.Username = payload.Username.String
		}
		if payload.Password.Valid {
			hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password.String), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			merged.PasswordHash = string(hash)
		}
		if payload.FirstName.Valid {
			merged.FirstName = payload.FirstName.String
		}
		if payload.LastName.Valid {
			merged.LastName = payload.LastName.String
		}
		if payload.Email.Valid {
			merged.Email = sql.NullString{String: payload.Email.String, Valid: true}
		}
		if payload.Phone.Valid {
			merged.Phone = sql.NullString{String: payload.Phone.String, Valid: true}
		}

		if payload.Role.Valid {
			requested := entities.Role(payload.Role.String)
			if !requested.Valid() {
				return apperrors.ErrBadRequest
			}
			adminCount, err := s.userRepo.CountByRole(ctx, tx, entities.RoleAdmin)
			if err != nil {
				return err
			}
			if err := rules.ValidateRoleChange(current.Role, requested, adminCount); err != nil {
				return err
			}
			merged.Role = requested
		}

		if err := s.userRepo.Update(ctx, tx, id, merged); err != nil {
			return err
		}

		updated, err = s.userRepo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.Uint64("userID", id))
	invalidateDashboardStats(ctx, s.cache, s.logger)
	return userToResponse(updated), nil
}

func (s *UserService) DeleteUser(ctx context.Context, requester authz.Requester, id uint64) error {
	if !requester.IsAdmin() {
		return apperrors.ErrForbidden
	}

	s.adminMu.Lock()
	defer s.adminMu.Unlock()

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		target, err := s.userRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}

		adminCount, err := s.userRepo.CountByRole(ctx, tx, entities.RoleAdmin)
		if err != nil {
			return err
		}
		if err := rules.ValidateDeletion(target.Role, adminCount); err != nil {
			return err
		}

		return s.userRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.Uint64("userID", id))
	invalidateDashboardStats(ctx, s.cache, s.logger)
	return nil
}
