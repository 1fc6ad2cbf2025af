package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"trackhub/internal/authz"
	"trackhub/internal/dto"
	"trackhub/internal/repositories"
	apperrors "trackhub/pkg/errors"
	"trackhub/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Me(ctx context.Context, requester authz.Requester) dto.SessionUserDTO
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The same answer for an unknown username and a wrong
			// password, so the endpoint cannot be used to probe
			// which accounts exist.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.Uint64("userID", user.ID), zap.String("role", string(user.Role)))

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.SessionUserDTO{
			ID:            user.ID,
			Username:      user.Username,
			FullName:      user.FullName(),
			Role:          string(user.Role),
			Authenticated: true,
		},
	}, nil
}

// Me reports the caller's identity. It never fails: a missing or
// broken token yields the anonymous shape, as does a token whose user
// has been removed in the meantime.
func (s *AuthService) Me(ctx context.Context, requester authz.Requester) dto.SessionUserDTO {
	if !requester.Authenticated {
		return dto.SessionUserDTO{Authenticated: false}
	}

	user, err := s.userRepo.FindByID(ctx, nil, requester.ID)
	if err != nil {
		s.logger.Debug("who-am-i lookup failed, answering anonymous",
			zap.Uint64("userID", requester.ID), zap.Error(err))
		return dto.SessionUserDTO{Authenticated: false}
	}

	return dto.SessionUserDTO{
		ID:            user.ID,
		Username:      user.Username,
		FullName:      user.FullName(),
		Role:          string(user.Role),
		Authenticated: true,
	}
}
