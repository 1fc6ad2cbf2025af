package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"trackhub/internal/authz"
	"trackhub/internal/dto"
	"trackhub/internal/entities"
	"trackhub/internal/repositories"
	apperrors "trackhub/pkg/errors"
)

const (
	dashboardStatsCacheKey = "home:dashboard-stats"
	recentActivityLimit    = 10
)

type HomeServiceInterface interface {
	DashboardStats(ctx context.Context, requester authz.Requester) (*dto.DashboardStatsDTO, error)
	TechnicianActivity(ctx context.Context) ([]dto.TechnicianActivityDTO, error)
	RecentInterventions(ctx context.Context) ([]dto.InterventionResponseDTO, error)
	PriorityEquipments(ctx context.Context) ([]dto.PriorityEquipmentDTO, error)
}

type HomeService struct {
	equipmentRepo    repositories.EquipmentRepositoryInterface
	interventionRepo repositories.InterventionRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	statusRepo       repositories.DictionaryRepositoryInterface
	typeRepo         repositories.DictionaryRepositoryInterface
	outcomeRepo      repositories.DictionaryRepositoryInterface
	cache            repositories.CacheRepositoryInterface
	cacheTTL         time.Duration
	logger           *zap.Logger
}

func NewHomeService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	interventionRepo repositories.InterventionRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	statusRepo repositories.DictionaryRepositoryInterface,
	typeRepo repositories.DictionaryRepositoryInterface,
	outcomeRepo repositories.DictionaryRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) HomeServiceInterface {
	return &HomeService{
		equipmentRepo:    equipmentRepo,
		interventionRepo: interventionRepo,
		userRepo:         userRepo,
		statusRepo:       statusRepo,
		typeRepo:         typeRepo,
		outcomeRepo:      outcomeRepo,
		cache:            cache,
		cacheTTL:         cacheTTL,
		logger:           logger,
	}
}

// invalidateDashboardStats drops the cached aggregate so the next
// dashboard read rebuilds it. Write paths call it after a successful
// mutation; a failed delete only extends the staleness window.
func invalidateDashboardStats(ctx context.Context, cache repositories.CacheRepositoryInterface, logger *zap.Logger) {
	if err := cache.Del(ctx, dashboardStatsCacheKey); err != nil {
		logger.Warn("invalidating dashboard stats cache failed", zap.Error(err))
	}
}

// DashboardStats aggregates the admin landing page numbers. The
// result is cached: the counters tolerate a short staleness window
// and the aggregation touches every table.
func (s *HomeService) DashboardStats(ctx context.Context, requester authz.Requester) (*dto.DashboardStatsDTO, error) {
	if !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	if cached, err := s.cache.Get(ctx, dashboardStatsCacheKey); err == nil && cached != "" {
		var stats dto.DashboardStatsDTO
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.buildDashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, dashboardStatsCacheKey, string(encoded), s.cacheTTL); err != nil {
			s.logger.Warn("caching dashboard stats failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *HomeService) buildDashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	byStatus, err := s.equipmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.equipmentRepo.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	byOutcome, err := s.interventionRepo.CountByOutcome(ctx)
	if err != nil {
		return nil, err
	}

	adminCount, err := s.userRepo.CountByRole(ctx, nil, entities.RoleAdmin)
	if err != nil {
		return nil, err
	}
	technicianCount, err := s.userRepo.CountByRole(ctx, nil, entities.RoleTechnician)
	if err != nil {
		return nil, err
	}

	statusSegments, err := s.labelSegments(ctx, s.statusRepo, byStatus)
	if err != nil {
		return nil, err
	}
	typeSegments, err := s.labelSegments(ctx, s.typeRepo, byType)
	if err != nil {
		return nil, err
	}
	outcomeSegments, err := s.labelSegments(ctx, s.outcomeRepo, byOutcome)
	if err != nil {
		return nil, err
	}

	totalInterventions, err := s.interventionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	var totalEquipments uint64
	for _, count := range byStatus {
		totalEquipments += count
	}

	return &dto.DashboardStatsDTO{
		TotalEquipments:        totalEquipments,
		TotalInterventions:     totalInterventions,
		TotalUsers:             uint64(adminCount + technicianCount),
		EquipmentByStatus:      statusSegments,
		EquipmentByType:        typeSegments,
		InterventionsByOutcome: outcomeSegments,
	}, nil
}

// labelSegments turns a grouped count into chart segments, labelled
// from the dictionary. Every dictionary entry appears even with a
// zero count, so charts keep a stable set of segments.
func (s *HomeService) labelSegments(ctx context.Context, dict repositories.DictionaryRepositoryInterface, counts map[uint64]uint64) ([]dto.ChartSegmentDTO, error) {
	entries, err := dict.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	segments := make([]dto.ChartSegmentDTO, 0, len(entries))
	for _, entry := range entries {
		segments = append(segments, dto.ChartSegmentDTO{
			ID:    entry.ID,
			Label: entry.Description,
			Count: counts[entry.ID],
		})
	}
	return segments, nil
}

func (s *HomeService) TechnicianActivity(ctx context.Context) ([]dto.TechnicianActivityDTO, error) {
	technicians, err := s.userRepo.GetTechnicians(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.interventionRepo.CountByUser(ctx)
	if err != nil {
		return nil, err
	}

	activity := make([]dto.TechnicianActivityDTO, 0, len(technicians))
	for i := range technicians {
		tech := &technicians[i]
		activity = append(activity, dto.TechnicianActivityDTO{
			Technician:        dto.ShortUserDTO{ID: tech.ID, FullName: tech.FullName()},
			InterventionCount: counts[tech.ID],
		})
	}
	return activity, nil
}

func (s *HomeService) RecentInterventions(ctx context.Context) ([]dto.InterventionResponseDTO, error) {
	recent, err := s.interventionRepo.GetRecent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	list := make([]dto.InterventionResponseDTO, 0, len(recent))
	for i := range recent {
		list = append(list, *interventionToResponse(&recent[i]))
	}
	return list, nil
}

// PriorityEquipments lists the machines flagged as out of service, the
// ones an admin should look at first.
func (s *HomeService) PriorityEquipments(ctx context.Context) ([]dto.PriorityEquipmentDTO, error) {
	equipments, err := s.equipmentRepo.GetByStatus(ctx, entities.StatusObsolete)
	if err != nil {
		return nil, err
	}

	list := make([]dto.PriorityEquipmentDTO, 0, len(equipments))
	for i := range equipments {
		list = append(list, dto.PriorityEquipmentDTO{Equipment: *equipmentToResponse(&equipments[i])})
	}
	return list, nil
}
