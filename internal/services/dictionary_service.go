package services

import (
	"context"

	"trackhub/internal/dto"
	"trackhub/internal/repositories"
)

// DictionaryService exposes the read-only reference tables. One
// instance per table, wired with the matching repository constructor.
type DictionaryServiceInterface interface {
	GetAll(ctx context.Context) ([]dto.DictionaryDTO, error)
	Find(ctx context.Context, id uint64) (*dto.DictionaryDTO, error)
}

type DictionaryService struct {
	repo repositories.DictionaryRepositoryInterface
}

func NewDictionaryService(repo repositories.DictionaryRepositoryInterface) DictionaryServiceInterface {
	return &DictionaryService{repo: repo}
}

func (s *DictionaryService) GetAll(ctx context.Context) ([]dto.DictionaryDTO, error) {
	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]dto.DictionaryDTO, 0, len(entries))
	for _, entry := range entries {
		list = append(list, dto.DictionaryDTO{ID: entry.ID, Description: entry.Description})
	}
	return list, nil
}

func (s *DictionaryService) Find(ctx context.Context, id uint64) (*dto.DictionaryDTO, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.DictionaryDTO{ID: entry.ID, Description: entry.Description}, nil
}
