package service

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/util"
	"context"
	"fmt"
	"strings"
)

type FavoriteService struct {
	FavoriteRepo *repository.FavoriteRepository
	LanguageRepo *repository.LanguageRepository
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, languageRepo *repository.LanguageRepository) *FavoriteService {
	return &FavoriteService{FavoriteRepo: favoriteRepo, LanguageRepo: languageRepo}
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]model.UserFavorite, error) {
	favorites, err := s.FavoriteRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []model.UserFavorite{}
	}
	return favorites, nil
}

// Add 收藏已存在时返回原记录
func (s *FavoriteService) Add(ctx context.Context, userID, languageID string) (*model.UserFavorite, error) {
	if strings.TrimSpace(languageID) == "" {
		return nil, fmt.Errorf("%w: languageId is required", util.ErrValidation)
	}
	if _, err := s.LanguageRepo.FindByID(ctx, languageID); err != nil {
		return nil, notFound(err, "language", languageID)
	}
	return s.FavoriteRepo.Add(ctx, userID, languageID)
}

// Remove 未收藏时同样视为成功
func (s *FavoriteService) Remove(ctx context.Context, userID, languageID string) error {
	return s.FavoriteRepo.Remove(ctx, userID, languageID)
}
