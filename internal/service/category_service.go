package service

import (
	"context"
	"fmt"

	"github.com/lshigami/trivia/internal/dto"
	"github.com/lshigami/trivia/internal/model"
	"github.com/lshigami/trivia/internal/repository"
	"github.com/rs/zerolog/log"
)

type CategoryService interface {
	GetCategories(ctx context.Context) (dto.CategoryMap, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) GetCategories(ctx context.Context) (dto.CategoryMap, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load categories from repository")
		return nil, fmt.Errorf("error fetching categories: %w", err)
	}
	return toCategoryMap(categories), nil
}

func toCategoryMap(categories []model.Category) dto.CategoryMap {
	m := make(dto.CategoryMap, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
