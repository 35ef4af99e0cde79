package repository

import (
	"context"

	"github.com/lshigami/trivia/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]model.Category, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, categories []model.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Count(&n).Error
	return n, err
}

// CreateBatch inserts categories in order and fills in their IDs.
func (r *categoryRepository) CreateBatch(ctx context.Context, categories []model.Category) error {
	return r.db.WithContext(ctx).Create(&categories).Error
}
