package repository

import (
	"context"
	"strings"

	"github.com/lshigami/trivia/internal/model"
	"gorm.io/gorm"
)

// QuestionFilter narrows question listings. A nil Category matches every category.
type QuestionFilter struct {
	Term     string
	Category *int
}

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	CreateBatch(ctx context.Context, questions []model.Question) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	Find(ctx context.Context, filter QuestionFilter, offset, limit int) ([]model.Question, error)
	Count(ctx context.Context, filter QuestionFilter) (int64, error)
	FindFirstExcluding(ctx context.Context, excluded []int, category *int) (*model.Question, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// filtered builds a fresh query for every call; gorm statements are not reusable
// once a finisher has run.
func (r *questionRepository) filtered(ctx context.Context, filter QuestionFilter) *gorm.DB {
	// LOWER + LIKE behaves the same on postgres and sqlite, unlike ILIKE.
	query := r.db.WithContext(ctx).
		Model(&model.Question{}).
		Where("LOWER(question) LIKE ?", "%"+strings.ToLower(filter.Term)+"%")
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	return query
}

// Find returns matching questions in id order, limit rows starting at offset.
func (r *questionRepository) Find(ctx context.Context, filter QuestionFilter, offset, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.filtered(ctx, filter).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Count(ctx context.Context, filter QuestionFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, filter).Count(&n).Error
	return n, err
}

// FindFirstExcluding returns the lowest-id question whose id is not in excluded,
// or gorm.ErrRecordNotFound.
func (r *questionRepository) FindFirstExcluding(ctx context.Context, excluded []int, category *int) (*model.Question, error) {
	query := r.db.WithContext(ctx).Model(&model.Question{})
	// gorm renders an empty IN list as (NULL), which would exclude every row.
	if len(excluded) > 0 {
		query = query.Where("id NOT IN ?", excluded)
	}
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var question model.Question
	if err := query.Order("id ASC").First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// Delete removes the question and reports how many rows went away.
func (r *questionRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Question{}, id)
	return res.RowsAffected, res.Error
}
