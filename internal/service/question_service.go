package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/trivia/internal/dto"
	"github.com/lshigami/trivia/internal/model"
	"github.com/lshigami/trivia/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	// QuestionsPerPage is the fixed page size of every question listing.
	QuestionsPerPage = 10
	// NoCategory disables the category filter of SearchQuestions.
	NoCategory = -1
)

var ErrQuestionNotFound = errors.New("question not found")

type QuestionService interface {
	SearchQuestions(ctx context.Context, term string, category int, page int) (*dto.QuestionPageResponse, error)
	CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id uint) error
}

type questionService struct {
	repo         repository.QuestionRepository
	categoryRepo repository.CategoryRepository
}

func NewQuestionService(repo repository.QuestionRepository, categoryRepo repository.CategoryRepository) QuestionService {
	return &questionService{repo: repo, categoryRepo: categoryRepo}
}

// SearchQuestions returns page (1-based) of the questions whose text contains term,
// ignoring case, restricted to category unless it is NoCategory. The total counts every
// match, and the full category set is attached whatever the filter. Pages outside the
// result set come back empty.
func (s *questionService) SearchQuestions(ctx context.Context, term string, category int, page int) (*dto.QuestionPageResponse, error) {
	filter := repository.QuestionFilter{Term: term}
	if category != NoCategory {
		filter.Category = &category
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("term", term).Int("category", category).Msg("Failed to count questions")
		return nil, fmt.Errorf("error counting questions: %w", err)
	}

	var questions []model.Question
	if page >= 1 {
		questions, err = s.repo.Find(ctx, filter, (page-1)*QuestionsPerPage, QuestionsPerPage)
		if err != nil {
			log.Error().Err(err).Str("term", term).Int("page", page).Msg("Failed to fetch questions page")
			return nil, fmt.Errorf("error fetching questions: %w", err)
		}
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load categories for question listing")
		return nil, fmt.Errorf("error fetching categories: %w", err)
	}

	resp := &dto.QuestionPageResponse{
		Questions:       toQuestionResponses(questions),
		TotalQuestions:  total,
		Categories:      toCategoryMap(categories),
		CurrentCategory: category,
	}
	return resp, nil
}

func (s *questionService) CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	question := model.Question{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: req.Difficulty.Int(),
		Category:   req.Category.Int(),
	}
	if err := s.repo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Msg("Failed to create question in service")
		return nil, fmt.Errorf("error creating question: %w", err)
	}

	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, &question); err != nil {
		return nil, fmt.Errorf("error preparing question response: %w", err)
	}
	return &resp, nil
}

// DeleteQuestion returns ErrQuestionNotFound when no row has id.
func (s *questionService) DeleteQuestion(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to delete question")
		return fmt.Errorf("error deleting question %d: %w", id, err)
	}
	if deleted == 0 {
		return fmt.Errorf("delete question %d: %w", id, ErrQuestionNotFound)
	}
	return nil
}

// toQuestionResponses never returns nil so an empty page encodes as [].
func toQuestionResponses(questions []model.Question) []dto.QuestionResponse {
	resp := make([]dto.QuestionResponse, len(questions))
	for i := range questions {
		_ = copier.Copy(&resp[i], &questions[i])
	}
	return resp
}
