package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/trivia/internal/dto"
	"github.com/lshigami/trivia/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AnyCategory as a quiz category id lifts the category filter.
const AnyCategory = 0

type QuizService interface {
	NextQuestion(ctx context.Context, previous []int, category int) (*dto.QuestionResponse, error)
}

type quizService struct {
	repo repository.QuestionRepository
}

func NewQuizService(repo repository.QuestionRepository) QuizService {
	return &quizService{repo: repo}
}

// NextQuestion picks the lowest-id question not in previous, within category unless it
// is AnyCategory. It returns nil, nil once every question has been played.
func (s *quizService) NextQuestion(ctx context.Context, previous []int, category int) (*dto.QuestionResponse, error) {
	var filter *int
	if category != AnyCategory {
		filter = &category
	}

	question, err := s.repo.FindFirstExcluding(ctx, previous, filter)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Debug().Int("category", category).Int("played", len(previous)).Msg("Quiz exhausted")
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Int("category", category).Msg("Failed to pick next quiz question")
		return nil, fmt.Errorf("error picking quiz question: %w", err)
	}

	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, question); err != nil {
		return nil, fmt.Errorf("error preparing quiz question: %w", err)
	}
	return &resp, nil
}
