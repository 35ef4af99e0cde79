package database

import (
	"context"
	"fmt"

	"github.com/lshigami/trivia/internal/model"
	"github.com/lshigami/trivia/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var seedCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

type seedQuestion struct {
	question   string
	answer     string
	category   string
	difficulty int
}

var seedQuestions = []seedQuestion{
	{"Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", "Maya Angelou", "History", 2},
	{"What boxer's original name is Cassius Clay?", "Muhammad Ali", "History", 1},
	{"What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", "Apollo 13", "Entertainment", 4},
	{"What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", "Tom Cruise", "Entertainment", 4},
	{"What was the title of the 1990 fantasy directed by Tim Burton about a young man with multi-bladed appendages?", "Edward Scissorhands", "Entertainment", 3},
	{"Which is the only team to play in every soccer World Cup tournament?", "Brazil", "Sports", 3},
	{"Which country won the first ever soccer World Cup in 1930?", "Uruguay", "Sports", 4},
	{"Who invented Peanut Butter?", "George Washington Carver", "History", 2},
	{"What is the largest lake in Africa?", "Lake Victoria", "Geography", 2},
	{"In which royal palace would you find the Hall of Mirrors?", "The Palace of Versailles", "Geography", 3},
	{"The Taj Mahal is located in which Indian city?", "Agra", "Geography", 2},
	{"Which Dutch graphic artist-initials M C was a creator of optical illusions?", "Escher", "Art", 1},
	{"La Giaconda is better known as what?", "Mona Lisa", "Art", 3},
	{"How many paintings did Van Gogh sell in his lifetime?", "One", "Art", 4},
	{"Which American artist was a pioneer of Abstract Expressionism, and a leading exponent of action painting?", "Jackson Pollock", "Art", 2},
	{"What is the heaviest organ in the human body?", "The Liver", "Science", 4},
	{"Who discovered penicillin?", "Alexander Fleming", "Science", 3},
	{"Hematology is a branch of medicine involving the study of what?", "Blood", "Science", 4},
	{"Which dung beetle was worshipped by the ancient Egyptians?", "Scarab", "History", 4},
}

// SeedQuestionCount is the number of questions Seed inserts.
var SeedQuestionCount = len(seedQuestions)

// Seed loads the standard categories and questions when the categories table is empty.
// It is a no-op on a populated database.
func Seed(ctx context.Context, db *gorm.DB) error {
	existing, err := repository.NewCategoryRepository(db).Count(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if existing > 0 {
		log.Info().Int64("categories", existing).Msg("Database already seeded, skipping")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		categories := make([]model.Category, len(seedCategories))
		for i, name := range seedCategories {
			categories[i] = model.Category{Type: name}
		}
		if err := repository.NewCategoryRepository(tx).CreateBatch(ctx, categories); err != nil {
			return fmt.Errorf("insert categories: %w", err)
		}

		stored, err := repository.NewCategoryRepository(tx).FindAll(ctx)
		if err != nil {
			return fmt.Errorf("reload categories: %w", err)
		}
		ids := make(map[string]int, len(stored))
		for _, c := range stored {
			ids[c.Type] = int(c.ID)
		}

		questions := make([]model.Question, len(seedQuestions))
		for i, q := range seedQuestions {
			questions[i] = model.Question{
				Question:   q.question,
				Answer:     q.answer,
				Category:   ids[q.category],
				Difficulty: q.difficulty,
			}
		}
		if err := repository.NewQuestionRepository(tx).CreateBatch(ctx, questions); err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}

		log.Info().Int("categories", len(categories)).Int("questions", len(questions)).Msg("Database seeded")
		return nil
	})
}
