package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotAnObject = errors.New("request body must be a JSON object")
	ErrMissingKey  = errors.New("missing key")
	ErrNullValue   = errors.New("null value")
)

// Payload is a JSON object body kept as raw values, so handlers can branch on
// which keys are present before committing to types.
type Payload map[string]json.RawMessage

func DecodePayload(body []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode request body: %w", err)
	}
	if p == nil {
		return nil, ErrNotAnObject
	}
	return p, nil
}

// Has reports whether every key is present, whatever its value.
func (p Payload) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := p[k]; !ok {
			return false
		}
	}
	return true
}

// Decode unmarshals the value under key into v. Missing keys and null values are errors.
func (p Payload) Decode(key string, v any) error {
	raw, ok := p[key]
	if !ok {
		return fmt.Errorf("%w %q", ErrMissingKey, key)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("%q: %w", key, ErrNullValue)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%q: %w", key, err)
	}
	return nil
}

// SearchRequest is the search mode of POST /questions.
type SearchRequest struct {
	SearchTerm string `json:"searchTerm" example:"title"`
}

// CreateQuestionRequest is the create mode of POST /questions.
type CreateQuestionRequest struct {
	Question   string  `json:"question" example:"Who discovered penicillin?"`
	Answer     string  `json:"answer" example:"Alexander Fleming"`
	Difficulty FlexInt `json:"difficulty" swaggertype:"integer" example:"3"`
	Category   FlexInt `json:"category" swaggertype:"integer" example:"1"`
}

var createQuestionKeys = []string{"question", "answer", "difficulty", "category"}

// HasCreateQuestionKeys reports whether all four create-mode keys are present.
func (p Payload) HasCreateQuestionKeys() bool {
	return p.Has(createQuestionKeys...)
}

func (p Payload) SearchRequest() (SearchRequest, error) {
	var req SearchRequest
	err := p.Decode("searchTerm", &req.SearchTerm)
	return req, err
}

func (p Payload) CreateQuestionRequest() (CreateQuestionRequest, error) {
	var req CreateQuestionRequest
	if err := p.Decode("question", &req.Question); err != nil {
		return req, err
	}
	if err := p.Decode("answer", &req.Answer); err != nil {
		return req, err
	}
	if err := p.Decode("difficulty", &req.Difficulty); err != nil {
		return req, err
	}
	if err := p.Decode("category", &req.Category); err != nil {
		return req, err
	}
	return req, nil
}

// QuizCategory.ID of 0 means any category.
type QuizCategory struct {
	ID   FlexInt `json:"id" swaggertype:"integer" example:"0"`
	Type *string `json:"type"`
}

type QuizRequest struct {
	PreviousQuestions []FlexInt    `json:"previous_questions" swaggertype:"array,integer"`
	QuizCategory      QuizCategory `json:"quiz_category"`
}

func (p Payload) HasQuizKeys() bool {
	return p.Has("previous_questions", "quiz_category")
}

func (p Payload) QuizRequest() (QuizRequest, error) {
	var req QuizRequest
	if err := p.Decode("previous_questions", &req.PreviousQuestions); err != nil {
		return req, err
	}
	var category Payload
	if err := p.Decode("quiz_category", &category); err != nil {
		return req, err
	}
	if err := category.Decode("id", &req.QuizCategory.ID); err != nil {
		return req, fmt.Errorf("quiz_category: %w", err)
	}
	return req, nil
}

// PreviousIDs returns the already-seen question ids as plain ints.
func (r QuizRequest) PreviousIDs() []int {
	ids := make([]int, len(r.PreviousQuestions))
	for i, id := range r.PreviousQuestions {
		ids[i] = id.Int()
	}
	return ids
}
