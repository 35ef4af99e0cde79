package dto

import "net/http"

// QuestionResponse is the public projection of a question row.
type QuestionResponse struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int    `json:"category"`
}

// CategoryMap maps category id to its type label. JSON renders the ids as string keys.
type CategoryMap map[uint]string

type CategoriesResponse struct {
	Categories CategoryMap `json:"categories"`
}

// QuestionPageResponse is returned by every question-listing route.
type QuestionPageResponse struct {
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int64              `json:"total_questions"`
	Categories      CategoryMap        `json:"categories"`
	CurrentCategory int                `json:"current_category"`
}

// QuizResponse marshals to {} when no question is left.
type QuizResponse struct {
	Question *QuestionResponse `json:"question,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusNotFound:            "Not found",
	http.StatusMethodNotAllowed:    "Method Not Allowed",
	http.StatusUnprocessableEntity: "Unprocessable",
	http.StatusInternalServerError: "Internal Server Error",
}

// NewErrorResponse builds the fixed envelope for status. Unknown codes fall back to the status text.
func NewErrorResponse(status int) ErrorResponse {
	msg, ok := errorMessages[status]
	if !ok {
		msg = http.StatusText(status)
	}
	return ErrorResponse{Success: false, Error: status, Message: msg}
}
