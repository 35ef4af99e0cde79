package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/trivia/config"
	"github.com/lshigami/trivia/database"
	"github.com/lshigami/trivia/internal/dto"
	"github.com/lshigami/trivia/internal/repository"
	"github.com/lshigami/trivia/internal/server"
	"github.com/lshigami/trivia/internal/service"
	"github.com/lshigami/trivia/internal/testutil"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, true)

	categoryRepo := repository.NewCategoryRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	ctrl := NewController(
		service.NewCategoryService(categoryRepo),
		service.NewQuestionService(questionRepo, categoryRepo),
		service.NewQuizService(questionRepo),
		db,
	)

	r := server.NewGinEngine(&config.Config{Server: config.Server{GinMode: gin.TestMode}})
	ctrl.RegisterRoutes(r)
	return r, db
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	got := decode[dto.ErrorResponse](t, w)
	if want := dto.NewErrorResponse(status); got != want {
		t.Errorf("envelope = %+v, want %+v", got, want)
	}
}

func questionCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	n, err := repository.NewQuestionRepository(db).Count(context.Background(), repository.QuestionFilter{})
	if err != nil {
		t.Fatalf("count questions: %v", err)
	}
	return n
}

func TestGetCategories(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/categories", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decode[dto.CategoriesResponse](t, w)
	if len(resp.Categories) != 6 {
		t.Errorf("got %d categories, want 6", len(resp.Categories))
	}
	if resp.Categories[1] != "Science" || resp.Categories[6] != "Sports" {
		t.Errorf("unexpected categories %v", resp.Categories)
	}
	if !strings.Contains(w.Body.String(), `"1":"Science"`) {
		t.Errorf("categories should be keyed by id: %s", w.Body.String())
	}
}

func TestGetCategoriesUnprocessableWhenDatabaseFails(t *testing.T) {
	r, db := newTestRouter(t)
	if err := database.Close(db); err != nil {
		t.Fatalf("close: %v", err)
	}

	assertError(t, doRequest(r, http.MethodGet, "/categories", ""), http.StatusUnprocessableEntity)
}

func TestMethodNotAllowed(t *testing.T) {
	r, _ := newTestRouter(t)

	assertError(t, doRequest(r, http.MethodPost, "/categories", "{}"), http.StatusMethodNotAllowed)
	assertError(t, doRequest(r, http.MethodPatch, "/questions", "{}"), http.StatusMethodNotAllowed)
}

func TestNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	assertError(t, doRequest(r, http.MethodGet, "/nothing-here", ""), http.StatusNotFound)
	assertError(t, doRequest(r, http.MethodDelete, "/questions/abc", ""), http.StatusNotFound)
	assertError(t, doRequest(r, http.MethodGet, "/categories/-1/questions", ""), http.StatusNotFound)
}

func TestCORSHeadersOnEveryResponse(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/categories", "/missing"} {
		w := doRequest(r, http.MethodGet, path, "")
		if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
			t.Errorf("%s: Allow-Headers = %q", path, got)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PATCH, DELETE, OPTIONS" {
			t.Errorf("%s: Allow-Methods = %q", path, got)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestGetQuestionsFirstPage(t *testing.T) {
	r, db := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/questions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decode[dto.QuestionPageResponse](t, w)
	if len(resp.Questions) != service.QuestionsPerPage {
		t.Errorf("got %d questions, want %d", len(resp.Questions), service.QuestionsPerPage)
	}
	if resp.TotalQuestions != questionCount(t, db) {
		t.Errorf("total = %d, want %d", resp.TotalQuestions, questionCount(t, db))
	}
	if len(resp.Categories) != 6 {
		t.Errorf("got %d categories, want 6", len(resp.Categories))
	}
	if resp.CurrentCategory != service.NoCategory {
		t.Errorf("current_category = %d, want -1", resp.CurrentCategory)
	}
	if resp.Questions[0].ID != 1 || resp.Questions[0].Answer != "Maya Angelou" {
		t.Errorf("first question = %+v", resp.Questions[0])
	}
}

func TestGetQuestionsPagination(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := decode[dto.QuestionPageResponse](t, doRequest(r, http.MethodGet, "/questions?page=2", ""))
	if want := database.SeedQuestionCount - service.QuestionsPerPage; len(resp.Questions) != want {
		t.Errorf("page 2 has %d questions, want %d", len(resp.Questions), want)
	}
	if resp.Questions[0].ID != 11 {
		t.Errorf("page 2 starts at id %d, want 11", resp.Questions[0].ID)
	}

	for _, page := range []string{"3", "99", "0"} {
		w := doRequest(r, http.MethodGet, "/questions?page="+page, "")
		if w.Code != http.StatusOK {
			t.Fatalf("page %s: status = %d", page, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"questions":[]`) {
			t.Errorf("page %s should list no questions: %s", page, w.Body.String())
		}
		resp := decode[dto.QuestionPageResponse](t, w)
		if resp.TotalQuestions != int64(database.SeedQuestionCount) {
			t.Errorf("page %s: total = %d", page, resp.TotalQuestions)
		}
	}
}

func TestGetQuestionsInvalidPage(t *testing.T) {
	r, _ := newTestRouter(t)

	assertError(t, doRequest(r, http.MethodGet, "/questions?page=asd", ""), http.StatusInternalServerError)
}

func TestSearchQuestions(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		term string
		want int64
	}{
		{term: "Whose", want: 1},
		{term: "wHOSE", want: 1},
		{term: "title", want: 2}, // "title" and "entitled"
		{term: "plumberjack", want: 0},
		{term: "", want: int64(database.SeedQuestionCount)},
	}
	for _, tc := range cases {
		body, _ := json.Marshal(map[string]string{"searchTerm": tc.term})
		w := doRequest(r, http.MethodPost, "/questions", string(body))
		if w.Code != http.StatusOK {
			t.Fatalf("%q: status = %d, body %s", tc.term, w.Code, w.Body.String())
		}
		resp := decode[dto.QuestionPageResponse](t, w)
		if resp.TotalQuestions != tc.want {
			t.Errorf("%q: total = %d, want %d", tc.term, resp.TotalQuestions, tc.want)
		}
		if wantLen := min(tc.want, service.QuestionsPerPage); int64(len(resp.Questions)) != wantLen {
			t.Errorf("%q: got %d questions, want %d", tc.term, len(resp.Questions), wantLen)
		}
		for _, q := range resp.Questions {
			if !strings.Contains(strings.ToLower(q.Question), strings.ToLower(tc.term)) {
				t.Errorf("%q: unexpected match %q", tc.term, q.Question)
			}
		}
		if resp.CurrentCategory != service.NoCategory {
			t.Errorf("%q: current_category = %d", tc.term, resp.CurrentCategory)
		}
	}
}

func TestSearchQuestionsPaginates(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := decode[dto.QuestionPageResponse](t, doRequest(r, http.MethodPost, "/questions?page=2", `{"searchTerm":""}`))
	if len(resp.Questions) != database.SeedQuestionCount-service.QuestionsPerPage {
		t.Errorf("got %d questions on page 2", len(resp.Questions))
	}
}

func TestSearchQuestionsInvalidTerm(t *testing.T) {
	r, _ := newTestRouter(t)

	assertError(t, doRequest(r, http.MethodPost, "/questions", `{"searchTerm":5}`), http.StatusInternalServerError)
	assertError(t, doRequest(r, http.MethodPost, "/questions", `{"searchTerm":null}`), http.StatusInternalServerError)
}

func TestCreateQuestion(t *testing.T) {
	r, db := newTestRouter(t)
	before := questionCount(t, db)

	w := doRequest(r, http.MethodPost, "/questions",
		`{"question":"What's your name?","answer":"Ahmed Magdy","difficulty":5,"category":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if resp := decode[dto.SuccessResponse](t, w); !resp.Success {
		t.Error("success should be true")
	}
	if after := questionCount(t, db); after != before+1 {
		t.Errorf("count = %d, want %d", after, before+1)
	}

	search := decode[dto.QuestionPageResponse](t, doRequest(r, http.MethodPost, "/questions", `{"searchTerm":"your name"}`))
	if search.TotalQuestions != 1 {
		t.Fatalf("created question not searchable: %+v", search)
	}
	got := search.Questions[0]
	if got.Answer != "Ahmed Magdy" || got.Difficulty != 5 || got.Category != 2 {
		t.Errorf("stored question = %+v", got)
	}
}

func TestCreateQuestionAcceptsUnknownCategoryAndNumericStrings(t *testing.T) {
	r, db := newTestRouter(t)
	before := questionCount(t, db)

	w := doRequest(r, http.MethodPost, "/questions", `{"question":"Q?","answer":"A","difficulty":"9","category":"77"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if after := questionCount(t, db); after != before+1 {
		t.Errorf("count = %d, want %d", after, before+1)
	}
}

func TestCreateQuestionBadRequest(t *testing.T) {
	r, db := newTestRouter(t)
	before := questionCount(t, db)

	bodies := []string{
		`{}`,
		`{"question":"Q?","answer":"A","difficulty":1}`,
		`{"answer":"A","difficulty":1,"category":1}`,
		`{"question":`,
		`[1,2]`,
		`null`,
	}
	for _, body := range bodies {
		assertError(t, doRequest(r, http.MethodPost, "/questions", body), http.StatusBadRequest)
	}
	if after := questionCount(t, db); after != before {
		t.Errorf("count changed from %d to %d", before, after)
	}
}

func TestCreateQuestionInvalidValues(t *testing.T) {
	r, _ := newTestRouter(t)

	assertError(t, doRequest(r, http.MethodPost, "/questions",
		`{"question":"Q?","answer":"A","difficulty":"hard","category":1}`), http.StatusInternalServerError)
	assertError(t, doRequest(r, http.MethodPost, "/questions",
		`{"question":["Q?"],"answer":"A","difficulty":1,"category":1}`), http.StatusInternalServerError)
}

func TestDeleteQuestion(t *testing.T) {
	r, db := newTestRouter(t)
	before := questionCount(t, db)

	w := doRequest(r, http.MethodDelete, "/questions/2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if resp := decode[dto.SuccessResponse](t, w); !resp.Success {
		t.Error("success should be true")
	}
	if after := questionCount(t, db); after != before-1 {
		t.Errorf("count = %d, want %d", after, before-1)
	}

	// Deleting it again hits a missing row, which is a 500 rather than a 404.
	assertError(t, doRequest(r, http.MethodDelete, "/questions/2", ""), http.StatusInternalServerError)
}

func TestDeleteMissingQuestion(t *testing.T) {
	r, db := newTestRouter(t)
	before := questionCount(t, db)

	assertError(t, doRequest(r, http.MethodDelete, "/questions/1000", ""), http.StatusInternalServerError)
	if after := questionCount(t, db); after != before {
		t.Errorf("count changed from %d to %d", before, after)
	}
}

func TestGetCategoryQuestions(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/categories/1/questions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode[dto.QuestionPageResponse](t, w)
	if resp.TotalQuestions != 3 || len(resp.Questions) != 3 {
		t.Errorf("science: total %d, listed %d, want 3", resp.TotalQuestions, len(resp.Questions))
	}
	for _, q := range resp.Questions {
		if q.Category != 1 {
			t.Errorf("question %d has category %d", q.ID, q.Category)
		}
	}
	if resp.CurrentCategory != 1 {
		t.Errorf("current_category = %d, want 1", resp.CurrentCategory)
	}
	if len(resp.Categories) != 6 {
		t.Errorf("got %d categories, want 6", len(resp.Categories))
	}
}

func TestGetCategoryQuestionsUnknownCategory(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/categories/42/questions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode[dto.QuestionPageResponse](t, w)
	if resp.TotalQuestions != 0 || len(resp.Questions) != 0 || resp.CurrentCategory != 42 {
		t.Errorf("unexpected response %+v", resp)
	}

	assertError(t, doRequest(r, http.MethodGet, "/categories/1/questions?page=x", ""), http.StatusInternalServerError)
}

func TestQuizReturnsQuestion(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/quizzes", `{"previous_questions":[],"quiz_category":{"id":0,"type":null}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	resp := decode[dto.QuizResponse](t, w)
	if resp.Question == nil {
		t.Fatal("expected a question")
	}
	if resp.Question.ID != 1 {
		t.Errorf("first unseen question is %d, want 1", resp.Question.ID)
	}
}

func TestQuizSkipsPreviousQuestions(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := decode[dto.QuizResponse](t, doRequest(r, http.MethodPost, "/quizzes",
		`{"previous_questions":[5],"quiz_category":{"id":0,"type":null}}`))
	if resp.Question == nil || resp.Question.ID == 5 {
		t.Fatalf("got %+v, want a question other than 5", resp.Question)
	}

	resp = decode[dto.QuizResponse](t, doRequest(r, http.MethodPost, "/quizzes",
		`{"previous_questions":[1,2,3],"quiz_category":{"id":0}}`))
	if resp.Question == nil || resp.Question.ID != 4 {
		t.Fatalf("got %+v, want question 4", resp.Question)
	}
}

func TestQuizByCategoryUntilExhausted(t *testing.T) {
	r, _ := newTestRouter(t)

	played := []uint{}
	for range 10 {
		body, _ := json.Marshal(map[string]any{
			"previous_questions": played,
			"quiz_category":      map[string]any{"id": 1, "type": "Science"},
		})
		w := doRequest(r, http.MethodPost, "/quizzes", string(body))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		resp := decode[dto.QuizResponse](t, w)
		if resp.Question == nil {
			if strings.TrimSpace(w.Body.String()) != "{}" {
				t.Errorf("exhausted quiz body = %s, want {}", w.Body.String())
			}
			break
		}
		if resp.Question.Category != 1 {
			t.Errorf("question %d is in category %d", resp.Question.ID, resp.Question.Category)
		}
		played = append(played, resp.Question.ID)
	}
	if len(played) != 3 {
		t.Errorf("played %d science questions, want 3", len(played))
	}
}

func TestQuizBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []string{`{}`, `{"previous_questions":[]}`, `{"quiz_category":{"id":0}}`, `not json`} {
		assertError(t, doRequest(r, http.MethodPost, "/quizzes", body), http.StatusBadRequest)
	}
}

func TestQuizInvalidCategory(t *testing.T) {
	r, _ := newTestRouter(t)

	assertError(t, doRequest(r, http.MethodPost, "/quizzes",
		`{"previous_questions":[5],"quiz_category":{"id":"asd","type":null}}`), http.StatusInternalServerError)
	assertError(t, doRequest(r, http.MethodPost, "/quizzes",
		`{"previous_questions":[5],"quiz_category":{"type":"Art"}}`), http.StatusInternalServerError)
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := decode[dto.HealthResponse](t, w); resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
}
