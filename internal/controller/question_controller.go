package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/trivia/internal/dto"
	"github.com/lshigami/trivia/internal/service"
	"github.com/rs/zerolog/log"
)

// GetQuestionsHandler godoc
// @Summary List questions
// @Description Paginated questions, 10 per page, with the total count and all categories
// @Tags questions
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Success 200 {object} dto.QuestionPageResponse
// @Failure 500 {object} dto.ErrorResponse "Invalid page or internal error"
// @Router /questions [get]
func (ctrl *Controller) GetQuestionsHandler(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		log.Warn().Err(err).Msg("GetQuestions: invalid page")
		respondError(c, http.StatusInternalServerError)
		return
	}

	resp, err := ctrl.questionSvc.SearchQuestions(c.Request.Context(), "", service.NoCategory, page)
	if err != nil {
		log.Error().Err(err).Msg("GetQuestions: service error")
		respondError(c, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PostQuestionsHandler godoc
// @Summary Search or create questions
// @Description A body with "searchTerm" searches question text (case-insensitive). Otherwise the body must carry question, answer, difficulty and category, and a question is created.
// @Tags questions
// @Accept json
// @Produce json
// @Param page query int false "1-based page number for searches" default(1)
// @Param body body dto.CreateQuestionRequest true "New question, or {\"searchTerm\": \"...\"}"
// @Success 200 {object} dto.QuestionPageResponse "Search results"
// @Success 200 {object} dto.SuccessResponse "Question created"
// @Failure 400 {object} dto.ErrorResponse "Malformed body or missing field"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [post]
func (ctrl *Controller) PostQuestionsHandler(c *gin.Context) {
	body, err := decodeBody(c)
	if err != nil {
		log.Warn().Err(err).Msg("PostQuestions: failed to decode body")
		respondError(c, http.StatusBadRequest)
		return
	}

	if body.Has("searchTerm") {
		ctrl.searchQuestions(c, body)
		return
	}
	ctrl.createQuestion(c, body)
}

func (ctrl *Controller) searchQuestions(c *gin.Context, body dto.Payload) {
	req, err := body.SearchRequest()
	if err != nil {
		log.Warn().Err(err).Msg("SearchQuestions: invalid searchTerm")
		respondError(c, http.StatusInternalServerError)
		return
	}
	page, err := pageParam(c)
	if err != nil {
		log.Warn().Err(err).Msg("SearchQuestions: invalid page")
		respondError(c, http.StatusInternalServerError)
		return
	}

	resp, err := ctrl.questionSvc.SearchQuestions(c.Request.Context(), req.SearchTerm, service.NoCategory, page)
	if err != nil {
		log.Error().Err(err).Str("term", req.SearchTerm).Msg("SearchQuestions: service error")
		respondError(c, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) createQuestion(c *gin.Context, body dto.Payload) {
	if !body.HasCreateQuestionKeys() {
		log.Warn().Msg("CreateQuestion: missing required field")
		respondError(c, http.StatusBadRequest)
		return
	}
	req, err := body.CreateQuestionRequest()
	if err != nil {
		log.Warn().Err(err).Msg("CreateQuestion: field has wrong type")
		respondError(c, http.StatusInternalServerError)
		return
	}

	created, err := ctrl.questionSvc.CreateQuestion(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("CreateQuestion: service error")
		respondError(c, http.StatusInternalServerError)
		return
	}
	log.Info().Uint("questionID", created.ID).Int("category", created.Category).Msg("Question created")
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// DeleteQuestionHandler godoc
// @Summary Delete a question
// @Description Deletes the question. A missing question is reported as 500.
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "ID is not an integer"
// @Failure 500 {object} dto.ErrorResponse "Question missing or internal error"
// @Router /questions/{id} [delete]
func (ctrl *Controller) DeleteQuestionHandler(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		respondError(c, http.StatusNotFound)
		return
	}

	if err := ctrl.questionSvc.DeleteQuestion(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			log.Warn().Uint("questionID", id).Msg("DeleteQuestion: question does not exist")
		} else {
			log.Error().Err(err).Uint("questionID", id).Msg("DeleteQuestion: service error")
		}
		// Clients rely on 500 here, not 404.
		respondError(c, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
