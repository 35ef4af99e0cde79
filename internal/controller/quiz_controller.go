package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/trivia/internal/dto"
	"github.com/rs/zerolog/log"
)

// PostQuizzesHandler godoc
// @Summary Next quiz question
// @Description First question, by id, not in previous_questions, limited to quiz_category.id unless it is 0. An empty object means the quiz is over.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param body body dto.QuizRequest true "Already played question ids and the quiz category"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed body or missing key"
// @Failure 500 {object} dto.ErrorResponse "Invalid category id or internal error"
// @Router /quizzes [post]
func (ctrl *Controller) PostQuizzesHandler(c *gin.Context) {
	body, err := decodeBody(c)
	if err != nil {
		log.Warn().Err(err).Msg("PostQuizzes: failed to decode body")
		respondError(c, http.StatusBadRequest)
		return
	}
	if !body.HasQuizKeys() {
		log.Warn().Msg("PostQuizzes: missing previous_questions or quiz_category")
		respondError(c, http.StatusBadRequest)
		return
	}

	req, err := body.QuizRequest()
	if err != nil {
		log.Warn().Err(err).Msg("PostQuizzes: invalid quiz request")
		respondError(c, http.StatusInternalServerError)
		return
	}

	question, err := ctrl.quizSvc.NextQuestion(c.Request.Context(), req.PreviousIDs(), req.QuizCategory.ID.Int())
	if err != nil {
		log.Error().Err(err).Msg("PostQuizzes: service error")
		respondError(c, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.QuizResponse{Question: question})
}
