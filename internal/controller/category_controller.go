package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/trivia/internal/dto"
	"github.com/rs/zerolog/log"
)

// GetCategoriesHandler godoc
// @Summary List categories
// @Description All categories as a map of id to type
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 422 {object} dto.ErrorResponse "Categories could not be loaded"
// @Router /categories [get]
func (ctrl *Controller) GetCategoriesHandler(c *gin.Context) {
	categories, err := ctrl.categorySvc.GetCategories(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("GetCategories: service error")
		respondError(c, http.StatusUnprocessableEntity)
		return
	}
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: categories})
}

// GetCategoryQuestionsHandler godoc
// @Summary List questions of a category
// @Description Paginated questions of one category, 10 per page. Unknown categories give an empty list.
// @Tags categories
// @Produce json
// @Param cat_id path int true "Category ID"
// @Param page query int false "1-based page number" default(1)
// @Success 200 {object} dto.QuestionPageResponse
// @Failure 404 {object} dto.ErrorResponse "Category ID is not an integer"
// @Failure 500 {object} dto.ErrorResponse "Invalid page or internal error"
// @Router /categories/{cat_id}/questions [get]
func (ctrl *Controller) GetCategoryQuestionsHandler(c *gin.Context) {
	catID, ok := idParam(c, "cat_id")
	if !ok {
		respondError(c, http.StatusNotFound)
		return
	}
	page, err := pageParam(c)
	if err != nil {
		log.Warn().Err(err).Msg("GetCategoryQuestions: invalid page")
		respondError(c, http.StatusInternalServerError)
		return
	}

	resp, err := ctrl.questionSvc.SearchQuestions(c.Request.Context(), "", int(catID), page)
	if err != nil {
		log.Error().Err(err).Uint("categoryID", catID).Msg("GetCategoryQuestions: service error")
		respondError(c, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, resp)
}
