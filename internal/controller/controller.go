package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/trivia/internal/dto"
	"github.com/lshigami/trivia/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Controller struct {
	categorySvc service.CategoryService
	questionSvc service.QuestionService
	quizSvc     service.QuizService
	db          *gorm.DB // health check only
}

func NewController(cSvc service.CategoryService, qSvc service.QuestionService, quizSvc service.QuizService, db *gorm.DB) *Controller {
	return &Controller{
		categorySvc: cSvc,
		questionSvc: qSvc,
		quizSvc:     quizSvc,
		db:          db,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	categories := router.Group("/categories")
	categories.GET("", ctrl.GetCategoriesHandler)
	categories.GET("/:cat_id/questions", ctrl.GetCategoryQuestionsHandler)

	questions := router.Group("/questions")
	questions.GET("", ctrl.GetQuestionsHandler)
	questions.POST("", ctrl.PostQuestionsHandler) // search or create, by body shape
	questions.DELETE("/:id", ctrl.DeleteQuestionHandler)

	router.POST("/quizzes", ctrl.PostQuizzesHandler)

	router.GET("/health", ctrl.HealthHandler)
}

// HealthHandler godoc
// @Summary Health check
// @Description Pings the database
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /health [get]
func (ctrl *Controller) HealthHandler(c *gin.Context) {
	sqlDB, err := ctrl.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		log.Error().Err(err).Msg("Health check: database ping failed")
		respondError(c, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

func respondError(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(status))
}

// pageParam reads the 1-based page query parameter, defaulting to 1.
func pageParam(c *gin.Context) (int, error) {
	return strconv.Atoi(strings.TrimSpace(c.DefaultQuery("page", "1")))
}

// idParam parses a non-negative integer path segment. Callers answer 404 on failure,
// since such a path never names a resource.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 31)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// decodeBody reads the request body as a JSON object.
func decodeBody(c *gin.Context) (dto.Payload, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	return dto.DecodePayload(raw)
}
