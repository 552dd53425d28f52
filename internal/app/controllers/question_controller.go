package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emrekara/course-feedback/internal/app/models/dto"
	"github.com/emrekara/course-feedback/internal/app/services"
	"github.com/emrekara/course-feedback/internal/middleware"
)

// QuestionController serves the feedback question catalog
type QuestionController struct {
	questionService *services.QuestionService
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService *services.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// GetAll retrieves the full question catalog
// @Summary List all feedback questions
// @Description Retrieves every feedback question, grouped by checkpoint
// @Tags questions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Question} "Questions retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [get]
func (c *QuestionController) GetAll(ctx *gin.Context) {
	checkpointStr := ctx.Query("checkpoint")
	if checkpointStr == "" {
		questions, err := c.questionService.GetAll(ctx.Request.Context())
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(questions))
		return
	}

	checkpoint, err := strconv.Atoi(checkpointStr)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidCheckpoint, "Invalid checkpoint").
			WithDetails("checkpoint must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	questions, err := c.questionService.GetByCheckpoint(ctx.Request.Context(), checkpoint)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(questions))
}
