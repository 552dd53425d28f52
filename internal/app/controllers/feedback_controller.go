package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/app/models/dto"
	"github.com/emrekara/course-feedback/internal/app/services"
	"github.com/emrekara/course-feedback/internal/middleware"
)

// FeedbackController handles feedback submission and retrieval
type FeedbackController struct {
	feedbackService *services.FeedbackService
	logger          zerolog.Logger
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService *services.FeedbackService, logger zerolog.Logger) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// Submit handles feedback submission for a checkpoint
// @Summary Submit feedback for a checkpoint
// @Description Records one feedback per student per checkpoint (20, 50 or 100). A second submission for the same checkpoint is rejected.
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.SubmitFeedbackRequest true "Feedback answers for a checkpoint"
// @Success 201 {object} dto.APIResponse{data=models.Feedback} "Feedback recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Feedback already submitted for this checkpoint"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback [post]
// @Router /feedbacks [post]
// @Security BearerAuth
func (c *FeedbackController) Submit(ctx *gin.Context) {
	var req dto.SubmitFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	feedback := &models.Feedback{
		StudentID:            req.StudentID,
		CompletionPercentage: req.CompletionPercentage,
		AdditionalComments:   req.AdditionalComments,
		Answers:              make([]models.FeedbackAnswer, 0, len(req.Answers)),
	}
	for _, a := range req.Answers {
		feedback.Answers = append(feedback.Answers, models.FeedbackAnswer{
			Question: a.Question,
			Rating:   a.Rating,
			Comment:  a.Comment,
		})
	}

	if err := c.feedbackService.Submit(ctx.Request.Context(), feedback); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("studentID", feedback.StudentID).
		Int("checkpoint", feedback.CompletionPercentage).
		Msg("Feedback submitted")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(feedback))
}

// GetByStudent retrieves all feedback for a student
// @Summary List a student's feedback
// @Description Retrieves the feedback a student has submitted, ordered by checkpoint
// @Tags feedback
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Feedback} "Feedback retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback/student/{id} [get]
// @Router /students/{id}/feedbacks [get]
func (c *FeedbackController) GetByStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	feedbacks, err := c.feedbackService.GetByStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(feedbacks))
}

// GetByStudentAndCheckpoint retrieves a single checkpoint's feedback
// @Summary Get a student's feedback for one checkpoint
// @Tags feedback
// @Produce json
// @Param id path int true "Student ID"
// @Param checkpoint path int true "Checkpoint (20, 50 or 100)"
// @Success 200 {object} dto.APIResponse{data=models.Feedback} "Feedback retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid checkpoint"
// @Failure 404 {object} dto.ErrorResponse "Feedback not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback/{id}/{checkpoint} [get]
// @Router /students/{id}/feedbacks/{checkpoint} [get]
func (c *FeedbackController) GetByStudentAndCheckpoint(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	checkpointStr := ctx.Param("checkpoint")
	checkpoint, err := strconv.Atoi(checkpointStr)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidCheckpoint, "Invalid checkpoint").
			WithDetails("checkpoint must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	feedback, err := c.feedbackService.GetByCheckpoint(ctx.Request.Context(), id, checkpoint)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(feedback))
}
