package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/app/models/dto"
	"github.com/emrekara/course-feedback/internal/app/services"
	"github.com/emrekara/course-feedback/internal/middleware"
)

// AuthController handles registration and login
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Register handles registration with credential issuance
// @Summary Register a student and issue a credential
// @Description Creates the student record and returns a credential usable on protected routes
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student registration information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Student created, credential issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email or roll number already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student := &models.Student{
		Name:        req.Name,
		Email:       req.Email,
		RollNumber:  req.RollNumber,
		CollegeName: req.CollegeName,
		ContactNo:   req.ContactNo,
		Course:      req.Course,
		Semester:    req.Semester,
	}

	credential, err := c.authService.Register(ctx.Request.Context(), student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("studentID", student.ID).
		Str("rollNumber", student.RollNumber).
		Msg("Student registered with credential")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(&dto.AuthResponse{
		Credential: c.credentialResponse(credential),
		Student:    student,
	}))
}

// Login authenticates a student
// @Summary Log a student in
// @Description Matches the email and roll number pair, then issues a credential
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, credential, err := c.authService.Login(ctx.Request.Context(), req.Email, req.RollNumber)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("studentID", student.ID).
		Str("rollNumber", student.RollNumber).
		Msg("Student logged in")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(&dto.AuthResponse{
		Credential: c.credentialResponse(credential),
		Student:    student,
	}))
}

// credentialResponse wraps an issued credential with its transport metadata.
func (c *AuthController) credentialResponse(credential string) dto.CredentialResponse {
	resp := dto.CredentialResponse{
		Credential: credential,
		TokenType:  "Bearer",
	}
	if lifetime := c.authService.CredentialExpiresIn(); lifetime > 0 {
		resp.ExpiresIn = int64(lifetime.Seconds())
	}
	return resp
}
