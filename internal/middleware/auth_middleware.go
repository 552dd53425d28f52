package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/app/models/dto"
	"github.com/emrekara/course-feedback/internal/app/services"
	"github.com/emrekara/course-feedback/internal/pkg/auth"
)

// ContextKeyStudent is the gin context key the verified student is stored
// under by RequireCredential.
const ContextKeyStudent = "student"

// AuthMiddleware guards routes with credential verification
type AuthMiddleware struct {
	authService *services.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireCredential validates the presented credential against the claimed
// roll number and loads the matching student into the request context. The
// credential comes from the Authorization header (Bearer) or the "token"
// query parameter; the roll number from the X-Roll-Number header or the
// "rollNumber" query parameter.
func (m *AuthMiddleware) RequireCredential() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			extracted, err := auth.ExtractBearerToken(authHeader)
			if err != nil {
				// Some clients send the bare token without the prefix.
				tokenString = strings.TrimSpace(authHeader)
			} else {
				tokenString = extracted
			}
		} else if queryToken := c.Query("token"); queryToken != "" {
			tokenString = queryToken
		}

		if tokenString == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Credential missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		rollNumber := c.GetHeader("X-Roll-Number")
		if rollNumber == "" {
			rollNumber = c.Query("rollNumber")
		}
		if rollNumber == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Roll number is required for authentication")
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}

		student, err := m.authService.VerifyCredential(c.Request.Context(), rollNumber, tokenString)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextKeyStudent, student)
		c.Next()
	}
}

// StudentFromContext returns the student stored by RequireCredential.
func StudentFromContext(c *gin.Context) (*models.Student, bool) {
	value, exists := c.Get(ContextKeyStudent)
	if !exists {
		return nil, false
	}
	student, ok := value.(*models.Student)
	return student, ok
}
