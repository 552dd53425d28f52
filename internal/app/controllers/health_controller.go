package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekara/course-feedback/internal/app/models/dto"
)

// HealthController reports service liveness and database reachability
type HealthController struct {
	db        *pgxpool.Pool
	mode      string
	startedAt time.Time
}

// NewHealthController creates a new HealthController
func NewHealthController(db *pgxpool.Pool, mode string) *HealthController {
	return &HealthController{
		db:        db,
		mode:      mode,
		startedAt: time.Now(),
	}
}

// Check reports service health
// @Summary Health check
// @Description Reports whether the service and its database are reachable
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse "Service healthy"
// @Failure 503 {object} dto.ErrorResponse "Database unreachable"
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	if c.db != nil {
		if err := c.db.Ping(ctx.Request.Context()); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unreachable").
				WithSeverity(dto.ErrorSeverityCritical)
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"status": "ok",
		"mode":   c.mode,
		"time":   time.Now().UTC(),
		"uptime": time.Since(c.startedAt).Round(time.Second).String(),
	}))
}
