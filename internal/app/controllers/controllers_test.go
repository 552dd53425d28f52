package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekara/course-feedback/internal/app/controllers"
	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/app/repositories/inmem"
	"github.com/emrekara/course-feedback/internal/app/routes"
	"github.com/emrekara/course-feedback/internal/app/services"
	"github.com/emrekara/course-feedback/internal/middleware"
	"github.com/emrekara/course-feedback/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the full HTTP surface over in-memory stores.
func newTestRouter(requireCredential bool) *gin.Engine {
	db := inmem.NewDB()
	lgr := zerolog.Nop()

	studentSvc := services.NewStudentService(db.Students())
	feedbackSvc := services.NewFeedbackService(db.Feedbacks(), db.Students())
	questionSvc := services.NewQuestionService(db.Questions())
	authSvc := services.NewAuthService(studentSvc, db.Students(), auth.NewLegacyRollCredential(), lgr)

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewHealthController(nil, "test"),
		controllers.NewAuthController(authSvc, lgr),
		controllers.NewStudentController(studentSvc, lgr),
		controllers.NewFeedbackController(feedbackSvc, lgr),
		controllers.NewQuestionController(questionSvc),
		middleware.NewAuthMiddleware(authSvc),
		requireCredential,
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registrationBody() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Priya Sharma",
		"email":       "priya@example.com",
		"rollNumber":  "CS2023001",
		"collegeName": "NIT Trichy",
		"contactNo":   "9876543210",
		"course":      "Computer Science",
		"semester":    5,
	}
}

func feedbackBody(studentID int64, checkpoint int) map[string]interface{} {
	return map[string]interface{}{
		"studentId":            studentID,
		"completionPercentage": checkpoint,
		"answers": []map[string]interface{}{
			{"question": "How clear were the course objectives so far?", "rating": 4, "comment": "Good"},
			{"question": "How would you rate the pace of the course?", "rating": 5, "comment": "Excellent"},
		},
		"additionalComments": "Good so far",
	}
}

// envelope mirrors dto.APIResponse with data left as raw JSON for the tests
// to decode per endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func registerStudent(t *testing.T, router *gin.Engine) int64 {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/students", registrationBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	var student struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &student))
	require.NotZero(t, student.ID)
	return student.ID
}

func TestRegisterStudentEndpoint(t *testing.T) {
	router := newTestRouter(false)

	w := doJSON(t, router, http.MethodPost, "/api/v1/students", registrationBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var student struct {
		ID                   int64  `json:"id"`
		Email                string `json:"email"`
		CompletionPercentage int    `json:"completionPercentage"`
		FeedbackGiven        bool   `json:"feedbackGiven"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &student))
	assert.Equal(t, "priya@example.com", student.Email)
	assert.Equal(t, 0, student.CompletionPercentage)
	assert.False(t, student.FeedbackGiven)

	// Duplicate email is a structured conflict, not a 400.
	w = doJSON(t, router, http.MethodPost, "/api/v1/students", registrationBody(), nil)
	require.Equal(t, http.StatusConflict, w.Code)
	env = decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "RES_002", env.Error.Code)
	assert.Equal(t, "email", env.Error.Field)
}

func TestRegisterStudentEndpointValidation(t *testing.T) {
	router := newTestRouter(false)

	body := registrationBody()
	delete(body, "email")
	w := doJSON(t, router, http.MethodPost, "/api/v1/students", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VAL_001", env.Error.Code)
}

func TestGetStudentEndpoints(t *testing.T) {
	router := newTestRouter(false)
	id := registerStudent(t, router)

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/students/%d", id), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/students/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/students/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/students", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var students []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &students))
	assert.Len(t, students, 1)
}

func TestUpdateProgressEndpoint(t *testing.T) {
	router := newTestRouter(false)
	id := registerStudent(t, router)

	path := fmt.Sprintf("/api/v1/students/%d/progress", id)

	w := doJSON(t, router, http.MethodPut, path, map[string]int{"completionPercentage": 50}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var student struct {
		CompletionPercentage int  `json:"completionPercentage"`
		FeedbackGiven        bool `json:"feedbackGiven"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &student))
	assert.Equal(t, 50, student.CompletionPercentage)
	assert.False(t, student.FeedbackGiven)

	// A lower value is accepted as a no-op; the record is unchanged.
	w = doJSON(t, router, http.MethodPatch, path, map[string]int{"completionPercentage": 20}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &student))
	assert.Equal(t, 50, student.CompletionPercentage)

	// Values outside the checkpoint set are rejected.
	w = doJSON(t, router, http.MethodPut, path, map[string]int{"completionPercentage": 37}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/students/999/progress", map[string]int{"completionPercentage": 20}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitFeedbackEndpoint(t *testing.T) {
	router := newTestRouter(false)
	id := registerStudent(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/feedbacks", feedbackBody(id, 20), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Same checkpoint again conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/v1/feedbacks", feedbackBody(id, 20), nil)
	require.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "RES_002", env.Error.Code)

	// Checkpoint outside {20,50,100} fails validation.
	w = doJSON(t, router, http.MethodPost, "/api/v1/feedbacks", feedbackBody(id, 75), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown student.
	w = doJSON(t, router, http.MethodPost, "/api/v1/feedbacks", feedbackBody(999, 20), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Rating outside bounds is caught by binding.
	body := feedbackBody(id, 50)
	body["answers"] = []map[string]interface{}{{"question": "Pace?", "rating": 9}}
	w = doJSON(t, router, http.MethodPost, "/api/v1/feedbacks", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackQueryEndpoints(t *testing.T) {
	router := newTestRouter(false)
	id := registerStudent(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/feedbacks", feedbackBody(id, 50), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/v1/feedbacks", feedbackBody(id, 20), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/students/%d/feedbacks", id), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var feedbacks []struct {
		CompletionPercentage int `json:"completionPercentage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &feedbacks))
	require.Len(t, feedbacks, 2)
	assert.Equal(t, 20, feedbacks[0].CompletionPercentage)
	assert.Equal(t, 50, feedbacks[1].CompletionPercentage)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/students/%d/feedbacks/50", id), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/students/%d/feedbacks/100", id), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/students/%d/feedbacks/abc", id), nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/students/999/feedbacks", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// The singular /feedback paths and the nested /students/:id/feedbacks reads
// serve the same handlers; both must stay routable.
func TestFeedbackSingularPaths(t *testing.T) {
	router := newTestRouter(false)
	id := registerStudent(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/feedback", feedbackBody(id, 20), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Same checkpoint through the plural path hits the duplicate gate.
	w = doJSON(t, router, http.MethodPost, "/api/v1/feedbacks", feedbackBody(id, 20), nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/feedback/student/%d", id), nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	var feedbacks []struct {
		CompletionPercentage int `json:"completionPercentage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &feedbacks))
	require.Len(t, feedbacks, 1)
	assert.Equal(t, 20, feedbacks[0].CompletionPercentage)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/feedback/%d/20", id), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/feedback/%d/100", id), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthEndpoints(t *testing.T) {
	router := newTestRouter(false)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", registrationBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	var authResp struct {
		Credential struct {
			Credential string `json:"credential"`
			TokenType  string `json:"tokenType"`
		} `json:"credential"`
		Student struct {
			ID int64 `json:"id"`
		} `json:"student"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &authResp))
	assert.NotEmpty(t, authResp.Credential.Credential)
	assert.Equal(t, "Bearer", authResp.Credential.TokenType)
	assert.NotZero(t, authResp.Student.ID)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "priya@example.com", "rollNumber": "CS2023001"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "priya@example.com", "rollNumber": "CS2023099"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutes(t *testing.T) {
	router := newTestRouter(true)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", registrationBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	var authResp struct {
		Credential struct {
			Credential string `json:"credential"`
		} `json:"credential"`
		Student struct {
			ID int64 `json:"id"`
		} `json:"student"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &authResp))

	path := fmt.Sprintf("/api/v1/students/%d/progress", authResp.Student.ID)
	body := map[string]int{"completionPercentage": 20}

	// No credential.
	w = doJSON(t, router, http.MethodPut, path, body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Credential without the roll number claim.
	w = doJSON(t, router, http.MethodPut, path, body, map[string]string{
		"Authorization": "Bearer " + authResp.Credential.Credential,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Credential bound to a different roll number.
	w = doJSON(t, router, http.MethodPut, path, body, map[string]string{
		"Authorization": "Bearer " + authResp.Credential.Credential,
		"X-Roll-Number": "CS2023099",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid credential and matching roll number.
	w = doJSON(t, router, http.MethodPut, path, body, map[string]string{
		"Authorization": "Bearer " + authResp.Credential.Credential,
		"X-Roll-Number": "CS2023001",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Reads stay public even when mutations are guarded.
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/students/%d", authResp.Student.ID), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQuestionEndpoints(t *testing.T) {
	db := inmem.NewDB()
	lgr := zerolog.Nop()

	studentSvc := services.NewStudentService(db.Students())
	feedbackSvc := services.NewFeedbackService(db.Feedbacks(), db.Students())
	questionSvc := services.NewQuestionService(db.Questions())
	authSvc := services.NewAuthService(studentSvc, db.Students(), auth.NewLegacyRollCredential(), lgr)

	ctx := context.Background()
	require.NoError(t, db.Questions().Create(ctx, &models.Question{Checkpoint: 20, Position: 1, Text: "Objectives?"}))
	require.NoError(t, db.Questions().Create(ctx, &models.Question{Checkpoint: 50, Position: 1, Text: "Assignments?"}))

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewHealthController(nil, "test"),
		controllers.NewAuthController(authSvc, lgr),
		controllers.NewStudentController(studentSvc, lgr),
		controllers.NewFeedbackController(feedbackSvc, lgr),
		controllers.NewQuestionController(questionSvc),
		middleware.NewAuthMiddleware(authSvc),
		false,
	)

	w := doJSON(t, router, http.MethodGet, "/api/v1/questions", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var questions []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &questions))
	assert.Len(t, questions, 2)

	w = doJSON(t, router, http.MethodGet, "/api/v1/questions?checkpoint=20", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &questions))
	assert.Len(t, questions, 1)

	w = doJSON(t, router, http.MethodGet, "/api/v1/questions?checkpoint=abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/questions?checkpoint=33", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(false)

	w := doJSON(t, router, http.MethodGet, "/api/v1/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
}
