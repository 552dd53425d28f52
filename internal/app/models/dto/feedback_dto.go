package dto

// AnswerRequest is one answered question within a feedback submission.
type AnswerRequest struct {
	Question string `json:"question" binding:"required" example:"How clear were the course concepts?"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5" example:"4"`
	Comment  string `json:"comment,omitempty" example:"Well structured"`
}

// SubmitFeedbackRequest represents the feedback submission payload.
type SubmitFeedbackRequest struct {
	StudentID            int64           `json:"studentId" binding:"required" example:"1"`
	CompletionPercentage int             `json:"completionPercentage" binding:"required" example:"20"`
	Answers              []AnswerRequest `json:"answers" binding:"required,min=1,dive"`
	AdditionalComments   string          `json:"additionalComments,omitempty" example:"Great course overall"`
}
