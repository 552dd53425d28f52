package models

import (
	"time"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID                   int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the student record
	Name                 string    `json:"name" db:"name" example:"Priya Sharma"`                    // Student's full name
	Email                string    `json:"email" db:"email" example:"priya@example.com"`             // Student's email address (unique)
	RollNumber           string    `json:"rollNumber" db:"roll_number" example:"CS2023001"`          // Student's roll number (unique)
	CollegeName          string    `json:"collegeName" db:"college_name" example:"NIT Trichy"`       // Name of the student's college
	ContactNo            string    `json:"contactNo" db:"contact_no" example:"9876543210"`           // Contact phone number
	Course               string    `json:"course" db:"course" example:"Computer Science"`            // Enrolled course name
	Semester             int       `json:"semester" db:"semester" example:"5"`                       // Current semester
	CompletionPercentage int       `json:"completionPercentage" db:"completion_percentage"`          // Course progress, one of 0/20/50/100
	FeedbackGiven        bool      `json:"feedbackGiven" db:"feedback_given"`                        // Set by the 100% feedback, cleared by progress updates
	CreatedAt            time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the student registered
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp of the last mutation

	FeedbackIDs []int64 `json:"feedbacks,omitempty"` // Relation, no db tag
}
