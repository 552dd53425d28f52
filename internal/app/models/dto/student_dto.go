package dto

// RegisterStudentRequest represents the registration payload. Every field is
// required; uniqueness of email and roll number is enforced by the store.
type RegisterStudentRequest struct {
	Name        string `json:"name" binding:"required" example:"Priya Sharma"`
	Email       string `json:"email" binding:"required,email" example:"priya@example.com"`
	RollNumber  string `json:"rollNumber" binding:"required" example:"CS2023001"`
	CollegeName string `json:"collegeName" binding:"required" example:"NIT Trichy"`
	ContactNo   string `json:"contactNo" binding:"required" example:"9876543210"`
	Course      string `json:"course" binding:"required" example:"Computer Science"`
	Semester    int    `json:"semester" binding:"required,min=1" example:"5"`
}

// UpdateProgressRequest carries the requested completion percentage. A
// pointer distinguishes an absent field from the legal value 0.
type UpdateProgressRequest struct {
	CompletionPercentage *int `json:"completionPercentage" binding:"required" example:"50"`
}
