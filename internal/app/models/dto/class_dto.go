package dto

// CreateClassRequest is the payload a teacher submits to open a class
type CreateClassRequest struct {
	Code        string `json:"code" binding:"required" example:"CS101-2026"`
	Name        string `json:"name" binding:"required" example:"Intro to Computer Science"`
	Description string `json:"description" binding:"required"`
}

// ClassResponse represents a class in API responses
type ClassResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
}

// AvailableClassResponse is a class a student may still enroll in, with its
// current student count.
type AvailableClassResponse struct {
	Class        ClassResponse `json:"class"`
	StudentCount int64         `json:"studentCount"`
}

// EnrolledClassResponse is a class the student belongs to together with the
// exams scheduled for it.
type EnrolledClassResponse struct {
	Class ClassResponse `json:"class"`
	Exams []ExamSummary `json:"exams"`
}
