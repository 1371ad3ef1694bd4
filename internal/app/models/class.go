package models

// Class defines the class model based on the 'class' table. A class is
// created by a teacher (UserID) and students join it through the
// 'class_student' enrollment table.
type Class struct {
	ID          string `json:"id" db:"id"`
	Code        string `json:"code" db:"code" example:"CS101-2026"` // Join code, unique across classes
	Name        string `json:"name" db:"name" example:"Intro to Computer Science"`
	Description string `json:"description" db:"description"`
	UserID      string `json:"userId" db:"user_id"` // Creating teacher
}

// Enrollment defines a row of the 'class_student' join table.
type Enrollment struct {
	ClassID   string `json:"classId" db:"class_id"`
	StudentID string `json:"studentId" db:"student_id"`
}
