package dto

// CreateAnswerRequest is one answer option inside an exam draft
type CreateAnswerRequest struct {
	Text      string `json:"answer" binding:"required" example:"42"`
	IsCorrect bool   `json:"isCorrect" example:"true"`
}

// CreateQuestionRequest is one question inside an exam draft
type CreateQuestionRequest struct {
	Text    string                `json:"question" binding:"required" example:"What is 6 times 7?"`
	Answers []CreateAnswerRequest `json:"answers" binding:"required"`
}

// CreateExamRequest is the exam draft a teacher submits. It is used for
// both creation and edit; dates travel as millisecond epoch values.
type CreateExamRequest struct {
	Name      string                  `json:"name" binding:"required" example:"Midterm 1"`
	StartDate int64                   `json:"startDate" binding:"required" example:"1767225600000"`
	EndDate   int64                   `json:"endDate" binding:"required" example:"1767229200000"`
	Questions []CreateQuestionRequest `json:"questions" binding:"required"`
}

// AnswerView is an answer as exposed to teachers (correctness included)
type AnswerView struct {
	ID        string `json:"id"`
	Text      string `json:"answer"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionView is a question with its answers as exposed to teachers
type QuestionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"question"`
	Answers []AnswerView `json:"answers"`
}

// ExamView is the full exam tree as exposed to teachers (edit form, review)
type ExamView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	StartDate int64          `json:"startDate"`
	EndDate   int64          `json:"endDate"`
	ClassID   string         `json:"classId"`
	Questions []QuestionView `json:"questions"`
}

// ExamSummary is an exam without its question tree, for listings
type ExamSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate int64  `json:"startDate"`
	EndDate   int64  `json:"endDate"`
	ClassID   string `json:"classId"`
}

// StudentAnswerOptionView is an answer as exposed to students: no
// correctness flag until the exam closes.
type StudentAnswerOptionView struct {
	ID   string `json:"id"`
	Text string `json:"answer"`
}

// StudentQuestionView is a question as exposed to students
type StudentQuestionView struct {
	ID      string                    `json:"id"`
	Text    string                    `json:"question"`
	Answers []StudentAnswerOptionView `json:"answers"`
}

// StudentExamResponse is the exam a student sees while taking it, together
// with the answer ids they have already chosen.
type StudentExamResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	StartDate       int64                 `json:"startDate"`
	EndDate         int64                 `json:"endDate"`
	Phase           string                `json:"phase"`
	Questions       []StudentQuestionView `json:"questions"`
	ChosenAnswerIDs []string              `json:"chosenAnswerIds"`
}

// SubmitAnswerRequest carries the chosen answer for one question
type SubmitAnswerRequest struct {
	AnswerID string `json:"answerId" binding:"required"`
}

// StudentResultResponse is the scored result disclosed after the exam closes
type StudentResultResponse struct {
	Exam             ExamView `json:"exam"`
	ChosenAnswerIDs  []string `json:"chosenAnswerIds"`
	CorrectAnswerIDs []string `json:"correctAnswerIds"`
	CorrectCount     int      `json:"correctCount"`
	TotalQuestions   int      `json:"totalQuestions"`
	Score            float64  `json:"score" example:"50"`
}

// StudentResultRow is one student's aggregate on the teacher dashboard
type StudentResultRow struct {
	StudentID       string `json:"studentId"`
	StudentName     string `json:"studentName"`
	AnsweredCount   int64  `json:"answeredCount"`
	FirstAnsweredAt *int64 `json:"firstAnsweredAt,omitempty"` // Millis; nil when no answer rows exist
	LastAnsweredAt  *int64 `json:"lastAnsweredAt,omitempty"`
	CorrectCount    int64  `json:"correctCount"`
}

// TeacherResultsResponse aggregates per-student progress for one exam
type TeacherResultsResponse struct {
	ExamID         string             `json:"examId"`
	TotalQuestions int64              `json:"totalQuestions"`
	Students       []StudentResultRow `json:"students"`
}
