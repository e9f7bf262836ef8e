package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Course struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	Description string    `gorm:"not null"                 json:"description"`
	TeacherID   uint      `gorm:"not null"                 json:"teacher_id"`
	TeacherName string    `gorm:"not null"                 json:"teacher_name"`
	PDFURL      string    `gorm:"column:pdf_url"           json:"pdf_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Quiz struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID uint   `gorm:"index;not null"           json:"course_id"`
	Title    string `gorm:"not null"                 json:"title"`
}

// Options is stored comma-joined in a single TEXT column; the transport
// layer converts to and from []string.
type Question struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID             uint   `gorm:"index;not null"           json:"quiz_id"`
	Text               string `gorm:"not null"                 json:"text"`
	Options            string `gorm:"not null"                 json:"-"`
	CorrectOptionIndex int    `gorm:"not null"                 json:"correct_option_index"`
}

type QuizResult struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint   `gorm:"index;not null"           json:"user_id"`
	QuizID         uint   `gorm:"not null"                 json:"quiz_id"`
	Score          int    `gorm:"not null"                 json:"score"`
	TotalQuestions int    `gorm:"not null"                 json:"total_questions"`
	CompletedAt    string `gorm:"not null"                 json:"completed_at"`
}

type Video struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	Description string    `gorm:"not null"                 json:"description"`
	TeacherID   uint      `gorm:"not null"                 json:"teacher_id"`
	TeacherName string    `gorm:"not null"                 json:"teacher_name"`
	VideoURL    string    `gorm:"column:video_url"         json:"video_url"`
	CreatedAt   time.Time `json:"created_at"`
}
