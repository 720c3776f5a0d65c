package models

import "time"

type ExamType string

const (
	ExamTypeInternal1  ExamType = "internal1"
	ExamTypeInternal2  ExamType = "internal2"
	ExamTypeAssignment ExamType = "assignment"
	ExamTypeSemester   ExamType = "semester"
)

// Mark is one exam's score for one student and subject. Identity is the
// (student, subject, exam type, academic year) tuple; resubmission
// overwrites marks in place. Percentage and Grade are derived before
// every save, never written by callers.
type Mark struct {
	ID           string   `gorm:"column:id;primary_key;type:uuid" json:"id"`
	StudentID    string   `gorm:"column:student_id;type:uuid;not null;uniqueIndex:unique_mark_scope,priority:1" json:"student_id"`
	SubjectCode  string   `gorm:"column:subject_code;type:varchar(32);not null;uniqueIndex:unique_mark_scope,priority:2" json:"subject_code"`
	SubjectName  string   `gorm:"column:subject_name;type:varchar(128)" json:"subject_name"`
	ExamType     ExamType `gorm:"column:exam_type;type:varchar(32);not null;uniqueIndex:unique_mark_scope,priority:3" json:"exam_type"`
	AcademicYear string   `gorm:"column:academic_year;type:varchar(16);not null;uniqueIndex:unique_mark_scope,priority:4" json:"academic_year"`
	Semester     int      `gorm:"column:semester;not null" json:"semester"`

	ObtainedMarks float64 `gorm:"column:obtained_marks;not null" json:"obtained_marks"`
	TotalMarks    float64 `gorm:"column:total_marks;not null" json:"total_marks"`
	Percentage    float64 `gorm:"column:percentage;not null;default:0" json:"percentage"`
	Grade         string  `gorm:"column:grade;type:varchar(4)" json:"grade"`

	ExamDate    *time.Time `gorm:"column:exam_date;default:null" json:"exam_date,omitempty"`
	Remarks     *string    `gorm:"column:remarks;type:varchar(256)" json:"remarks,omitempty"`
	EnteredBy   string     `gorm:"column:entered_by;type:varchar(64)" json:"entered_by"`
	IsPublished bool       `gorm:"column:is_published;not null;default:false" json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Mark) TableName() string { return "mark" }
