package models

import (
	"time"

	"gorm.io/datatypes"
)

type ResultStatus string

const (
	ResultStatusPass ResultStatus = "Pass"
	ResultStatusFail ResultStatus = "Fail"
)

// SubjectResult is one subject's outcome inside a semester result.
type SubjectResult struct {
	SubjectCode string  `json:"subject_code"`
	SubjectName string  `json:"subject_name"`
	Credits     float64 `json:"credits"`
	Grade       string  `json:"grade"`
	GradePoint  float64 `json:"grade_point"`
}

// Result is one semester's outcome, unique per (student, semester,
// academic year). EarnedCredits is zero for failed semesters, which
// excludes them from CGPA weighting.
type Result struct {
	ID           string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	StudentID    string `gorm:"column:student_id;type:uuid;not null;uniqueIndex:unique_result_scope,priority:1" json:"student_id"`
	Semester     int    `gorm:"column:semester;not null;uniqueIndex:unique_result_scope,priority:2" json:"semester"`
	AcademicYear string `gorm:"column:academic_year;type:varchar(16);not null;uniqueIndex:unique_result_scope,priority:3" json:"academic_year"`

	Subjects      datatypes.JSONType[[]SubjectResult] `gorm:"column:subjects;type:jsonb" json:"subjects"`
	SGPA          float64                             `gorm:"column:sgpa;not null;default:0" json:"sgpa"`
	EarnedCredits float64                             `gorm:"column:earned_credits;not null;default:0" json:"earned_credits"`
	Status        ResultStatus                        `gorm:"column:status;type:varchar(8);not null" json:"status"`
	DeclaredAt    *time.Time                          `gorm:"column:declared_at;default:null" json:"declared_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Result) TableName() string { return "result" }
