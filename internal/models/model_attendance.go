package models

import (
	"time"

	"gorm.io/datatypes"
)

type AttendanceBand string

const (
	AttendanceBandExcellent AttendanceBand = "Excellent"
	AttendanceBandGood      AttendanceBand = "Good"
	AttendanceBandAverage   AttendanceBand = "Average"
	AttendanceBandPoor      AttendanceBand = "Poor"
	AttendanceBandCritical  AttendanceBand = "Critical"
)

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

// Counts reports whether the status counts as attended for percentage
// purposes. Late arrivals still count.
func (s AttendanceStatus) Counts() bool {
	return s == AttendanceStatusPresent || s == AttendanceStatusLate
}

// SubjectAttendance holds per-subject counters and the fields derived
// from them. Derived fields are recomputed in full before every save.
type SubjectAttendance struct {
	SubjectCode     string         `json:"subject_code"`
	SubjectName     string         `json:"subject_name"`
	TotalClasses    int            `json:"total_classes"`
	AttendedClasses int            `json:"attended_classes"`
	Percentage      float64        `json:"percentage"`
	Status          AttendanceBand `json:"status"`
}

// DailySubjectStatus is one subject's status within a single day's entry.
type DailySubjectStatus struct {
	SubjectCode string           `json:"subject_code"`
	SubjectName string           `json:"subject_name"`
	Status      AttendanceStatus `json:"status"`
}

// DailyAttendanceEntry is one recorded day inside a summary. Date uses
// the 2006-01-02 form so same-day resubmissions key exactly.
type DailyAttendanceEntry struct {
	Date     string               `json:"date"`
	Subjects []DailySubjectStatus `json:"subjects"`
}

// AttendanceSummary is the semester-scoped rollup document, one per
// (student, semester, academic year). Subject and daily lists live in
// JSONB, mirroring the embedded-list shape of the legacy store.
type AttendanceSummary struct {
	ID           string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	StudentID    string `gorm:"column:student_id;type:uuid;not null;uniqueIndex:unique_attendance_scope,priority:1" json:"student_id"`
	Semester     int    `gorm:"column:semester;not null;uniqueIndex:unique_attendance_scope,priority:2" json:"semester"`
	AcademicYear string `gorm:"column:academic_year;type:varchar(16);not null;uniqueIndex:unique_attendance_scope,priority:3" json:"academic_year"`

	Subjects datatypes.JSONType[[]SubjectAttendance]    `gorm:"column:subjects;type:jsonb" json:"subjects"`
	Daily    datatypes.JSONType[[]DailyAttendanceEntry] `gorm:"column:daily;type:jsonb" json:"daily"`

	OverallTotal      int            `gorm:"column:overall_total;not null;default:0" json:"overall_total"`
	OverallAttended   int            `gorm:"column:overall_attended;not null;default:0" json:"overall_attended"`
	OverallPercentage float64        `gorm:"column:overall_percentage;not null;default:0" json:"overall_percentage"`
	OverallStatus     AttendanceBand `gorm:"column:overall_status;type:varchar(16)" json:"overall_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AttendanceSummary) TableName() string { return "attendance_summary" }

// PeriodAttendance is the raw per-period log written by the faculty flow.
// No counters hang off it; read-side aggregation consumes it directly.
type PeriodAttendance struct {
	ID           string           `gorm:"column:id;primary_key;type:uuid" json:"id"`
	StudentID    string           `gorm:"column:student_id;type:uuid;not null;uniqueIndex:unique_period_scope,priority:1" json:"student_id"`
	SubjectCode  string           `gorm:"column:subject_code;type:varchar(32);not null;uniqueIndex:unique_period_scope,priority:2" json:"subject_code"`
	SubjectName  string           `gorm:"column:subject_name;type:varchar(128)" json:"subject_name"`
	Date         string           `gorm:"column:date;type:varchar(10);not null;uniqueIndex:unique_period_scope,priority:3" json:"date"`
	Period       int              `gorm:"column:period;not null;uniqueIndex:unique_period_scope,priority:4" json:"period"`
	AcademicYear string           `gorm:"column:academic_year;type:varchar(16);not null;uniqueIndex:unique_period_scope,priority:5" json:"academic_year"`
	Status       AttendanceStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	Remarks      *string          `gorm:"column:remarks;type:varchar(256)" json:"remarks,omitempty"`
	MarkedBy     string           `gorm:"column:marked_by;type:varchar(64)" json:"marked_by"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (PeriodAttendance) TableName() string { return "period_attendance" }
