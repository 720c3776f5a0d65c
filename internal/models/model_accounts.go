package models

import "time"

type AdminRole string

const (
	AdminRoleHead              AdminRole = "head_admin"
	AdminRoleStudentManagement AdminRole = "student_management"
	AdminRoleFinance           AdminRole = "finance"
)

// Student is the directory record referenced by payments and academic
// records. PasswordHash is bcrypt.
type Student struct {
	ID             string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	RegistrationNo string    `gorm:"column:registration_no;type:varchar(32);not null;uniqueIndex:unique_student_registration_no" json:"registration_no"`
	Name           string    `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Email          string    `gorm:"column:email;type:varchar(128);not null;uniqueIndex:unique_student_email" json:"email"`
	PasswordHash   string    `gorm:"column:password_hash;type:varchar(128);not null" json:"-"`
	Branch         string    `gorm:"column:branch;type:varchar(64)" json:"branch"`
	Semester       int       `gorm:"column:semester;not null;default:1" json:"semester"`
	AcademicYear   string    `gorm:"column:academic_year;type:varchar(16)" json:"academic_year"`
	Phone          string    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Student) TableName() string { return "student" }

type Faculty struct {
	ID           string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	EmployeeNo   string    `gorm:"column:employee_no;type:varchar(32);not null;uniqueIndex:unique_faculty_employee_no" json:"employee_no"`
	Name         string    `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Email        string    `gorm:"column:email;type:varchar(128);not null;uniqueIndex:unique_faculty_email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(128);not null" json:"-"`
	Department   string    `gorm:"column:department;type:varchar(64)" json:"department"`
	Designation  string    `gorm:"column:designation;type:varchar(64)" json:"designation"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Faculty) TableName() string { return "faculty" }

type Admin struct {
	ID           string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Username     string    `gorm:"column:username;type:varchar(64);not null;uniqueIndex:unique_admin_username" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(128);not null" json:"-"`
	Role         AdminRole `gorm:"column:role;type:varchar(32);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Admin) TableName() string { return "admin" }
