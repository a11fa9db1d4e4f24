package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee is the document shape stored in the employees collection.
// EmployeeID is the human-readable identifier (E001, E002, ...); the
// storage identity in ID is exposed to callers only as an opaque string.
type Employee struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	EmployeeID  string             `bson:"employee_id" json:"employee_id"`
	Name        string             `bson:"name" json:"name"`
	Department  string             `bson:"department" json:"department"`
	Salary      float64            `bson:"salary" json:"salary"`
	JoiningDate time.Time          `bson:"joining_date" json:"joining_date"`
	Skills      []string           `bson:"skills" json:"skills"`
}

// CreateEmployeeDTO is the create payload. EmployeeID is never accepted
// from the client; the allocator assigns it. Skills may be empty but the
// stored record always carries the field.
type CreateEmployeeDTO struct {
	Name        string   `json:"name" binding:"required"`
	Department  string   `json:"department" binding:"required"`
	Salary      *float64 `json:"salary" binding:"required"`
	JoiningDate string   `json:"joining_date" binding:"required"` // "YYYY-MM-DD"
	Skills      []string `json:"skills"`
}

// EmployeeOut is the caller-facing representation: string storage id,
// date-only joining_date, skills never null.
type EmployeeOut struct {
	ID          string   `json:"id"`
	EmployeeID  string   `json:"employee_id"`
	Name        string   `json:"name"`
	Department  string   `json:"department"`
	Salary      float64  `json:"salary"`
	JoiningDate string   `json:"joining_date"`
	Skills      []string `json:"skills"`
}

// DepartmentSalary is one row of the average-salary aggregation.
type DepartmentSalary struct {
	Department string  `bson:"department" json:"department"`
	AvgSalary  float64 `bson:"avg_salary" json:"avg_salary"`
}
