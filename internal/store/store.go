package store

import (
	"context"
	"errors"

	"employee-records/internal/models"
)

// ErrEmployeeNotFound is returned when no record matches the employee_id
var ErrEmployeeNotFound = errors.New("employee not found")

// ErrDuplicateEmployeeID is returned when an insert or update would
// violate the uniqueness constraint on employee_id
var ErrDuplicateEmployeeID = errors.New("employee_id already exists")

// ErrSchemaViolation is returned when the storage-level schema rejects
// a document
var ErrSchemaViolation = errors.New("document failed schema validation")

// ListQuery narrows and pages a listing. Results are always ordered by
// joining_date, newest first.
type ListQuery struct {
	Department string
	Skip       int64
	Limit      int64
}

// Store is the persistence boundary for employee records.
// All implementations must be safe for concurrent use.
type Store interface {
	// InsertOne persists a record and sets its storage identity.
	InsertOne(ctx context.Context, emp *models.Employee) error

	// InsertMany persists records in order. The batch is ordered: the
	// first failing record aborts the rest, records before it stay
	// committed.
	InsertMany(ctx context.Context, emps []*models.Employee) error

	// FindByEmployeeID returns ErrEmployeeNotFound if no record matches.
	FindByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error)

	// FindByEmployeeIDs returns the records matching any of the given
	// ids, in no particular order.
	FindByEmployeeIDs(ctx context.Context, employeeIDs []string) ([]*models.Employee, error)

	// FindHighestEmployeeID returns the record with the lexicographically
	// greatest employee_id matching E + 3 digits, or ErrEmployeeNotFound
	// if none match. Records outside the pattern are ignored.
	FindHighestEmployeeID(ctx context.Context) (*models.Employee, error)

	// List returns records matching the query, newest joining_date first.
	List(ctx context.Context, q ListQuery) ([]*models.Employee, error)

	// FindBySkill returns records whose skills contain the exact string.
	FindBySkill(ctx context.Context, skill string) ([]*models.Employee, error)

	// UpdateByEmployeeID applies a partial field set to one record.
	// Returns ErrEmployeeNotFound if no record matches.
	UpdateByEmployeeID(ctx context.Context, employeeID string, fields map[string]any) error

	// DeleteByEmployeeID removes one record.
	// Returns ErrEmployeeNotFound if no record matches.
	DeleteByEmployeeID(ctx context.Context, employeeID string) error

	// AverageSalaryByDepartment returns one entry per distinct
	// department with the mean salary rounded to 2 decimal places.
	AverageSalaryByDepartment(ctx context.Context) ([]models.DepartmentSalary, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
