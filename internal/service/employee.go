package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"employee-records/internal/models"
	"employee-records/internal/store"
)

// ErrNoUpdateFields is returned when an update carries no applicable
// fields after identity fields are stripped
var ErrNoUpdateFields = errors.New("no fields provided to update")

// ErrInvalidField is returned when a payload field has the wrong type or
// an unparsable value
var ErrInvalidField = errors.New("invalid field value")

const dateLayout = "2006-01-02"

const defaultListLimit = 50

// EmployeeService is the operations surface over the record store.
// Identifier assignment happens here, at creation time only.
type EmployeeService struct {
	store store.Store
	alloc *store.Allocator
}

func NewEmployeeService(s store.Store) *EmployeeService {
	return &EmployeeService{store: s, alloc: store.NewAllocator(s)}
}

// Create persists one record under the next free employee_id and returns
// it re-read from the store, formatted for the caller.
func (s *EmployeeService) Create(ctx context.Context, in models.CreateEmployeeDTO) (*models.EmployeeOut, error) {
	emp, err := buildEmployee(in)
	if err != nil {
		return nil, err
	}

	id, err := s.alloc.Next(ctx)
	if err != nil {
		return nil, err
	}
	emp.EmployeeID = id

	if err := s.store.InsertOne(ctx, emp); err != nil {
		return nil, err
	}

	created, err := s.store.FindByEmployeeID(ctx, id)
	if err != nil {
		return nil, err
	}
	return formatEmployee(created), nil
}

// CreateBulk persists a batch of records under contiguous identifiers
// assigned in input order. An empty batch is a no-op. The batch is
// ordered at the store: a failing record aborts the remainder.
func (s *EmployeeService) CreateBulk(ctx context.Context, ins []models.CreateEmployeeDTO) ([]*models.EmployeeOut, error) {
	if len(ins) == 0 {
		return []*models.EmployeeOut{}, nil
	}

	emps := make([]*models.Employee, len(ins))
	for i, in := range ins {
		emp, err := buildEmployee(in)
		if err != nil {
			return nil, err
		}
		emps[i] = emp
	}

	ids, err := s.alloc.NextBatch(ctx, len(ins))
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		emps[i].EmployeeID = id
	}

	if err := s.store.InsertMany(ctx, emps); err != nil {
		return nil, err
	}

	created, err := s.store.FindByEmployeeIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// The store returns the batch in no particular order; put it back in
	// input order.
	byID := make(map[string]*models.Employee, len(created))
	for _, emp := range created {
		byID[emp.EmployeeID] = emp
	}
	out := make([]*models.EmployeeOut, 0, len(ids))
	for _, id := range ids {
		if emp, ok := byID[id]; ok {
			out = append(out, formatEmployee(emp))
		}
	}
	return out, nil
}

// Get returns the record with the given employee_id.
func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*models.EmployeeOut, error) {
	emp, err := s.store.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return formatEmployee(emp), nil
}

// List returns records, optionally filtered by exact department match,
// newest joining_date first. A non-positive limit falls back to the
// default page size.
func (s *EmployeeService) List(ctx context.Context, department string, skip, limit int64) ([]*models.EmployeeOut, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	emps, err := s.store.List(ctx, store.ListQuery{
		Department: department,
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	return formatEmployees(emps), nil
}

// SearchBySkill returns records whose skills contain the exact string.
func (s *EmployeeService) SearchBySkill(ctx context.Context, skill string) ([]*models.EmployeeOut, error) {
	emps, err := s.store.FindBySkill(ctx, skill)
	if err != nil {
		return nil, err
	}
	return formatEmployees(emps), nil
}

// AvgSalaryByDepartment returns one entry per distinct department with
// the mean salary rounded to 2 decimal places.
func (s *EmployeeService) AvgSalaryByDepartment(ctx context.Context) ([]models.DepartmentSalary, error) {
	return s.store.AverageSalaryByDepartment(ctx)
}

// Update applies a partial field set to one record and returns the
// re-read result. employee_id, the storage identity, and unknown fields
// are stripped even if supplied; an empty effective set is rejected.
func (s *EmployeeService) Update(ctx context.Context, employeeID string, fields map[string]any) (*models.EmployeeOut, error) {
	set, err := buildUpdateSet(fields)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, ErrNoUpdateFields
	}

	if err := s.store.UpdateByEmployeeID(ctx, employeeID, set); err != nil {
		return nil, err
	}

	updated, err := s.store.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return formatEmployee(updated), nil
}

// Delete removes the record with the given employee_id.
func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	return s.store.DeleteByEmployeeID(ctx, employeeID)
}

func buildEmployee(in models.CreateEmployeeDTO) (*models.Employee, error) {
	jd, err := parseDate(in.JoiningDate)
	if err != nil {
		return nil, err
	}
	skills := in.Skills
	if skills == nil {
		skills = []string{}
	}
	return &models.Employee{
		Name:        in.Name,
		Department:  in.Department,
		Salary:      *in.Salary,
		JoiningDate: jd,
		Skills:      skills,
	}, nil
}

// buildUpdateSet whitelists the mutable fields and converts their JSON
// values to storage types. Identity fields (employee_id, id, _id) fall
// through the default case and are dropped.
func buildUpdateSet(fields map[string]any) (map[string]any, error) {
	set := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case "name", "department":
			str, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%s must be a string: %w", k, ErrInvalidField)
			}
			set[k] = str
		case "salary":
			num, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("salary must be numeric: %w", ErrInvalidField)
			}
			set[k] = num
		case "joining_date":
			str, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("joining_date must be a string: %w", ErrInvalidField)
			}
			jd, err := parseDate(str)
			if err != nil {
				return nil, err
			}
			set[k] = jd
		case "skills":
			raw, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("skills must be an array of strings: %w", ErrInvalidField)
			}
			skills := make([]string, 0, len(raw))
			for _, item := range raw {
				str, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("skills must be an array of strings: %w", ErrInvalidField)
				}
				skills = append(skills, str)
			}
			set[k] = skills
		}
	}
	return set, nil
}

// parseDate reads a calendar date and pins it to midnight UTC, which is
// what the collection schema stores and what formatting reverses.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("joining_date must be YYYY-MM-DD: %w", ErrInvalidField)
	}
	return t, nil
}

func formatEmployee(emp *models.Employee) *models.EmployeeOut {
	skills := emp.Skills
	if skills == nil {
		skills = []string{}
	}
	return &models.EmployeeOut{
		ID:          emp.ID.Hex(),
		EmployeeID:  emp.EmployeeID,
		Name:        emp.Name,
		Department:  emp.Department,
		Salary:      emp.Salary,
		JoiningDate: emp.JoiningDate.Format(dateLayout),
		Skills:      skills,
	}
}

func formatEmployees(emps []*models.Employee) []*models.EmployeeOut {
	out := make([]*models.EmployeeOut, len(emps))
	for i, emp := range emps {
		out[i] = formatEmployee(emp)
	}
	return out
}
