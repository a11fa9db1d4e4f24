package store

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"sync"
	"time"

	"employee-records/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var employeeIDPattern = regexp.MustCompile(employeeIDRegex)

// MemoryStore implements Store with in-memory storage. It enforces the
// same employee_id uniqueness rule as the MongoDB adapter and exists so
// the allocator, service, and transport layers can be tested without a
// running database.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []*models.Employee
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) InsertOne(_ context.Context, emp *models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(emp)
}

func (m *MemoryStore) InsertMany(_ context.Context, emps []*models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Ordered batch: stop at the first failure, earlier inserts stay.
	for _, emp := range emps {
		if err := m.insertLocked(emp); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryStore) insertLocked(emp *models.Employee) error {
	for _, doc := range m.docs {
		if doc.EmployeeID == emp.EmployeeID {
			return fmt.Errorf("%w: %s", ErrDuplicateEmployeeID, emp.EmployeeID)
		}
	}
	if emp.ID.IsZero() {
		emp.ID = primitive.NewObjectID()
	}
	m.docs = append(m.docs, cloneEmployee(emp))
	return nil
}

func (m *MemoryStore) FindByEmployeeID(_ context.Context, employeeID string) (*models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, doc := range m.docs {
		if doc.EmployeeID == employeeID {
			return cloneEmployee(doc), nil
		}
	}
	return nil, ErrEmployeeNotFound
}

func (m *MemoryStore) FindByEmployeeIDs(_ context.Context, employeeIDs []string) ([]*models.Employee, error) {
	wanted := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Employee{}
	for _, doc := range m.docs {
		if wanted[doc.EmployeeID] {
			out = append(out, cloneEmployee(doc))
		}
	}
	return out, nil
}

func (m *MemoryStore) FindHighestEmployeeID(_ context.Context) (*models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var highest *models.Employee
	for _, doc := range m.docs {
		if !employeeIDPattern.MatchString(doc.EmployeeID) {
			continue
		}
		if highest == nil || doc.EmployeeID > highest.EmployeeID {
			highest = doc
		}
	}
	if highest == nil {
		return nil, ErrEmployeeNotFound
	}
	return cloneEmployee(highest), nil
}

func (m *MemoryStore) List(_ context.Context, q ListQuery) ([]*models.Employee, error) {
	m.mu.RLock()
	matched := []*models.Employee{}
	for _, doc := range m.docs {
		if q.Department != "" && doc.Department != q.Department {
			continue
		}
		matched = append(matched, cloneEmployee(doc))
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].JoiningDate.After(matched[j].JoiningDate)
	})

	skip := q.Skip
	if skip > int64(len(matched)) {
		skip = int64(len(matched))
	}
	matched = matched[skip:]
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (m *MemoryStore) FindBySkill(_ context.Context, skill string) ([]*models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Employee{}
	for _, doc := range m.docs {
		for _, s := range doc.Skills {
			if s == skill {
				out = append(out, cloneEmployee(doc))
				break
			}
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateByEmployeeID(_ context.Context, employeeID string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		if doc.EmployeeID != employeeID {
			continue
		}
		applyFields(doc, fields)
		return nil
	}
	return ErrEmployeeNotFound
}

func (m *MemoryStore) DeleteByEmployeeID(_ context.Context, employeeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, doc := range m.docs {
		if doc.EmployeeID == employeeID {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return ErrEmployeeNotFound
}

func (m *MemoryStore) AverageSalaryByDepartment(_ context.Context) ([]models.DepartmentSalary, error) {
	m.mu.RLock()
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, doc := range m.docs {
		sums[doc.Department] += doc.Salary
		counts[doc.Department]++
	}
	m.mu.RUnlock()

	out := []models.DepartmentSalary{}
	for dept, sum := range sums {
		avg := sum / float64(counts[dept])
		out = append(out, models.DepartmentSalary{
			Department: dept,
			AvgSalary:  math.Round(avg*100) / 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out, nil
}

func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func applyFields(doc *models.Employee, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "name":
			if s, ok := v.(string); ok {
				doc.Name = s
			}
		case "department":
			if s, ok := v.(string); ok {
				doc.Department = s
			}
		case "salary":
			if n, ok := v.(float64); ok {
				doc.Salary = n
			}
		case "joining_date":
			if t, ok := v.(time.Time); ok {
				doc.JoiningDate = t
			}
		case "skills":
			if sk, ok := v.([]string); ok {
				doc.Skills = append([]string(nil), sk...)
			}
		}
	}
}

// cloneEmployee copies a record so callers can't mutate stored state.
func cloneEmployee(emp *models.Employee) *models.Employee {
	clone := *emp
	if emp.Skills != nil {
		clone.Skills = append([]string(nil), emp.Skills...)
	}
	return &clone
}
