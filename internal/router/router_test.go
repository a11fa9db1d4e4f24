package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"employee-records/internal/auth"
	"employee-records/internal/handlers"
	"employee-records/internal/middleware"
	"employee-records/internal/service"
	"employee-records/internal/store"

	"github.com/gin-gonic/gin"
)

const testSecret = "router-test-secret"

// newTestServer wires the whole HTTP surface over an in-memory store.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	verifier, err := auth.NewStaticVerifier("admin", "password")
	if err != nil {
		t.Fatalf("Failed to build verifier: %v", err)
	}

	svc := service.NewEmployeeService(st)
	r := gin.New()
	Setup(r,
		handlers.NewEmployeeHandler(svc),
		handlers.NewAuthHandler(verifier, testSecret),
		middleware.NewAuthMiddleware(testSecret),
		st,
	)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Login failed with %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	if resp.TokenType != "bearer" || resp.AccessToken == "" {
		t.Fatalf("Unexpected login response: %s", w.Body.String())
	}
	return resp.AccessToken
}

func employeeBody(name, department string, salary float64, joiningDate string, skills ...string) gin.H {
	if skills == nil {
		skills = []string{}
	}
	return gin.H{
		"name":         name,
		"department":   department,
		"salary":       salary,
		"joining_date": joiningDate,
		"skills":       skills,
	}
}

func TestAuthEndpoints(t *testing.T) {
	r := newTestServer(t)

	t.Run("login with bad credentials is rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
			"username": "admin",
			"password": "wrong",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("login with valid credentials issues a token", func(t *testing.T) {
		login(t, r, "admin", "password")
	})
}

func TestEmployeeEndpoints(t *testing.T) {
	r := newTestServer(t)
	token := login(t, r, "admin", "password")

	t.Run("mutations without a token are rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/employees", "", employeeBody("Ann", "Eng", 90000, "2024-01-10", "go"))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 for create, got %d", w.Code)
		}
		w = doJSON(r, http.MethodDelete, "/employees/E001", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 for delete, got %d", w.Code)
		}
	})

	t.Run("create returns 201 with assigned id", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/employees", token, employeeBody("Ann", "Eng", 90000, "2024-01-10", "go"))
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var out map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if out["employee_id"] != "E001" {
			t.Errorf("Expected employee_id E001, got %v", out["employee_id"])
		}
		if out["joining_date"] != "2024-01-10" {
			t.Errorf("Expected date-only joining_date, got %v", out["joining_date"])
		}
	})

	t.Run("create with missing fields returns 400", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/employees", token, gin.H{"name": "NoDept"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("bulk create wraps results and keeps input order", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/employees/bulk", token, []gin.H{
			employeeBody("Bea", "Eng", 80000, "2024-03-01", "python"),
			employeeBody("Cal", "Ops", 70000, "2024-02-01", "go"),
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp struct {
			EmployeesAdded []struct {
				EmployeeID string `json:"employee_id"`
				Name       string `json:"name"`
			} `json:"employees_added"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp.EmployeesAdded) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(resp.EmployeesAdded))
		}
		if resp.EmployeesAdded[0].EmployeeID != "E002" || resp.EmployeesAdded[0].Name != "Bea" {
			t.Errorf("Unexpected first record: %+v", resp.EmployeesAdded[0])
		}
		if resp.EmployeesAdded[1].EmployeeID != "E003" || resp.EmployeesAdded[1].Name != "Cal" {
			t.Errorf("Unexpected second record: %+v", resp.EmployeesAdded[1])
		}
	})

	t.Run("get by employee_id", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/employees/E001", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		w = doJSON(r, http.MethodGet, "/employees/E999", "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("list with department filter", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/employees?department=Eng", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var out []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(out) != 2 {
			t.Errorf("Expected 2 Eng records, got %d", len(out))
		}
	})

	t.Run("list rejects bad paging params", func(t *testing.T) {
		for _, q := range []string{"skip=-1", "limit=0", "skip=abc"} {
			w := doJSON(r, http.MethodGet, "/employees?"+q, "", nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400 for %q, got %d", q, w.Code)
			}
		}
	})

	t.Run("search requires the skill param", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/employees/search", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
		w = doJSON(r, http.MethodGet, "/employees/search?skill=go", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var out []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(out) != 2 {
			t.Errorf("Expected 2 records with skill go, got %d", len(out))
		}
	})

	t.Run("avg salary endpoint", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/employees/avg-salary", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var out []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(out) != 2 {
			t.Errorf("Expected 2 departments, got %d", len(out))
		}
	})

	t.Run("update maps service errors to statuses", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/employees/E001", token, gin.H{"salary": 95000})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		w = doJSON(r, http.MethodPut, "/employees/E001", token, gin.H{"employee_id": "E777"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for identity-only update, got %d", w.Code)
		}
		w = doJSON(r, http.MethodPut, "/employees/E999", token, gin.H{"salary": 1})
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(r, http.MethodDelete, "/employees/E003", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		w = doJSON(r, http.MethodDelete, "/employees/E003", token, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404 for second delete, got %d", w.Code)
		}
	})
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestServer(t)

	for _, path := range []string{"/", "/health"} {
		w := doJSON(r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 from %s, got %d", path, w.Code)
		}
	}
}
