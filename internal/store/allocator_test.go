package store

import (
	"context"
	"testing"
	"time"

	"employee-records/internal/models"
)

func seedEmployee(t *testing.T, s Store, employeeID string) {
	t.Helper()
	err := s.InsertOne(context.Background(), &models.Employee{
		EmployeeID:  employeeID,
		Name:        "Seed " + employeeID,
		Department:  "Eng",
		Salary:      50000,
		JoiningDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Skills:      []string{"go"},
	})
	if err != nil {
		t.Fatalf("Failed to seed %s: %v", employeeID, err)
	}
}

func TestAllocator(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store starts at E001", func(t *testing.T) {
		alloc := NewAllocator(NewMemoryStore())

		id, err := alloc.Next(ctx)
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if id != "E001" {
			t.Errorf("Expected E001, got %s", id)
		}
	})

	t.Run("continues from highest existing id", func(t *testing.T) {
		s := NewMemoryStore()
		seedEmployee(t, s, "E001")
		seedEmployee(t, s, "E007")
		seedEmployee(t, s, "E003")
		alloc := NewAllocator(s)

		id, err := alloc.Next(ctx)
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if id != "E008" {
			t.Errorf("Expected E008, got %s", id)
		}
	})

	t.Run("batch is contiguous in order", func(t *testing.T) {
		s := NewMemoryStore()
		seedEmployee(t, s, "E002")
		alloc := NewAllocator(s)

		ids, err := alloc.NextBatch(ctx, 3)
		if err != nil {
			t.Fatalf("NextBatch failed: %v", err)
		}
		want := []string{"E003", "E004", "E005"}
		for i, w := range want {
			if ids[i] != w {
				t.Errorf("Expected ids[%d]=%s, got %s", i, w, ids[i])
			}
		}
	})

	t.Run("ignores ids outside the pattern", func(t *testing.T) {
		s := NewMemoryStore()
		seedEmployee(t, s, "LEGACY-99")
		seedEmployee(t, s, "E12")   // too few digits
		seedEmployee(t, s, "E9999") // too many digits
		seedEmployee(t, s, "E004")
		alloc := NewAllocator(s)

		id, err := alloc.Next(ctx)
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if id != "E005" {
			t.Errorf("Expected E005, got %s", id)
		}
	})

	t.Run("only legacy ids restarts the sequence", func(t *testing.T) {
		s := NewMemoryStore()
		seedEmployee(t, s, "EMP-2024-1")
		alloc := NewAllocator(s)

		id, err := alloc.Next(ctx)
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if id != "E001" {
			t.Errorf("Expected E001, got %s", id)
		}
	})

	t.Run("sequential allocation across inserts", func(t *testing.T) {
		s := NewMemoryStore()
		alloc := NewAllocator(s)

		for i, want := range []string{"E001", "E002", "E003"} {
			id, err := alloc.Next(ctx)
			if err != nil {
				t.Fatalf("Next %d failed: %v", i, err)
			}
			if id != want {
				t.Errorf("Expected %s, got %s", want, id)
			}
			seedEmployee(t, s, id)
		}
	})
}
