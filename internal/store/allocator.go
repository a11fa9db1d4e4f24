package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Allocator computes the next human-readable employee identifiers from
// the highest existing E### value in the store.
//
// Allocation is read-then-compute with no reservation step: two
// concurrent creates can compute the same identifier, and the unique
// index on employee_id decides the loser, which surfaces as
// ErrDuplicateEmployeeID on insert.
type Allocator struct {
	store Store
}

func NewAllocator(s Store) *Allocator {
	return &Allocator{store: s}
}

// Next returns the next unassigned employee_id.
func (a *Allocator) Next(ctx context.Context) (string, error) {
	ids, err := a.NextBatch(ctx, 1)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// NextBatch returns n contiguous identifiers starting just past the
// highest existing matching id, in assignment order.
func (a *Allocator) NextBatch(ctx context.Context, n int) ([]string, error) {
	base := 0
	last, err := a.store.FindHighestEmployeeID(ctx)
	switch {
	case errors.Is(err, ErrEmployeeNotFound):
		// empty sequence, start at E001
	case err != nil:
		return nil, err
	default:
		// An unparsable suffix restarts the sequence at the bottom.
		if v, perr := strconv.Atoi(strings.TrimPrefix(last.EmployeeID, "E")); perr == nil {
			base = v
		}
	}

	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("E%03d", base+i+1)
	}
	return ids, nil
}
