// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/dealforge/dealdesk/pkg/lease"
)

// FindGridRow finds the row for a (term, mileage, plan) combination in a
// lease grid. Returns a pointer to the row if found, nil otherwise.
func FindGridRow(grid []lease.GridRow, term, kmPerYear int, plan lease.Plan) *lease.GridRow {
	for i := range grid {
		if grid[i].Term == term && grid[i].KmPerYear == kmPerYear && grid[i].Plan == plan {
			return &grid[i]
		}
	}
	return nil
}
