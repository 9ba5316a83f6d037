package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		total       int64
		want        Pagination
	}{
		{"exact fit", 1, 10, 30, Pagination{Page: 1, Limit: 10, Total: 30, Pages: 3}},
		{"partial last page", 3, 10, 25, Pagination{Page: 3, Limit: 10, Total: 25, Pages: 3}},
		{"empty result", 1, 10, 0, Pagination{Page: 1, Limit: 10, Total: 0, Pages: 0}},
		{"page clamped to one", 0, 10, 5, Pagination{Page: 1, Limit: 10, Total: 5, Pages: 1}},
		{"negative page clamped", -4, 10, 5, Pagination{Page: 1, Limit: 10, Total: 5, Pages: 1}},
		{"limit falls back to default", 2, 0, 45, Pagination{Page: 2, Limit: 20, Total: 45, Pages: 3}},
		{"single record", 1, 20, 1, Pagination{Page: 1, Limit: 20, Total: 1, Pages: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewPagination(tc.page, tc.limit, tc.total))
		})
	}
}
