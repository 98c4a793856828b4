package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/triplog/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNewPaginationParams_Defaults(t *testing.T) {
	p := domain.NewPaginationParams(nil, nil)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
}

func TestNewPaginationParams_CapsLimit(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(2), intPtr(500))

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 100, p.Offset())
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, domain.Paginate(items, domain.NewPaginationParams(intPtr(1), intPtr(2))))
	assert.Equal(t, []int{5}, domain.Paginate(items, domain.NewPaginationParams(intPtr(3), intPtr(2))))
	assert.Equal(t, []int{}, domain.Paginate(items, domain.NewPaginationParams(intPtr(4), intPtr(2))))
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	items := []int{1, 2, 3}

	for _, page := range []int{math.MaxInt, math.MaxInt / 20, math.MaxInt/100 + 1} {
		p := domain.NewPaginationParams(intPtr(page), intPtr(20))
		assert.NotPanics(t, func() {
			assert.Equal(t, []int{}, domain.Paginate(items, p), "page %d", page)
		})
	}
	assert.Equal(t, []int{}, domain.Paginate(items, domain.NewPaginationParams(intPtr(math.MaxInt), intPtr(100))))
	assert.Equal(t, []int{}, domain.Paginate(items, domain.PaginationParams{Page: 1, Limit: 0}))
}
