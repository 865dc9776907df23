package client

import (
	"testing"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "a", Title: "Green Tea", CategoryID: 1, Type: "Green", Price: "150"},
		{ID: "b", Title: "Black Tea", CategoryID: 1, Price: "120"},
		{ID: "c", Title: "Espresso", CategoryID: 2, Price: "90"},
		{ID: "d", Title: "Green Smoothie", CategoryID: 3, Price: "210"},
	}
}

func TestApplyFilter_Identity(t *testing.T) {
	products := sampleProducts()

	got := ApplyFilter(products, FilterState{SelectedCategoryID: AllCategories, SearchTerm: ""})

	assert.Equal(t, products, got)
}

func TestApplyFilter_ByCategory(t *testing.T) {
	got := ApplyFilter(sampleProducts(), FilterState{SelectedCategoryID: 1})

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestApplyFilter_BySearchTerm_CaseInsensitive(t *testing.T) {
	got := ApplyFilter(sampleProducts(), FilterState{SearchTerm: "  GREEN "})

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "d", got[1].ID)
}

func TestApplyFilter_Compose(t *testing.T) {
	products := sampleProducts()

	step1 := ApplyFilter(products, FilterState{SelectedCategoryID: 1})
	composed := ApplyFilter(step1, FilterState{SearchTerm: "green"})
	combined := ApplyFilter(products, FilterState{SelectedCategoryID: 1, SearchTerm: "green"})

	assert.Equal(t, composed, combined)
}

func TestApplyFilter_CountNeverGrows(t *testing.T) {
	products := sampleProducts()

	states := []FilterState{
		{},
		{SelectedCategoryID: 1},
		{SearchTerm: "tea"},
		{SelectedCategoryID: 2, SearchTerm: "green"},
		{SelectedCategoryID: 99},
	}

	for _, state := range states {
		got := ApplyFilter(products, state)
		assert.LessOrEqual(t, len(got), len(products))
	}
}

func TestApplyFilter_Scenario(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Title: "Green Tea", CategoryID: 1, Type: "Green", Price: "150"},
	}

	got := ApplyFilter(products, FilterState{SelectedCategoryID: 1, SearchTerm: "green"})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	got = ApplyFilter(products, FilterState{SelectedCategoryID: 2})
	assert.Empty(t, got)
}

func TestApplyFilter_PreservesOrder(t *testing.T) {
	products := sampleProducts()

	got := ApplyFilter(products, FilterState{SearchTerm: "e"})

	var lastIdx = -1
	for _, p := range got {
		idx := -1
		for i := range products {
			if products[i].ID == p.ID {
				idx = i
			}
		}
		assert.Greater(t, idx, lastIdx)
		lastIdx = idx
	}
}
