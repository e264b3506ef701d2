package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_FilterChangeResetsPage(t *testing.T) {
	products := manyProducts(40)

	changes := map[string]func(s *State){
		"text":     func(s *State) { s.SetText("watch") },
		"category": func(s *State) { s.SetCategory("all") },
		"price":    func(s *State) { s.SetPriceRange(100, 0) },
		"sort":     func(s *State) { s.SetSort(SortNewest) },
	}
	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			s := NewState(0)
			s.SetPage(3)
			assert.Equal(t, 3, s.Result(products, nil).Page)

			change(s)
			assert.Equal(t, 1, s.Query().Page)
		})
	}
}

func TestState_UnchangedFilterKeepsPage(t *testing.T) {
	s := NewState(DefaultPageSize)
	s.SetPage(2)
	s.SetSort(SortFeatured)
	s.SetText("")
	s.SetCategory("")
	s.SetPriceRange(0, 0)
	assert.Equal(t, 2, s.Query().Page)
}

func TestState_ResultWritesBackClampedPage(t *testing.T) {
	s := NewState(DefaultPageSize)
	s.SetPage(9)
	got := s.Result(manyProducts(33), nil)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 3, s.Query().Page)

	// shrinking the result set pulls the page back into range
	s.SetPage(3)
	s.query.MaxPrice = 500
	got = s.Result(manyProducts(33), nil)
	assert.Equal(t, 1, got.Page)
	assert.Len(t, got.Items, 5)
}

func TestState_Update(t *testing.T) {
	s := NewState(DefaultPageSize)
	s.Update(Query{Text: "steel", Sort: "PRICE-LOW", Page: 2})
	assert.Equal(t, Query{Text: "steel", Sort: SortPriceLow, Page: 2, PageSize: DefaultPageSize}, s.Query())

	// a changed control without an explicit page goes back to page 1
	s.Update(Query{Text: "gold", Sort: SortPriceLow})
	assert.Equal(t, 1, s.Query().Page)

	s.SetPage(3)
	s.Update(Query{Text: "gold", Sort: SortPriceLow})
	assert.Equal(t, 3, s.Query().Page, "same controls keep the page")
}
