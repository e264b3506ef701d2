package listing

import "github.com/nguyentranbao-ct/storefront/internal/models"

// State tracks the interactive listing controls of one view. Changing any
// filter sends the view back to page 1.
type State struct {
	query Query
}

func NewState(pageSize int) *State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &State{query: Query{Sort: SortFeatured, Page: 1, PageSize: pageSize}}
}

func (s *State) Query() Query {
	return s.query
}

func (s *State) SetText(text string) {
	if s.query.Text == text {
		return
	}
	s.query.Text = text
	s.query.Page = 1
}

func (s *State) SetCategory(slug string) {
	if s.query.CategorySlug == slug {
		return
	}
	s.query.CategorySlug = slug
	s.query.Page = 1
}

func (s *State) SetPriceRange(minPrice, maxPrice int64) {
	if s.query.MinPrice == minPrice && s.query.MaxPrice == maxPrice {
		return
	}
	s.query.MinPrice = minPrice
	s.query.MaxPrice = maxPrice
	s.query.Page = 1
}

func (s *State) SetSort(sort Sort) {
	if s.query.Sort == sort {
		return
	}
	s.query.Sort = sort
	s.query.Page = 1
}

func (s *State) SetPage(page int) {
	s.query.Page = page
}

// Update applies every control of q through the setters. A positive q.Page
// is kept; otherwise the page stays where the setters left it.
func (s *State) Update(q Query) {
	s.SetText(q.Text)
	s.SetCategory(q.CategorySlug)
	s.SetPriceRange(q.MinPrice, q.MaxPrice)
	s.SetSort(ParseSort(string(q.Sort)))
	if q.Page > 0 {
		s.SetPage(q.Page)
	}
}

// Result computes the visible page and stores the clamped page index, so a
// page left dangling after the result set shrank is corrected.
func (s *State) Result(products []models.Product, categories []models.Category) Page {
	page := Apply(products, categories, s.query)
	s.query.Page = page.Page
	return page
}
