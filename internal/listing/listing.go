// Package listing computes the visible page of a product listing: filter,
// then sort, then paginate.
package listing

import (
	"slices"
	"strings"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

const DefaultPageSize = 16

type Sort string

const (
	SortFeatured  Sort = "featured"
	SortPriceLow  Sort = "price-low"
	SortPriceHigh Sort = "price-high"
	SortNewest    Sort = "newest"
)

func ParseSort(s string) Sort {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceLow:
		return SortPriceLow
	case SortPriceHigh:
		return SortPriceHigh
	case SortNewest:
		return SortNewest
	default:
		return SortFeatured
	}
}

// Query holds the listing controls. Zero MinPrice/MaxPrice mean unbounded;
// an empty or "all" CategorySlug means every category.
type Query struct {
	Text         string
	CategorySlug string
	MinPrice     int64
	MaxPrice     int64
	Sort         Sort
	Page         int
	PageSize     int
}

type Page struct {
	Items      []models.Product `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
}

// Apply runs filter -> sort -> paginate. The input slice is not modified.
func Apply(products []models.Product, categories []models.Category, q Query) Page {
	filtered := Filter(products, categories, q)
	SortProducts(filtered, q.Sort)
	return Paginate(filtered, q.Page, q.PageSize)
}

// Filter keeps products matching every active predicate.
func Filter(products []models.Product, categories []models.Category, q Query) []models.Product {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	categoryID, filterCategory, known := resolveCategory(categories, q.CategorySlug)

	out := make([]models.Product, 0, len(products))
	if filterCategory && !known {
		return out
	}
	for _, p := range products {
		if filterCategory && p.CategoryID.String() != categoryID {
			continue
		}
		if q.MinPrice > 0 && p.Price < q.MinPrice {
			continue
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			continue
		}
		if text != "" && !MatchesText(p, text) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MatchesText reports a case-insensitive substring match on name or
// description. needle must already be lower-cased.
func MatchesText(p models.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(p.DescriptionText()), needle)
}

func resolveCategory(categories []models.Category, slug string) (id string, active, known bool) {
	slug = strings.TrimSpace(slug)
	if slug == "" || strings.EqualFold(slug, "all") {
		return "", false, false
	}
	for _, c := range categories {
		if strings.EqualFold(c.Slug, slug) {
			return c.ID.String(), true, true
		}
	}
	return "", true, false
}

// SortProducts orders products in place. Featured keeps store order.
func SortProducts(products []models.Product, sort Sort) {
	switch sort {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmpInt64(a.Price, b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmpInt64(b.Price, a.Price)
		})
	case SortNewest:
		// zero timestamps compare as the epoch and land last
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// TotalPages is never below one so an empty listing still has page 1.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage maps a requested page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

func Paginate(products []models.Product, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := TotalPages(len(products), pageSize)
	page = ClampPage(page, totalPages)

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(products))
	items := make([]models.Product, 0, end-start)
	if start < end {
		items = append(items, products[start:end]...)
	}
	return Page{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Total:      len(products),
	}
}
