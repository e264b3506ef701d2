package models

import "time"

type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderUnisex Gender = "unisex"
)

type Category struct {
	ID          ObjectID  `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description *string   `bson:"description" json:"description"`
	Image       *string   `bson:"image" json:"image"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

func (Category) CollectionName() string { return "categories" }

type Product struct {
	ID           ObjectID  `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Slug         string    `bson:"slug" json:"slug"`
	CategoryID   ObjectID  `bson:"category_id" json:"category_id"`
	Price        int64     `bson:"price" json:"price"`
	Description  *string   `bson:"description" json:"description"`
	Features     Features  `bson:"features" json:"features"`
	Images       []string  `bson:"images" json:"images"`
	IsBestseller bool      `bson:"is_bestseller" json:"is_bestseller"`
	IsNew        bool      `bson:"is_new" json:"is_new"`
	InStock      bool      `bson:"in_stock" json:"in_stock"`
	Gender       Gender    `bson:"gender" json:"gender"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

func (Product) CollectionName() string { return "products" }

// IsFeatured reports whether the product is curated for the home page.
func (p *Product) IsFeatured() bool {
	return p.IsBestseller || p.IsNew
}

func (p *Product) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// MainImage is the first image, or empty when the product has none.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Review struct {
	ID        ObjectID  `bson:"_id" json:"id"`
	ProductID ObjectID  `bson:"product_id" json:"product_id"`
	Name      string    `bson:"name" json:"name"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   *string   `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (Review) CollectionName() string { return "reviews" }

// ProductDetail bundles everything the product page shows.
type ProductDetail struct {
	Product       *Product  `json:"product"`
	Reviews       []Review  `json:"reviews"`
	AverageRating float64   `json:"average_rating"`
	Related       []Product `json:"related"`
}

// Normalize fills list fields so they are never nil once a row has been read.
func (p *Product) Normalize() {
	if p.Features == nil {
		p.Features = Features{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
}

// ProductQuery narrows a product listing at the store. Zero values mean no
// constraint.
type ProductQuery struct {
	CategoryID ObjectID
	Featured   bool
	Limit      int
}
