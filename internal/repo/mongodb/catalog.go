package mongodb

import (
	"context"
	"strings"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
}

type ProductRepository interface {
	List(ctx context.Context, q models.ProductQuery) ([]models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindByID(ctx context.Context, id models.ObjectID) (*models.Product, error)
	ListRelated(ctx context.Context, productID, categoryID models.ObjectID, limit int) ([]models.Product, error)
}

type ReviewRepository interface {
	ListByProduct(ctx context.Context, productID models.ObjectID) ([]models.Review, error)
}

type categoryRepo struct {
	baseRepo[models.Category]
}

func NewCategoryRepository(db *DB) CategoryRepository {
	return &categoryRepo{baseRepo: newBaseRepo[models.Category](db.Database)}
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	return r.Find(ctx, bson.M{})
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.FindOne(ctx, bson.M{"slug": strings.TrimSpace(slug)})
}

type productRepo struct {
	baseRepo[models.Product]
}

func NewProductRepository(db *DB) ProductRepository {
	return &productRepo{baseRepo: newBaseRepo[models.Product](db.Database)}
}

func (r *productRepo) List(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	products, err := r.Find(ctx, productFilter(q), findOptions(q.Limit))
	if err != nil {
		return nil, err
	}
	return normalizeProducts(products), nil
}

func (r *productRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p, err := r.FindOne(ctx, bson.M{"slug": strings.TrimSpace(slug)})
	if err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

func (r *productRepo) FindByID(ctx context.Context, id models.ObjectID) (*models.Product, error) {
	p, err := r.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

func (r *productRepo) ListRelated(ctx context.Context, productID, categoryID models.ObjectID, limit int) ([]models.Product, error) {
	products, err := r.Find(ctx, relatedFilter(productID, categoryID), findOptions(limit))
	if err != nil {
		return nil, err
	}
	return normalizeProducts(products), nil
}

type reviewRepo struct {
	baseRepo[models.Review]
}

func NewReviewRepository(db *DB) ReviewRepository {
	return &reviewRepo{baseRepo: newBaseRepo[models.Review](db.Database)}
}

func (r *reviewRepo) ListByProduct(ctx context.Context, productID models.ObjectID) ([]models.Review, error) {
	return r.Find(ctx, bson.M{"product_id": productID})
}

func productFilter(q models.ProductQuery) bson.M {
	filter := bson.M{}
	if q.CategoryID != "" {
		filter["category_id"] = q.CategoryID
	}
	if q.Featured {
		filter["$or"] = bson.A{
			bson.M{"is_bestseller": true},
			bson.M{"is_new": true},
		}
	}
	return filter
}

func relatedFilter(productID, categoryID models.ObjectID) bson.M {
	return bson.M{
		"category_id": categoryID,
		"_id":         bson.M{"$ne": productID},
	}
}

func findOptions(limit int) *options.FindOptions {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}

func normalizeProducts(products []models.Product) []models.Product {
	for i := range products {
		products[i].Normalize()
	}
	return products
}
