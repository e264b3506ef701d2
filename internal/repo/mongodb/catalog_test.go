package mongodb

import (
	"testing"
	"time"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestProductFilter(t *testing.T) {
	tests := []struct {
		name  string
		query models.ProductQuery
		want  bson.M
	}{
		{name: "empty", query: models.ProductQuery{}, want: bson.M{}},
		{
			name:  "category",
			query: models.ProductQuery{CategoryID: "cat-1"},
			want:  bson.M{"category_id": models.ObjectID("cat-1")},
		},
		{
			name:  "featured",
			query: models.ProductQuery{Featured: true},
			want: bson.M{"$or": bson.A{
				bson.M{"is_bestseller": true},
				bson.M{"is_new": true},
			}},
		},
		{
			name:  "limit is not part of the filter",
			query: models.ProductQuery{CategoryID: "cat-1", Featured: true, Limit: 4},
			want: bson.M{
				"category_id": models.ObjectID("cat-1"),
				"$or": bson.A{
					bson.M{"is_bestseller": true},
					bson.M{"is_new": true},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, productFilter(tt.query))
		})
	}
}

func TestRelatedFilter(t *testing.T) {
	got := relatedFilter("p-1", "cat-1")
	assert.Equal(t, bson.M{
		"category_id": models.ObjectID("cat-1"),
		"_id":         bson.M{"$ne": models.ObjectID("p-1")},
	}, got)
}

func TestFindOptions(t *testing.T) {
	assert.Nil(t, findOptions(0).Limit)
	assert.Equal(t, int64(4), *findOptions(4).Limit)
}

func TestNormalizeProducts(t *testing.T) {
	products := normalizeProducts([]models.Product{{ID: "a"}, {ID: "b", Images: []string{"b.jpg"}}})
	assert.Equal(t, models.Features{}, products[0].Features)
	assert.Equal(t, []string{}, products[0].Images)
	assert.Equal(t, []string{"b.jpg"}, products[1].Images)
}

func TestClientOptions(t *testing.T) {
	opts := ClientOptions(Options{
		Hosts:    []string{"mongo:27017"},
		Username: "shop",
		Password: "secret",
		Timeout:  3 * time.Second,
	})
	assert.Equal(t, "storefront", *opts.AppName)
	assert.Equal(t, []string{"mongo:27017"}, opts.Hosts)
	assert.Equal(t, "admin", opts.Auth.AuthSource)
	assert.Equal(t, 3*time.Second, *opts.Timeout)

	noAuth := ClientOptions(Options{Hosts: []string{"localhost:27017"}})
	assert.Nil(t, noAuth.Auth)
	assert.Nil(t, noAuth.Timeout)
}
