package checkout

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartSnapshot() models.CartSnapshot {
	return models.CartSnapshot{
		Items: []models.CartLineItem{
			{ID: "a", Name: "Chronograph", Price: 500, Quantity: 2},
			{ID: "b", Name: "Aviator ", Price: 12000, Quantity: 1},
		},
		TotalItems: 3,
		TotalPrice: 13000,
	}
}

func TestOrderMessage(t *testing.T) {
	t.Run("with link", func(t *testing.T) {
		msg, err := OrderMessage(cartSnapshot(), "https://shop.example/cart")
		require.NoError(t, err)
		assert.Equal(t, "Hey! I want to order:\n"+
			"- Chronograph x2\n"+
			"- Aviator x1\n"+
			"Total: ₹13,000\n"+
			"Link: https://shop.example/cart", msg)
	})

	t.Run("without link", func(t *testing.T) {
		msg, err := OrderMessage(cartSnapshot(), "  ")
		require.NoError(t, err)
		assert.Equal(t, "Hey! I want to order:\n"+
			"- Chronograph x2\n"+
			"- Aviator x1\n"+
			"Total: ₹13,000", msg)
	})
}

func TestProductInquiryMessage(t *testing.T) {
	product := models.CartProduct{ID: "a", Name: "Skeleton Automatic", Price: 15999}

	msg, err := ProductInquiryMessage("Flexnex", product, 2)
	require.NoError(t, err)
	assert.Contains(t, msg, "from Flexnex:")
	assert.Contains(t, msg, "🛍️ Product: Skeleton Automatic\n")
	assert.Contains(t, msg, "💰 Price: ₹15,999\n")
	assert.Contains(t, msg, "📦 Quantity: 2\n")
	assert.Contains(t, msg, "💵 Total: ₹31,998\n")

	msg, err = ProductInquiryMessage("Flexnex", product, 0)
	require.NoError(t, err)
	assert.Contains(t, msg, "📦 Quantity: 1\n")
}

func TestDeepLink(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		phone string
		text  string
		want  string
	}{
		{
			name:  "default base",
			phone: "918291821901",
			text:  "hi",
			want:  "https://wa.me/918291821901?text=hi",
		},
		{
			name:  "phone is reduced to digits",
			base:  "https://wa.me/",
			phone: "+91 82918-21901",
			text:  "hi",
			want:  "https://wa.me/918291821901?text=hi",
		},
		{
			name:  "spaces newlines and reserved characters are encoded",
			base:  "https://wa.me",
			phone: "1",
			text:  "a b\nc&d=e?₹",
			want:  "https://wa.me/1?text=a%20b%0Ac%26d%3De%3F%E2%82%B9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeepLink(tt.base, tt.phone, tt.text))
		})
	}
}

func TestDeepLink_RoundTripsMessage(t *testing.T) {
	msg, err := OrderMessage(cartSnapshot(), "https://shop.example/cart?ref=1&x=2")
	require.NoError(t, err)

	u, err := url.Parse(DeepLink(DefaultBaseURL, "918291821901", msg))
	require.NoError(t, err)
	assert.Equal(t, "/918291821901", u.Path)
	assert.Equal(t, msg, u.Query().Get("text"))
}

func TestNewComposer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := NewComposer(Config{Phone: "91 8291 821901"})
		require.NoError(t, err)
		assert.Equal(t, "918291821901", c.Phone())
		assert.Equal(t, "https://wa.me/918291821901?text=x", c.Link("x"))
		assert.Equal(t, int64(100), c.Summary(4999).Shipping)
	})

	t.Run("phone without digits", func(t *testing.T) {
		_, err := NewComposer(Config{Phone: "n/a"})
		require.Error(t, err)
	})

	t.Run("inquiry uses store name", func(t *testing.T) {
		c, err := NewComposer(Config{Phone: "1", StoreName: "Timekeepers"})
		require.NoError(t, err)
		msg, err := c.ProductInquiryMessage(models.CartProduct{Name: "Diver", Price: 100}, 1)
		require.NoError(t, err)
		assert.Contains(t, msg, "from Timekeepers:")
	})
}

func TestRequireLine(t *testing.T) {
	check := requireLine("Total: ₹1")
	require.NoError(t, check(bytes.NewBufferString("Hey!\nTotal: ₹1")))
	require.Error(t, check(bytes.NewBufferString("Hey!")))
}
