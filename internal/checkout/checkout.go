// Package checkout builds the chat handoff for an order: the order text, the
// shipping summary and the deep link that opens a chat prefilled with it.
package checkout

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/tmplx"
)

const (
	DefaultBaseURL   = "https://wa.me"
	DefaultStoreName = "Flexnex"

	DefaultFreeShippingThreshold int64 = 5000
	DefaultShippingFee           int64 = 100
)

var orderTemplate = tmplx.MustParse("order", `Hey! I want to order:
{{- range .Items}}
- {{trim .Name}} x{{.Quantity}}
{{- end}}
Total: {{price .TotalPrice}}
{{- with .PageURL}}
Link: {{.}}
{{- end}}`, tmplx.WithValidate(orderData{
	Items:      []models.CartLineItem{{Name: "Sample", Quantity: 1, Price: 1}},
	TotalPrice: 1,
}, requireLine("Total: ₹1")))

var inquiryTemplate = tmplx.MustParse("inquiry", `Hi! I'm interested in purchasing the following product from {{.Store}}:

🛍️ Product: {{trim .Name}}
💰 Price: {{price .Price}}
📦 Quantity: {{.Quantity}}
💵 Total: {{price .Total}}

Could you please provide more information about availability and delivery details?

Thank you!`, tmplx.WithValidate(inquiryData{Name: "Sample", Price: 2, Quantity: 1, Total: 2}, requireLine("Product: Sample")))

type orderData struct {
	Items      []models.CartLineItem
	TotalPrice int64
	PageURL    string
}

type inquiryData struct {
	Store    string
	Name     string
	Price    int64
	Quantity int
	Total    int64
}

// requireLine rejects a template whose sample rendering lacks want.
func requireLine(want string) tmplx.ValidateFunc {
	return func(buf *bytes.Buffer) error {
		if !strings.Contains(buf.String(), want) {
			return fmt.Errorf("rendered sample is missing %q", want)
		}
		return nil
	}
}

type Config struct {
	BaseURL               string
	Phone                 string
	StoreName             string
	FreeShippingThreshold int64
	ShippingFee           int64
}

// Composer renders handoff messages and links for one configured chat number.
type Composer struct {
	baseURL   string
	phone     string
	storeName string
	shipping  ShippingRule
}

func NewComposer(cfg Config) (*Composer, error) {
	phone := digits(cfg.Phone)
	if phone == "" {
		return nil, fmt.Errorf("checkout phone %q has no digits", cfg.Phone)
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse checkout base url: %w", err)
	}
	store := strings.TrimSpace(cfg.StoreName)
	if store == "" {
		store = DefaultStoreName
	}
	return &Composer{
		baseURL:   base,
		phone:     phone,
		storeName: store,
		shipping:  NewShippingRule(cfg.FreeShippingThreshold, cfg.ShippingFee),
	}, nil
}

func (c *Composer) Phone() string {
	return c.phone
}

func (c *Composer) Link(text string) string {
	return DeepLink(c.baseURL, c.phone, text)
}

func (c *Composer) Summary(subtotal int64) Summary {
	return c.shipping.Summarize(subtotal)
}

func (c *Composer) ProductInquiryMessage(product models.CartProduct, quantity int) (string, error) {
	return ProductInquiryMessage(c.storeName, product, quantity)
}

// OrderMessage renders the order text for a cart snapshot. The link line is
// left out when pageURL is empty.
func OrderMessage(snap models.CartSnapshot, pageURL string) (string, error) {
	out, err := orderTemplate.RenderString(orderData{
		Items:      snap.Items,
		TotalPrice: snap.TotalPrice,
		PageURL:    strings.TrimSpace(pageURL),
	})
	if err != nil {
		return "", fmt.Errorf("render order message: %w", err)
	}
	return out, nil
}

// ProductInquiryMessage renders the single product inquiry text. The quantity
// is bounded like a cart line item.
func ProductInquiryMessage(store string, product models.CartProduct, quantity int) (string, error) {
	quantity = models.ClampQuantity(quantity)
	out, err := inquiryTemplate.RenderString(inquiryData{
		Store:    store,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: quantity,
		Total:    models.CartLineItem{Price: product.Price, Quantity: quantity}.Subtotal(),
	})
	if err != nil {
		return "", fmt.Errorf("render inquiry message: %w", err)
	}
	return out, nil
}

// DeepLink returns <baseURL>/<phone>?text=<text>. Non-digits are stripped
// from phone and text is percent-encoded with spaces as %20.
func DeepLink(baseURL, phone, text string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return base + "/" + digits(phone) + "?text=" + encoded
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
