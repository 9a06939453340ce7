package model

import "time"

// SeoEntry is page metadata optionally linked to a product. Slug is globally
// unique; when neither an explicit slug nor a product name is available a
// random "seo-" slug is generated.
type SeoEntry struct {
	ID                 int64     `db:"id" json:"id"`
	ProductID          *int64    `db:"product_id" json:"productId,omitempty"`
	Slug               string    `db:"slug" json:"slug"`
	Title              string    `db:"title" json:"title,omitempty"`
	Description        string    `db:"description" json:"description,omitempty"`
	Keywords           string    `db:"keywords" json:"keywords,omitempty"`
	CanonicalURL       string    `db:"canonical_url" json:"canonicalUrl,omitempty"`
	OgTitle            string    `db:"og_title" json:"ogTitle,omitempty"`
	OgDescription      string    `db:"og_description" json:"ogDescription,omitempty"`
	TwitterTitle       string    `db:"twitter_title" json:"twitterTitle,omitempty"`
	TwitterDescription string    `db:"twitter_description" json:"twitterDescription,omitempty"`
	SKU                string    `db:"sku" json:"sku,omitempty"`
	PurchasePrice      *float64  `db:"purchase_price" json:"purchasePrice,omitempty"`
	SalesPrice         *float64  `db:"sales_price" json:"salesPrice,omitempty"`
	Popular            bool      `db:"popular" json:"popularproduct"`
	TopRated           bool      `db:"top_rated" json:"topratedproduct"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateSeoEntryParams contains parameters for creating an SEO entry.
type CreateSeoEntryParams struct {
	ProductID          *int64
	Slug               string
	Title              string
	Description        string
	Keywords           string
	CanonicalURL       string
	OgTitle            string
	OgDescription      string
	TwitterTitle       string
	TwitterDescription string
	SKU                string
	PurchasePrice      *float64
	SalesPrice         *float64
	Popular            bool
	TopRated           bool
}
