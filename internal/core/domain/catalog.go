package domain

import "github.com/shopspring/decimal"

// CatalogItem is a book as shown in the storefront. Items come either from the
// external catalog provider or from the local dataset; nothing keeps the two
// sources consistent.
type CatalogItem struct {
	ID          string          `json:"volume_id,omitempty"`
	ISBN        string          `json:"isbn,omitempty"`
	Title       string          `json:"title"`
	Author      string          `json:"author,omitempty"`
	PrintType   string          `json:"print_type,omitempty"`
	Rating      float64         `json:"rating"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty"`
	Categories  []string        `json:"categories,omitempty"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Category returns the first category or "".
func (c CatalogItem) Category() string {
	if len(c.Categories) == 0 {
		return ""
	}
	return c.Categories[0]
}

// EbookType narrows a catalog search by availability.
type EbookType string

const (
	EbookFree     EbookType = "free"
	EbookPaid     EbookType = "paid"
	EbookPhysical EbookType = "physical"
)

// SearchOrder is an ordering hint passed to the provider.
type SearchOrder string

const (
	OrderRelevance SearchOrder = "relevance"
	OrderNewest    SearchOrder = "newest"
)

// SearchFilters are the optional catalog search refinements.
type SearchFilters struct {
	EbookType EbookType   `json:"ebook_type,omitempty"`
	Language  string      `json:"language,omitempty"`
	OrderBy   SearchOrder `json:"order_by,omitempty"`
}
