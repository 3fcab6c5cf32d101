// Package dataset is the local book catalog loaded from a CSV file. Prices in
// the file are USD and are converted to the storefront currency on load.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bookstore/storefront/internal/core/domain"
)

//go:embed books.csv
var defaultCSV []byte

var requiredColumns = []string{"title", "author", "price", "isbn"}

// Options controls price conversion.
type Options struct {
	Rate     decimal.Decimal
	Currency string
}

// Catalog is an immutable in-memory dataset; it implements ports.LocalCatalog.
type Catalog struct {
	books  []domain.CatalogItem
	byISBN map[string]int
}

// LoadDefault loads the embedded dataset.
func LoadDefault(opts Options) (*Catalog, error) {
	return Load(bytes.NewReader(defaultCSV), opts)
}

// LoadFile loads the dataset at path.
func LoadFile(path string, opts Options) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(f, opts)
}

// Load parses a CSV with a header row. Rows missing a required column or with
// an unparsable price are skipped.
func Load(r io.Reader, opts Options) (*Catalog, error) {
	if opts.Rate.IsZero() {
		opts.Rate = decimal.NewFromInt(1)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("dataset header: missing column %q", name)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	c := &Catalog{byISBN: make(map[string]int)}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}

		if !hasRequired(rec, field) {
			continue
		}
		usd, err := decimal.NewFromString(field(rec, "price"))
		if err != nil {
			continue
		}
		rating, _ := strconv.ParseFloat(field(rec, "rating"), 64)

		item := domain.CatalogItem{
			ISBN:      field(rec, "isbn"),
			Title:     field(rec, "title"),
			Author:    field(rec, "author"),
			PrintType: field(rec, "format"),
			Rating:    rating,
			Price:     usd.Mul(opts.Rate).Round(0),
			Currency:  opts.Currency,
			Thumbnail: field(rec, "image"),
		}
		if cat := field(rec, "category"); cat != "" {
			item.Categories = []string{cat}
		}
		if item.Currency == "" {
			item.Currency = field(rec, "currency")
		}

		if _, dup := c.byISBN[item.ISBN]; !dup {
			c.byISBN[item.ISBN] = len(c.books)
		}
		c.books = append(c.books, item)
	}
	return c, nil
}

func hasRequired(rec []string, field func([]string, string) string) bool {
	for _, name := range requiredColumns {
		if field(rec, name) == "" {
			return false
		}
	}
	return true
}

func (c *Catalog) Len() int { return len(c.books) }

// Sample returns up to n distinct books in random order.
func (c *Catalog) Sample(n int) []domain.CatalogItem {
	if n > len(c.books) {
		n = len(c.books)
	}
	if n <= 0 {
		return []domain.CatalogItem{}
	}
	out := make([]domain.CatalogItem, 0, n)
	for _, i := range rand.Perm(len(c.books))[:n] {
		out = append(out, c.books[i])
	}
	return out
}

// ByISBN returns the first book with the given ISBN.
func (c *Catalog) ByISBN(isbn string) (*domain.CatalogItem, bool) {
	i, ok := c.byISBN[strings.TrimSpace(isbn)]
	if !ok {
		return nil, false
	}
	item := c.books[i]
	return &item, true
}
