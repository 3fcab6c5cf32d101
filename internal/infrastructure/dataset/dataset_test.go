package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleCSV = `image,title,author,format,rating,price,currency,reviews,isbn,category
a.jpg,Alpha,Ann,Paperback,4.5,10.40,USD,10,111,Fiction
b.jpg,,Bob,Paperback,4.0,5,USD,3,222,Fiction
c.jpg,Gamma,Cat,Hardcover,,7.5,USD,1,333,
d.jpg,Delta,Dan,Paperback,3.1,not-a-price,USD,0,444,Fiction
e.jpg,Epsilon,Eve,Paperback,3.9,1,USD,0,,Fiction
`

var inr = Options{Rate: decimal.NewFromInt(83), Currency: "INR"}

func TestLoad_SkipsIncompleteRows(t *testing.T) {
	c, err := Load(strings.NewReader(sampleCSV), inr)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 books, got %d", c.Len())
	}
	if _, ok := c.ByISBN("222"); ok {
		t.Fatalf("row without title should be skipped")
	}
}

func TestLoad_ConvertsPrice(t *testing.T) {
	c, err := Load(strings.NewReader(sampleCSV), inr)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	alpha, ok := c.ByISBN("111")
	if !ok {
		t.Fatalf("expected isbn 111")
	}
	// 10.40 * 83 = 863.2
	if !alpha.Price.Equal(decimal.NewFromInt(863)) || alpha.Currency != "INR" {
		t.Fatalf("unexpected price %s %s", alpha.Price, alpha.Currency)
	}
	if alpha.Rating != 4.5 || alpha.Category() != "Fiction" || alpha.Thumbnail != "a.jpg" {
		t.Fatalf("unexpected item %+v", alpha)
	}

	gamma, _ := c.ByISBN("333")
	// 7.5 * 83 = 622.5
	if !gamma.Price.Equal(decimal.NewFromInt(623)) || gamma.Rating != 0 || gamma.Categories != nil {
		t.Fatalf("unexpected item %+v", gamma)
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	if _, err := Load(strings.NewReader("title,author,price\nA,B,1\n"), inr); err == nil {
		t.Fatalf("expected error for missing isbn column")
	}
}

func TestSample(t *testing.T) {
	c, err := LoadDefault(inr)
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if c.Len() < 4 {
		t.Fatalf("embedded dataset too small: %d", c.Len())
	}

	got := c.Sample(4)
	if len(got) != 4 {
		t.Fatalf("expected 4 books, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, b := range got {
		if seen[b.ISBN] {
			t.Fatalf("duplicate isbn %s in sample", b.ISBN)
		}
		seen[b.ISBN] = true
	}

	if n := len(c.Sample(c.Len() + 10)); n != c.Len() {
		t.Fatalf("oversized sample returned %d books", n)
	}
	if n := len(c.Sample(0)); n != 0 {
		t.Fatalf("expected empty sample, got %d", n)
	}
}

func TestSample_DoesNotAliasCatalog(t *testing.T) {
	c, _ := Load(strings.NewReader(sampleCSV), inr)
	s := c.Sample(1)
	s[0].Title = "changed"
	for _, b := range c.books {
		if b.Title == "changed" {
			t.Fatalf("sample mutated catalog")
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := LoadFile(path, inr)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 books, got %d", c.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"), inr); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
