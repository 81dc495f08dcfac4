package extract_test

import (
	"testing"

	"github.com/ordersift/ordersift/internal/extract"
)

// ---------- ParseQuantityAvailable tests ----------

func TestParseQuantityAvailable_Match(t *testing.T) {
	t.Parallel()

	n, ok := extract.ParseQuantityAvailable("(2 available)")
	if !ok || n != 2 {
		t.Fatalf("expected (2, true), got (%d, %v)", n, ok)
	}
}

func TestParseQuantityAvailable_CaseInsensitive(t *testing.T) {
	t.Parallel()

	n, ok := extract.ParseQuantityAvailable("(14 Available)")
	if !ok || n != 14 {
		t.Fatalf("expected (14, true), got (%d, %v)", n, ok)
	}
}

func TestParseQuantityAvailable_NoMatch(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "available", "(many available)", "2 available"} {
		if _, ok := extract.ParseQuantityAvailable(text); ok {
			t.Fatalf("expected no match for %q", text)
		}
	}
}

// ---------- ParsePrice tests ----------

func TestParsePrice_Match(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want float64
	}{
		{"$19.99", 19.99},
		{"$ 19.99", 19.99},
		{"19.99", 19.99},
		{"$1,234.56", 1234.56},
		{"9.5", 9.5},
		{"42", 42},
	}
	for _, tc := range cases {
		got, ok := extract.ParsePrice(tc.text)
		if !ok || got != tc.want {
			t.Fatalf("ParsePrice(%q) = (%v, %v), want (%v, true)", tc.text, got, ok, tc.want)
		}
	}
}

func TestParsePrice_NoMatch(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "free", "$"} {
		if _, ok := extract.ParsePrice(text); ok {
			t.Fatalf("expected no price in %q", text)
		}
	}
}

// ---------- ParseItemIDFromURL tests ----------

func TestParseItemIDFromURL_FullURL(t *testing.T) {
	t.Parallel()

	id, ok := extract.ParseItemIDFromURL("https://www.ebay.com/itm/356885714929")
	if !ok || id != "356885714929" {
		t.Fatalf("expected 356885714929, got (%q, %v)", id, ok)
	}
}

func TestParseItemIDFromURL_QueryVariant(t *testing.T) {
	t.Parallel()

	id, ok := extract.ParseItemIDFromURL("https://www.ebay.com/itm/123456?var=0&hash=abc")
	if !ok || id != "123456" {
		t.Fatalf("expected 123456, got (%q, %v)", id, ok)
	}
}

func TestParseItemIDFromURL_QueryStringIgnored(t *testing.T) {
	t.Parallel()

	// The marker only counts when it is in the path component.
	if _, ok := extract.ParseItemIDFromURL("https://www.ebay.com/home?next=/itm/999"); ok {
		t.Fatal("expected marker in query string to be ignored")
	}
}

func TestParseItemIDFromURL_RelativePath(t *testing.T) {
	t.Parallel()

	id, ok := extract.ParseItemIDFromURL("/itm/555")
	if !ok || id != "555" {
		t.Fatalf("expected 555, got (%q, %v)", id, ok)
	}
}

func TestParseItemIDFromURL_NoMarker(t *testing.T) {
	t.Parallel()

	for _, href := range []string{"", "https://www.ebay.com/usr/seller", "/itm/"} {
		if _, ok := extract.ParseItemIDFromURL(href); ok {
			t.Fatalf("expected no item id in %q", href)
		}
	}
}

// ---------- ParseOrderShort tests ----------

func TestParseOrderShort_Valid(t *testing.T) {
	t.Parallel()

	short, ok := extract.ParseOrderShort("27-13984-70927")
	if !ok || short != "13984-70927" {
		t.Fatalf("expected 13984-70927, got (%q, %v)", short, ok)
	}
}

func TestParseOrderShort_SurroundingWhitespace(t *testing.T) {
	t.Parallel()

	short, ok := extract.ParseOrderShort("  27-13984-70927\n")
	if !ok || short != "13984-70927" {
		t.Fatalf("expected 13984-70927, got (%q, %v)", short, ok)
	}
}

func TestParseOrderShort_Invalid(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"",
		"27-13984",
		"271-3984-70927",
		"27-13984-709270",
		"ab-13984-70927",
		"order 27-13984-70927",
	}
	for _, text := range invalid {
		if _, ok := extract.ParseOrderShort(text); ok {
			t.Fatalf("expected %q to be rejected", text)
		}
	}
}
