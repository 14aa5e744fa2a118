package shared

import (
	"net/http/httptest"
	"testing"
)

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/things", nil)
	pag := ParsePagination(r, 100, 500)
	if pag.Limit != 100 || pag.Offset != 0 {
		t.Fatalf("expected 100/0, got %d/%d", pag.Limit, pag.Offset)
	}
}

func TestParsePaginationFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/things?limit=25&offset=50", nil)
	pag := ParsePagination(r, 100, 500)
	if pag.Limit != 25 || pag.Offset != 50 {
		t.Fatalf("expected 25/50, got %d/%d", pag.Limit, pag.Offset)
	}
}

func TestParsePaginationClampsToMax(t *testing.T) {
	r := httptest.NewRequest("GET", "/things?limit=9999", nil)
	pag := ParsePagination(r, 100, 500)
	if pag.Limit != 500 {
		t.Fatalf("expected limit clamped to 500, got %d", pag.Limit)
	}
}

func TestParsePaginationIgnoresBadValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/things?limit=abc&offset=-3", nil)
	pag := ParsePagination(r, 100, 500)
	if pag.Limit != 100 || pag.Offset != 0 {
		t.Fatalf("expected defaults on bad input, got %d/%d", pag.Limit, pag.Offset)
	}
}
