package listutil

import (
	"net/url"
	"testing"
)

// TestParsePageParams covers defaults, clamping and valid input.
func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name        string
		q           url.Values
		wantPage    int
		wantPerPage int
	}{
		{"defaults", url.Values{}, 1, DefaultPerPage},
		{"valid", url.Values{"page": {"3"}, "per_page": {"50"}}, 3, 50},
		{"negative page", url.Values{"page": {"-1"}}, 1, DefaultPerPage},
		{"garbage", url.Values{"page": {"two"}, "per_page": {"x"}}, 1, DefaultPerPage},
		{"per page capped", url.Values{"per_page": {"5000"}}, 1, MaxPerPage},
		{"odd per page accepted", url.Values{"per_page": {"25"}}, 1, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePageParams(tt.q)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("ParsePageParams() = %+v, want page %d per_page %d", p, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

// TestParseSortParams covers allowed columns, direction and the "-" shorthand.
func TestParseSortParams(t *testing.T) {
	allowed := []string{"email", "created_at"}
	tests := []struct {
		name     string
		q        url.Values
		wantSort string
		wantDir  string
	}{
		{"valid asc", url.Values{"sort": {"email"}, "dir": {"asc"}}, "email", "asc"},
		{"valid desc upper", url.Values{"sort": {"email"}, "dir": {"DESC"}}, "email", "desc"},
		{"disallowed column", url.Values{"sort": {"password_hash"}}, "", "asc"},
		{"invalid dir", url.Values{"sort": {"email"}, "dir": {"sideways"}}, "email", "asc"},
		{"minus prefix", url.Values{"sort": {"-created_at"}}, "created_at", "desc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseSortParams(tt.q, allowed)
			if s.Sort != tt.wantSort || s.Dir != tt.wantDir {
				t.Errorf("ParseSortParams() = %+v, want %s %s", s, tt.wantSort, tt.wantDir)
			}
		})
	}
}

// TestParseFilterParams keeps only recognised keys.
func TestParseFilterParams(t *testing.T) {
	q := url.Values{"q": {"  kim "}, "role": {"trainer"}, "status": {""}, "evil": {"1"}}
	fp := ParseFilterParams(q, []string{"role", "status"})
	if fp.Search != "kim" {
		t.Errorf("Search = %q, want kim", fp.Search)
	}
	if len(fp.Filters) != 1 || fp.Filters["role"] != "trainer" {
		t.Errorf("Filters = %v, want only role=trainer", fp.Filters)
	}
}

// TestNewPageInfo verifies page clamping and offsets.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name                 string
		page, perPage, total int
		wantPage, wantPages  int
		wantOffset           int
		wantNext             bool
	}{
		{"empty", 1, 20, 0, 1, 1, 0, false},
		{"first of three", 1, 10, 25, 1, 3, 0, true},
		{"last page", 3, 10, 25, 3, 3, 20, false},
		{"past the end clamps", 9, 10, 25, 3, 3, 20, false},
		{"zero page clamps", 0, 10, 25, 1, 3, 0, true},
		{"bad per page defaults", 1, 0, 45, 1, 3, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPageInfo(tt.page, tt.perPage, tt.total)
			if p.Page != tt.wantPage || p.TotalPages != tt.wantPages || p.Offset() != tt.wantOffset || p.HasNext != tt.wantNext {
				t.Errorf("NewPageInfo() = %+v offset %d", p, p.Offset())
			}
		})
	}
}
