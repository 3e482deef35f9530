package handlers

import "testing"

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 10, 35)
	if p.TotalPages != 4 {
		t.Fatalf("expected 4 pages for 35/10, got %d", p.TotalPages)
	}
	if !p.HasNextPage || !p.HasPrevPage {
		t.Fatalf("page 2 of 4 should have both neighbours: %+v", p)
	}

	first := BuildPagination(1, 10, 35)
	if first.HasPrevPage {
		t.Fatalf("first page should not have a previous page")
	}

	last := BuildPagination(4, 10, 35)
	if last.HasNextPage {
		t.Fatalf("last page should not have a next page")
	}
}

func TestBuildPagination_ExactMultiple(t *testing.T) {
	p := BuildPagination(3, 10, 30)
	if p.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 30/10, got %d", p.TotalPages)
	}
	if p.HasNextPage {
		t.Fatalf("page 3 of 3 should be the last page")
	}
}

func TestBuildPagination_Empty(t *testing.T) {
	p := BuildPagination(1, 10, 0)
	if p.TotalPages != 0 || p.HasNextPage || p.HasPrevPage {
		t.Fatalf("empty listing should have no pages: %+v", p)
	}
}

func TestBuildProductFilter(t *testing.T) {
	filter := BuildProductFilter("active", "kurtas", "linen")
	if filter["status"] != "active" {
		t.Fatalf("expected status filter, got %+v", filter)
	}
	if filter["category"] != "kurtas" {
		t.Fatalf("expected category filter, got %+v", filter)
	}
	if _, ok := filter["$or"]; !ok {
		t.Fatalf("expected search clauses, got %+v", filter)
	}
}

func TestBuildProductFilter_NoOptionals(t *testing.T) {
	filter := BuildProductFilter("inactive", "", "")
	if len(filter) != 1 || filter["status"] != "inactive" {
		t.Fatalf("expected only a status clause, got %+v", filter)
	}
}
