package service

import "testing"

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name      string
		requested string
		wantPage  int
		wantItems []int
	}{
		{name: "first", requested: "1", wantPage: 1, wantItems: []int{1, 2, 3}},
		{name: "middle", requested: "2", wantPage: 2, wantItems: []int{4, 5, 6}},
		{name: "last_partial", requested: "3", wantPage: 3, wantItems: []int{7}},
		{name: "not_a_number", requested: "abc", wantPage: 1, wantItems: []int{1, 2, 3}},
		{name: "empty", requested: "", wantPage: 1, wantItems: []int{1, 2, 3}},
		{name: "zero", requested: "0", wantPage: 1, wantItems: []int{1, 2, 3}},
		{name: "negative", requested: "-4", wantPage: 1, wantItems: []int{1, 2, 3}},
		{name: "beyond_last", requested: "9999", wantPage: 3, wantItems: []int{7}},
		{name: "overflow_positive", requested: "99999999999999999999", wantPage: 3, wantItems: []int{7}},
		{name: "overflow_negative", requested: "-99999999999999999999", wantPage: 1, wantItems: []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, 3, tt.requested)
			if got.Page != tt.wantPage {
				t.Fatalf("page want %d got %d", tt.wantPage, got.Page)
			}
			if got.TotalPages != 3 || got.Total != 7 || got.PageSize != 3 {
				t.Fatalf("unexpected meta: %+v", got)
			}
			if len(got.Items) != len(tt.wantItems) {
				t.Fatalf("items want %v got %v", tt.wantItems, got.Items)
			}
			for i := range tt.wantItems {
				if got.Items[i] != tt.wantItems[i] {
					t.Fatalf("items want %v got %v", tt.wantItems, got.Items)
				}
			}
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got := Paginate([]string{}, 10, "5")
	if got.Page != 1 || got.TotalPages != 1 || got.Total != 0 || len(got.Items) != 0 {
		t.Fatalf("unexpected empty page: %+v", got)
	}
}

func TestPaginateDoesNotAliasInput(t *testing.T) {
	items := []int{1, 2, 3}
	got := Paginate(items, 2, "1")
	got.Items[0] = 99
	if items[0] != 1 {
		t.Fatalf("page items should be a copy")
	}
}
