package validate_test

import (
	"testing"

	"kidzplay/internal/validate"
)

func TestEmail(t *testing.T) {
	for in, want := range map[string]bool{
		"a@x.com":         true,
		" a@x.com ":       true,
		"ann.lee@kidz.io": true,
		"":                false,
		"a@x":             false,
		"no-at.com":       false,
	} {
		if _, got := validate.Email(in); got != want {
			t.Errorf("Email(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLimit(t *testing.T) {
	for in, want := range map[string]int64{"": 20, "5": 5, " 7 ": 7, "0": 20, "-3": 20, "abc": 20} {
		if got := validate.Limit(in, 20); got != want {
			t.Errorf("Limit(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestSortOrder(t *testing.T) {
	for in, want := range map[string]int{"ascending": 1, "ASC": 1, "descending": -1, "desc": -1, "": 0, "price": 0} {
		if got := validate.SortOrder(in); got != want {
			t.Errorf("SortOrder(%q) = %d, want %d", in, got, want)
		}
	}
}
