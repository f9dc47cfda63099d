package gfa

import (
	"slices"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"10", "10", 0},
		{"s1", "s2", -1},
		{"s2", "s10", -1},
		{"a2", "a10", -1},
		{"a10", "b", -1},
		{"x", "x1", -1},
		{"18446744073709551616", "18446744073709551617", -1},
		{"99999999999999999999999", "100000000000000000000000", -1},
		{"7", "007", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestSortNames(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"Numeric", []string{"10", "2", "1"}, []string{"1", "2", "10"}},
		{"Prefixed", []string{"s10", "s2", "s1"}, []string{"s1", "s2", "s10"}},
		{"Mixed", []string{"b", "a10", "a2"}, []string{"a2", "a10", "b"}},
		{"DigitsFirst", []string{"n1", "3", "1"}, []string{"1", "3", "n1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Clone(tt.in)
			SortNames(got)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompareTransitive(t *testing.T) {
	names := []string{"1", "01", "a", "a1", "a01", "a1b", "b2", "b10", "10", "x9y", "x10y", ""}
	for _, a := range names {
		for _, b := range names {
			for _, c := range names {
				if Compare(a, b) <= 0 && Compare(b, c) <= 0 && Compare(a, c) > 0 {
					t.Errorf("not transitive: %q <= %q <= %q but %q > %q", a, b, c, a, c)
				}
			}
		}
	}
}
