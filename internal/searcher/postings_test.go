package searcher

import (
	"reflect"
	"testing"
)

func TestIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b []uint32
		want []uint32
	}{
		{"overlap", []uint32{0, 1, 2, 5}, []uint32{1, 3, 5}, []uint32{1, 5}},
		{"disjoint", []uint32{0, 2}, []uint32{1, 3}, []uint32{}},
		{"identical", []uint32{1, 2}, []uint32{1, 2}, []uint32{1, 2}},
		{"left empty", nil, []uint32{1}, []uint32{}},
		{"right empty", []uint32{1}, nil, []uint32{}},
		{"subset", []uint32{1, 2, 3, 4}, []uint32{2, 3}, []uint32{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := intersect(tt.a, tt.b); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("intersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b []uint32
		want []uint32
	}{
		{"interleaved", []uint32{0, 2, 4}, []uint32{1, 3}, []uint32{0, 1, 2, 3, 4}},
		{"overlap deduplicated", []uint32{1, 2}, []uint32{2, 3}, []uint32{1, 2, 3}},
		{"left empty", nil, []uint32{1, 2}, []uint32{1, 2}},
		{"both empty", nil, nil, []uint32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := union(tt.a, tt.b); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("union(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b []uint32
		want []uint32
	}{
		{"removes common", []uint32{0, 1, 2, 3}, []uint32{1, 3}, []uint32{0, 2}},
		{"nothing removed", []uint32{0, 1}, []uint32{5}, []uint32{0, 1}},
		{"all removed", []uint32{1, 2}, []uint32{1, 2}, []uint32{}},
		{"left empty", nil, []uint32{1}, []uint32{}},
		{"right empty", []uint32{1, 2}, nil, []uint32{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := difference(tt.a, tt.b); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("difference(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
