package shopping

import "testing"

func TestNormalizeItemName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Milk", "milk"},
		{"  Milk (2%)  ", "milk 2"},
		{"Toilet-Paper!!", "toiletpaper"},
		{"eggs", "eggs"},
		{"Caffè", "caffè"},
	}

	for _, tt := range tests {
		if got := normalizeItemName(tt.in); got != tt.want {
			t.Errorf("normalizeItemName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestItemNamesSimilar(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "identical", a: "milk", b: "milk", want: true},
		{name: "substring", a: "milk", b: "milk 2", want: true},
		{name: "substring reversed", a: "whole milk", b: "milk", want: true},
		{name: "unrelated", a: "milk", b: "bread", want: false},
		{name: "short names must match exactly", a: "s", b: "soap", want: false},
		{name: "short names equal", a: "oj", b: "oj", want: true},
		{name: "partial overlap only", a: "milk chocolate", b: "chocolate milk", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := itemNamesSimilar(tt.a, tt.b); got != tt.want {
				t.Errorf("itemNamesSimilar(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
