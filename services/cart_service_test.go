package services

import (
	"abbooks_server/structs/tables"
	"testing"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"25", 25, false},
		{" 3 ", 3, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
		{"+2", 2, false},
	}

	for _, tt := range tests {
		got, err := ParseQuantity(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseQuantity(%q) expected error, got %d", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseQuantity(%q) unexpected error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseQuantity(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCartTotal(t *testing.T) {
	book := func(priceCents int64) *tables.Product {
		return &tables.Product{PriceCents: priceCents}
	}

	tests := []struct {
		name  string
		items []tables.CartItem
		want  int64
	}{
		{
			name:  "empty cart",
			items: nil,
			want:  0,
		},
		{
			name: "single line",
			items: []tables.CartItem{
				{Quantity: 2, Product: book(1000)},
			},
			want: 2000,
		},
		{
			name: "multiple lines",
			items: []tables.CartItem{
				{Quantity: 2, Product: book(1000)},
				{Quantity: 1, Product: book(2550)},
				{Quantity: 3, Product: book(199)},
			},
			want: 2000 + 2550 + 597,
		},
		{
			name: "line without loaded product is skipped",
			items: []tables.CartItem{
				{Quantity: 5, Product: nil},
				{Quantity: 1, Product: book(500)},
			},
			want: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CartTotal(tt.items); got != tt.want {
				t.Errorf("CartTotal() = %d, want %d", got, tt.want)
			}
		})
	}
}
