package lib

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"War and Peace", "war-and-peace"},
		{"The Idiot", "the-idiot"},
		{"  Crime & Punishment  ", "crime-punishment"},
		{"1984", "1984"},
		{"Catch-22", "catch-22"},
		{"!!!", ""},
		{"", ""},
		{"Fahrenheit   451", "fahrenheit-451"},
		{"Война и мир", "voina-i-mir"},
		{"Преступление и наказание", "prestuplenie-i-nakazanie"},
		{"Мастер и Маргарита", "master-i-margarita"},
		{"Щит и меч", "shchit-i-mech"},
		{"Объект 217", "obekt-217"},
		{"Хождение по мукам", "khozhdenie-po-mukam"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
