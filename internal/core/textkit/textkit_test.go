package textkit

import "testing"

func TestSquish(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already clean", "Maria Jose", "Maria Jose"},
		{"runs and tabs", "  Maria \t Jose\n Perez  ", "Maria Jose Perez"},
		{"only whitespace", " \t\n ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Squish(tc.in); got != tc.want {
				t.Fatalf("Squish(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanPhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"formatted ten", "(555) 123-4567", "5551234567"},
		{"exactly ten", "5551234567", "5551234567"},
		{"exactly fifteen", "555123456789012", "555123456789012"},
		{"nine rejected", "555123456", ""},
		{"sixteen rejected", "5551234567890123", ""},
		{"letters stripped", "call 555.123.4567 now", "5551234567"},
		{"plus and spaces", "+1 555 123 4567", "15551234567"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanPhone(tc.in); got != tc.want {
				t.Fatalf("CleanPhone(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripOrdinalSuffix(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"date with comma", "May 21st, 2024", "May 21, 2024"},
		{"all suffixes", "1st 2nd 3rd 4th", "1 2 3 4"},
		{"uppercase suffix", "May 21ST 2024", "May 21 2024"},
		{"street also stripped", "3rd Street", "3 Street"},
		{"no digit anchor untouched", "first and last", "first and last"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripOrdinalSuffix(tc.in); got != tc.want {
				t.Fatalf("StripOrdinalSuffix(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
