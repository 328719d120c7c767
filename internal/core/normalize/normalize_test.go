package normalize

import "testing"

func TestName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Maria Jose", "MARIA JOSE"},
		{"diacritics folded", "López", "LOPEZ"},
		{"full accented name", "Maria José Pérez", "MARIA JOSE PEREZ"},
		{"punctuation dropped", "O'Brien-Smith, Jr.", "OBRIENSMITH JR"},
		{"digits kept", "Cliente 42", "CLIENTE 42"},
		{"whitespace squished", "  maria \t jose  ", "MARIA JOSE"},
		{"enye folded", "Muñoz", "MUNOZ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Name(tc.in); got != tc.want {
				t.Fatalf("Name(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNameIdempotent(t *testing.T) {
	inputs := []string{
		"Maria José Pérez",
		"López",
		"  odd   spacing  ",
		"ALREADY NORMAL 42",
		"",
	}
	for _, in := range inputs {
		once := Name(in)
		twice := Name(once)
		if once != twice {
			t.Fatalf("Name not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTaskName(t *testing.T) {
	cases := []struct {
		name        string
		in          string
		wantDisplay string
		wantID      string
		wantKey     string
	}{
		{
			"full title",
			"Maria José Pérez | Case 12345678 active",
			"Maria José Pérez", "12345678", "MARIA JOSE PEREZ",
		},
		{"no pipe", "Juan Gomez", "Juan Gomez", "", "JUAN GOMEZ"},
		{"pipe without id", "Juan Gomez | intake pending", "Juan Gomez", "", "JUAN GOMEZ"},
		{"nine digit run skipped", "Ana Ruiz | ref 123456789", "Ana Ruiz", "", "ANA RUIZ"},
		{"first eight digit run wins", "Ana Ruiz | 11111111 then 22222222", "Ana Ruiz", "11111111", "ANA RUIZ"},
		{"id only after pipe counts", "Ana 99887766 Ruiz", "Ana 99887766 Ruiz", "", "ANA 99887766 RUIZ"},
		{"empty", "", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			display, id, key := TaskName(tc.in)
			if display != tc.wantDisplay || id != tc.wantID || key != tc.wantKey {
				t.Fatalf("TaskName(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tc.in, display, id, key, tc.wantDisplay, tc.wantID, tc.wantKey)
			}
		})
	}
}
