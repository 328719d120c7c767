package extract

import "testing"

func TestLine(t *testing.T) {
	doc := "Name: Maria Jose\nPhone:  (555) 123-4567 \nTipo de caso:: VAWA\n¿Fue videollamada? : Si\nnot Name: hidden\n"

	cases := []struct {
		name  string
		label string
		want  string
	}{
		{"simple", "Name", "Maria Jose"},
		{"value squished", "Phone", "(555) 123-4567"},
		{"double colon", "Tipo de caso", "VAWA"},
		{"punctuated label", "¿Fue videollamada?", "Si"},
		{"label mid line ignored", "not a label", ""},
		{"missing", "Email", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Line(doc, tc.label); got != tc.want {
				t.Fatalf("Line(doc, %q) = %q, want %q", tc.label, got, tc.want)
			}
		})
	}
}

func TestLineAnchoredAtLineStart(t *testing.T) {
	if got := Line("prefix Name: nope\n", "Name"); got != "" {
		t.Fatalf("mid-line label matched: %q", got)
	}
	if got := Line("prefix\nName: yes\n", "Name"); got != "yes" {
		t.Fatalf("line-start label missed: %q", got)
	}
}

func TestLineEscapesLabelMetacharacters(t *testing.T) {
	doc := "Cumple con Joint Residences (Hijos o Espos@s): Si\n"
	if got := Line(doc, "Cumple con Joint Residences (Hijos o Espos@s)"); got != "Si" {
		t.Fatalf("parenthesized label = %q, want %q", got, "Si")
	}
	// an unescaped "(...)" would still compile as a group and match too broadly
	if got := Line(doc, "Cumple con Joint Residences (Perros)"); got != "" {
		t.Fatalf("wrong label matched: %q", got)
	}
}

func TestBlockUntil(t *testing.T) {
	doc := "Other: first block\nline two\nType of Interview: phone\nOther: second block\nType of Interview: video\n"

	t.Run("captures multi line", func(t *testing.T) {
		got := BlockUntil(doc, "Other", "Type of Interview")
		want := "first block\nline two"
		if got != want {
			t.Fatalf("BlockUntil = %q, want %q", got, want)
		}
	})

	t.Run("non greedy stops at first end label", func(t *testing.T) {
		got := BlockUntil(doc, "Other", "Type of Interview")
		if got == "first block\nline two\nType of Interview: phone\nOther: second block" {
			t.Fatal("capture ran past the first end label")
		}
	})

	t.Run("end label not consumed", func(t *testing.T) {
		// the end label line must stay available for other extractors
		if got := Line(doc, "Type of Interview"); got != "phone" {
			t.Fatalf("Line on end label = %q, want %q", got, "phone")
		}
	})

	t.Run("missing end label yields nothing", func(t *testing.T) {
		if got := BlockUntil("Other: trailing text\nmore\n", "Other", "Type of Interview"); got != "" {
			t.Fatalf("unterminated block = %q, want empty", got)
		}
	})

	t.Run("carriage returns stripped", func(t *testing.T) {
		got := BlockUntil("Other: a\r\nb\r\nType of Interview: x\n", "Other", "Type of Interview")
		if got != "a\nb" {
			t.Fatalf("BlockUntil = %q, want %q", got, "a\nb")
		}
	})
}

func TestLocation(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"until blank line",
			"Location\n========\n123 Main St\nApt 4\n\ntrailing notes\n",
			"123 Main St\nApt 4",
		},
		{
			"until end of document",
			"notes\nLocation\n====\n456 Oak Ave",
			"456 Oak Ave",
		},
		{"no underline", "Location\n123 Main St\n", ""},
		{"absent", "Name: Maria\n", ""},
		{"empty body", "Location\n====\n\n\n", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Location(tc.in); got != tc.want {
				t.Fatalf("Location = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCaseID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"id line", "My Case ID: 87654321\n", "87654321"},
		{"id line case insensitive", "my case id: 87654321\n", "87654321"},
		{"id line with noise before colon", "My Case ID (portal): 87654321\n", "87654321"},
		{"url fallback", "see https://mycase.com/leads/11223344 for details\n", "11223344"},
		{"line wins over url", "My Case ID: 87654321\nhttps://mycase.com/leads/11223344\n", "87654321"},
		{"nine digits rejected", "My Case ID: 876543219\n", ""},
		{"seven digits rejected", "My Case ID: 8765432\n", ""},
		{"absent", "Name: Maria\n", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CaseID(tc.in); got != tc.want {
				t.Fatalf("CaseID = %q, want %q", got, tc.want)
			}
		})
	}
}
