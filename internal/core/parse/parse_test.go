package parse

import "testing"

func val(t *testing.T, rec Record, key string) string {
	t.Helper()
	p, ok := rec[key]
	if !ok {
		t.Fatalf("key %q missing from record", key)
	}
	if p == nil {
		t.Fatalf("key %q is nil", key)
	}
	return *p
}

func mustNil(t *testing.T, rec Record, key string) {
	t.Helper()
	p, ok := rec[key]
	if !ok {
		t.Fatalf("key %q missing from record", key)
	}
	if p != nil {
		t.Fatalf("key %q = %q, want nil", key, *p)
	}
}

func TestTaskContentGarbageGuard(t *testing.T) {
	for _, in := range []string{"", "\n", "\n\n \n\n", "/\n", "/\n\n"} {
		rec := TaskContent(in)
		if len(rec) != 0 {
			t.Fatalf("TaskContent(%q) = %d keys, want empty record", in, len(rec))
		}
	}
}

func TestTaskContentWhitespaceOnlyIsNotGarbage(t *testing.T) {
	rec := TaskContent("   ")
	if len(rec) != len(Keys) {
		t.Fatalf("whitespace-only input: %d keys, want %d", len(rec), len(Keys))
	}
	for _, k := range Keys {
		mustNil(t, rec, k)
	}
}

func TestTaskContentAllKeysPresent(t *testing.T) {
	rec := TaskContent("Name: Maria\n")
	if len(rec) != len(Keys) {
		t.Fatalf("record has %d keys, want %d", len(rec), len(Keys))
	}
	for _, k := range Keys {
		if _, ok := rec[k]; !ok {
			t.Fatalf("key %q missing", k)
		}
	}
}

func TestTaskContentPhones(t *testing.T) {
	rec := TaskContent("Phone: (555) 123-4567\nTelefono del referido: 555-987-6543\n")
	if got := val(t, rec, FieldPhoneRaw); got != "(555) 123-4567" {
		t.Fatalf("phone_raw = %q", got)
	}
	if got := val(t, rec, FieldPhoneNumber); got != "5551234567" {
		t.Fatalf("phone_number = %q", got)
	}
	if got := val(t, rec, FieldReferralPhone); got != "5559876543" {
		t.Fatalf("referral_phone_number = %q", got)
	}
}

func TestTaskContentPhoneTooShortGoesNil(t *testing.T) {
	rec := TaskContent("Phone: 555-1234\n")
	if got := val(t, rec, FieldPhoneRaw); got != "555-1234" {
		t.Fatalf("phone_raw = %q", got)
	}
	mustNil(t, rec, FieldPhoneNumber)
}

func TestTaskContentCaseID(t *testing.T) {
	t.Run("id line", func(t *testing.T) {
		rec := TaskContent("My Case ID: 87654321\n")
		if got := val(t, rec, FieldMyCaseID); got != "87654321" {
			t.Fatalf("mycase_id = %q", got)
		}
	})
	t.Run("url fallback", func(t *testing.T) {
		rec := TaskContent("link https://mycase.com/leads/11223344 here\n")
		if got := val(t, rec, FieldMyCaseID); got != "11223344" {
			t.Fatalf("mycase_id = %q", got)
		}
	})
}

func TestTaskContentYesNoLowercased(t *testing.T) {
	rec := TaskContent("¿Fue videollamada?: SI\n")
	if got := val(t, rec, FieldVideoCall); got != "si" {
		t.Fatalf("video_call = %q, want %q", got, "si")
	}
}

func TestTaskContentLocation(t *testing.T) {
	rec := TaskContent("Name: Ana\nLocation\n=====\n123 Main St\nApt 4\n\nmore\n")
	if got := val(t, rec, FieldLocation); got != "123 Main St\nApt 4" {
		t.Fatalf("location = %q", got)
	}
}

func TestInterviewOtherFallbackChain(t *testing.T) {
	t.Run("block strategy wins", func(t *testing.T) {
		doc := "Other result of interview (optional, explain why it wasn't completed): ran out of time\nsecond line\nType of Interview: phone\nProceso por el que califica: VAWA\n"
		rec := TaskContent(doc)
		if got := val(t, rec, FieldInterviewOther); got != "ran out of time\nsecond line" {
			t.Fatalf("interview_other = %q", got)
		}
	})

	t.Run("line fallback", func(t *testing.T) {
		doc := "Proceso por el que califica: U-Visa\n"
		rec := TaskContent(doc)
		if got := val(t, rec, FieldInterviewOther); got != "U-Visa" {
			t.Fatalf("interview_other = %q", got)
		}
	})

	t.Run("vawa block fallback", func(t *testing.T) {
		doc := "VAWA: details here\nType of Interview: video\n"
		rec := TaskContent(doc)
		if got := val(t, rec, FieldInterviewOther); got != "details here" {
			t.Fatalf("interview_other = %q", got)
		}
	})

	t.Run("nothing matches", func(t *testing.T) {
		rec := TaskContent("Name: Ana\n")
		mustNil(t, rec, FieldInterviewOther)
	})
}

func TestTaskContentFullDocument(t *testing.T) {
	doc := "Name: Maria José Pérez\n" +
		"Phone: (555) 123-4567\n" +
		"Email: maria@example.com\n" +
		"Interviewee: Maria\n" +
		"Result of interview: completed\n" +
		"Type of Interview: video\n" +
		"My Case link: https://mycase.com/leads/11223344\n" +
		"Tipo de caso: VAWA\n" +
		"¿Fue videollamada?: Si\n" +
		"Record Criminal: No\n" +
		"Location\n====\n123 Main St\n\n" +
		"My Case ID: 87654321\n"

	rec := TaskContent(doc)

	want := map[string]string{
		FieldFullName:        "Maria José Pérez",
		FieldPhoneRaw:        "(555) 123-4567",
		FieldPhoneNumber:     "5551234567",
		FieldEmail:           "maria@example.com",
		FieldInterviewee:     "Maria",
		FieldInterviewResult: "completed",
		FieldInterviewType:   "video",
		FieldMyCaseLink:      "https://mycase.com/leads/11223344",
		FieldCaseType:        "VAWA",
		FieldVideoCall:       "si",
		FieldRecordCriminal:  "No",
		FieldLocation:        "123 Main St",
		FieldMyCaseID:        "87654321",
	}
	for k, w := range want {
		if got := val(t, rec, k); got != w {
			t.Fatalf("%s = %q, want %q", k, got, w)
		}
	}

	for _, k := range []string{FieldJointResidences, FieldEOIRPending, FieldTVisaMinWage, FieldReferralFullName, FieldReferralPhone, FieldInterviewOther, FieldAccidentLast2y} {
		mustNil(t, rec, k)
	}
}
