// Package parse turns a free form intake narrative into one structured record
//
// The orchestrator composes the extract and textkit primitives, it never
// returns an error, every step degrades to a nil field instead, and it holds
// no state across calls so concurrent use is safe
package parse

import (
	"strings"

	"caseflow/internal/core/extract"
	"caseflow/internal/core/textkit"
)

// Record maps field keys to extracted values, a nil value means the field
// was not found in otherwise real text, an empty Record means the input was
// placeholder garbage and nothing was attempted
type Record map[string]*string

// Recognized field keys, stable across releases since the persistence layer
// stores them by name
const (
	FieldFullName         = "full_name_extracted"
	FieldPhoneRaw         = "phone_raw"
	FieldPhoneNumber      = "phone_number"
	FieldEmail            = "email_extracted"
	FieldInterviewee      = "interviewee"
	FieldInterviewResult  = "interview_result"
	FieldInterviewType    = "interview_type"
	FieldMyCaseLink       = "mycase_link"
	FieldCaseType         = "case_type"
	FieldVideoCall        = "video_call"
	FieldAccidentLast2y   = "accident_last_2y"
	FieldRecordCriminal   = "record_criminal"
	FieldJointResidences  = "joint_residences"
	FieldEOIRPending      = "eoir_pending"
	FieldTVisaMinWage     = "tvisa_min_wage"
	FieldReferralFullName = "referral_full_name"
	FieldReferralPhone    = "referral_phone_number"
	FieldLocation         = "location"
	FieldMyCaseID         = "mycase_id"
	FieldInterviewOther   = "interview_other"
)

// Keys lists every recognized field in a stable order
var Keys = []string{
	FieldFullName,
	FieldPhoneRaw,
	FieldPhoneNumber,
	FieldEmail,
	FieldInterviewee,
	FieldInterviewResult,
	FieldInterviewType,
	FieldMyCaseLink,
	FieldCaseType,
	FieldVideoCall,
	FieldAccidentLast2y,
	FieldRecordCriminal,
	FieldJointResidences,
	FieldEOIRPending,
	FieldTVisaMinWage,
	FieldReferralFullName,
	FieldReferralPhone,
	FieldLocation,
	FieldMyCaseID,
	FieldInterviewOther,
}

// placeholders the originating system inserts instead of leaving the
// description truly empty, matched against the raw content
var placeholders = map[string]struct{}{
	"\n":        {},
	"\n\n \n\n": {},
	"/\n":       {},
	"/\n\n":     {},
}

// accidentLabel is long and literal, the intake form phrases the question
// verbatim including the doubled space after "haber"
const accidentLabel = "El cliente menciono haber  sufrido algún accidente como accidente vehicular, " +
	"mala praxis medica, accidentes en el trabajo, producto defectuoso, " +
	"resbalón y caida en algún establecimiento en los últimos 2 años?"

// lineFields maps record keys to the literal labels used on the intake form
// order mirrors the form layout, it has no semantic weight
var lineFields = []struct {
	key   string
	label string
}{
	{FieldFullName, "Name"},
	{FieldPhoneRaw, "Phone"},
	{FieldEmail, "Email"},
	{FieldInterviewee, "Interviewee"},
	{FieldInterviewResult, "Result of interview"},
	{FieldInterviewType, "Type of Interview"},
	{FieldMyCaseLink, "My Case link"},
	{FieldCaseType, "Tipo de caso"},
	{FieldVideoCall, "¿Fue videollamada?"},
	{FieldAccidentLast2y, accidentLabel},
	{FieldRecordCriminal, "Record Criminal"},
	{FieldJointResidences, "Cumple con Joint Residences (Hijos o Espos@s)"},
	{FieldEOIRPending, "Tiene cortes migratorias pendientes (EOIR)"},
	{FieldTVisaMinWage, "Si es Visa T cumple con el sueldo minimo"},
	{FieldReferralFullName, "Nombre completo del referido"},
}

// interviewOtherChain is the ordered strategy list for the interview_other
// field, evaluated in sequence, the first non empty result wins
var interviewOtherChain = []func(content string) string{
	func(c string) string {
		return extract.BlockUntil(c,
			"Other result of interview (optional, explain why it wasn't completed)",
			"Type of Interview")
	},
	func(c string) string {
		return extract.Line(c, "Proceso por el que califica")
	},
	func(c string) string {
		return extract.BlockUntil(c, "VAWA", "Type of Interview")
	},
}

// TaskContent parses the intake narrative into a Record
// placeholder garbage yields an empty Record, any other input yields a
// Record with every key present, nil where nothing was found
func TaskContent(content string) Record {
	if content == "" {
		return Record{}
	}
	if _, ok := placeholders[content]; ok {
		return Record{}
	}

	rec := make(Record, len(Keys))

	for _, f := range lineFields {
		rec.set(f.key, extract.Line(content, f.label))
	}

	rec.set(FieldLocation, extract.Location(content))
	rec.set(FieldMyCaseID, extract.CaseID(content))

	other := ""
	for _, strat := range interviewOtherChain {
		if other = strat(content); other != "" {
			break
		}
	}
	rec.set(FieldInterviewOther, other)

	// validated digit only phones sit alongside the raw captures
	rec.set(FieldPhoneNumber, textkit.CleanPhone(rec.get(FieldPhoneRaw)))
	rec.set(FieldReferralPhone, textkit.CleanPhone(extract.Line(content, "Telefono del referido")))

	// yes/no style answers compare lowercased downstream
	rec.lower(FieldVideoCall)
	rec.lower(FieldAccidentLast2y)

	return rec
}

// set stores v under key, "" becomes an explicit nil entry
func (r Record) set(key, v string) {
	if v == "" {
		r[key] = nil
		return
	}
	r[key] = &v
}

// get returns the value under key or "" when absent or nil
func (r Record) get(key string) string {
	if p, ok := r[key]; ok && p != nil {
		return *p
	}
	return ""
}

// lower lowercases the value under key in place when present
func (r Record) lower(key string) {
	if p := r[key]; p != nil {
		l := strings.ToLower(*p)
		r[key] = &l
	}
}
