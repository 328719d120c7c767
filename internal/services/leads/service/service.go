// Package service contains the lead caching workflows
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"caseflow/internal/adapters/tracker"
	"caseflow/internal/core/normalize"
	"caseflow/internal/core/parse"
	"caseflow/internal/core/textkit"
	"caseflow/internal/modkit/repokit"
	perr "caseflow/internal/platform/errors"
	"caseflow/internal/services/leads/domain"
	"caseflow/internal/services/leads/repo"
)

// Custom field names as they appear on the tracker board
const (
	fieldPipeline    = "Pipeline de Viabilidad"
	fieldConsultDate = "Fecha Consulta Original"
	fieldTISOpen     = "TIS Open"
	fieldLinkIntake  = "Link Intake"
)

// Service defines the service contract for leads
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new leads service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("leads.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("leads.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Upsert stores one lead row
func (s *Svc) Upsert(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	return s.Repo.Upsert(ctx, lead)
}

// GetByTaskID fetches one lead by tracker task id
func (s *Svc) GetByTaskID(ctx context.Context, taskID string) (domain.Lead, error) {
	if taskID == "" {
		return domain.Lead{}, perr.InvalidArgf("task id required")
	}
	return s.Repo.GetByTaskID(ctx, taskID)
}

// GetByCaseID fetches one lead by its 8 digit case identifier
func (s *Svc) GetByCaseID(ctx context.Context, caseID string) (domain.Lead, error) {
	if caseID == "" {
		return domain.Lead{}, perr.InvalidArgf("case id required")
	}
	return s.Repo.GetByCaseID(ctx, caseID)
}

// Search runs a fuzzy name lookup, the query folds through the same
// normalizer used to build the stored search keys
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) ([]domain.SearchHit, error) {
	key := normalize.Name(in.Query)
	if len(key) < 2 {
		return nil, perr.InvalidArgf("search query too short after normalization")
	}
	return s.Repo.SearchByName(ctx, key, in.Limit)
}

// RecentUpdates lists leads whose tracker update time is after since
func (s *Svc) RecentUpdates(ctx context.Context, since time.Time, limit int) ([]domain.Lead, error) {
	return s.Repo.RecentUpdates(ctx, since, limit)
}

// TransformTask flattens a tracker task into a lead row, mining the
// narrative text for intake fields
func TransformTask(task tracker.Task) domain.Lead {
	display, caseID, searchKey := normalize.TaskName(task.Name)

	lead := domain.Lead{
		TaskID:      task.ID,
		TaskName:    ptr(task.Name),
		Status:      ptr(task.Status.Status),
		DateCreated: parseTrackerDate(task.DateCreated),
		DateUpdated: parseTrackerDate(task.DateUpdated),
		DueDate:     parseTrackerDate(task.DueDate),
		DisplayName: ptr(display),
		SearchKey:   ptr(searchKey),
		MyCaseID:    ptr(caseID),
	}
	if task.Priority != nil {
		lead.Priority = ptr(task.Priority.Priority)
	}
	if task.Creator != nil {
		lead.CreatedBy = ptr(task.Creator.Username)
	}
	if len(task.Assignees) > 0 {
		names := make([]string, 0, len(task.Assignees))
		for _, a := range task.Assignees {
			if a.Username != "" {
				names = append(names, a.Username)
			}
		}
		lead.Assignee = ptr(strings.Join(names, ", "))
	}

	for _, cf := range task.CustomFields {
		switch cf.Name {
		case fieldPipeline:
			lead.PipelineViability = ptr(cf.ValueString())
		case fieldConsultDate:
			lead.OriginalConsultDate = parseTrackerDate(cf.ValueString())
		case fieldTISOpen:
			v := cf.ValueBool()
			lead.TISOpen = &v
		}
	}

	content := task.Description
	if content == "" {
		content = task.TextContent
	}
	lead.TaskContent = ptr(content)

	rec := parse.TaskContent(content)
	lead.FullNameExtracted = rec[parse.FieldFullName]
	lead.PhoneRaw = rec[parse.FieldPhoneRaw]
	lead.PhoneNumber = rec[parse.FieldPhoneNumber]
	lead.EmailExtracted = rec[parse.FieldEmail]
	lead.Location = rec[parse.FieldLocation]
	lead.Interviewee = rec[parse.FieldInterviewee]
	lead.InterviewType = rec[parse.FieldInterviewType]
	lead.InterviewResult = rec[parse.FieldInterviewResult]
	lead.InterviewOther = rec[parse.FieldInterviewOther]
	lead.CaseType = rec[parse.FieldCaseType]
	lead.AccidentLast2y = rec[parse.FieldAccidentLast2y]
	lead.VideoCall = rec[parse.FieldVideoCall]
	lead.RecordCriminal = rec[parse.FieldRecordCriminal]
	lead.JointResidences = rec[parse.FieldJointResidences]
	lead.EOIRPending = rec[parse.FieldEOIRPending]
	lead.TVisaMinWage = rec[parse.FieldTVisaMinWage]
	lead.ReferralFullName = rec[parse.FieldReferralFullName]
	lead.ReferralPhone = rec[parse.FieldReferralPhone]
	lead.MyCaseLink = rec[parse.FieldMyCaseLink]

	// the task title is authoritative for the case id, the narrative backfills
	if lead.MyCaseID == nil {
		lead.MyCaseID = rec[parse.FieldMyCaseID]
	}

	return lead
}

// LinkIntakeValue returns the Link Intake custom field value, "" when unset
func LinkIntakeValue(task tracker.Task) string {
	for _, cf := range task.CustomFields {
		if cf.Name == fieldLinkIntake {
			return cf.ValueString()
		}
	}
	return ""
}

// dateLayouts are tried in order for textual tracker dates
var dateLayouts = []string{
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// parseTrackerDate handles the tracker's two date shapes, millisecond unix
// epochs sent as digit strings and human entered text with ordinal suffixes
func parseTrackerDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil
	}

	if isDigits(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil
		}
		t := time.UnixMilli(ms).UTC()
		return &t
	}

	clean := textkit.StripOrdinalSuffix(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ptr lifts a non empty string to a nullable column value
func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
