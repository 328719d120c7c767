// Package repo provides postgres access for the leads cache
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"caseflow/internal/modkit/repokit"
	perr "caseflow/internal/platform/errors"
	"caseflow/internal/services/leads/domain"
)

// Repo defines the repository contract for leads
type Repo interface {
	Upsert(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	GetByTaskID(ctx context.Context, taskID string) (domain.Lead, error)
	GetByCaseID(ctx context.Context, caseID string) (domain.Lead, error)
	SearchByName(ctx context.Context, searchKey string, limit int) ([]domain.SearchHit, error)
	RecentUpdates(ctx context.Context, since time.Time, limit int) ([]domain.Lead, error)
	Count(ctx context.Context) (int64, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// leadColumns is the stable select list, scanLead must match it
const leadColumns = `
task_id, id_mycase, mycase_link, task_name, status, priority, created_by, assignee,
date_created, date_updated, due_date,
pipeline_de_viabilidad, fecha_consulta_original, tis_open,
nombre_clickup, nombre_normalizado,
full_name_extracted, phone_raw, phone_number, email_extracted, location,
interviewee, interview_type, interview_result, interview_other,
case_type, accident_last_2y, video_call,
record_criminal, joint_residences, eoir_pending, tvisa_min_wage,
referral_full_name, referral_phone_number,
task_content, comment_count, synced_at`

type rowScanner interface{ Scan(dest ...any) error }

func scanLead(r rowScanner) (domain.Lead, error) {
	var l domain.Lead
	err := r.Scan(
		&l.TaskID, &l.MyCaseID, &l.MyCaseLink, &l.TaskName, &l.Status, &l.Priority, &l.CreatedBy, &l.Assignee,
		&l.DateCreated, &l.DateUpdated, &l.DueDate,
		&l.PipelineViability, &l.OriginalConsultDate, &l.TISOpen,
		&l.DisplayName, &l.SearchKey,
		&l.FullNameExtracted, &l.PhoneRaw, &l.PhoneNumber, &l.EmailExtracted, &l.Location,
		&l.Interviewee, &l.InterviewType, &l.InterviewResult, &l.InterviewOther,
		&l.CaseType, &l.AccidentLast2y, &l.VideoCall,
		&l.RecordCriminal, &l.JointResidences, &l.EOIRPending, &l.TVisaMinWage,
		&l.ReferralFullName, &l.ReferralPhone,
		&l.TaskContent, &l.CommentCount, &l.SyncedAt,
	)
	return l, err
}

// Upsert inserts or updates one lead row keyed by task_id
// tracker metadata always overwrites, mined fields only overwrite with a
// non null value so a later sparse document cannot erase captured data
func (r *queries) Upsert(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	if lead.TaskID == "" {
		return domain.Lead{}, perr.InvalidArgf("task_id required for upsert")
	}
	sql := `
insert into leads_cache (` + leadColumns[1:] + `)
values (
  $1, $2, $3, $4, $5, $6, $7, $8,
  $9, $10, $11,
  $12, $13, $14,
  $15, $16,
  $17, $18, $19, $20, $21,
  $22, $23, $24, $25,
  $26, $27, $28,
  $29, $30, $31, $32,
  $33, $34,
  $35, $36, now()
)
on conflict (task_id) do update set
  id_mycase = coalesce(excluded.id_mycase, leads_cache.id_mycase),
  mycase_link = coalesce(excluded.mycase_link, leads_cache.mycase_link),
  task_name = excluded.task_name,
  status = excluded.status,
  priority = excluded.priority,
  created_by = excluded.created_by,
  assignee = excluded.assignee,
  date_created = excluded.date_created,
  date_updated = excluded.date_updated,
  due_date = excluded.due_date,
  pipeline_de_viabilidad = coalesce(excluded.pipeline_de_viabilidad, leads_cache.pipeline_de_viabilidad),
  fecha_consulta_original = coalesce(excluded.fecha_consulta_original, leads_cache.fecha_consulta_original),
  tis_open = coalesce(excluded.tis_open, leads_cache.tis_open),
  nombre_clickup = excluded.nombre_clickup,
  nombre_normalizado = excluded.nombre_normalizado,
  full_name_extracted = coalesce(excluded.full_name_extracted, leads_cache.full_name_extracted),
  phone_raw = coalesce(excluded.phone_raw, leads_cache.phone_raw),
  phone_number = coalesce(excluded.phone_number, leads_cache.phone_number),
  email_extracted = coalesce(excluded.email_extracted, leads_cache.email_extracted),
  location = coalesce(excluded.location, leads_cache.location),
  interviewee = coalesce(excluded.interviewee, leads_cache.interviewee),
  interview_type = coalesce(excluded.interview_type, leads_cache.interview_type),
  interview_result = coalesce(excluded.interview_result, leads_cache.interview_result),
  interview_other = coalesce(excluded.interview_other, leads_cache.interview_other),
  case_type = coalesce(excluded.case_type, leads_cache.case_type),
  accident_last_2y = coalesce(excluded.accident_last_2y, leads_cache.accident_last_2y),
  video_call = coalesce(excluded.video_call, leads_cache.video_call),
  record_criminal = coalesce(excluded.record_criminal, leads_cache.record_criminal),
  joint_residences = coalesce(excluded.joint_residences, leads_cache.joint_residences),
  eoir_pending = coalesce(excluded.eoir_pending, leads_cache.eoir_pending),
  tvisa_min_wage = coalesce(excluded.tvisa_min_wage, leads_cache.tvisa_min_wage),
  referral_full_name = coalesce(excluded.referral_full_name, leads_cache.referral_full_name),
  referral_phone_number = coalesce(excluded.referral_phone_number, leads_cache.referral_phone_number),
  task_content = coalesce(excluded.task_content, leads_cache.task_content),
  comment_count = coalesce(excluded.comment_count, leads_cache.comment_count),
  synced_at = now()
returning ` + leadColumns

	row := r.q.QueryRow(ctx, sql,
		lead.TaskID, lead.MyCaseID, lead.MyCaseLink, lead.TaskName, lead.Status, lead.Priority, lead.CreatedBy, lead.Assignee,
		lead.DateCreated, lead.DateUpdated, lead.DueDate,
		lead.PipelineViability, lead.OriginalConsultDate, lead.TISOpen,
		lead.DisplayName, lead.SearchKey,
		lead.FullNameExtracted, lead.PhoneRaw, lead.PhoneNumber, lead.EmailExtracted, lead.Location,
		lead.Interviewee, lead.InterviewType, lead.InterviewResult, lead.InterviewOther,
		lead.CaseType, lead.AccidentLast2y, lead.VideoCall,
		lead.RecordCriminal, lead.JointResidences, lead.EOIRPending, lead.TVisaMinWage,
		lead.ReferralFullName, lead.ReferralPhone,
		lead.TaskContent, lead.CommentCount,
	)
	out, err := scanLead(row)
	if err != nil {
		return domain.Lead{}, perr.FromPostgres(err, "leads upsert")
	}
	return out, nil
}

// GetByTaskID fetches one lead by its tracker task id
func (r *queries) GetByTaskID(ctx context.Context, taskID string) (domain.Lead, error) {
	sql := `select ` + leadColumns + ` from leads_cache where task_id = $1`
	out, err := scanLead(r.q.QueryRow(ctx, sql, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, perr.NotFoundf("lead %s not found", taskID)
		}
		return domain.Lead{}, perr.FromPostgres(err, "leads get by task id")
	}
	return out, nil
}

// GetByCaseID fetches one lead by its extracted 8 digit case identifier
func (r *queries) GetByCaseID(ctx context.Context, caseID string) (domain.Lead, error) {
	sql := `select ` + leadColumns + ` from leads_cache where id_mycase = $1`
	out, err := scanLead(r.q.QueryRow(ctx, sql, caseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, perr.NotFoundf("case %s not found", caseID)
		}
		return domain.Lead{}, perr.FromPostgres(err, "leads get by case id")
	}
	return out, nil
}

// SearchByName runs a trigram similarity search over the normalized name
// callers pass an already normalized search key, results order by score
func (r *queries) SearchByName(ctx context.Context, searchKey string, limit int) ([]domain.SearchHit, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	sql := `
select ` + leadColumns + `, similarity(nombre_normalizado, $1) as score
from leads_cache
where nombre_normalizado % $1
order by score desc
limit $2`
	rows, err := r.q.Query(ctx, sql, searchKey, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "leads search by name")
	}
	defer rows.Close()

	var out []domain.SearchHit
	for rows.Next() {
		var h domain.SearchHit
		err := rows.Scan(
			&h.Lead.TaskID, &h.Lead.MyCaseID, &h.Lead.MyCaseLink, &h.Lead.TaskName, &h.Lead.Status, &h.Lead.Priority,
			&h.Lead.CreatedBy, &h.Lead.Assignee,
			&h.Lead.DateCreated, &h.Lead.DateUpdated, &h.Lead.DueDate,
			&h.Lead.PipelineViability, &h.Lead.OriginalConsultDate, &h.Lead.TISOpen,
			&h.Lead.DisplayName, &h.Lead.SearchKey,
			&h.Lead.FullNameExtracted, &h.Lead.PhoneRaw, &h.Lead.PhoneNumber, &h.Lead.EmailExtracted, &h.Lead.Location,
			&h.Lead.Interviewee, &h.Lead.InterviewType, &h.Lead.InterviewResult, &h.Lead.InterviewOther,
			&h.Lead.CaseType, &h.Lead.AccidentLast2y, &h.Lead.VideoCall,
			&h.Lead.RecordCriminal, &h.Lead.JointResidences, &h.Lead.EOIRPending, &h.Lead.TVisaMinWage,
			&h.Lead.ReferralFullName, &h.Lead.ReferralPhone,
			&h.Lead.TaskContent, &h.Lead.CommentCount, &h.Lead.SyncedAt,
			&h.Similarity,
		)
		if err != nil {
			return nil, perr.FromPostgres(err, "leads search scan")
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// RecentUpdates lists leads updated after a cutoff, newest first
func (r *queries) RecentUpdates(ctx context.Context, since time.Time, limit int) ([]domain.Lead, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	sql := `
select ` + leadColumns + `
from leads_cache
where date_updated > $1
order by date_updated desc
limit $2`
	rows, err := r.q.Query(ctx, sql, since, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "leads recent updates")
	}
	defer rows.Close()

	var out []domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, perr.FromPostgres(err, "leads recent scan")
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Count returns the number of cached leads
func (r *queries) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `select count(*) from leads_cache`).Scan(&n); err != nil {
		return 0, perr.FromPostgres(err, "leads count")
	}
	return n, nil
}
