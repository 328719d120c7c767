package repo

import (
	"context"

	"caseflow/internal/modkit/repokit"
	perr "caseflow/internal/platform/errors"
)

// schemaStatements create the leads cache table and its search indexes
// statements are idempotent so bootstrap can run on every start
var schemaStatements = []string{
	`create extension if not exists pg_trgm`,

	`create table if not exists leads_cache (
  task_id                 text primary key,
  id_mycase               text,
  mycase_link             text,
  task_name               text,
  status                  text,
  priority                text,
  created_by              text,
  assignee                text,
  date_created            timestamptz,
  date_updated            timestamptz,
  due_date                timestamptz,
  pipeline_de_viabilidad  text,
  fecha_consulta_original timestamptz,
  tis_open                boolean,
  nombre_clickup          text,
  nombre_normalizado      text,
  full_name_extracted     text,
  phone_raw               text,
  phone_number            text,
  email_extracted         text,
  location                text,
  interviewee             text,
  interview_type          text,
  interview_result        text,
  interview_other         text,
  case_type               text,
  accident_last_2y        text,
  video_call              text,
  record_criminal         text,
  joint_residences        text,
  eoir_pending            text,
  tvisa_min_wage          text,
  referral_full_name      text,
  referral_phone_number   text,
  task_content            text,
  comment_count           integer,
  synced_at               timestamptz not null default now()
)`,

	`create index if not exists idx_leads_cache_id_mycase on leads_cache (id_mycase)`,
	`create index if not exists idx_leads_cache_phone_number on leads_cache (phone_number)`,
	`create index if not exists idx_leads_cache_date_updated on leads_cache (date_updated desc)`,
	`create index if not exists idx_leads_cache_nombre_trgm on leads_cache using gin (nombre_normalizado gin_trgm_ops)`,
}

// EnsureSchema applies the leads cache DDL
// pg_trgm needs superuser or a preinstalled extension, failures surface as DB errors
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return perr.FromPostgres(err, "leads schema bootstrap")
		}
	}
	return nil
}
