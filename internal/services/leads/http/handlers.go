// Package http provides http transport for leads
package http

import (
	"context"
	stdhttp "net/http"
	"strconv"
	"time"

	"caseflow/internal/adapters/dispatch"
	"caseflow/internal/adapters/sheets"
	"caseflow/internal/adapters/tracker"
	"caseflow/internal/modkit/httpkit"
	perr "caseflow/internal/platform/errors"
	"caseflow/internal/platform/logger"
	"caseflow/internal/services/leads/domain"
	svc "caseflow/internal/services/leads/service"
)

// Register mounts lead read endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)
	httpkit.Get(r, "/recent", h.recent)
	httpkit.Get(r, "/case/{case_id}", h.byCaseID)
	httpkit.Get(r, "/{task_id}", h.byTaskID)
}

type handlers struct{ svc svc.Service }

// @Summary Fuzzy search leads by name
// @Tags Leads
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Query"
// @Success 200 {array} domain.SearchHit "ok"
// @Router /leads/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	if in.Limit == 0 {
		in.Limit = 10
	}
	return h.svc.Search(r.Context(), in)
}

// @Summary Leads updated after a cutoff
// @Tags Leads
// @Produce json
// @Param since query string false "RFC3339 cutoff, default 24h ago"
// @Param limit query int false "max rows, default 100"
// @Success 200 {array} domain.Lead "ok"
// @Router /leads/recent [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	since := time.Now().Add(-24 * time.Hour)
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, perr.InvalidArgf("since must be RFC3339")
		}
		since = t
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, perr.InvalidArgf("limit must be an integer")
		}
		limit = n
	}
	return h.svc.RecentUpdates(r.Context(), since, limit)
}

// @Summary Lead by case identifier
// @Tags Leads
// @Produce json
// @Param case_id path string true "8 digit case id"
// @Success 200 {object} domain.Lead "ok"
// @Router /leads/case/{case_id} [get]
func (h *handlers) byCaseID(r *stdhttp.Request) (any, error) {
	return h.svc.GetByCaseID(r.Context(), httpkit.Param(r, "case_id"))
}

// @Summary Lead by tracker task id
// @Tags Leads
// @Produce json
// @Param task_id path string true "tracker task id"
// @Success 200 {object} domain.Lead "ok"
// @Router /leads/{task_id} [get]
func (h *handlers) byTaskID(r *stdhttp.Request) (any, error) {
	return h.svc.GetByTaskID(r.Context(), httpkit.Param(r, "task_id"))
}

// WebhookDeps carries the collaborators the tracker webhook fans out to
// Dispatch and Sheets are optional, nil disables that leg
type WebhookDeps struct {
	Svc      svc.Service
	Tracker  *tracker.Client
	Dispatch *dispatch.Client
	Sheets   *sheets.Client

	// ListID restricts processing to one tracker list, empty accepts all
	ListID string
}

// webhookPayload is the minimal event shape, the task is always refetched
// so stale or partial webhook bodies cannot poison the cache
type webhookPayload struct {
	Event  string `json:"event" validate:"required"`
	TaskID string `json:"task_id" validate:"required"`
}

// RegisterWebhook mounts the tracker webhook receiver
// signature verification is applied by the module as route middleware
func RegisterWebhook(r httpkit.Router, d WebhookDeps) {
	h := &webhook{deps: d, log: *logger.Named("webhook")}
	httpkit.PostJSON[webhookPayload](r, "/tracker", h.handle)
}

type webhook struct {
	deps WebhookDeps
	log  logger.Logger
}

func (h *webhook) handle(r *stdhttp.Request, in webhookPayload) (any, error) {
	ctx := r.Context()

	if in.Event != "taskUpdated" && in.Event != "taskCreated" {
		return map[string]string{"status": "ignored", "reason": "event"}, nil
	}

	task, err := h.deps.Tracker.GetTask(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}

	if h.deps.ListID != "" && task.List.ID != h.deps.ListID {
		return map[string]string{"status": "ignored", "reason": "list"}, nil
	}

	if link := svc.LinkIntakeValue(task); link != "" {
		h.forward(ctx, task, link)
	}

	lead := svc.TransformTask(task)
	if comments, err := h.deps.Tracker.GetTaskComments(ctx, task.ID); err == nil {
		n := len(comments)
		lead.CommentCount = &n
	} else {
		h.log.Debug().Err(err).Str("task_id", task.ID).Msg("comment fetch failed")
	}

	stored, err := h.deps.Svc.Upsert(ctx, lead)
	if err != nil {
		return nil, err
	}

	return map[string]string{"status": "ok", "task_id": stored.TaskID}, nil
}

// forward runs the dispatch POST and the spreadsheet append
// both are best effort, a downstream outage must not fail the webhook
func (h *webhook) forward(ctx context.Context, task tracker.Task, link string) {
	if h.deps.Dispatch != nil && h.deps.Dispatch.Enabled() {
		p := dispatch.Payload{
			TaskID:      task.ID,
			TaskName:    task.Name,
			LinkIntake:  link,
			Status:      task.Status.Status,
			ListID:      task.List.ID,
			URL:         task.URL,
			DateCreated: task.DateCreated,
			DateUpdated: task.DateUpdated,
		}
		if err := h.deps.Dispatch.Send(ctx, p); err != nil {
			h.log.Warn().Err(err).Str("task_id", task.ID).Msg("dispatch failed")
		}
	}

	if h.deps.Sheets != nil {
		data := map[string]string{
			"task_id":      task.ID,
			"task_name":    task.Name,
			"link_intake":  link,
			"status":       task.Status.Status,
			"url":          task.URL,
			"date_created": task.DateCreated,
			"date_updated": task.DateUpdated,
		}
		if err := h.deps.Sheets.AppendRow(ctx, data); err != nil {
			h.log.Warn().Err(err).Str("task_id", task.ID).Msg("sheets append failed")
		}
	}
}
