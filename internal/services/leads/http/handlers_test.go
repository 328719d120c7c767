package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"caseflow/internal/adapters/dispatch"
	"caseflow/internal/adapters/tracker"
	"caseflow/internal/platform/logger"
	"caseflow/internal/services/leads/domain"
)

// fakeLeadsService records upserts and satisfies the leads service contract
type fakeLeadsService struct {
	upserts []domain.Lead
	err     error
}

func (f *fakeLeadsService) Upsert(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	if f.err != nil {
		return domain.Lead{}, f.err
	}
	f.upserts = append(f.upserts, lead)
	return lead, nil
}

func (f *fakeLeadsService) GetByTaskID(context.Context, string) (domain.Lead, error) {
	return domain.Lead{}, nil
}

func (f *fakeLeadsService) GetByCaseID(context.Context, string) (domain.Lead, error) {
	return domain.Lead{}, nil
}

func (f *fakeLeadsService) Search(context.Context, domain.SearchInput) ([]domain.SearchHit, error) {
	return nil, nil
}

func (f *fakeLeadsService) RecentUpdates(context.Context, time.Time, int) ([]domain.Lead, error) {
	return nil, nil
}

const trackerTaskJSON = `{
	"id": "t1",
	"name": "Juan Perez | Caso 12345678",
	"description": "Name: Juan Perez\nPhone: 555-123-4567\n",
	"status": {"status": "intake"},
	"list": {"id": "L1"},
	"url": "https://tracker.example.com/t/t1",
	"date_created": "1714521600000",
	"custom_fields": [
		{"name": "Link Intake", "type": "url", "value": "https://forms.example.com/i/9"}
	]
}`

// stubTracker serves the refetch and comments endpoints and counts hits
func stubTracker(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	mux := stdhttp.NewServeMux()
	mux.HandleFunc("/task/t1/comment", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = w.Write([]byte(`{"comments":[{"id":"c1","comment_text":"x"},{"id":"c2","comment_text":"y"}]}`))
	})
	mux.HandleFunc("/task/t1", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		*hits++
		_, _ = w.Write([]byte(trackerTaskJSON))
	})
	return httptest.NewServer(mux)
}

func newWebhook(deps WebhookDeps) *webhook {
	return &webhook{deps: deps, log: *logger.Named("webhook")}
}

func statusOf(t *testing.T, out any) map[string]string {
	t.Helper()
	m, ok := out.(map[string]string)
	if !ok {
		t.Fatalf("result type %T", out)
	}
	return m
}

func TestWebhookHappyPath(t *testing.T) {
	hits := 0
	srv := stubTracker(t, &hits)
	defer srv.Close()

	var sent *dispatch.Payload
	forward := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		var p dispatch.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("decode dispatch payload: %v", err)
		}
		sent = &p
		w.WriteHeader(stdhttp.StatusOK)
	}))
	defer forward.Close()

	fake := &fakeLeadsService{}
	h := newWebhook(WebhookDeps{
		Svc:      fake,
		Tracker:  tracker.NewClient(tracker.Options{BaseURL: srv.URL, Token: "tok"}),
		Dispatch: dispatch.New(dispatch.Options{URL: forward.URL}),
		ListID:   "L1",
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/webhooks/tracker", nil)
	out, err := h.handle(req, webhookPayload{Event: "taskUpdated", TaskID: "t1"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	m := statusOf(t, out)
	if m["status"] != "ok" || m["task_id"] != "t1" {
		t.Fatalf("result = %v", m)
	}
	if hits != 1 {
		t.Fatalf("task refetched %d times, want 1", hits)
	}

	if len(fake.upserts) != 1 {
		t.Fatalf("upserts = %d", len(fake.upserts))
	}
	lead := fake.upserts[0]
	if lead.TaskID != "t1" {
		t.Fatalf("TaskID = %q", lead.TaskID)
	}
	if lead.MyCaseID == nil || *lead.MyCaseID != "12345678" {
		t.Fatalf("MyCaseID = %v", lead.MyCaseID)
	}
	if lead.PhoneNumber == nil || *lead.PhoneNumber != "5551234567" {
		t.Fatalf("PhoneNumber = %v", lead.PhoneNumber)
	}
	if lead.CommentCount == nil || *lead.CommentCount != 2 {
		t.Fatalf("CommentCount = %v, want 2", lead.CommentCount)
	}

	if sent == nil {
		t.Fatal("qualifying task not dispatched")
	}
	if sent.TaskID != "t1" || sent.LinkIntake != "https://forms.example.com/i/9" {
		t.Fatalf("dispatch payload = %+v", sent)
	}
	if sent.DispatchID == "" {
		t.Fatal("dispatch id not assigned")
	}
}

func TestWebhookIgnoresUnknownEvent(t *testing.T) {
	hits := 0
	srv := stubTracker(t, &hits)
	defer srv.Close()

	fake := &fakeLeadsService{}
	h := newWebhook(WebhookDeps{
		Svc:     fake,
		Tracker: tracker.NewClient(tracker.Options{BaseURL: srv.URL, Token: "tok"}),
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/webhooks/tracker", nil)
	out, err := h.handle(req, webhookPayload{Event: "taskDeleted", TaskID: "t1"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	m := statusOf(t, out)
	if m["status"] != "ignored" || m["reason"] != "event" {
		t.Fatalf("result = %v", m)
	}
	if hits != 0 {
		t.Fatal("ignored event must not refetch")
	}
	if len(fake.upserts) != 0 {
		t.Fatal("ignored event must not upsert")
	}
}

func TestWebhookIgnoresOtherList(t *testing.T) {
	hits := 0
	srv := stubTracker(t, &hits)
	defer srv.Close()

	fake := &fakeLeadsService{}
	h := newWebhook(WebhookDeps{
		Svc:     fake,
		Tracker: tracker.NewClient(tracker.Options{BaseURL: srv.URL, Token: "tok"}),
		ListID:  "other-list",
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/webhooks/tracker", nil)
	out, err := h.handle(req, webhookPayload{Event: "taskCreated", TaskID: "t1"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	m := statusOf(t, out)
	if m["status"] != "ignored" || m["reason"] != "list" {
		t.Fatalf("result = %v", m)
	}
	if len(fake.upserts) != 0 {
		t.Fatal("filtered list must not upsert")
	}
}

func TestWebhookUpsertErrorSurfaces(t *testing.T) {
	hits := 0
	srv := stubTracker(t, &hits)
	defer srv.Close()

	fake := &fakeLeadsService{err: context.DeadlineExceeded}
	h := newWebhook(WebhookDeps{
		Svc:     fake,
		Tracker: tracker.NewClient(tracker.Options{BaseURL: srv.URL, Token: "tok"}),
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/webhooks/tracker", nil)
	if _, err := h.handle(req, webhookPayload{Event: "taskUpdated", TaskID: "t1"}); err == nil {
		t.Fatal("expected upsert error to surface")
	}
}
