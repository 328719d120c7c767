//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"caseflow/internal/platform/store"
	"caseflow/internal/services/leads/domain"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func sp(s string) *string { return &s }

func TestLeadsRepo_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "caseflow-repo-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	if err := EnsureSchema(ctx, st.PG); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// bootstrap must be rerunnable
	if err := EnsureSchema(ctx, st.PG); err != nil {
		t.Fatalf("EnsureSchema second run: %v", err)
	}

	r := NewPG().Bind(st.PG)

	t.Run("upsert insert and fetch", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		in := domain.Lead{
			TaskID:            "t1",
			MyCaseID:          sp("12345678"),
			TaskName:          sp("Juan Perez | 12345678"),
			Status:            sp("intake"),
			DateUpdated:       &now,
			DisplayName:       sp("Juan Perez"),
			SearchKey:         sp("JUAN PEREZ"),
			FullNameExtracted: sp("Juan Perez"),
			PhoneNumber:       sp("5551234567"),
		}
		got, err := r.Upsert(ctx, in)
		if err != nil {
			t.Fatalf("Upsert: %v", err)
		}
		if got.SyncedAt.IsZero() {
			t.Fatal("SyncedAt not set")
		}

		byTask, err := r.GetByTaskID(ctx, "t1")
		if err != nil {
			t.Fatalf("GetByTaskID: %v", err)
		}
		if byTask.PhoneNumber == nil || *byTask.PhoneNumber != "5551234567" {
			t.Fatalf("PhoneNumber = %v", byTask.PhoneNumber)
		}

		byCase, err := r.GetByCaseID(ctx, "12345678")
		if err != nil {
			t.Fatalf("GetByCaseID: %v", err)
		}
		if byCase.TaskID != "t1" {
			t.Fatalf("TaskID = %q", byCase.TaskID)
		}
	})

	t.Run("sparse update keeps mined fields", func(t *testing.T) {
		// second webhook delivery with an emptier narrative, metadata moves
		// forward but previously mined values must survive
		later := time.Now().UTC().Truncate(time.Second).Add(time.Hour)
		got, err := r.Upsert(ctx, domain.Lead{
			TaskID:      "t1",
			Status:      sp("screening"),
			DateUpdated: &later,
			DisplayName: sp("Juan Perez"),
			SearchKey:   sp("JUAN PEREZ"),
		})
		if err != nil {
			t.Fatalf("Upsert: %v", err)
		}
		if got.Status == nil || *got.Status != "screening" {
			t.Fatalf("Status = %v, want overwrite", got.Status)
		}
		if got.PhoneNumber == nil || *got.PhoneNumber != "5551234567" {
			t.Fatalf("PhoneNumber = %v, want preserved", got.PhoneNumber)
		}
		if got.MyCaseID == nil || *got.MyCaseID != "12345678" {
			t.Fatalf("MyCaseID = %v, want preserved", got.MyCaseID)
		}
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		if _, err := r.GetByTaskID(ctx, "nope"); err == nil {
			t.Fatal("expected error for missing row")
		}
	})

	t.Run("trigram search", func(t *testing.T) {
		seed := []domain.Lead{
			{TaskID: "s1", DisplayName: sp("Maria Lopez"), SearchKey: sp("MARIA LOPEZ")},
			{TaskID: "s2", DisplayName: sp("Mario Lopes"), SearchKey: sp("MARIO LOPES")},
			{TaskID: "s3", DisplayName: sp("Pedro Gomez"), SearchKey: sp("PEDRO GOMEZ")},
		}
		for _, l := range seed {
			if _, err := r.Upsert(ctx, l); err != nil {
				t.Fatalf("seed %s: %v", l.TaskID, err)
			}
		}

		hits, err := r.SearchByName(ctx, "MARIA LOPEZ", 10)
		if err != nil {
			t.Fatalf("SearchByName: %v", err)
		}
		if len(hits) == 0 {
			t.Fatal("expected at least one hit")
		}
		if hits[0].Lead.TaskID != "s1" {
			t.Fatalf("top hit = %s, want exact match first", hits[0].Lead.TaskID)
		}
		if hits[0].Similarity <= 0 {
			t.Fatalf("similarity = %f", hits[0].Similarity)
		}
		for i := 1; i < len(hits); i++ {
			if hits[i].Similarity > hits[i-1].Similarity {
				t.Fatal("hits not ordered by similarity")
			}
		}
		for _, h := range hits {
			if h.Lead.TaskID == "s3" {
				t.Fatal("dissimilar name matched")
			}
		}
	})

	t.Run("recent updates", func(t *testing.T) {
		since := time.Now().Add(-48 * time.Hour)
		leads, err := r.RecentUpdates(ctx, since, 10)
		if err != nil {
			t.Fatalf("RecentUpdates: %v", err)
		}
		// only t1 has date_updated set
		if len(leads) != 1 || leads[0].TaskID != "t1" {
			t.Fatalf("leads = %+v", leads)
		}
	})

	t.Run("count", func(t *testing.T) {
		n, err := r.Count(ctx)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if n != 4 {
			t.Fatalf("Count = %d, want 4", n)
		}
	})
}
