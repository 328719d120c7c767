package domain

import (
	"context"
	"time"
)

// ServicePort defines the service contract for leads
type ServicePort interface {
	Upsert(ctx context.Context, lead Lead) (Lead, error)
	GetByTaskID(ctx context.Context, taskID string) (Lead, error)
	GetByCaseID(ctx context.Context, caseID string) (Lead, error)
	Search(ctx context.Context, in SearchInput) ([]SearchHit, error)
	RecentUpdates(ctx context.Context, since time.Time, limit int) ([]Lead, error)
}
