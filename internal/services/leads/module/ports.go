package module

import (
	"context"
	"time"

	leadsdom "caseflow/internal/services/leads/domain"
	leadssvc "caseflow/internal/services/leads/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptLeadsPort adapts the leads service to the domain port interface
type adaptLeadsPort struct{ svc leadssvc.Service }

// Upsert implements the domain ServicePort interface
func (a adaptLeadsPort) Upsert(ctx context.Context, lead leadsdom.Lead) (leadsdom.Lead, error) {
	return a.svc.Upsert(ctx, lead)
}

// GetByTaskID implements the domain ServicePort interface
func (a adaptLeadsPort) GetByTaskID(ctx context.Context, taskID string) (leadsdom.Lead, error) {
	return a.svc.GetByTaskID(ctx, taskID)
}

// GetByCaseID implements the domain ServicePort interface
func (a adaptLeadsPort) GetByCaseID(ctx context.Context, caseID string) (leadsdom.Lead, error) {
	return a.svc.GetByCaseID(ctx, caseID)
}

// Search implements the domain ServicePort interface
func (a adaptLeadsPort) Search(ctx context.Context, in leadsdom.SearchInput) ([]leadsdom.SearchHit, error) {
	return a.svc.Search(ctx, in)
}

// RecentUpdates implements the domain ServicePort interface
func (a adaptLeadsPort) RecentUpdates(ctx context.Context, since time.Time, limit int) ([]leadsdom.Lead, error) {
	return a.svc.RecentUpdates(ctx, since, limit)
}
