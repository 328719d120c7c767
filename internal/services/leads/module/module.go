// Package module wires the leads vertical into the API using modkit
package module

import (
	"net/http"

	"caseflow/internal/adapters/dispatch"
	"caseflow/internal/adapters/sheets"
	"caseflow/internal/adapters/tracker"
	modkit "caseflow/internal/modkit"
	"caseflow/internal/modkit/httpkit"
	str "caseflow/internal/platform/strings"
	leadshttp "caseflow/internal/services/leads/http"
	leadsrepo "caseflow/internal/services/leads/repo"
	leadssvc "caseflow/internal/services/leads/service"
)

// Adapters groups the outbound collaborators the webhook leg fans out to
// Dispatch and Sheets may be nil, Verifier nil disables signature checks
// which is only acceptable in local development
type Adapters struct {
	Tracker  *tracker.Client
	Verifier *tracker.Verifier
	Dispatch *dispatch.Client
	Sheets   *sheets.Client

	ListID string
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc leadssvc.Service
	ads Adapters
}

// New constructs a leads module with the provided dependencies and options
func New(deps modkit.Deps, ads Adapters, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("leads"), modkit.WithPrefix("/leads")}, opts...)...)

	repo := leadsrepo.NewPG()
	svc := leadssvc.New(deps.PG, repo)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
		ads:       ads,
	}
	m.ports = adaptLeadsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		leadshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
// read endpoints mount under the module prefix, the webhook receiver mounts
// under /webhooks behind signature verification
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})

	r.Route("/webhooks", func(rr httpkit.Router) {
		if m.ads.Verifier != nil {
			rr.Use(httpkit.Signed(m.ads.Verifier))
		}
		leadshttp.RegisterWebhook(rr, leadshttp.WebhookDeps{
			Svc:      m.svc,
			Tracker:  m.ads.Tracker,
			Dispatch: m.ads.Dispatch,
			Sheets:   m.ads.Sheets,
			ListID:   m.ads.ListID,
		})
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Service exposes the bound service for sibling binaries
func (m *Module) Service() leadssvc.Service { return m.svc }
