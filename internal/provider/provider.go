// Package provider holds the calendar provider adapters the sync engine talks to.
package provider

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/jobsift/jobsift-server/internal/model"
)

const (
	Google  = "google"
	Outlook = "outlook"
)

var (
	_ model.ProviderAdapter  = (*MockAdapter)(nil)
	_ model.ProviderRegistry = (*Registry)(nil)
)

// MockAdapter derives a deterministic external id and URL without calling out.
type MockAdapter struct {
	name      string
	urlPrefix string
}

func NewMockAdapter(name, urlPrefix string) *MockAdapter {
	return &MockAdapter{
		name:      name,
		urlPrefix: urlPrefix,
	}
}

func NewGoogleAdapter() *MockAdapter {
	return NewMockAdapter(Google, "https://calendar.google.com/calendar/event?eid=")
}

func NewOutlookAdapter() *MockAdapter {
	return NewMockAdapter(Outlook, "https://outlook.live.com/calendar/0/item?itemid=")
}

func (a *MockAdapter) Name() string {
	return a.name
}

func (a *MockAdapter) Submit(ctx context.Context, event model.ProviderEvent) (model.ProviderResult, error) {
	if err := ctx.Err(); err != nil {
		return model.ProviderResult{}, err
	}

	externalID := fmt.Sprintf("%s_event_%s", a.name, event.InterviewID)
	return model.ProviderResult{
		ExternalID: externalID,
		URL:        a.urlPrefix + url.QueryEscape(externalID),
	}, nil
}

// Registry resolves provider tags to adapters.
type Registry struct {
	adapters map[string]model.ProviderAdapter
}

func NewRegistry(adapters ...model.ProviderAdapter) *Registry {
	r := &Registry{adapters: make(map[string]model.ProviderAdapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[strings.ToLower(a.Name())] = a
	}
	return r
}

// NewDefaultRegistry registers the mock google and outlook adapters.
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewGoogleAdapter(), NewOutlookAdapter())
}

// Get returns the adapter for name, matched case-insensitively.
func (r *Registry) Get(name string) (model.ProviderAdapter, error) {
	a, ok := r.adapters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedProvider, name)
	}
	return a, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for n := range r.adapters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
