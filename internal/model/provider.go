package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProviderAdapter submits events to an external calendar service.
type ProviderAdapter interface {
	Name() string
	Submit(ctx context.Context, event ProviderEvent) (ProviderResult, error)
}

// ProviderEvent is the provider-neutral shape of an event being pushed out.
type ProviderEvent struct {
	InterviewID uuid.UUID
	Title       string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
}

// ProviderResult identifies the event on the provider side.
type ProviderResult struct {
	ExternalID string
	URL        string
}

// ProviderRegistry resolves provider tags to adapters.
type ProviderRegistry interface {
	Get(name string) (ProviderAdapter, error)
	Names() []string
}

// FeedDescriptor describes one way of getting interviews into a calendar.
type FeedDescriptor struct {
	Name          string
	Description   string
	URL           string
	Status        string
	SupportedApps []string
}

// FeedDirectory lists available feeds and per-application setup hints.
type FeedDirectory struct {
	Feeds        map[string]FeedDescriptor
	Instructions map[string]string
}
