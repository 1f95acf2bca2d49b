package model

// StatusInfo describes how an application status is presented.
type StatusInfo struct {
	Value ApplicationStatus
	Label string
	Color string
}

// WorkModeInfo describes how a work mode is presented.
type WorkModeInfo struct {
	Value WorkMode
	Label string
	Icon  string
}

// InterviewMetadata is the read-only presentation table served to clients.
type InterviewMetadata struct {
	Statuses   []StatusInfo
	WorkModes  []WorkModeInfo
	Currencies []string
}

var defaultMetadata = InterviewMetadata{
	Statuses: []StatusInfo{
		{Value: StatusApplied, Label: "Applied", Color: "blue"},
		{Value: StatusScreening, Label: "Screening", Color: "yellow"},
		{Value: StatusHRInterview, Label: "HR Interview", Color: "orange"},
		{Value: StatusTechInterview, Label: "Technical Interview", Color: "purple"},
		{Value: StatusManagerInterview, Label: "Manager Interview", Color: "indigo"},
		{Value: StatusOffer, Label: "Offer", Color: "green"},
		{Value: StatusRejected, Label: "Rejected", Color: "red"},
		{Value: StatusOnHold, Label: "On Hold", Color: "gray"},
	},
	WorkModes: []WorkModeInfo{
		{Value: WorkModeRemote, Label: "Remote", Icon: "🏠"},
		{Value: WorkModeHybrid, Label: "Hybrid", Icon: "🏢"},
		{Value: WorkModeOnsite, Label: "On-site", Icon: "🏬"},
	},
	Currencies: []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY", "CHF", "SEK", "NOK", "DKK"},
}

// DefaultMetadata returns a copy of the presentation table. Callers may not mutate the shared one.
func DefaultMetadata() InterviewMetadata {
	return InterviewMetadata{
		Statuses:   append([]StatusInfo(nil), defaultMetadata.Statuses...),
		WorkModes:  append([]WorkModeInfo(nil), defaultMetadata.WorkModes...),
		Currencies: append([]string(nil), defaultMetadata.Currencies...),
	}
}
