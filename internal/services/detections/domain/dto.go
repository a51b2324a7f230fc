package domain

import "context"

// RecentInput is the input for the recent detections listing
type RecentInput struct {
	Platform string `json:"platform,omitempty" validate:"omitempty,min=1,max=100" example:"jademarket"`
	Category string `json:"category,omitempty" validate:"omitempty,min=1,max=100" example:"ivory"`
	Level    string `json:"level,omitempty" validate:"omitempty,oneof=unrated low medium high critical" example:"high"`
	Review   *bool  `json:"requires_review,omitempty"`
	Limit    int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}

// Sample is one detection row shaped for the UI table
type Sample struct {
	ID           string   `json:"id"`
	DetectedAt   string   `json:"detected_at"`
	Platform     string   `json:"platform"`
	ThreatLevel  string   `json:"threat_level"`
	ThreatScore  *float64 `json:"threat_score,omitempty"`
	ListingPrice *float64 `json:"listing_price,omitempty"`
	Category     string   `json:"category,omitempty"`
	Review       bool     `json:"requires_review"`
	SearchTerm   string   `json:"search_term"`
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Recent(ctx context.Context, in RecentInput) ([]Sample, error)
}
