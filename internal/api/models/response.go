package models

import (
	"time"

	"solarsmart/internal/calculator"
	"solarsmart/internal/model"
)

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// LocationResponse is a location with its climate figures resolved.
type LocationResponse struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Region       string  `json:"region"`
	RegionLabel  string  `json:"region_label"`
	PeakSunHours float64 `json:"peak_sun_hours"`
}

func NewLocationResponse(l model.Location) LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		Slug:         l.Slug,
		Region:       l.Region.String(),
		RegionLabel:  l.Region.Label(),
		PeakSunHours: l.Insolation(),
	}
}

type LocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

type OrientationResponse struct {
	Code   string  `json:"code"`
	Label  string  `json:"label"`
	Factor float64 `json:"factor"`
}

type OrientationsResponse struct {
	Orientations []OrientationResponse `json:"orientations"`
}

// CalculateResponse is the result step of the wizard.
type CalculateResponse struct {
	Location  LocationResponse        `json:"location"`
	Result    model.CalculationResult `json:"result"`
	Settings  model.Settings          `json:"settings"`
	Breakdown *calculator.Breakdown   `json:"breakdown,omitempty"`
}

// CompareResponse holds one result per roof orientation.
type CompareResponse struct {
	Location   LocationResponse   `json:"location"`
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one orientation
type ComparisonResult struct {
	Orientation OrientationResponse      `json:"orientation"`
	Result      *model.CalculationResult `json:"result,omitempty"`
	Error       *ErrorDetail             `json:"error,omitempty"`
}

// RankResponse represents the response from ranking locations
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked location
type Ranking struct {
	Rank     int                      `json:"rank"`
	Location LocationResponse         `json:"location"`
	Result   *model.CalculationResult `json:"result,omitempty"`
	Error    *ErrorDetail             `json:"error,omitempty"`
}

type LeadsResponse struct {
	Leads []model.Lead `json:"leads"`
	Count int          `json:"count"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
