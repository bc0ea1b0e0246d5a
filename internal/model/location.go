package model

// Location is a city the calculator knows the climate of.
type Location struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Region Region `json:"region"`
}

// Insolation is the peak sun hours per day of the location's region.
func (l Location) Insolation() float64 {
	return l.Region.PeakSunHours()
}
