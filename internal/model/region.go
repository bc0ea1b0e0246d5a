package model

import (
	"fmt"
	"strings"
)

// Region is a climate region. Each region carries a fixed average of
// peak sun hours per day, used as the insolation figure for every
// location inside it.
type Region int

const (
	RegionMediterranean Region = iota + 1
	RegionSoutheasternAnatolia
	RegionAegean
	RegionCentralAnatolia
	RegionEasternAnatolia
	RegionMarmara
	RegionBlackSea
)

type regionInfo struct {
	code     string
	label    string
	sunHours float64
}

var regions = [...]regionInfo{
	RegionMediterranean:        {"mediterranean", "Akdeniz", 5.5},
	RegionSoutheasternAnatolia: {"southeastern_anatolia", "Güneydoğu Anadolu", 5.2},
	RegionAegean:               {"aegean", "Ege", 5.0},
	RegionCentralAnatolia:      {"central_anatolia", "İç Anadolu", 4.8},
	RegionEasternAnatolia:      {"eastern_anatolia", "Doğu Anadolu", 4.6},
	RegionMarmara:              {"marmara", "Marmara", 4.0},
	RegionBlackSea:             {"black_sea", "Karadeniz", 3.8},
}

// Regions lists every region in declaration order.
func Regions() []Region {
	out := make([]Region, 0, len(regions)-1)
	for r := RegionMediterranean; r <= RegionBlackSea; r++ {
		out = append(out, r)
	}
	return out
}

func (r Region) Valid() bool {
	return r >= RegionMediterranean && r <= RegionBlackSea
}

// PeakSunHours returns the average daily peak sun hours (kWh/m²/day) of the region.
func (r Region) PeakSunHours() float64 {
	if !r.Valid() {
		return 0
	}
	return regions[r].sunHours
}

// Label is the local display name.
func (r Region) Label() string {
	if !r.Valid() {
		return ""
	}
	return regions[r].label
}

func (r Region) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Region(%d)", int(r))
	}
	return regions[r].code
}

// ParseRegion accepts the region code or its local label, case-insensitively.
func ParseRegion(s string) (Region, error) {
	s = strings.TrimSpace(s)
	for r := RegionMediterranean; r <= RegionBlackSea; r++ {
		if strings.EqualFold(s, regions[r].code) || strings.EqualFold(s, regions[r].label) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown region %q", s)
}

func (r Region) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid region %d", int(r))
	}
	return []byte(regions[r].code), nil
}

func (r *Region) UnmarshalText(b []byte) error {
	parsed, err := ParseRegion(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
