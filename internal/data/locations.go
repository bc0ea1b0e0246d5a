package data

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"solarsmart/internal/model"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// catalogEntry is the on-disk shape of one location (YAML).
type catalogEntry struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	Slug   string `yaml:"slug,omitempty"`
	Region string `yaml:"region"`
}

type catalogFile struct {
	UpdatedAt string         `yaml:"updated_at,omitempty"`
	Locations []catalogEntry `yaml:"locations"`
}

// Provider answers climate lookups for known locations and orientations.
// It is immutable once built and safe for concurrent use.
type Provider struct {
	byID   map[int]model.Location
	bySlug map[string]model.Location
	sorted []model.Location
}

// NewProvider indexes locations. IDs and slugs must be unique; a missing slug
// is derived from the name.
func NewProvider(locations []model.Location) (*Provider, error) {
	if len(locations) == 0 {
		return nil, errors.New("location catalog is empty")
	}
	p := &Provider{
		byID:   make(map[int]model.Location, len(locations)),
		bySlug: make(map[string]model.Location, len(locations)),
		sorted: make([]model.Location, 0, len(locations)),
	}
	for _, loc := range locations {
		if loc.Name == "" {
			return nil, fmt.Errorf("location %d: name is required", loc.ID)
		}
		if !loc.Region.Valid() {
			return nil, fmt.Errorf("location %d (%s): invalid region", loc.ID, loc.Name)
		}
		if loc.Slug == "" {
			loc.Slug = slug.MakeLang(loc.Name, "tr")
		}
		if _, dup := p.byID[loc.ID]; dup {
			return nil, fmt.Errorf("duplicate location id %d", loc.ID)
		}
		if _, dup := p.bySlug[loc.Slug]; dup {
			return nil, fmt.Errorf("duplicate location slug %q", loc.Slug)
		}
		p.byID[loc.ID] = loc
		p.bySlug[loc.Slug] = loc
		p.sorted = append(p.sorted, loc)
	}
	sort.SliceStable(p.sorted, func(i, j int) bool {
		return p.sorted[i].Slug < p.sorted[j].Slug
	})
	return p, nil
}

var (
	defaultOnce     sync.Once
	defaultProvider *Provider
)

// Default returns the provider built from the embedded catalog.
func Default() *Provider {
	defaultOnce.Do(func() {
		p, err := ParseCatalog(defaultCatalog)
		if err != nil {
			panic(fmt.Sprintf("embedded location catalog: %v", err))
		}
		defaultProvider = p
	})
	return defaultProvider
}

// ParseCatalog builds a provider from catalog YAML.
func ParseCatalog(raw []byte) (*Provider, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse location catalog: %w", err)
	}
	locs := make([]model.Location, 0, len(f.Locations))
	for _, e := range f.Locations {
		region, err := model.ParseRegion(e.Region)
		if err != nil {
			return nil, fmt.Errorf("location %d (%s): %w", e.ID, e.Name, err)
		}
		locs = append(locs, model.Location{ID: e.ID, Name: e.Name, Slug: e.Slug, Region: region})
	}
	return NewProvider(locs)
}

// LoadLocations loads a location catalog from a YAML file.
func LoadLocations(path string) (*Provider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read location catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// SaveLocations writes the provider's catalog as YAML, creating parent directories.
func SaveLocations(p *Provider, path string, updatedAt string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f := catalogFile{UpdatedAt: updatedAt}
	for _, loc := range p.Locations() {
		f.Locations = append(f.Locations, catalogEntry{
			ID:     loc.ID,
			Name:   loc.Name,
			Slug:   loc.Slug,
			Region: loc.Region.String(),
		})
	}
	raw, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal location catalog: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write location catalog: %w", err)
	}
	return nil
}

// Location looks a location up by id.
func (p *Provider) Location(id int) (model.Location, error) {
	loc, ok := p.byID[id]
	if !ok {
		return model.Location{}, fmt.Errorf("location %d: %w", id, model.ErrNotFound)
	}
	return loc, nil
}

func (p *Provider) LocationBySlug(s string) (model.Location, error) {
	loc, ok := p.bySlug[s]
	if !ok {
		return model.Location{}, fmt.Errorf("location %q: %w", s, model.ErrNotFound)
	}
	return loc, nil
}

// Insolation returns the peak sun hours per day for the location's region.
func (p *Provider) Insolation(locationID int) (float64, error) {
	loc, err := p.Location(locationID)
	if err != nil {
		return 0, err
	}
	return loc.Insolation(), nil
}

// DirectionFactor is total over valid orientations; invalid values yield 0.
func (p *Provider) DirectionFactor(o model.Orientation) float64 {
	return o.Factor()
}

// Locations returns a copy of the catalog sorted by slug.
func (p *Provider) Locations() []model.Location {
	out := make([]model.Location, len(p.sorted))
	copy(out, p.sorted)
	return out
}
