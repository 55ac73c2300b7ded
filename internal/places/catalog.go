// ABOUTME: Read-only destination catalog loaded from a YAML file
// ABOUTME: Provides search-as-you-type, exact lookup and nearest-place queries

package places

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no place matches.
var ErrNotFound = errors.New("place not found")

// ErrDuplicate is returned when two catalog entries share a name.
var ErrDuplicate = errors.New("duplicate place name")

// entry is a single place in the YAML file.
type entry struct {
	Name    string  `yaml:"name"`
	Lat     float64 `yaml:"lat"`
	Lng     float64 `yaml:"lng"`
	Address string  `yaml:"address,omitempty"`
}

// Catalog holds the known destinations, sorted by name.
type Catalog struct {
	places []*models.Place
	byName map[string]*models.Place
}

// Ranked is a place with its distance from a reference point.
type Ranked struct {
	Place    *models.Place
	Distance float64
}

// Load reads a catalog file. A missing file yields an empty catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil)
		}
		return nil, fmt.Errorf("read places: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse places: %w", err)
	}

	list := make([]*models.Place, 0, len(entries))
	for _, e := range entries {
		var address *string
		if e.Address != "" {
			a := e.Address
			address = &a
		}
		list = append(list, models.NewPlace(strings.TrimSpace(e.Name), e.Lat, e.Lng, address))
	}
	return New(list)
}

// New builds a catalog from places, validating names and coordinates.
func New(list []*models.Place) (*Catalog, error) {
	c := &Catalog{
		places: make([]*models.Place, 0, len(list)),
		byName: make(map[string]*models.Place, len(list)),
	}
	for _, p := range list {
		if err := models.ValidateName(p.Name); err != nil {
			return nil, fmt.Errorf("place %q: %w", p.Name, err)
		}
		if err := models.ValidateCoordinates(p.Latitude, p.Longitude); err != nil {
			return nil, fmt.Errorf("place %q: %w", p.Name, err)
		}
		key := normalize(p.Name)
		if _, ok := c.byName[key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, p.Name)
		}
		c.byName[key] = p
		c.places = append(c.places, p)
	}
	sort.Slice(c.places, func(i, j int) bool {
		return normalize(c.places[i].Name) < normalize(c.places[j].Name)
	})
	return c, nil
}

// Len returns the number of places.
func (c *Catalog) Len() int {
	return len(c.places)
}

// All returns every place sorted by name.
func (c *Catalog) All() []*models.Place {
	out := make([]*models.Place, len(c.places))
	copy(out, c.places)
	return out
}

// Get looks up a place by name, ignoring case and surrounding space.
func (c *Catalog) Get(name string) (*models.Place, error) {
	p, ok := c.byName[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, nil
}

// Search returns places whose name contains query, prefix matches first.
// A limit of 0 or less returns every match.
func (c *Catalog) Search(query string, limit int) []*models.Place {
	q := normalize(query)
	var prefix, contains []*models.Place
	for _, p := range c.places {
		name := normalize(p.Name)
		switch {
		case strings.HasPrefix(name, q):
			prefix = append(prefix, p)
		case strings.Contains(name, q):
			contains = append(contains, p)
		}
	}
	out := append(prefix, contains...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Nearest returns places ordered by distance from a point.
func (c *Catalog) Nearest(from geo.GeoPoint, limit int) []Ranked {
	out := make([]Ranked, len(c.places))
	for i, p := range c.places {
		out[i] = Ranked{Place: p, Distance: geo.DistanceMeters(from, p.Point())}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SearchNear returns places matching query, ordered by distance from a point.
// An empty query matches every place.
func (c *Catalog) SearchNear(query string, from geo.GeoPoint, limit int) []Ranked {
	matches := c.Search(query, 0)
	allowed := make(map[*models.Place]bool, len(matches))
	for _, p := range matches {
		allowed[p] = true
	}

	var out []Ranked
	for _, r := range c.Nearest(from, 0) {
		if !allowed[r.Place] {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Resolve turns a CLI argument into a destination.
// "lat,lng" literals become ad-hoc places; anything else is looked up by name.
func (c *Catalog) Resolve(arg string) (*models.Place, error) {
	if strings.Contains(arg, ",") {
		if p, err := models.ParsePoint(arg); err == nil {
			return models.NewPlace(p.String(), p.Lat, p.Lng, nil), nil
		}
	}
	return c.Get(arg)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
