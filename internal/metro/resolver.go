// Package metro buckets listings into canonical metro labels by location text.
package metro

import (
	"strings"

	"github.com/amishk599/medalerts/internal/model"
)

// Resolver maps a listing's location to a metro label.
type Resolver struct {
	catalog []Metro
	byName  map[string][]string
}

// NewResolver returns a resolver over catalog (DefaultCatalog when empty).
// Aliases are lower-cased; empty aliases are dropped.
func NewResolver(catalog []Metro) *Resolver {
	if len(catalog) == 0 {
		catalog = DefaultCatalog
	}
	r := &Resolver{byName: make(map[string][]string, len(catalog))}
	for _, m := range catalog {
		aliases := make([]string, 0, len(m.Aliases))
		for _, a := range m.Aliases {
			if a = strings.ToLower(a); a != "" {
				aliases = append(aliases, a)
			}
		}
		r.catalog = append(r.catalog, Metro{Name: m.Name, Aliases: aliases})
		r.byName[m.Name] = aliases
	}
	return r
}

// Catalog returns the metros in match order.
func (r *Resolver) Catalog() []Metro {
	return r.catalog
}

// Resolve returns the metro bucket for a listing that was returned by a search
// for queried. A location naming the queried metro stays there; a location
// naming another known metro moves to it; remote locations stay with the
// queried metro; everything else goes to model.OtherMetro.
func (r *Resolver) Resolve(l model.Listing, queried string) string {
	loc := strings.ToLower(l.Location)

	if aliases, ok := r.byName[queried]; ok && containsAny(loc, aliases) {
		return queried
	}
	for _, m := range r.catalog {
		if containsAny(loc, m.Aliases) {
			return m.Name
		}
	}
	if containsAny(loc, RemoteMarkers) {
		return queried
	}
	return model.OtherMetro
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
