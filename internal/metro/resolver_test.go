package metro

import (
	"testing"

	"github.com/amishk599/medalerts/internal/model"
)

func at(location string) model.Listing {
	return model.Listing{Location: location}
}

func TestResolve(t *testing.T) {
	r := NewResolver(nil)
	tests := []struct {
		name     string
		location string
		queried  string
		want     string
	}{
		{"queried metro confirmed", "Naperville, IL", "Chicago, IL", "Chicago, IL"},
		{"rebucketed to better metro", "Plano, TX", "Chicago, IL", "Dallas, TX"},
		{"case insensitive", "HOUSTON, TX", "Houston, TX", "Houston, TX"},
		{"remote stays with queried", "Anywhere", "Boston, MA", "Boston, MA"},
		{"united states stays with queried", "United States", "Florida", "Florida"},
		{"unknown location goes to other", "Denver, CO", "Chicago, IL", model.OtherMetro},
		{"empty location goes to other", "", "Chicago, IL", model.OtherMetro},
		{"unknown queried metro still scans catalog", "Tampa, FL", "Atlanta, GA", "Florida"},
		{"remote with unknown queried metro", "Remote", "Atlanta, GA", "Atlanta, GA"},
		{"alias beats remote marker", "Remote - Chicago", "Dallas, TX", "Chicago, IL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(at(tt.location), tt.queried); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.location, tt.queried, got, tt.want)
			}
		})
	}
}

func TestResolve_QueriedMetroWinsOverCatalogOrder(t *testing.T) {
	// "Chicago" comes before "Dallas" in the catalog, but a location naming
	// both stays with the metro that was queried.
	r := NewResolver(nil)
	if got := r.Resolve(at("Chicago or Dallas"), "Dallas, TX"); got != "Dallas, TX" {
		t.Errorf("got %q, want Dallas, TX", got)
	}
	if got := r.Resolve(at("Chicago or Dallas"), "Boston, MA"); got != "Chicago, IL" {
		t.Errorf("got %q, want Chicago, IL (first in catalog)", got)
	}
}

func TestResolve_EveryAliasLandsInAKnownMetro(t *testing.T) {
	r := NewResolver(nil)
	known := make(map[string]bool)
	for _, m := range r.Catalog() {
		known[m.Name] = true
	}
	for _, m := range r.Catalog() {
		for _, a := range m.Aliases {
			for _, queried := range []string{m.Name, "Chicago, IL", "Nowhere"} {
				got := r.Resolve(at("Office in "+a), queried)
				if !known[got] {
					t.Errorf("alias %q queried %q resolved to %q, want a known metro", a, queried, got)
				}
			}
		}
	}
}

func TestNewResolver_CustomCatalog(t *testing.T) {
	r := NewResolver([]Metro{{Name: "Denver, CO", Aliases: []string{"Denver", "", "Boulder"}}})
	if got := r.Resolve(at("boulder, co"), "Chicago, IL"); got != "Denver, CO" {
		t.Errorf("got %q, want Denver, CO", got)
	}
	if got := r.Resolve(at("Chicago, IL"), "Chicago, IL"); got != model.OtherMetro {
		t.Errorf("default catalog should be replaced; got %q", got)
	}
	if n := len(r.Catalog()[0].Aliases); n != 2 {
		t.Errorf("empty alias not dropped: %d aliases", n)
	}
}
