package model

import "sort"

// OtherMetro is the catch-all bucket for listings that match no known metro.
const OtherMetro = "Other"

// Digest is the output of one pipeline run: accepted listings grouped by metro,
// each bucket ordered by descending score.
type Digest struct {
	Buckets  map[string][]Classified
	Filtered int // new listings rejected by the relevance filter
	Queries  int // provider queries issued
}

// NewDigest returns an empty digest.
func NewDigest() *Digest {
	return &Digest{Buckets: make(map[string][]Classified)}
}

// Total returns the number of accepted listings across all buckets.
func (d *Digest) Total() int {
	n := 0
	for _, b := range d.Buckets {
		n += len(b)
	}
	return n
}

// OrderedMetros returns bucket labels in presentation order: the priority metro
// first, the rest alphabetically, and OtherMetro last. Empty buckets are skipped.
func (d *Digest) OrderedMetros(priority string) []string {
	var rest []string
	for m, b := range d.Buckets {
		if len(b) == 0 || m == priority || m == OtherMetro {
			continue
		}
		rest = append(rest, m)
	}
	sort.Strings(rest)

	var out []string
	if len(d.Buckets[priority]) > 0 {
		out = append(out, priority)
	}
	out = append(out, rest...)
	if priority != OtherMetro && len(d.Buckets[OtherMetro]) > 0 {
		out = append(out, OtherMetro)
	}
	return out
}
