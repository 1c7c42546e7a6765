// Package contact contains the pure ranking and name resolution logic for contacts.
// This is part of the Functional Core - no I/O, only pure functions.
package contact

import (
	"sort"
	"strings"
)

// Candidate is one per-identifier aggregate as reported by the message store.
type Candidate struct {
	Identifier string
	StoreName  string // Contact name known to the store (may be empty)
	Sent       int
	Received   int
	Total      int
}

// Policy carries the caller's ranking rules.
type Policy struct {
	Overrides   map[string]string // identifier -> display name, wins over StoreName
	Skip        map[string]bool   // identifiers never reported
	MustInclude map[string]bool   // identifiers appended after the cut when absent
	Limit       int               // <= 0 means no truncation
}

// Ranked is a resolved contact in output order.
type Ranked struct {
	Identifier  string
	DisplayName string
	Sent        int
	Received    int
	Total       int
	Overridden  bool // DisplayName came from Policy.Overrides
	Forced      bool // Appended by the must-include rule
}

// Rank orders candidates by total descending and applies the policy.
//
// Steps, in order: drop skipped identifiers, resolve display names,
// truncate to Limit, then append any must-include contact that fell
// below the cut. Ties keep the input order.
func Rank(candidates []Candidate, policy Policy) []Ranked {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Total > ordered[j].Total
	})

	full := make([]Ranked, 0, len(ordered))
	seen := make(map[string]bool, len(ordered))
	for _, c := range ordered {
		if c.Identifier == "" || policy.Skip[c.Identifier] || seen[c.Identifier] {
			continue
		}
		seen[c.Identifier] = true

		name, overridden := ResolveName(c.Identifier, c.StoreName, policy.Overrides)
		full = append(full, Ranked{
			Identifier:  c.Identifier,
			DisplayName: name,
			Sent:        c.Sent,
			Received:    c.Received,
			Total:       c.Total,
			Overridden:  overridden,
		})
	}

	result := full
	if policy.Limit > 0 && len(full) > policy.Limit {
		result = make([]Ranked, policy.Limit, policy.Limit+len(policy.MustInclude))
		copy(result, full[:policy.Limit])

		for _, r := range full[policy.Limit:] {
			if policy.MustInclude[r.Identifier] {
				r.Forced = true
				result = append(result, r)
			}
		}
	}
	return result
}

// ResolveName picks the display name for an identifier.
// Priority: explicit override, then store-reported name, then the identifier itself.
func ResolveName(identifier, storeName string, overrides map[string]string) (string, bool) {
	if name := strings.TrimSpace(overrides[identifier]); name != "" {
		return name, true
	}
	if name := strings.TrimSpace(storeName); name != "" {
		return name, false
	}
	return identifier, false
}

// Contains reports whether identifier appears in the ranked list.
func Contains(ranked []Ranked, identifier string) bool {
	for _, r := range ranked {
		if r.Identifier == identifier {
			return true
		}
	}
	return false
}

// SetOf builds a lookup set from a list of identifiers, ignoring blanks.
func SetOf(identifiers []string) map[string]bool {
	set := make(map[string]bool, len(identifiers))
	for _, id := range identifiers {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
