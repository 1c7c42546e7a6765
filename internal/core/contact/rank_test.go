package contact

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ids(ranked []Ranked) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Identifier)
	}
	return out
}

func TestRank_Ordering(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		policy     Policy
		expected   []string
	}{
		{
			name: "must-include appended when below the cut",
			candidates: []Candidate{
				{Identifier: "A", Total: 10},
				{Identifier: "B", Total: 10},
				{Identifier: "C", Total: 5},
			},
			policy:   Policy{Limit: 2, MustInclude: SetOf([]string{"C"})},
			expected: []string{"A", "B", "C"},
		},
		{
			name: "must-include already in the cut is not duplicated",
			candidates: []Candidate{
				{Identifier: "A", Total: 10},
				{Identifier: "C", Total: 7},
				{Identifier: "B", Total: 5},
			},
			policy:   Policy{Limit: 2, MustInclude: SetOf([]string{"C"})},
			expected: []string{"A", "C"},
		},
		{
			name: "must-include without messages is silently omitted",
			candidates: []Candidate{
				{Identifier: "A", Total: 10},
				{Identifier: "B", Total: 9},
			},
			policy:   Policy{Limit: 1, MustInclude: SetOf([]string{"Z"})},
			expected: []string{"A"},
		},
		{
			name: "sorts by total descending keeping input order on ties",
			candidates: []Candidate{
				{Identifier: "low", Total: 1},
				{Identifier: "tie-1", Total: 4},
				{Identifier: "high", Total: 9},
				{Identifier: "tie-2", Total: 4},
			},
			policy:   Policy{},
			expected: []string{"high", "tie-1", "tie-2", "low"},
		},
		{
			name: "skip-set removed before truncation",
			candidates: []Candidate{
				{Identifier: "spam", Total: 100},
				{Identifier: "A", Total: 10},
				{Identifier: "B", Total: 9},
				{Identifier: "C", Total: 8},
			},
			policy:   Policy{Limit: 2, Skip: SetOf([]string{"spam"})},
			expected: []string{"A", "B"},
		},
		{
			name: "skipped must-include never appears",
			candidates: []Candidate{
				{Identifier: "A", Total: 10},
				{Identifier: "B", Total: 9},
				{Identifier: "C", Total: 8},
			},
			policy: Policy{
				Limit:       1,
				Skip:        SetOf([]string{"C"}),
				MustInclude: SetOf([]string{"C"}),
			},
			expected: []string{"A"},
		},
		{
			name: "duplicate identifiers keep the first ranked entry",
			candidates: []Candidate{
				{Identifier: "A", Total: 10},
				{Identifier: "A", Total: 3},
				{Identifier: "B", Total: 5},
			},
			policy:   Policy{},
			expected: []string{"A", "B"},
		},
		{
			name:       "empty window",
			candidates: nil,
			policy:     Policy{Limit: 10, MustInclude: SetOf([]string{"A"})},
			expected:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Rank(tt.candidates, tt.policy))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Rank() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRank_ForcedFlagAndCounts(t *testing.T) {
	candidates := []Candidate{
		{Identifier: "A", Sent: 6, Received: 4, Total: 10},
		{Identifier: "B", Sent: 5, Received: 5, Total: 10},
		{Identifier: "C", StoreName: "Carol", Sent: 2, Received: 3, Total: 5},
	}

	got := Rank(candidates, Policy{Limit: 2, MustInclude: SetOf([]string{"C"})})
	if len(got) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(got))
	}

	last := got[2]
	expected := Ranked{Identifier: "C", DisplayName: "Carol", Sent: 2, Received: 3, Total: 5, Forced: true}
	if diff := cmp.Diff(expected, last); diff != "" {
		t.Errorf("forced contact mismatch (-want +got):\n%s", diff)
	}
	for _, r := range got[:2] {
		if r.Forced {
			t.Errorf("%s should not be marked forced", r.Identifier)
		}
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	candidates := []Candidate{
		{Identifier: "low", Total: 1},
		{Identifier: "high", Total: 9},
	}
	Rank(candidates, Policy{})
	if candidates[0].Identifier != "low" {
		t.Errorf("input slice was reordered: %v", candidates)
	}
}

func TestResolveName(t *testing.T) {
	overrides := map[string]string{"+15550001111": "Mom"}

	tests := []struct {
		name           string
		identifier     string
		storeName      string
		expectedName   string
		expectedForced bool
	}{
		{
			name:           "override wins over store name",
			identifier:     "+15550001111",
			storeName:      "Jane Doe",
			expectedName:   "Mom",
			expectedForced: true,
		},
		{
			name:         "store name when no override",
			identifier:   "friend@example.com",
			storeName:    "Friend",
			expectedName: "Friend",
		},
		{
			name:         "identifier as last resort",
			identifier:   "+15559998888",
			storeName:    "  ",
			expectedName: "+15559998888",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, overridden := ResolveName(tt.identifier, tt.storeName, overrides)
			if name != tt.expectedName {
				t.Errorf("ResolveName() name = %q, want %q", name, tt.expectedName)
			}
			if overridden != tt.expectedForced {
				t.Errorf("ResolveName() overridden = %v, want %v", overridden, tt.expectedForced)
			}
		})
	}
}

func TestRank_SkipSetNeverInOutput(t *testing.T) {
	candidates := []Candidate{
		{Identifier: "A", Total: 3},
		{Identifier: "B", Total: 2},
		{Identifier: "C", Total: 1},
	}
	skip := SetOf([]string{"B", "C"})

	got := Rank(candidates, Policy{Skip: skip, MustInclude: SetOf([]string{"B"})})
	for id := range skip {
		if Contains(got, id) {
			t.Errorf("skipped identifier %s present in output", id)
		}
	}
}

func TestSetOf(t *testing.T) {
	set := SetOf([]string{"a", " b ", "", "a"})
	expected := map[string]bool{"a": true, "b": true}
	if diff := cmp.Diff(expected, set); diff != "" {
		t.Errorf("SetOf() mismatch (-want +got):\n%s", diff)
	}
}
