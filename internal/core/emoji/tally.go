package emoji

import "sort"

// Count is one entry of an emoji tally.
type Count struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// Tally counts match units and returns the n most frequent.
// Ordering is by descending count; ties keep first-appearance order.
// n <= 0 keeps every entry. The result is never nil.
func Tally(units []string, n int) []Count {
	counts := make([]Count, 0, len(units))
	index := make(map[string]int, len(units))

	for _, unit := range units {
		if unit == "" {
			continue
		}
		if i, ok := index[unit]; ok {
			counts[i].Count++
			continue
		}
		index[unit] = len(counts)
		counts = append(counts, Count{Emoji: unit, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// TallyText extracts and tallies the emoji in text in one step.
func TallyText(text string, n int) []Count {
	return Tally(Extract(text), n)
}
