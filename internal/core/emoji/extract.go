// Package emoji contains the pure emoji extraction and tallying logic.
// This is part of the Functional Core - no I/O, only pure functions.
package emoji

import "regexp"

// DefaultTopN is the number of emoji kept per contact when no limit is configured.
const DefaultTopN = 5

// pattern matches maximal runs of code points inside the emoji ranges.
// ZWJ (U+200D) is outside every range, so joined sequences split at the joiner.
var pattern = regexp.MustCompile(`[` +
	`\x{1F600}-\x{1F64F}` + // emoticons
	`\x{1F300}-\x{1F5FF}` + // symbols & pictographs
	`\x{1F680}-\x{1F6FF}` + // transport & map
	`\x{1F1E0}-\x{1F1FF}` + // flags
	`\x{2702}-\x{27B0}` + // dingbats
	`\x{24C2}-\x{1F251}` + // enclosed characters
	`\x{1F900}-\x{1F9FF}` + // supplemental symbols & pictographs
	`\x{1FA00}-\x{1FA6F}` + // chess symbols
	`\x{1FA70}-\x{1FAFF}` + // symbols & pictographs extended-A
	`\x{2600}-\x{26FF}` + // miscellaneous symbols
	`\x{2700}-\x{27BF}` + // dingbats
	`\x{FE00}-\x{FE0F}` + // variation selectors
	`\x{1F000}-\x{1F02F}` + // mahjong tiles
	`\x{2300}-\x{23FF}` + // miscellaneous technical
	`\x{2764}\x{2665}\x{2763}` +
	`]+`)

// Extract returns every match unit in text, in order of appearance.
// A match unit is a maximal run of in-range code points, so adjacent emoji
// with nothing between them come back as a single unit.
func Extract(text string) []string {
	if text == "" {
		return nil
	}
	return pattern.FindAllString(text, -1)
}
