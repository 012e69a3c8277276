package heatsheet

import (
	"regexp"
	"sort"
)

// timePattern matches a seed or standard time: optional minutes, two-digit
// seconds, hundredths, or the "no time" marker.
const timePattern = `(?:(?:\d*:)?\d{2}\.\d{2}|NT)`

// A Cut is one qualifying time standard declared in an event header. The set
// of valid codes varies per meet, so it has to be discovered from the
// document before the record grammars can be finalized.
type Cut struct {
	Code string
	Time string
}

var (
	// A cut code with its optional same-line description. The description
	// separator must not cross a line break: an uppercase stroke name at the
	// end of the event line would otherwise absorb the first code/time pair.
	cutCodeBody = `(?P<code>[A-Z]+)(?:[ \t].*)?`

	// An event header: a "#<number>" event line, an optional sponsor line,
	// then zero or more code/time pairs. The pair repetition makes the
	// header pattern an over-approximation, so each candidate pair is
	// validated individually afterwards.
	eventHeaderPattern = regexp.MustCompile(
		`#\d+.*\n(?:Sponsor:.*\n)?(?:[A-Z]+(?:[ \t].*)?\n` + timePattern + `\n)*`)

	cutPairPattern = regexp.MustCompile(
		cutCodeBody + `\n(?P<time>` + timePattern + `)\n`)

	cutPairFull = regexp.MustCompile(
		`^` + cutCodeBody + `\n(?P<time>` + timePattern + `)\n$`)

	cutCodeIdx = cutPairFull.SubexpIndex("code")
	cutTimeIdx = cutPairFull.SubexpIndex("time")
)

// ParseCut parses a single "CODE [description]\ntime\n" pair.
func ParseCut(s string) (Cut, error) {
	m := cutPairFull.FindStringSubmatch(s)
	if m == nil {
		return Cut{}, &FormatError{Grammar: "cut", Text: s}
	}
	return Cut{Code: m[cutCodeIdx], Time: m[cutTimeIdx]}, nil
}

// FindCuts returns the cut codes declared in the event headers of one page
// of extracted text. A malformed candidate pair is skipped, not treated as a
// failure of the whole page.
func FindCuts(text string) []string {
	set := make(map[string]struct{})
	for _, header := range eventHeaderPattern.FindAllString(text, -1) {
		for _, pair := range cutPairPattern.FindAllString(header, -1) {
			cut, err := ParseCut(pair)
			if err != nil {
				continue
			}
			set[cut.Code] = struct{}{}
		}
	}

	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ExtractCuts unions the cut codes of all pages and returns them sorted and
// deduplicated. The valid set is document-scoped: a code declared on any
// page is accepted on every page.
func ExtractCuts(pageTexts []string) []string {
	set := make(map[string]struct{})
	for _, text := range pageTexts {
		for _, code := range FindCuts(text) {
			set[code] = struct{}{}
		}
	}

	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
