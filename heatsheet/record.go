package heatsheet

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Field sub-patterns shared by both record kinds. Each printed field sits on
// its own line, in a fixed order, so the composite patterns below anchor on
// the line breaks the text extractor emits.
const (
	teamField    = `(?P<team>\w{1,5})-(?P<lsc>[A-Z]{2})`
	timeField    = `(?P<time>` + timePattern + `)`
	ageField     = ` (?P<age>\d+)`
	swimmerField = `(?P<swimmer>[A-Z]\w*,\s[A-Z]\w*\s[A-Z]?)`
	laneField    = `(?P<lane>[1-9])`
	letterField  = `(?P<letter>[A-Z])`
)

const (
	individualBody = teamField + `\n` + timeField + `\n` + ageField + `\n` + swimmerField + `\n` + laneField + `\n`
	relayBody      = letterField + `\n` + timeField + `\n` + teamField + `\n` + laneField + `\n`
)

// An IndividualSwim is one swimmer's entry: team, seed time, age, name,
// lane, and the cut code the seed time qualifies for, if any.
type IndividualSwim struct {
	Team    Team
	Swimmer string // "Last, First M"
	Age     string
	Time    string // mm:ss.hh or NT
	Lane    string // single digit 1-9
	CutCode string // empty when no cut code trails the record
}

// String renders the swim exactly as it appears in the extracted text, which
// is what the annotator searches the page for.
func (s IndividualSwim) String() string {
	out := s.Team.String() + "\n" + s.Time + "\n " + s.Age + "\n" + s.Swimmer + "\n" + s.Lane + "\n"
	if s.CutCode != "" {
		out += s.CutCode + "\n"
	}
	return out
}

// A RelaySwim is one relay entry: relay letter, seed time, team, lane, and
// an optional cut code.
type RelaySwim struct {
	Team    Team
	Letter  string // A-Z
	Time    string
	Lane    string
	CutCode string
}

func (s RelaySwim) String() string {
	out := s.Letter + "\n" + s.Time + "\n" + s.Team.String() + "\n" + s.Lane + "\n"
	if s.CutCode != "" {
		out += s.CutCode + "\n"
	}
	return out
}

// grammar holds the composite patterns for one document-scoped cut-code set:
// a scanning form for each record kind and an anchored form for parsing a
// single record string.
type grammar struct {
	individual     *regexp.Regexp
	individualFull *regexp.Regexp
	relay          *regexp.Regexp
	relayFull      *regexp.Regexp
}

var (
	grammarMu    sync.Mutex
	grammarCache = make(map[string]*grammar)
)

// cutTail builds the optional trailing cut-code alternation. Codes are
// spliced longest-first: matching is leftmost-first, and when one declared
// code is a prefix of another (say A and AAAA) the short code would
// otherwise truncate the match because the trailing newline is optional.
func cutTail(cuts []string) string {
	if len(cuts) == 0 {
		return ""
	}
	alts := make([]string, len(cuts))
	for i, cut := range cuts {
		alts[i] = regexp.QuoteMeta(cut)
	}
	sort.SliceStable(alts, func(i, j int) bool {
		return len(alts[i]) > len(alts[j])
	})
	return `(?:(?P<cut>` + strings.Join(alts, "|") + `)\n?)?`
}

// grammarFor compiles (or retrieves) the record grammars for a cut set.
// Compiled grammars are cached per document-scoped cut set, since every page
// of a document shares one.
func grammarFor(cuts []string) *grammar {
	key := strings.Join(cuts, "|")

	grammarMu.Lock()
	defer grammarMu.Unlock()
	if g, ok := grammarCache[key]; ok {
		return g
	}

	tail := cutTail(cuts)
	g := &grammar{
		individual:     regexp.MustCompile(individualBody + tail),
		individualFull: regexp.MustCompile(`^` + individualBody + tail + `$`),
		relay:          regexp.MustCompile(relayBody + tail),
		relayFull:      regexp.MustCompile(`^` + relayBody + tail + `$`),
	}
	grammarCache[key] = g
	return g
}

// group returns the named capture of a match, or "" when the group did not
// participate (the optional cut code).
func group(re *regexp.Regexp, m []string, name string) string {
	idx := re.SubexpIndex(name)
	if idx < 0 {
		return ""
	}
	return m[idx]
}

func individualFromMatch(re *regexp.Regexp, m []string) IndividualSwim {
	return IndividualSwim{
		Team:    Team{Code: group(re, m, "team"), LSC: group(re, m, "lsc")},
		Time:    group(re, m, "time"),
		Age:     group(re, m, "age"),
		Swimmer: group(re, m, "swimmer"),
		Lane:    group(re, m, "lane"),
		CutCode: group(re, m, "cut"),
	}
}

func relayFromMatch(re *regexp.Regexp, m []string) RelaySwim {
	return RelaySwim{
		Letter:  group(re, m, "letter"),
		Time:    group(re, m, "time"),
		Team:    Team{Code: group(re, m, "team"), LSC: group(re, m, "lsc")},
		Lane:    group(re, m, "lane"),
		CutCode: group(re, m, "cut"),
	}
}

// FindIndividualSwims scans one page of extracted text for every individual
// swim record, in match order. Text between records (headers, footers) is
// skipped; identical input always yields an identical sequence.
func FindIndividualSwims(text string, cuts []string) []IndividualSwim {
	g := grammarFor(cuts)
	ms := g.individual.FindAllStringSubmatch(text, -1)
	swims := make([]IndividualSwim, len(ms))
	for i, m := range ms {
		swims[i] = individualFromMatch(g.individual, m)
	}
	return swims
}

// FindRelaySwims scans one page of extracted text for every relay record.
func FindRelaySwims(text string, cuts []string) []RelaySwim {
	g := grammarFor(cuts)
	ms := g.relay.FindAllStringSubmatch(text, -1)
	swims := make([]RelaySwim, len(ms))
	for i, m := range ms {
		swims[i] = relayFromMatch(g.relay, m)
	}
	return swims
}

// ParseIndividualSwim parses exactly one individual record string, the
// inverse of IndividualSwim.String.
func ParseIndividualSwim(s string, cuts []string) (IndividualSwim, error) {
	g := grammarFor(cuts)
	m := g.individualFull.FindStringSubmatch(s)
	if m == nil {
		return IndividualSwim{}, &FormatError{Grammar: "individual swim", Text: s}
	}
	return individualFromMatch(g.individualFull, m), nil
}

// ParseRelaySwim parses exactly one relay record string, the inverse of
// RelaySwim.String.
func ParseRelaySwim(s string, cuts []string) (RelaySwim, error) {
	g := grammarFor(cuts)
	m := g.relayFull.FindStringSubmatch(s)
	if m == nil {
		return RelaySwim{}, &FormatError{Grammar: "relay swim", Text: s}
	}
	return relayFromMatch(g.relayFull, m), nil
}
