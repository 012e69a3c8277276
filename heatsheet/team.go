// Package heatsheet recovers structured race entries from the raw text
// stream of a swim-meet heat sheet PDF. The text carries no markup; records
// are recognized by positional regular grammars over exact line orderings.
package heatsheet

import (
	"fmt"
	"regexp"
)

// FormatError reports text that a grammar rejected. When it comes out of
// record decomposition it signals a mismatch between the scanner and the
// grammar, which is a programming fault, not an input condition.
type FormatError struct {
	Grammar string // which grammar rejected the text
	Text    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: text not formatted properly: %q", e.Grammar, e.Text)
}

// A Team as printed in heat sheets: a club code and the two-letter code of
// its Local Swimming Committee, joined by a dash.
type Team struct {
	Code string // 1-5 word characters, never contains a dash
	LSC  string // exactly two uppercase letters
}

var teamCodePattern = regexp.MustCompile(`^(\w{1,5})-([A-Z]{2})$`)

// ParseTeam parses a "CODE-LSC" token.
func ParseTeam(token string) (Team, error) {
	m := teamCodePattern.FindStringSubmatch(token)
	if m == nil {
		return Team{}, &FormatError{Grammar: "team code", Text: token}
	}
	return Team{Code: m[1], LSC: m[2]}, nil
}

func (t Team) String() string {
	return t.Code + "-" + t.LSC
}
