// Package annotate locates the text regions of matched heat sheet records
// and applies annotations to them.
package annotate

import "fmt"

// Action selects the annotation applied to a matched record.
type Action int

const (
	Highlight Action = iota
	Underline
	Squiggly
	Strikeout
	Frame
	Redact
	Remove
)

var actionNames = map[Action]string{
	Highlight: "Highlight",
	Underline: "Underline",
	Squiggly:  "Squiggly",
	Strikeout: "Strikeout",
	Frame:     "Frame",
	Redact:    "Redact",
	Remove:    "Remove",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction parses the CLI spelling of an action.
func ParseAction(s string) (Action, error) {
	for action, name := range actionNames {
		if name == s {
			return action, nil
		}
	}
	return Highlight, fmt.Errorf("unknown action %q", s)
}
