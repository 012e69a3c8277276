package annotate

import (
	"fmt"

	"github.com/swimtools/heatsheet/heatsheet"
	"github.com/swimtools/heatsheet/pdf"
)

// Underline and squiggly decorations are shifted down by this much so they
// sit below the glyph baseline instead of crossing it.
const baselineOffset = 2.0

// TeamStrings returns the canonical text of every swim belonging to team,
// relays first. A swim belongs to a team only on exact code equality.
func TeamStrings(individual []heatsheet.IndividualSwim, relay []heatsheet.RelaySwim, team string) []string {
	var matched []string
	for _, swim := range relay {
		if swim.Team.Code == team {
			matched = append(matched, swim.String())
		}
	}
	for _, swim := range individual {
		if swim.Team.Code == team {
			matched = append(matched, swim.String())
		}
	}
	return matched
}

// AnnotatePage annotates every occurrence of the given canonical record
// strings on the page and returns the number of records processed. Boxes are
// grouped per printed line and combined before dispatch, except for Redact,
// which covers every box individually (full coverage needs no grouping).
func AnnotatePage(page *pdf.Page, canonical []string, action Action) int {
	count := 0
	for _, val := range canonical {
		count++
		boxes := page.Search(val)

		if action == Redact {
			for _, box := range boxes {
				page.AddRedaction(box)
			}
			continue
		}

		for _, line := range GroupByLine(boxes) {
			annotateArea(page, Combine(line), action)
		}
	}
	return count
}

func annotateArea(page *pdf.Page, area pdf.Rect, action Action) {
	if action == Squiggly || action == Underline {
		area.Y0 += baselineOffset
		area.Y1 += baselineOffset
	}

	switch action {
	case Squiggly:
		page.AddSquiggly(area)
	case Underline:
		page.AddUnderline(area)
	case Strikeout:
		page.AddStrikeout(area)
	case Frame:
		page.AddFrame(area)
	default:
		page.AddHighlight(area)
	}
}

// PageSelected reports whether pg passes the page filter. An empty filter
// selects every page.
func PageSelected(pages []int, pg int) bool {
	if len(pages) == 0 {
		return true
	}
	for _, p := range pages {
		if p == pg {
			return true
		}
	}
	return false
}

// TeamPass runs one read-modify-save cycle for a single team: it opens its
// own document handle, annotates every matching record on the selected
// pages, saves the result to outPath and closes the handle. Zero matches
// still produce a saved copy. Returns the number of annotated swims.
func TeamPass(path, team string, cuts []string, pages []int, action Action, outPath string) (int, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer doc.Close()

	total := 0
	for pg := 0; pg < doc.NumPages; pg++ {
		if !PageSelected(pages, pg) {
			continue
		}

		n, err := annotateTeamPage(doc, pg, team, cuts, action)
		if err != nil {
			return total, err
		}
		total += n
	}

	if err := doc.Save(outPath); err != nil {
		return total, err
	}
	return total, nil
}

func annotateTeamPage(doc *pdf.Document, pg int, team string, cuts []string, action Action) (int, error) {
	page := doc.GetPage(pg)
	if page == nil {
		return 0, fmt.Errorf("unable to get page %d of %s", pg, doc.Path)
	}
	defer page.Close()

	text := page.Text()
	matched := TeamStrings(
		heatsheet.FindIndividualSwims(text, cuts),
		heatsheet.FindRelaySwims(text, cuts),
		team)
	if len(matched) == 0 {
		return 0, nil
	}
	return AnnotatePage(page, matched, action), nil
}

// RemoveAnnotations deletes every annotation on the selected pages and
// returns the number deleted. It operates purely on the document's
// annotation list; the grammar layer is not involved.
func RemoveAnnotations(doc *pdf.Document, pages []int) (int, error) {
	removed := 0
	for pg := 0; pg < doc.NumPages; pg++ {
		if !PageSelected(pages, pg) {
			continue
		}

		page := doc.GetPage(pg)
		if page == nil {
			return removed, fmt.Errorf("unable to get page %d of %s", pg, doc.Path)
		}
		removed += page.RemoveAnnotations()
		page.Close()
	}
	return removed, nil
}
