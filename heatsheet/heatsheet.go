package heatsheet

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/swimtools/heatsheet/pdf"
)

// Max goroutines extracting page text from one document.
const maxExtractWorkers = 8

// A HeatSheet owns an open heat sheet document and lazily computes its
// record collections. Teams, cuts and swims are memoized; reopening the same
// path keeps the caches, opening a different path drops all of them.
type HeatSheet struct {
	path string
	doc  *pdf.Document

	pageTexts  []string
	cuts       []string
	teams      []string
	individual []IndividualSwim
	relay      []RelaySwim

	// Empty results are valid, so cache hits are tracked separately.
	haveTexts bool
	haveCuts  bool
	haveTeams bool
	haveInd   bool
	haveRel   bool
}

// Open opens the heat sheet at path.
func Open(path string) (*HeatSheet, error) {
	h := &HeatSheet{}
	if err := h.Reopen(path); err != nil {
		return nil, err
	}
	return h, nil
}

// Reopen points the heat sheet at path, replacing the current document
// handle. The memoized collections survive a reopen of the same path and
// are invalidated atomically when the path changes.
func (h *HeatSheet) Reopen(path string) error {
	if h.path != path {
		h.path = path
		h.pageTexts = nil
		h.cuts = nil
		h.teams = nil
		h.individual = nil
		h.relay = nil
		h.haveTexts = false
		h.haveCuts = false
		h.haveTeams = false
		h.haveInd = false
		h.haveRel = false
	}

	if h.doc != nil {
		h.doc.Close()
		h.doc = nil
	}
	doc, err := pdf.Open(path)
	if err != nil {
		return err
	}
	h.doc = doc
	return nil
}

func (h *HeatSheet) Close() {
	if h.doc != nil {
		h.doc.Close()
		h.doc = nil
	}
}

// Path of the currently opened document.
func (h *HeatSheet) Path() string { return h.path }

// NumPages of the currently opened document, zero when the handle is closed.
func (h *HeatSheet) NumPages() int {
	if h.doc == nil {
		return 0
	}
	return h.doc.NumPages
}

// PageTexts extracts the text of every page, in page order. Extraction runs
// on a bounded worker pool; results land in an index-addressed slice, so the
// order is deterministic regardless of scheduling.
func (h *HeatSheet) PageTexts() ([]string, error) {
	if h.haveTexts {
		return h.pageTexts, nil
	}
	if h.doc == nil {
		return nil, fmt.Errorf("%s is not open", h.path)
	}

	texts := make([]string, h.doc.NumPages)

	var g errgroup.Group
	g.SetLimit(maxExtractWorkers)
	for i := 0; i < h.doc.NumPages; i++ {
		i := i
		g.Go(func() error {
			page := h.doc.GetPage(i)
			if page == nil {
				return fmt.Errorf("unable to get page %d of %s", i, h.path)
			}
			defer page.Close()

			texts[i] = page.Text()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	h.pageTexts = texts
	h.haveTexts = true
	return h.pageTexts, nil
}

// Cuts returns the qualifying cut codes declared anywhere in the document,
// sorted and deduplicated. The set is document-scoped: it is unioned across
// all pages before any page is parsed, so a record may carry a code declared
// under a different event.
func (h *HeatSheet) Cuts() ([]string, error) {
	if h.haveCuts {
		return h.cuts, nil
	}

	texts, err := h.PageTexts()
	if err != nil {
		return nil, err
	}

	h.cuts = ExtractCuts(texts)
	h.haveCuts = true
	return h.cuts, nil
}

// IndividualSwims returns every individual swim in document order: page
// order, then within-page match order.
func (h *HeatSheet) IndividualSwims() ([]IndividualSwim, error) {
	if h.haveInd {
		return h.individual, nil
	}

	texts, err := h.PageTexts()
	if err != nil {
		return nil, err
	}
	cuts, err := h.Cuts()
	if err != nil {
		return nil, err
	}

	var swims []IndividualSwim
	for _, text := range texts {
		swims = append(swims, FindIndividualSwims(text, cuts)...)
	}

	h.individual = swims
	h.haveInd = true
	return h.individual, nil
}

// RelaySwims returns every relay swim in document order.
func (h *HeatSheet) RelaySwims() ([]RelaySwim, error) {
	if h.haveRel {
		return h.relay, nil
	}

	texts, err := h.PageTexts()
	if err != nil {
		return nil, err
	}
	cuts, err := h.Cuts()
	if err != nil {
		return nil, err
	}

	var swims []RelaySwim
	for _, text := range texts {
		swims = append(swims, FindRelaySwims(text, cuts)...)
	}

	h.relay = swims
	h.haveRel = true
	return h.relay, nil
}

// Teams returns the sorted, deduplicated team codes of every swim in the
// document, individual and relay alike.
func (h *HeatSheet) Teams() ([]string, error) {
	if h.haveTeams {
		return h.teams, nil
	}

	individual, err := h.IndividualSwims()
	if err != nil {
		return nil, err
	}
	relay, err := h.RelaySwims()
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{})
	for _, swim := range individual {
		set[swim.Team.Code] = struct{}{}
	}
	for _, swim := range relay {
		set[swim.Team.Code] = struct{}{}
	}

	teams := make([]string, 0, len(set))
	for code := range set {
		teams = append(teams, code)
	}
	sort.Strings(teams)

	h.teams = teams
	h.haveTeams = true
	return h.teams, nil
}
