package pdf

/*
#cgo pkg-config: glib-2.0 gio-2.0 poppler-glib
#cgo LDFLAGS: -pthread

#include <locale.h>
#include <poppler/glib/poppler.h>
#include <stdlib.h>

PopplerDocument *open_document(const char *filename, int *num_pages, char **err_msg){
	GFile* file = g_file_new_for_path(filename);
	if(file == NULL){
		return NULL;
	}

	GError* error = NULL;
	GBytes* bytes = g_file_load_bytes(file, NULL, NULL, &error);
	g_object_unref(file);

	if (error != NULL) {
		*err_msg = g_strdup(error->message);
		g_clear_error(&error);
		return NULL;
	}

	PopplerDocument *doc = poppler_document_new_from_bytes(bytes, NULL, &error);
	if (error) {
		*err_msg = g_strdup(error->message);
		g_clear_error(&error);
		g_bytes_unref(bytes);
		return NULL;
	}

	*num_pages = poppler_document_get_n_pages(doc);
	g_bytes_unref(bytes);
	return doc;
}

// Exact, case-sensitive substring search. The needle may span line breaks.
// Returns the number of hits; the caller owns *rects and frees it with g_free.
int search_page_text(PopplerPage *page, const char *needle, PopplerRectangle **rects){
	GList *hits = poppler_page_find_text_with_options(
		page, needle, POPPLER_FIND_CASE_SENSITIVE | POPPLER_FIND_MULTILINE);

	int n = g_list_length(hits);
	if (n == 0) {
		g_list_free(hits);
		*rects = NULL;
		return 0;
	}

	*rects = g_new(PopplerRectangle, n);
	int i = 0;
	for (GList *l = hits; l != NULL; l = l->next, i++) {
		(*rects)[i] = *(PopplerRectangle *)l->data;
	}
	g_list_free_full(hits, (GDestroyNotify)poppler_rectangle_free);
	return n;
}

// kind: 0=highlight, 1=underline, 2=squiggly, 3=strikeout.
void add_markup_annot(PopplerDocument *doc, PopplerPage *page, int kind,
                      double x1, double y1, double x2, double y2){
	PopplerRectangle rect = {x1, y1, x2, y2};

	// One quadrilateral covering the whole rectangle. Poppler wants the
	// corners in PDF coordinates: p1/p2 on the top edge, p3/p4 on the bottom.
	PopplerQuadrilateral quad;
	quad.p1.x = x1; quad.p1.y = y2;
	quad.p2.x = x2; quad.p2.y = y2;
	quad.p3.x = x1; quad.p3.y = y1;
	quad.p4.x = x2; quad.p4.y = y1;

	GArray *quads = g_array_sized_new(FALSE, FALSE, sizeof(PopplerQuadrilateral), 1);
	g_array_append_val(quads, quad);

	PopplerAnnot *annot;
	switch (kind) {
	case 1:
		annot = poppler_annot_text_markup_new_underline(doc, &rect, quads);
		break;
	case 2:
		annot = poppler_annot_text_markup_new_squiggly(doc, &rect, quads);
		break;
	case 3:
		annot = poppler_annot_text_markup_new_strikeout(doc, &rect, quads);
		break;
	default:
		annot = poppler_annot_text_markup_new_highlight(doc, &rect, quads);
		break;
	}
	g_array_unref(quads);

	poppler_page_add_annot(page, annot);
	g_object_unref(annot);
}

// A square annotation. With filled != 0 the interior is painted opaque black,
// which is how redactions are rendered (poppler-glib has no redaction apply).
void add_square_annot(PopplerDocument *doc, PopplerPage *page,
                      double x1, double y1, double x2, double y2, int filled){
	PopplerRectangle rect = {x1, y1, x2, y2};
	PopplerAnnot *annot = poppler_annot_square_new(doc, &rect);

	PopplerColor black = {0, 0, 0};
	poppler_annot_set_color(annot, &black);
	if (filled) {
		poppler_annot_square_set_interior_color((PopplerAnnotSquare *)annot, &black);
	}

	poppler_page_add_annot(page, annot);
	g_object_unref(annot);
}

int count_page_annots(PopplerPage *page){
	GList *mapping = poppler_page_get_annot_mapping(page);
	int n = g_list_length(mapping);
	poppler_page_free_annot_mapping(mapping);
	return n;
}

// Deletes every annotation on the page. Returns the number deleted.
int remove_page_annots(PopplerPage *page){
	GList *mapping = poppler_page_get_annot_mapping(page);
	int removed = 0;
	for (GList *l = mapping; l != NULL; l = l->next) {
		PopplerAnnotMapping *m = (PopplerAnnotMapping *)l->data;
		poppler_page_remove_annot(page, m->annot);
		removed++;
	}
	poppler_page_free_annot_mapping(mapping);
	return removed;
}

int save_document(PopplerDocument *doc, const char *filename, char **err_msg){
	GError *error = NULL;
	gchar *uri = g_filename_to_uri(filename, NULL, &error);
	if (error != NULL) {
		*err_msg = g_strdup(error->message);
		g_clear_error(&error);
		return 0;
	}

	gboolean ok = poppler_document_save(doc, uri, &error);
	g_free(uri);
	if (error != NULL) {
		*err_msg = g_strdup(error->message);
		g_clear_error(&error);
		return 0;
	}
	return ok ? 1 : 0;
}
*/
import "C"
import (
	"fmt"
	"strings"
	"unsafe"
)

// Document is an open PDF backed by a poppler document handle.
type Document struct {
	doc      *C.PopplerDocument
	Path     string
	NumPages int
}

func SetLocale() {
	// Set locale to UTF-8
	C.setlocale(C.LC_ALL, C.CString(""))
}

// Open loads the PDF at path. Failures from poppler (corrupt file, encrypted
// document, unreadable path) are returned as opaque errors.
func Open(path string) (*Document, error) {
	var c_path *C.char = C.CString(path)
	defer C.free(unsafe.Pointer(c_path))

	var num_pages C.int
	var err_msg *C.char

	doc := C.open_document(c_path, &num_pages, &err_msg)
	if doc == nil {
		if err_msg != nil {
			defer C.g_free(C.gpointer(err_msg))
			return nil, fmt.Errorf("unable to open %s: %s", path, C.GoString(err_msg))
		}
		return nil, fmt.Errorf("unable to open %s", path)
	}

	return &Document{
		doc:      doc,
		NumPages: int(num_pages),
		Path:     path,
	}, nil
}

func (pdf *Document) Close() {
	if pdf.doc != nil {
		C.g_object_unref(C.gpointer(pdf.doc))
		pdf.doc = nil
	}
}

// Save writes the document, including any annotation changes, to path.
func (pdf *Document) Save(path string) error {
	c_path := C.CString(path)
	defer C.free(unsafe.Pointer(c_path))

	var err_msg *C.char
	if C.save_document(pdf.doc, c_path, &err_msg) == 0 {
		if err_msg != nil {
			defer C.g_free(C.gpointer(err_msg))
			return fmt.Errorf("unable to save %s: %s", path, C.GoString(err_msg))
		}
		return fmt.Errorf("unable to save %s", path)
	}
	return nil
}

// Metadata of the document information dictionary.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
	Version  string
	Pages    int
}

func (pdf *Document) Metadata() Metadata {
	return Metadata{
		Title:    goString(C.poppler_document_get_title(pdf.doc)),
		Author:   goString(C.poppler_document_get_author(pdf.doc)),
		Subject:  goString(C.poppler_document_get_subject(pdf.doc)),
		Creator:  goString(C.poppler_document_get_creator(pdf.doc)),
		Producer: goString(C.poppler_document_get_producer(pdf.doc)),
		Version:  goString(C.poppler_document_get_pdf_version_string(pdf.doc)),
		Pages:    pdf.NumPages,
	}
}

// goString copies and frees a string owned by poppler.
func goString(s *C.gchar) string {
	if s == nil {
		return ""
	}
	defer C.g_free(C.gpointer(s))
	return C.GoString((*C.char)(s))
}

type Page struct {
	page *C.PopplerPage

	doc     *Document
	PageNum int

	Width  float64
	Height float64
}

func (pdf *Document) GetPage(page int) *Page {
	if page < 0 || page >= pdf.NumPages {
		return nil
	}

	p_page := &Page{
		doc:     pdf,
		page:    C.poppler_document_get_page(pdf.doc, C.int(page)),
		PageNum: page,
	}

	var width, height C.double
	C.poppler_page_get_size(p_page.page, &width, &height)
	p_page.Width = float64(width)
	p_page.Height = float64(height)

	return p_page
}

func (page *Page) Close() {
	if page.page != nil {
		C.g_object_unref(C.gpointer(page.page))
		page.page = nil
	}
}

// Text returns the page text with line breaks at poppler's layout boundaries.
func (page *Page) Text() string {
	g_text := C.poppler_page_get_text(page.page)
	if g_text == nil {
		return ""
	}
	defer C.g_free(C.gpointer(g_text))

	text := C.GoString((*C.char)(g_text))

	// Normalize the non-breaking spaces some meet programs emit so the
	// grammars and exact substring search see plain spaces.
	text = strings.ReplaceAll(text, " ", " ")
	return text
}

// Rect is an axis-aligned rectangle in page coordinates with the origin at
// the top-left corner, matching the reading order of the extracted text.
// Y0 is the top edge, Y1 the bottom edge.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// fromPoppler converts a poppler rectangle, which has a bottom-left origin,
// into page coordinates.
func fromPoppler(height, x1, y1, x2, y2 float64) Rect {
	return Rect{X0: x1, Y0: height - y2, X1: x2, Y1: height - y1}
}

// Search returns one rectangle per glyph run whose rendered text matches
// needle exactly, one rectangle per line for matches spanning lines.
// Matching is case sensitive. Poppler's multiline find matches a space in
// the term against a line break, so newlines in the needle are folded to
// spaces before the search.
func (page *Page) Search(needle string) []Rect {
	needle = strings.ReplaceAll(strings.TrimRight(needle, "\n"), "\n", " ")

	c_needle := C.CString(needle)
	defer C.free(unsafe.Pointer(c_needle))

	var c_rects *C.PopplerRectangle
	n := int(C.search_page_text(page.page, c_needle, &c_rects))
	if n == 0 {
		return nil
	}
	defer C.g_free(C.gpointer(c_rects))

	hits := unsafe.Slice(c_rects, n)
	rects := make([]Rect, n)
	for i, r := range hits {
		rects[i] = fromPoppler(page.Height,
			float64(r.x1), float64(r.y1), float64(r.x2), float64(r.y2))
	}
	return rects
}

// Markup annotation kinds understood by the C helper.
const (
	markupHighlight = iota
	markupUnderline
	markupSquiggly
	markupStrikeout
)

func (page *Page) addMarkup(kind int, r Rect) {
	// Back to poppler's bottom-left origin.
	C.add_markup_annot(page.doc.doc, page.page, C.int(kind),
		C.double(r.X0), C.double(page.Height-r.Y1),
		C.double(r.X1), C.double(page.Height-r.Y0))
}

func (page *Page) AddHighlight(r Rect) { page.addMarkup(markupHighlight, r) }
func (page *Page) AddUnderline(r Rect) { page.addMarkup(markupUnderline, r) }
func (page *Page) AddSquiggly(r Rect)  { page.addMarkup(markupSquiggly, r) }
func (page *Page) AddStrikeout(r Rect) { page.addMarkup(markupStrikeout, r) }

// AddFrame draws a black rectangle border around r.
func (page *Page) AddFrame(r Rect) {
	C.add_square_annot(page.doc.doc, page.page,
		C.double(r.X0), C.double(page.Height-r.Y1),
		C.double(r.X1), C.double(page.Height-r.Y0), C.int(0))
}

// AddRedaction covers r with an opaque black fill.
func (page *Page) AddRedaction(r Rect) {
	C.add_square_annot(page.doc.doc, page.page,
		C.double(r.X0), C.double(page.Height-r.Y1),
		C.double(r.X1), C.double(page.Height-r.Y0), C.int(1))
}

// AnnotationCount reports the number of annotations on the page.
func (page *Page) AnnotationCount() int {
	return int(C.count_page_annots(page.page))
}

// RemoveAnnotations deletes every annotation on the page and returns the
// number deleted.
func (page *Page) RemoveAnnotations() int {
	return int(C.remove_page_annots(page.page))
}
