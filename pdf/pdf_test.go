package pdf_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/swimtools/heatsheet/pdf"
	"github.com/swimtools/heatsheet/pdf/pdftest"
)

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.pdf")
	if doc, err := pdf.Open(path); err == nil {
		doc.Close()
		t.Fatalf("Open(%q) succeeded, want error", path)
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	if doc, err := pdf.Open(path); err == nil {
		doc.Close()
		t.Fatalf("Open(%q) succeeded, want error", path)
	}
}

func TestGetPageOutOfRange(t *testing.T) {
	// GetPage guards the range before touching the handle.
	doc := &pdf.Document{NumPages: 0}
	if page := doc.GetPage(0); page != nil {
		t.Error("GetPage(0) on an empty document, want nil")
	}
	if page := doc.GetPage(-1); page != nil {
		t.Error("GetPage(-1), want nil")
	}
}

func TestSearchMultilineNeedle(t *testing.T) {
	path := pdftest.Write(t, "XYZ-QR", "58.21")

	doc, err := pdf.Open(path)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", path, err)
	}
	defer doc.Close()

	page := doc.GetPage(0)
	if page == nil {
		t.Fatal("GetPage(0) = nil")
	}
	defer page.Close()

	text := page.Text()
	if !strings.Contains(text, "XYZ-QR\n58.21") {
		t.Fatalf("Text() = %q, want the two fixture lines separated by a line break", text)
	}

	if hits := page.Search("XYZ-QR"); len(hits) == 0 {
		t.Error("Search() found no boxes for a single-line needle")
	}

	// A record string spans lines; the needle carries the line breaks.
	hits := page.Search("XYZ-QR\n58.21\n")
	if len(hits) == 0 {
		t.Fatal("Search() found no boxes for a multi-line needle")
	}
	for _, r := range hits {
		if r.X0 < 0 || r.Y0 < 0 || r.X1 > page.Width || r.Y1 > page.Height {
			t.Errorf("box %+v outside the page", r)
		}
	}
}

func TestRemoveAnnotationsIdempotent(t *testing.T) {
	src := pdftest.Write(t, "XYZ-QR", "58.21")

	doc, err := pdf.Open(src)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", src, err)
	}

	page := doc.GetPage(0)
	if page == nil {
		t.Fatal("GetPage(0) = nil")
	}
	page.AddHighlight(pdf.Rect{X0: 70, Y0: 60, X1: 130, Y1: 75})
	if n := page.AnnotationCount(); n != 1 {
		t.Fatalf("AnnotationCount() = %d after adding one annotation", n)
	}
	page.Close()

	saved := filepath.Join(t.TempDir(), "annotated.pdf")
	if err := doc.Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	doc.Close()

	doc, err = pdf.Open(saved)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", saved, err)
	}
	defer doc.Close()

	page = doc.GetPage(0)
	if page == nil {
		t.Fatal("GetPage(0) = nil")
	}
	defer page.Close()

	if n := page.RemoveAnnotations(); n != 1 {
		t.Errorf("first RemoveAnnotations() = %d, want 1", n)
	}
	if n := page.RemoveAnnotations(); n != 0 {
		t.Errorf("second RemoveAnnotations() = %d, want 0", n)
	}
	if n := page.AnnotationCount(); n != 0 {
		t.Errorf("AnnotationCount() = %d after removal", n)
	}
}
