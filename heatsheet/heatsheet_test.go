package heatsheet_test

import (
	"path/filepath"
	"testing"

	"github.com/swimtools/heatsheet/heatsheet"
	"github.com/swimtools/heatsheet/pdf/pdftest"
)

func TestClosedHandle(t *testing.T) {
	path := pdftest.Write(t, "XYZ-QR", "58.21")

	h, err := heatsheet.Open(path)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", path, err)
	}
	if n := h.NumPages(); n != 1 {
		t.Fatalf("NumPages() = %d, want 1", n)
	}
	h.Close()

	if n := h.NumPages(); n != 0 {
		t.Errorf("NumPages() = %d after Close, want 0", n)
	}
	if _, err := h.PageTexts(); err == nil {
		t.Error("PageTexts() after Close succeeded, want error")
	}
}

func TestFailedReopen(t *testing.T) {
	path := pdftest.Write(t, "XYZ-QR", "58.21")

	h, err := heatsheet.Open(path)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", path, err)
	}
	defer h.Close()

	missing := filepath.Join(t.TempDir(), "missing.pdf")
	if err := h.Reopen(missing); err == nil {
		t.Fatalf("Reopen(%q) succeeded, want error", missing)
	}

	// The handle is closed, not dangling.
	if n := h.NumPages(); n != 0 {
		t.Errorf("NumPages() = %d after failed Reopen, want 0", n)
	}
	if _, err := h.PageTexts(); err == nil {
		t.Error("PageTexts() after failed Reopen succeeded, want error")
	}
}
