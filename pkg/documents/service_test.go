package documents

import (
	"testing"

	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
)

func TestApplyStoredFileFillsBlanks(t *testing.T) {
	var (
		path     string
		filename string
		size     *int64
	)
	stored := &models.StoredFile{Path: "uploads/2026/doc.pdf", Filename: "doc.pdf", Size: 2048}

	applyStoredFile(&path, &filename, &size, stored)

	if path != "uploads/2026/doc.pdf" {
		t.Errorf("expected storage path filled, got %q", path)
	}
	if filename != "doc.pdf" {
		t.Errorf("expected filename filled, got %q", filename)
	}
	if size == nil || *size != 2048 {
		t.Errorf("expected size filled, got %v", size)
	}
}

func TestApplyStoredFileKeepsExplicitValues(t *testing.T) {
	path := "archive/custom.pdf"
	filename := "custom.pdf"
	explicit := int64(10)
	size := &explicit
	stored := &models.StoredFile{Path: "uploads/other.pdf", Filename: "other.pdf", Size: 999}

	applyStoredFile(&path, &filename, &size, stored)

	if path != "archive/custom.pdf" || filename != "custom.pdf" || *size != 10 {
		t.Errorf("explicit metadata must win: %q %q %d", path, filename, *size)
	}
}

func TestApplyStoredFileNilReport(t *testing.T) {
	var (
		path     string
		filename string
		size     *int64
	)
	applyStoredFile(&path, &filename, &size, nil)
	if path != "" || filename != "" || size != nil {
		t.Error("nil storage report must leave metadata untouched")
	}
}
