package refdata

import (
	"strings"
	"testing"

	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
)

func TestParseGeographyCSV(t *testing.T) {
	input := strings.Join([]string{
		"region,region_code,regional_unit,municipality",
		"Αττική,ATT,Κεντρικός Τομέας Αθηνών,Αθηναίων",
		"Αττική,ATT,Κεντρικός Τομέας Αθηνών,Ζωγράφου",
		"Κρήτη,CRE,Ηρακλείου,Ηρακλείου",
	}, "\n")

	rows, err := ParseGeographyCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Region != "Αττική" || rows[0].Municipality != "Αθηναίων" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[2].RegionCode != "CRE" {
		t.Fatalf("expected region code CRE, got %q", rows[2].RegionCode)
	}
}

func TestParseGeographyCSVWithoutHeader(t *testing.T) {
	rows, err := ParseGeographyCSV(strings.NewReader("Κρήτη,CRE,Χανίων,Χανίων\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestParseGeographyCSVRejectsMissingFields(t *testing.T) {
	if _, err := ParseGeographyCSV(strings.NewReader("Αττική,ATT,,Αθηναίων\n")); err == nil {
		t.Fatal("expected error for missing regional unit")
	}
	if _, err := ParseGeographyCSV(strings.NewReader("Αττική,ATT,Κεντρικός Τομέας\n")); err == nil {
		t.Fatal("expected error for short record")
	}
}

func TestParseICD10CSV(t *testing.T) {
	input := strings.Join([]string{
		"category_range,category_name,subcategory,code,label,is_common",
		"C00-C97,Κακοήθη νεοπλάσματα,Μαστός,c50.9,Κακόηθες νεόπλασμα μαστού,true",
		"C00-C97,Κακοήθη νεοπλάσματα,,C61,Κακόηθες νεόπλασμα προστάτη,0",
	}, "\n")

	rows, err := ParseICD10CSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Code != "C50.9" {
		t.Fatalf("expected code upper-cased to C50.9, got %q", rows[0].Code)
	}
	if !rows[0].IsCommon {
		t.Fatal("expected first row marked common")
	}
	if rows[1].Subcategory != "" || rows[1].IsCommon {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestParseICD10CSVRejectsMissingCode(t *testing.T) {
	if _, err := ParseICD10CSV(strings.NewReader("C00-C97,Κακοήθη νεοπλάσματα,,,Χωρίς κωδικό,0\n")); err == nil {
		t.Fatal("expected error for missing code")
	}
}

func TestParseCatalog(t *testing.T) {
	input := `
request_statuses:
  - name: Νέο
    name_en: New
    is_pending: true
    color_code: "#2196F3"
  - name: Ολοκληρωμένο
    is_closed: true
request_tags:
  - name: Αίτηση ΚΕΠΑ
    category: kepa
    estimated_duration_days: 90
hospitals:
  - name: Θεαγένειο
    hospital_type: public
    has_oncology: true
`
	catalog, err := ParseCatalog(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog.RequestStatuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(catalog.RequestStatuses))
	}
	if !catalog.RequestStatuses[0].IsPending || catalog.RequestStatuses[0].ColorCode != "#2196F3" {
		t.Fatalf("unexpected first status: %+v", catalog.RequestStatuses[0])
	}
	if !catalog.RequestStatuses[1].IsClosed {
		t.Fatal("expected second status closed")
	}
	if got := catalog.RequestTags[0].EstimatedDurationDays; got == nil || *got != 90 {
		t.Fatalf("expected estimated duration 90, got %v", got)
	}
	if !catalog.Hospitals[0].HasOncology {
		t.Fatal("expected oncology flag set")
	}
}

func TestParseCatalogRejectsUnknownFields(t *testing.T) {
	if _, err := ParseCatalog(strings.NewReader("request_statuses:\n  - title: wrong\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	if len(catalog.RequestStatuses) == 0 || len(catalog.RequestTags) == 0 {
		t.Fatal("default catalog must seed statuses and tags")
	}

	var hasClosed, hasOpen bool
	for _, s := range catalog.RequestStatuses {
		if s.IsClosed {
			hasClosed = true
		} else {
			hasOpen = true
		}
	}
	if !hasClosed || !hasOpen {
		t.Fatal("default statuses must include both open and closed states")
	}

	for _, tag := range catalog.RequestTags {
		if !models.ValidTagCategory(tag.Category) {
			t.Fatalf("tag %q has unknown category %q", tag.Name, tag.Category)
		}
	}
}
