package refdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/icd10"
)

// ICD10Row is one diagnosis code with its category chain.
type ICD10Row struct {
	CategoryRange string
	CategoryName  string
	Subcategory   string
	Code          string
	Label         string
	IsCommon      bool
}

// ParseICD10CSV reads rows of the form
// category_range,category_name,subcategory,code,label,is_common.
// Subcategory may be empty for codes attached directly to a category.
func ParseICD10CSV(r io.Reader) ([]ICD10Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 6
	reader.TrimLeadingSpace = true

	var rows []ICD10Row
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("icd10 csv line %d: %w", line+1, err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "category_range") {
			continue
		}
		row := ICD10Row{
			CategoryRange: strings.TrimSpace(record[0]),
			CategoryName:  strings.TrimSpace(record[1]),
			Subcategory:   strings.TrimSpace(record[2]),
			Code:          strings.ToUpper(strings.TrimSpace(record[3])),
			Label:         strings.TrimSpace(record[4]),
			IsCommon:      parseBool(record[5]),
		}
		if row.CategoryRange == "" || row.Code == "" || row.Label == "" {
			return nil, fmt.Errorf("icd10 csv line %d: category_range, code and label are required", line)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// cancerRanges are the ICD-10 chapter ranges that cover neoplasms.
var cancerRanges = map[string]bool{
	"C00-C97": true,
	"D00-D09": true,
	"D10-D36": true,
	"D37-D48": true,
}

// PopulateICD10 upserts categories, subcategories and codes by natural
// key, refreshing labels and flags on existing codes. Row failures are
// logged and skipped.
func PopulateICD10(ctx context.Context, repo *icd10.Repository, rows []ICD10Row) (loaded, failed int) {
	categoryOrder := map[string]int{}
	subcategoryOrder := map[string]int{}

	for _, row := range rows {
		if _, ok := categoryOrder[row.CategoryRange]; !ok {
			categoryOrder[row.CategoryRange] = len(categoryOrder)
		}
		category, err := repo.GetOrCreateCategory(ctx, models.ICD10Category{
			CodeRange:       row.CategoryRange,
			Name:            row.CategoryName,
			IsCancerRelated: cancerRanges[row.CategoryRange],
			SortOrder:       categoryOrder[row.CategoryRange],
		})
		if err != nil {
			logger.Log.WithError(err).WithField("category", row.CategoryRange).Warn("skipping icd10 row")
			failed++
			continue
		}

		var subcategoryID *uuid.UUID
		if row.Subcategory != "" {
			subcategoryKey := row.CategoryRange + "/" + row.Subcategory
			if _, ok := subcategoryOrder[subcategoryKey]; !ok {
				subcategoryOrder[subcategoryKey] = len(subcategoryOrder)
			}
			subcategory, err := repo.GetOrCreateSubcategory(ctx, models.ICD10Subcategory{
				CategoryID: category.ID,
				Name:       row.Subcategory,
				SortOrder:  subcategoryOrder[subcategoryKey],
			})
			if err != nil {
				logger.Log.WithError(err).WithField("subcategory", row.Subcategory).Warn("skipping icd10 row")
				failed++
				continue
			}
			subcategoryID = &subcategory.ID
		}

		if _, err := repo.GetOrCreateCode(ctx, models.ICD10Code{
			Code:          row.Code,
			Label:         row.Label,
			CategoryID:    category.ID,
			SubcategoryID: subcategoryID,
			IsActive:      true,
			IsCommon:      row.IsCommon,
		}); err != nil {
			logger.Log.WithError(err).WithField("code", row.Code).Warn("skipping icd10 row")
			failed++
			continue
		}
		loaded++
	}
	return loaded, failed
}
