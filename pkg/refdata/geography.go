package refdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/geography"
	"github.com/sirupsen/logrus"
)

// GeographyRow is one municipality with its full administrative path.
type GeographyRow struct {
	Region       string
	RegionCode   string
	RegionalUnit string
	Municipality string
}

// ParseGeographyCSV reads rows of the form
// region,region_code,regional_unit,municipality. A header line is
// detected by its first column and skipped. Blank lines are ignored.
func ParseGeographyCSV(r io.Reader) ([]GeographyRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true

	var rows []GeographyRow
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("geography csv line %d: %w", line+1, err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "region") {
			continue
		}
		row := GeographyRow{
			Region:       strings.TrimSpace(record[0]),
			RegionCode:   strings.TrimSpace(record[1]),
			RegionalUnit: strings.TrimSpace(record[2]),
			Municipality: strings.TrimSpace(record[3]),
		}
		if row.Region == "" || row.RegionalUnit == "" || row.Municipality == "" {
			return nil, fmt.Errorf("geography csv line %d: region, regional unit and municipality are required", line)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// PopulateGeography upserts the administrative hierarchy by natural key.
// Sort order follows first appearance in the input. Row failures are
// logged and skipped so a partial file still loads what it can.
func PopulateGeography(ctx context.Context, repo *geography.Repository, rows []GeographyRow) (loaded, failed int) {
	regionOrder := map[string]int{}
	unitOrder := map[string]int{}
	municipalityOrder := map[string]int{}

	for _, row := range rows {
		if _, ok := regionOrder[row.Region]; !ok {
			regionOrder[row.Region] = len(regionOrder)
		}
		region, err := repo.GetOrCreateRegion(ctx, models.Region{
			Name:      row.Region,
			Code:      row.RegionCode,
			SortOrder: regionOrder[row.Region],
		})
		if err != nil {
			logger.Log.WithError(err).WithField("region", row.Region).Warn("skipping geography row")
			failed++
			continue
		}

		unitKey := row.Region + "/" + row.RegionalUnit
		if _, ok := unitOrder[unitKey]; !ok {
			unitOrder[unitKey] = len(unitOrder)
		}
		unit, err := repo.GetOrCreateRegionalUnit(ctx, models.RegionalUnit{
			RegionID:  region.ID,
			Name:      row.RegionalUnit,
			SortOrder: unitOrder[unitKey],
		})
		if err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{
				"region": row.Region,
				"unit":   row.RegionalUnit,
			}).Warn("skipping geography row")
			failed++
			continue
		}

		municipalityKey := unitKey + "/" + row.Municipality
		if _, ok := municipalityOrder[municipalityKey]; !ok {
			municipalityOrder[municipalityKey] = len(municipalityOrder)
		}
		if _, err := repo.GetOrCreateMunicipality(ctx, models.Municipality{
			RegionalUnitID: unit.ID,
			Name:           row.Municipality,
			SortOrder:      municipalityOrder[municipalityKey],
		}); err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{
				"unit":         row.RegionalUnit,
				"municipality": row.Municipality,
			}).Warn("skipping geography row")
			failed++
			continue
		}
		loaded++
	}
	return loaded, failed
}
