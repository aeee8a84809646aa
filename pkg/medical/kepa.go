package medical

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/clock"
	"github.com/xuri/excelize/v2"
)

// KepaReportRow is one beneficiary in the KEPA expiry report.
type KepaReportRow struct {
	PersonID           uuid.UUID  `json:"person_id"`
	RegistrationNumber int        `json:"registration_number"`
	LastName           string     `json:"last_name"`
	FirstName          string     `json:"first_name"`
	AMKA               string     `json:"amka,omitempty"`
	Mobile             string     `json:"mobile,omitempty"`
	KepaExpiry         *time.Time `json:"kepa_expiry,omitempty"`
	DaysRemaining      *int       `json:"days_remaining,omitempty"`
	Bucket             string     `json:"bucket"`
}

// KepaReport lists every KEPA-checked beneficiary bucketed by expiry,
// soonest expiry first.
func (s *Service) KepaReport(ctx context.Context) ([]KepaReportRow, error) {
	rows, err := s.repo.ListKepaRows(ctx)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clock)
	report := make([]KepaReportRow, 0, len(rows))
	for _, row := range rows {
		out := KepaReportRow{
			PersonID:           row.PersonID,
			RegistrationNumber: row.RegistrationNumber,
			LastName:           row.LastName,
			FirstName:          row.FirstName,
			Mobile:             row.Mobile,
			KepaExpiry:         row.KepaExpiry,
			Bucket:             KepaBucket(true, row.KepaExpiry, today),
		}
		if row.AMKA != nil {
			out.AMKA = *row.AMKA
		}
		if row.KepaExpiry != nil {
			days := int(row.KepaExpiry.Sub(today).Hours() / 24)
			out.DaysRemaining = &days
		}
		report = append(report, out)
	}
	return report, nil
}

var kepaHeaders = []string{"Reg. No", "Last Name", "First Name", "AMKA", "Mobile", "KEPA Expiry", "Days Remaining", "Bucket"}

// ExportKepaReport renders the report as an .xlsx workbook.
func (s *Service) ExportKepaReport(ctx context.Context) (*bytes.Buffer, error) {
	report, err := s.KepaReport(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "KEPA Expiry"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for col, header := range kepaHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for i, row := range report {
		expiry := ""
		if row.KepaExpiry != nil {
			expiry = row.KepaExpiry.Format("2006-01-02")
		}
		days := ""
		if row.DaysRemaining != nil {
			days = fmt.Sprintf("%d", *row.DaysRemaining)
		}
		values := []interface{}{
			row.RegistrationNumber,
			row.LastName,
			row.FirstName,
			row.AMKA,
			row.Mobile,
			expiry,
			days,
			row.Bucket,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "H", 18); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}
