package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"internview-backend/internal/domain"
	"internview-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
	exportSheet     = "Applicants"
)

var exportHeaders = []string{
	"Application ID", "Applied At", "Status", "Intern Name", "Intern Login",
	"CV Title", "CV File", "Resume URL", "Cover Letter",
}

// ExportForVacancy renders the applicant list of a vacancy as a spreadsheet.
// Access follows ListForVacancy: only the owning recruiter may export.
func (uc *applicationUsecase) ExportForVacancy(ctx context.Context, p domain.Principal, vacancyID string, format domain.ExportFormat) (*domain.ExportFile, error) {
	if format == "" {
		format = domain.ExportXLSX
	}
	if format != domain.ExportXLSX && format != domain.ExportCSV {
		return nil, apperror.BadRequest("format must be one of: xlsx, csv")
	}

	apps, err := uc.ListForVacancy(ctx, p, vacancyID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, exportRow(app))
	}

	stamp := uc.now().Format("20060102_150405")
	filename := fmt.Sprintf("applicants_%s_%s.%s", shortID(vacancyID), stamp, format)

	var data []byte
	contentType := contentTypeCSV
	if format == domain.ExportXLSX {
		contentType = contentTypeXLSX
		data, err = renderXLSX(rows)
	} else {
		data, err = renderCSV(rows)
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("export applicants: %w", err))
	}

	return &domain.ExportFile{Filename: filename, ContentType: contentType, Data: data}, nil
}

func exportRow(app domain.ApplicationDetail) []string {
	row := []string{
		app.ID,
		app.AppliedAt.UTC().Format(time.RFC3339),
		string(app.Status),
		app.Intern.Name,
		app.Intern.Login,
		"", "",
		deref(app.ResumeURL),
		deref(app.CoverLetter),
	}
	if app.CV != nil {
		row[5] = app.CV.Title
		row[6] = app.CV.PDF
	}
	return row
}

func renderXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1E3A5F"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetColWidth(exportSheet, "A", lastCol, 20); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
