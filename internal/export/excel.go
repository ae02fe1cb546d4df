// Package export renders project summaries as spreadsheet workbooks.
// Rounding to one display decimal happens here, at the edge; the
// aggregator hands over exact values.
package export

import (
	"fmt"
	"math"

	"github.com/taskboard/taskboard/internal/service"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheetName = "Summary"

// Exporter builds summary workbooks
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates a new Exporter
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// BuildWorkbook renders a project report into an xlsx workbook with a
// project header block, one row per employee, and a totals footer
func (e *Exporter) BuildWorkbook(report *service.ProjectReport) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		e.logger.Warn("Failed to remove default sheet", zap.Error(err))
	}

	// Project header block
	e.setCell(f, "A1", "Project")
	e.setCell(f, "B1", report.Project.Name)
	e.setCell(f, "A2", "Description")
	e.setCell(f, "B2", report.Project.Description)
	e.setCell(f, "A3", "Tasks")
	e.setCell(f, "B3", report.Summary.TaskCount)
	e.setCell(f, "A4", "Pending / Approved / Rejected")
	e.setCell(f, "B4", fmt.Sprintf("%d / %d / %d",
		report.Summary.ByStatus.Pending,
		report.Summary.ByStatus.Approved,
		report.Summary.ByStatus.Rejected))

	// Per-employee table
	headerRow := 6
	headers := []string{"Employee", "Tasks", "Expected Hours", "Actual Hours", "Variance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		e.setCell(f, cell, h)
	}

	row := headerRow + 1
	for _, emp := range report.Employees {
		name := emp.EmployeeName
		if name == "" {
			name = fmt.Sprintf("Employee %d", emp.EmployeeID)
		}
		e.setRow(f, row, name, emp.TaskCount,
			round1(emp.ExpectedHours), round1(emp.ActualHours), round1(emp.Variance))
		row++
	}

	// Totals footer
	e.setRow(f, row, "Total", report.Summary.TaskCount,
		round1(report.Summary.TotalExpectedHours),
		round1(report.Summary.TotalActualHours),
		round1(report.Summary.Variance))
	variancePctCell, _ := excelize.CoordinatesToCellName(6, row)
	e.setCell(f, variancePctCell, fmt.Sprintf("%.1f%%", report.Summary.VariancePercentage))

	e.logger.Info("Summary workbook built",
		zap.Int64("project_id", report.Project.ID),
		zap.Int("employees", len(report.Employees)))
	return f, nil
}

func (e *Exporter) setRow(f *excelize.File, row int, values ...interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		e.setCell(f, cell, v)
	}
}

func (e *Exporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
