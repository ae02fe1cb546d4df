package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/service"
	"github.com/taskboard/taskboard/internal/summary"
	"go.uber.org/zap"
)

func TestBuildWorkbook(t *testing.T) {
	report := &service.ProjectReport{
		Project: &entity.Project{ID: 8, Name: "Dashboard", Description: "Internal tracking"},
		Summary: summary.ProjectSummary{
			TaskCount:          3,
			TotalExpectedHours: 15,
			TotalActualHours:   17,
			Variance:           2,
			VariancePercentage: 13.333333,
			ByStatus:           summary.StatusCounts{Pending: 1, Approved: 2},
		},
		Employees: []summary.EmployeeSummary{
			{EmployeeID: 1, EmployeeName: "Alice", TaskCount: 2, ExpectedHours: 10, ActualHours: 12, Variance: 2},
			{EmployeeID: 2, TaskCount: 1, ExpectedHours: 5, ActualHours: 5, Variance: 0},
		},
	}

	exporter := NewExporter(zap.NewNop())
	f, err := exporter.BuildWorkbook(report)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Summary", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Dashboard", cell("B1"))
	assert.Equal(t, "Internal tracking", cell("B2"))
	assert.Equal(t, "3", cell("B3"))
	assert.Equal(t, "1 / 2 / 0", cell("B4"))

	assert.Equal(t, "Employee", cell("A6"))
	assert.Equal(t, "Variance", cell("E6"))

	assert.Equal(t, "Alice", cell("A7"))
	assert.Equal(t, "12", cell("D7"))
	// Employees without a joined name fall back to their ID
	assert.Equal(t, "Employee 2", cell("A8"))

	assert.Equal(t, "Total", cell("A9"))
	assert.Equal(t, "17", cell("D9"))
	assert.Equal(t, "2", cell("E9"))
	// Variance percentage is rendered to one decimal
	assert.Equal(t, "13.3%", cell("F9"))
}

func TestBuildWorkbookEmptyProject(t *testing.T) {
	report := &service.ProjectReport{
		Project: &entity.Project{ID: 1, Name: "Empty"},
	}

	exporter := NewExporter(zap.NewNop())
	f, err := exporter.BuildWorkbook(report)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Summary", "A7")
	require.NoError(t, err)
	assert.Equal(t, "Total", v)
}
