// Package summary reduces task collections into the per-project and
// per-employee hour summaries shown on the dashboard. The reduction is
// pure: it takes tasks, returns numbers, and touches nothing else.
// Values are exact; rounding to one decimal happens at the edges
// (export, UI), not here.
package summary

import (
	"sort"

	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/domain/lifecycle"
)

// StatusCounts breaks a task count down by lifecycle status
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

func (c *StatusCounts) add(s lifecycle.Status) {
	switch s {
	case lifecycle.StatusPending:
		c.Pending++
	case lifecycle.StatusApproved:
		c.Approved++
	case lifecycle.StatusRejected:
		c.Rejected++
	}
}

// ProjectSummary aggregates all tasks of a project
type ProjectSummary struct {
	TaskCount          int          `json:"task_count"`
	TotalExpectedHours float64      `json:"total_expected_hours"`
	TotalActualHours   float64      `json:"total_actual_hours"`
	Variance           float64      `json:"variance"`
	VariancePercentage float64      `json:"variance_percentage"`
	ByStatus           StatusCounts `json:"by_status"`
}

// EmployeeSummary aggregates one employee's tasks within a project
type EmployeeSummary struct {
	EmployeeID    int64        `json:"employee_id"`
	EmployeeName  string       `json:"employee_name,omitempty"`
	TaskCount     int          `json:"task_count"`
	ExpectedHours float64      `json:"expected_hours"`
	ActualHours   float64      `json:"actual_hours"`
	Variance      float64      `json:"variance"`
	ByStatus      StatusCounts `json:"by_status"`
}

// Report is the full summary payload for one project
type Report struct {
	Project   ProjectSummary    `json:"project"`
	Employees []EmployeeSummary `json:"employees"`
}

// Aggregate reduces a task list into a project summary and one entry
// per employee, ordered by employee ID. Input order is irrelevant.
// The variance percentage is computed only when expected hours are
// positive; with zero expected hours it stays 0 rather than dividing.
func Aggregate(tasks []entity.Task) Report {
	var project ProjectSummary
	byEmployee := make(map[int64]*EmployeeSummary)

	for _, t := range tasks {
		project.TaskCount++
		project.TotalExpectedHours += t.ExpectedHours
		project.TotalActualHours += t.ActualHours
		project.ByStatus.add(t.Status)

		emp, ok := byEmployee[t.EmployeeID]
		if !ok {
			emp = &EmployeeSummary{EmployeeID: t.EmployeeID, EmployeeName: t.EmployeeName}
			byEmployee[t.EmployeeID] = emp
		}
		if emp.EmployeeName == "" {
			emp.EmployeeName = t.EmployeeName
		}
		emp.TaskCount++
		emp.ExpectedHours += t.ExpectedHours
		emp.ActualHours += t.ActualHours
		emp.ByStatus.add(t.Status)
	}

	project.Variance = project.TotalActualHours - project.TotalExpectedHours
	if project.TotalExpectedHours > 0 {
		project.VariancePercentage = project.Variance / project.TotalExpectedHours * 100
	}

	employees := make([]EmployeeSummary, 0, len(byEmployee))
	for _, emp := range byEmployee {
		emp.Variance = emp.ActualHours - emp.ExpectedHours
		employees = append(employees, *emp)
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].EmployeeID < employees[j].EmployeeID
	})

	return Report{Project: project, Employees: employees}
}
