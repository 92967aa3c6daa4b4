package timesheet

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"skyraksys.com/hrm/model"
)

var exportHeader = []string{
	"Employee", "Project", "Task", "Week Starting", "Mon", "Tue", "Wed", "Thu",
	"Fri", "Sat", "Sun", "Total", "Status", "Description",
}

// BuildWorkbook renders entries into a single-sheet xlsx report, one row
// per weekly entry.
func BuildWorkbook(entries []model.Timesheet) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Timesheets"

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, e := range entries {
		row := i + 2
		values := []any{
			e.Employee.FullName(),
			e.Project.Name,
			e.Task.Name,
			e.WeekStartDate.Format("2006-01-02"),
			e.MondayHours,
			e.TuesdayHours,
			e.WednesdayHours,
			e.ThursdayHours,
			e.FridayHours,
			e.SaturdayHours,
			e.SundayHours,
			e.TotalHoursWorked,
			string(e.Status),
			e.Description,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// Export collects the entries visible to the actor for the given week range
// and renders them as an xlsx attachment.
func (s *Service) Export(ctx context.Context, actor Actor, from, to time.Time) ([]byte, string, error) {
	start := WeekStart(from)
	end := WeekStart(to)
	if end.Before(start) {
		return nil, "", validationErr("export range end is before its start")
	}

	scope, err := s.visibleEmployees(ctx, actor, nil)
	if err != nil {
		return nil, "", err
	}

	var entries []model.Timesheet
	for week := start; !week.After(end); week = week.AddDate(0, 0, 7) {
		weekStart := week
		batch, _, err := s.store.List(ctx, ListFilter{
			EmployeeIDs:   scope,
			WeekStartDate: &weekStart,
			SortBy:        "weekStartDate",
			Limit:         1000,
		})
		if err != nil {
			return nil, "", err
		}
		entries = append(entries, batch...)
	}

	f, err := BuildWorkbook(entries)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	name := fmt.Sprintf("timesheets-%s-%s.xlsx",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	return buf.Bytes(), name, nil
}
