package stats

import (
	"sort"
	"time"

	"github.com/balkashynov/clockr/internal/models"
)

// DayNames labels Timesheet columns, Monday first
var DayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// TimesheetRow is one category's seconds per weekday, Monday first
type TimesheetRow struct {
	Category string
	Days     [7]int64
	Total    int64
}

// Timesheet is a week of tracked time grouped by category and day
type Timesheet struct {
	WeekStart time.Time
	Rows      []TimesheetRow
	DayTotals [7]int64
	Total     int64
}

// Weekly builds the timesheet for the calendar week containing now
func Weekly(sessions []models.Session, now time.Time) Timesheet {
	sheet := Timesheet{WeekStart: WeekStart(now)}
	weekEnd := sheet.WeekStart.AddDate(0, 0, 7)

	rows := make(map[string]*TimesheetRow)
	for i := range sessions {
		s := &sessions[i]
		if s.InProgress() {
			continue
		}
		start := s.StartTime.In(now.Location())
		if start.Before(sheet.WeekStart) || !start.Before(weekEnd) {
			continue
		}

		name := categoryName(s)
		row, ok := rows[name]
		if !ok {
			row = &TimesheetRow{Category: name}
			rows[name] = row
		}

		day := dayIndex(start.Weekday())
		seconds := s.Duration()
		row.Days[day] += seconds
		row.Total += seconds
		sheet.DayTotals[day] += seconds
		sheet.Total += seconds
	}

	for _, row := range rows {
		sheet.Rows = append(sheet.Rows, *row)
	}
	sort.Slice(sheet.Rows, func(i, j int) bool {
		return sheet.Rows[i].Category < sheet.Rows[j].Category
	})
	return sheet
}

// dayIndex converts a weekday to 0-6 with Monday=0
func dayIndex(weekday time.Weekday) int {
	return (int(weekday) - 1 + 7) % 7
}
