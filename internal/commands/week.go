package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/duration"
	"github.com/balkashynov/clockr/internal/stats"
)

var weekCmd = &cobra.Command{
	Use:     "week",
	Aliases: []string{"timesheet"},
	Short:   "Show this week's timesheet",
	Long: `Show a weekly timesheet of tracked time grouped by category and day.

Hours per day for the current calendar week (Monday to Sunday).

Example output:
  Category                Mon  Tue  Wed  Thu  Fri  Sat  Sun  Total
  writing                   2  1.5    -    -    -    -    -    3.5
  meetings                0.5  0.5    1    -    -    -    -      2
  Total                   2.5    2    1    -    -    -    -    5.5`,
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		sheet, err := a.svc.Timesheet(commandContext(cmd))
		if err != nil {
			printError(err)
			return
		}
		if len(sheet.Rows) == 0 {
			fmt.Println("No time tracked this week.")
			return
		}
		displayTimesheet(sheet)
	}),
}

// displayTimesheet outputs the formatted timesheet table
func displayTimesheet(sheet stats.Timesheet) {
	nameWidth := 20
	for _, row := range sheet.Rows {
		nameWidth = max(nameWidth, len([]rune(row.Category)))
	}
	nameWidth = min(nameWidth, 40)

	dayColumnWidth := 5
	totalColumnWidth := 7

	separator := func() {
		fmt.Print(strings.Repeat("-", nameWidth))
		for range stats.DayNames {
			fmt.Print("  " + strings.Repeat("-", dayColumnWidth-2))
		}
		fmt.Println("  " + strings.Repeat("-", totalColumnWidth-2))
	}

	// Print header
	fmt.Printf("%-*s", nameWidth, "Category")
	for _, day := range stats.DayNames {
		fmt.Printf("  %*s", dayColumnWidth-2, day)
	}
	fmt.Printf("  %*s\n", totalColumnWidth-2, "Total")
	separator()

	for _, row := range sheet.Rows {
		fmt.Printf("%-*s", nameWidth, truncate(row.Category, nameWidth))
		for _, secs := range row.Days {
			fmt.Printf("  %*s", dayColumnWidth-2, duration.Hours(secs))
		}
		fmt.Printf("  %*s\n", totalColumnWidth-2, duration.Hours(row.Total))
	}

	separator()
	fmt.Printf("%-*s", nameWidth, "Total")
	for _, secs := range sheet.DayTotals {
		fmt.Printf("  %*s", dayColumnWidth-2, duration.Hours(secs))
	}
	fmt.Printf("  %*s\n", totalColumnWidth-2, duration.Hours(sheet.Total))

	fmt.Printf("\nWeek of %s to %s\n",
		sheet.WeekStart.Format("Jan 2"),
		sheet.WeekStart.AddDate(0, 0, 6).Format("Jan 2, 2006"))
}
