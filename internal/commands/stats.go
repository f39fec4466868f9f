package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/duration"
	"github.com/balkashynov/clockr/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show time tracking statistics",
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		summary, err := a.svc.Summary(commandContext(cmd))
		if err != nil {
			printError(err)
			return
		}
		displaySummary(summary)
	}),
}

func displaySummary(sum stats.Summary) {
	rows := [][2]string{
		{"Total tracked", duration.Compact(sum.TotalSeconds)},
		{"Activities", fmt.Sprintf("%d", sum.Count)},
		{"Average", duration.Compact(sum.AverageSeconds)},
		{"Longest", duration.Compact(sum.LongestSeconds)},
		{"Today", duration.Compact(sum.TodaySeconds)},
		{"This week", duration.Compact(sum.WeekSeconds)},
	}
	if sum.InProgress > 0 {
		rows = append(rows, [2]string{"In progress", fmt.Sprintf("%d", sum.InProgress)})
	}
	for _, r := range rows {
		fmt.Printf("%-15s %s\n", r[0], r[1])
	}

	if len(sum.Categories) == 0 {
		return
	}

	width := 20
	for _, c := range sum.Categories {
		width = max(width, min(len([]rune(c.Name)), 40))
	}
	fmt.Printf("\n%-*s  %12s  %5s\n", width, "Category", "Time", "Count")
	fmt.Println(strings.Repeat("-", width+21))
	for _, c := range sum.Categories {
		fmt.Printf("%-*s  %12s  %5d\n", width, truncate(c.Name, width), duration.Compact(c.Seconds), c.Count)
	}
}
