package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/duration"
	"github.com/balkashynov/clockr/internal/models"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List activities",
	Long:    "List activities, newest first, with optional category filter and limit",
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		sessions, err := a.svc.ListSessions(commandContext(cmd))
		if err != nil {
			printError(err)
			return
		}

		category, _ := cmd.Flags().GetString("category")
		limit, _ := cmd.Flags().GetInt("limit")
		sessions = filterSessions(sessions, category, limit)

		if len(sessions) == 0 {
			fmt.Println("No activities found. Run 'clockr' to start the timer or 'clockr add' to enter one.")
			return
		}
		renderSessionTable(sessions)
	}),
}

// filterSessions keeps sessions in the category (case-insensitive) and caps
// the result at limit when limit > 0
func filterSessions(sessions []models.Session, category string, limit int) []models.Session {
	var out []models.Session
	for _, s := range sessions {
		if category != "" && !strings.EqualFold(s.CategoryText(), category) {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func renderSessionTable(sessions []models.Session) {
	fmt.Printf("%-30s %-30s %-15s %-13s %s\n", "ID", "NAME", "CATEGORY", "STARTED", "DURATION")
	fmt.Println(strings.Repeat("-", 104))

	for _, s := range sessions {
		dur := duration.Compact(s.Duration())
		if s.InProgress() {
			dur = "in progress"
		}
		fmt.Printf("%-30s %-30s %-15s %-13s %s\n",
			s.SessionID,
			truncate(nameOrUntitled(s.Name), 30),
			truncate(s.CategoryText(), 15),
			s.StartTime.Local().Format("Jan 02 15:04"),
			dur)
	}
}

// truncate shortens text to max runes, ending with "..."
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}

func nameOrUntitled(name string) string {
	if name == "" {
		return "(untitled)"
	}
	return name
}

func init() {
	listCmd.Flags().StringP("category", "c", "", "Only show this category")
	listCmd.Flags().IntP("limit", "n", 0, "Show at most this many activities")
}
