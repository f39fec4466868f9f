package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/duration"
	"github.com/balkashynov/clockr/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show activities still in progress",
	Long: `Show activities that were started but never finished, for example
because clockr exited while the timer was running.

Finish one with 'clockr edit <id> --end <time> --name <name>' or remove it
with 'clockr rm <id>'.`,
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		sessions, err := a.svc.ListSessions(commandContext(cmd))
		if err != nil {
			printError(err)
			return
		}

		open := inProgress(sessions)
		if len(open) == 0 {
			fmt.Println("No activities in progress")
			return
		}

		now := time.Now()
		for _, s := range open {
			fmt.Printf("⏱️  %s: %s\n", s.SessionID, nameOrUntitled(s.Name))
			fmt.Printf("Started at: %s\n", s.StartTime.Local().Format("Jan 02 15:04:05"))
			fmt.Printf("Open for: %s\n\n", duration.Compact(int64(now.Sub(s.StartTime).Seconds())))
		}
	}),
}

func inProgress(sessions []models.Session) []models.Session {
	var out []models.Session
	for _, s := range sessions {
		if s.InProgress() {
			out = append(out, s)
		}
	}
	return out
}
