package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/activity"
	"github.com/balkashynov/clockr/internal/duration"
	"github.com/balkashynov/clockr/internal/models"
	"github.com/balkashynov/clockr/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   `add "<name> [#category] [-- description]"`,
	Short: "Add a finished activity by hand",
	Long: `Add a finished activity without running the timer.

Quote the entry so the shell keeps it together.

Smart syntax:
  #category     Category (use _ for spaces: #deep_work)
  -- text       Description (everything after " -- ")

Times (--start, --end):
  now, 14:30, 16/04/2025 09:00, 45 minutes ago, 2h ago, RFC3339

Examples:
  clockr add "Write docs #writing" --start 09:00 --end 10:30
  clockr add "Standup #meetings -- daily sync" --start 09:30 --duration 15m
  clockr add "Gym" --start "1 hour ago" --end now
  clockr add "Standup" --start 09:30 --duration 15m --repeat-days 5`,
	Args: cobra.MinimumNArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		if !requireUser(cmd, a) {
			return
		}

		entries, err := buildEntries(cmd, strings.Join(args, " "), time.Now())
		if err != nil {
			printError(err)
			return
		}

		ctx := commandContext(cmd)
		if len(entries) == 1 {
			session, err := a.svc.CreateManual(ctx, entries[0])
			if err != nil {
				printError(err)
				return
			}
			printCreated(session)
			return
		}

		created, err := a.svc.CreateBatch(ctx, entries)
		for _, session := range created {
			printCreated(session)
		}
		if err != nil {
			printError(err)
			if len(created) > 0 {
				fmt.Printf("%d of %d activities were saved before the failure.\n", len(created), len(entries))
			}
		}
	}),
}

// buildEntries turns the entry text and flags into manual entries, one per
// repeated day
func buildEntries(cmd *cobra.Command, input string, now time.Time) ([]activity.ManualEntry, error) {
	parsed := parser.ParseEntry(input)
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("could not parse entry: %s", strings.Join(parsed.Errors, ", "))
	}

	entry := activity.ManualEntry{
		Name:        parsed.Name,
		Description: parsed.Description,
		Category:    parsed.Category,
	}

	// Explicit flags take precedence over parsed syntax
	if c, _ := cmd.Flags().GetString("category"); c != "" {
		entry.Category = c
	}
	if d, _ := cmd.Flags().GetString("description"); d != "" {
		entry.Description = d
	}

	startFlag, _ := cmd.Flags().GetString("start")
	endFlag, _ := cmd.Flags().GetString("end")
	lengthFlag, _ := cmd.Flags().GetString("duration")
	repeat, _ := cmd.Flags().GetInt("repeat-days")

	if startFlag == "" {
		return nil, errors.New("--start is required")
	}
	start, err := parser.ParseInstant(startFlag, now)
	if err != nil {
		return nil, fmt.Errorf("invalid --start: %w", err)
	}
	entry.Start = start

	switch {
	case endFlag != "" && lengthFlag != "":
		return nil, errors.New("use either --end or --duration, not both")
	case endFlag != "":
		end, err := parser.ParseInstant(endFlag, now)
		if err != nil {
			return nil, fmt.Errorf("invalid --end: %w", err)
		}
		entry.End = end
	case lengthFlag != "":
		length, err := parseLength(lengthFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid --duration: %w", err)
		}
		entry.End = start.Add(length)
	default:
		return nil, errors.New("--end or --duration is required")
	}

	if repeat < 1 {
		repeat = 1
	}
	entries := make([]activity.ManualEntry, 0, repeat)
	for i := 0; i < repeat; i++ {
		e := entry
		e.Start = entry.Start.AddDate(0, 0, i)
		e.End = entry.End.AddDate(0, 0, i)
		entries = append(entries, e)
	}
	return entries, nil
}

// parseLength accepts Go durations (1h30m) or HH:MM:SS
func parseLength(input string) (time.Duration, error) {
	if strings.Contains(input, ":") {
		secs, err := duration.ParseClock(input)
		if err != nil {
			return 0, err
		}
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(input)
}

func printCreated(session *models.Session) {
	fmt.Printf("✅ Added %q (%s) - ID: %s\n", session.Name, duration.Compact(session.Duration()), session.SessionID)
	if c := session.CategoryText(); c != "" {
		fmt.Printf("  Category: %s\n", c)
	}
	fmt.Printf("  %s → %s\n", session.StartTime.Local().Format("Jan 02 15:04"), session.EndTime.Local().Format("Jan 02 15:04"))
}

func addEntryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("start", "s", "", "Start time (required)")
	cmd.Flags().StringP("end", "e", "", "End time")
	cmd.Flags().String("duration", "", "Length instead of --end: 1h30m or 01:30:00")
	cmd.Flags().StringP("category", "c", "", "Category name")
	cmd.Flags().StringP("description", "d", "", "Description")
	cmd.Flags().Int("repeat-days", 1, "Repeat the entry on this many consecutive days")
}

func init() {
	addEntryFlags(addCmd)
}
