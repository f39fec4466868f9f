package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/activity"
	"github.com/balkashynov/clockr/internal/duration"
	"github.com/balkashynov/clockr/internal/parser"
)

var editCmd = &cobra.Command{
	Use:   "edit <activity-id>",
	Short: "Edit an existing activity",
	Long: `Edit any subset of an activity's fields. Unset flags keep their value;
pass an empty string to clear the description or category.

Changing --start or --end recomputes the duration. --duration sets the
length directly (only for finished activities, without --start/--end).

Examples:
  clockr edit session_1713254400000_a1b2c3d4e --name "Code review"
  clockr edit session_1713254400000_a1b2c3d4e --end 11:15
  clockr edit session_1713254400000_a1b2c3d4e --category "" --duration 00:45:00`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		patch, err := buildPatch(cmd, time.Now())
		if err != nil {
			printError(err)
			return
		}

		session, err := a.svc.UpdateSession(commandContext(cmd), args[0], patch)
		if err != nil {
			printError(err)
			return
		}

		fmt.Printf("✏️  Updated %s: %s\n", session.SessionID, nameOrUntitled(session.Name))
		if session.InProgress() {
			fmt.Println("  Still in progress")
		} else {
			fmt.Printf("  Duration: %s\n", duration.Compact(session.Duration()))
		}
	}),
}

// buildPatch maps the flags that were set onto a Patch
func buildPatch(cmd *cobra.Command, now time.Time) (activity.Patch, error) {
	var patch activity.Patch
	flags := cmd.Flags()

	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		patch.Name = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		patch.Description = &v
	}
	if flags.Changed("category") {
		v, _ := flags.GetString("category")
		patch.Category = &v
	}
	if flags.Changed("start") {
		v, _ := flags.GetString("start")
		t, err := parser.ParseInstant(v, now)
		if err != nil {
			return patch, fmt.Errorf("invalid --start: %w", err)
		}
		patch.Start = &t
	}
	if flags.Changed("end") {
		v, _ := flags.GetString("end")
		t, err := parser.ParseInstant(v, now)
		if err != nil {
			return patch, fmt.Errorf("invalid --end: %w", err)
		}
		patch.End = &t
	}
	if flags.Changed("duration") {
		v, _ := flags.GetString("duration")
		length, err := parseLength(v)
		if err != nil {
			return patch, fmt.Errorf("invalid --duration: %w", err)
		}
		secs := int64(length / time.Second)
		patch.DurationSeconds = &secs
	}

	if patch == (activity.Patch{}) {
		return patch, fmt.Errorf("nothing to change; pass at least one flag")
	}
	return patch, nil
}

func addPatchFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().StringP("description", "d", "", "New description (empty clears)")
	cmd.Flags().StringP("category", "c", "", "New category (empty clears)")
	cmd.Flags().StringP("start", "s", "", "New start time")
	cmd.Flags().StringP("end", "e", "", "New end time")
	cmd.Flags().String("duration", "", "New length: 1h30m or 01:30:00")
}

func init() {
	addPatchFlags(editCmd)
}
