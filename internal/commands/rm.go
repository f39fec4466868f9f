package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <activity-id>",
	Aliases: []string{"delete"},
	Short:   "Delete an activity",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		ctx := commandContext(cmd)
		session, err := a.svc.GetSession(ctx, args[0])
		if err != nil {
			printError(err)
			return
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(fmt.Sprintf("Delete %q from %s?", nameOrUntitled(session.Name), session.StartTime.Local().Format("Jan 02 15:04"))) {
			fmt.Println("❌ Cancelled.")
			return
		}

		if err := a.svc.DeleteSession(ctx, session.SessionID); err != nil {
			printError(err)
			return
		}
		fmt.Printf("🗑️  Deleted %s\n", session.SessionID)
	}),
}

// confirm asks a yes/no question on stdin; anything but y/yes is no
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "Delete without asking")
}
