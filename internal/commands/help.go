package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show comprehensive help for clockr",
	Long:  `Display detailed help for all clockr commands, or for one command.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if target, _, err := rootCmd.Find(args); err == nil && target != rootCmd {
				_ = target.Help()
				return
			}
		}
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
 ██████╗██╗      ██████╗  ██████╗██╗  ██╗██████╗
██╔════╝██║     ██╔═══██╗██╔════╝██║ ██╔╝██╔══██╗
██║     ██║     ██║   ██║██║     █████╔╝ ██████╔╝
██║     ██║     ██║   ██║██║     ██╔═██╗ ██╔══██╗
╚██████╗███████╗╚██████╔╝╚██████╗██║  ██╗██║  ██║
 ╚═════╝╚══════╝ ╚═════╝  ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝

clockr - Terminal Time Tracker

ACCOUNT:

  signup                  Create an account and sign in
  login                   Sign in (--email, --password or prompt)
  logout                  Sign out
  whoami                  Show the signed-in account

TRACKING:

  clockr                  Open the interactive timer
    Tabs: 1 Timer · 2 Activities · 3 Dashboard · 4 Settings
    Timer:       s start/stop, then name/description/category, esc discards
    Activities:  ↑/↓ select, d delete, x export CSV
    Settings:    a add category, d delete category

  add "<entry>"           Add a finished activity by hand
    -s, --start           Start time (now, 14:30, 16/04/2025 09:00, 2h ago)
    -e, --end             End time
    --duration            Length instead of --end (1h30m, 01:30:00)
    -c, --category        Category
    -d, --description     Description
    --repeat-days         Repeat on consecutive days

    Smart syntax:
      #category     Set category (#deep_work becomes "deep work")
      -- text       Description

    Example:
      clockr add "Write docs #writing -- API guide" --start 09:00 --end 10:30

  status                  Show activities still in progress

ACTIVITIES:

  ls                      List activities, newest first
    -c, --category        Filter by category
    -n, --limit           Maximum rows
  search <query>          Search name, description and category
  edit <id>               Edit name, description, category, start, end or duration
  rm <id>                 Delete an activity (-f skips the prompt)

REPORTS:

  stats                   Totals, averages and per-category time
  week                    Timesheet for the current week
  export                  Write all activities to CSV
    -o, --output          File path, - for stdout
    --publish             Upload and print a download link
  serve                   Serve published exports over HTTP

CATEGORIES:

  category add <name>     Add a category (--color #RRGGBB)
  category ls             List categories
  category edit <id>      Rename or recolor (--name, --color)
  category rm <id>        Delete a category

  version                 Print version information
  help [command]          Show this help

Configuration lives in ~/.clockr/config.yaml; every key can be overridden
with a CLOCKR_ environment variable (e.g. CLOCKR_DB_PATH).

`)
}
