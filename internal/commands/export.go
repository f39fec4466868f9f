package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all activities to CSV",
	Long: `Export all activities to CSV, newest first.

By default the file is written to the current directory as
time-tracking-export-YYYY-MM-DD.csv. Use -o - to print to stdout, or
--publish to upload the export and print a download link.`,
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		ctx := commandContext(cmd)

		layout, _ := cmd.Flags().GetString("layout")
		if layout == "" {
			layout = a.cfg.TimeLayout
		}
		opts := []export.Option{export.WithTimeLayout(layout)}

		if publish, _ := cmd.Flags().GetBool("publish"); publish {
			url, err := a.svc.PublishExport(ctx, opts...)
			if err != nil {
				printError(err)
				return
			}
			fmt.Printf("📤 Export uploaded: %s\n", url)
			return
		}

		csv, err := a.svc.ExportCSV(ctx, opts...)
		if err != nil {
			printError(err)
			return
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "-" {
			fmt.Print(csv)
			return
		}
		if out == "" {
			out = export.Filename(time.Now())
		}
		if err := export.SaveFile(ctx, out, csv); err != nil {
			printError(err)
			return
		}
		fmt.Printf("📄 Exported to %s\n", out)
	}),
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file, - for stdout")
	exportCmd.Flags().Bool("publish", false, "Upload the export and print its URL")
	exportCmd.Flags().String("layout", "", "Go time layout for instants")
}
