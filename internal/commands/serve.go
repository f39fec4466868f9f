package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve published exports over HTTP",
	Long: `Serve exports uploaded with 'clockr export --publish'.

Routes:
  GET /exports/{id}   download a published CSV
  GET /healthz        liveness
  GET /metrics        Prometheus metrics`,
	Run: wireApp(true, func(cmd *cobra.Command, args []string, a *app) {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = a.cfg.ListenAddr
		}

		fmt.Printf("🌐 Serving exports on %s\n", addr)
		if err := httpapi.Serve(commandContext(cmd), addr, httpapi.NewRouter(a.store)); err != nil {
			printError(err)
		}
	}),
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config listen_addr)")
}
