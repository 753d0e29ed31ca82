package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/konnektoren/internal/httpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over HTTP",
	Long: "Serve exposes the game state, achievements, a command endpoint and a live\n" +
		"event stream (websocket or server-sent events) over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := rt.cfg.HTTPAddr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := httpserver.New(rt.ctrl, rt.evaluator, rt.logger)
		if err := srv.ListenAndServe(ctx, addr); err != nil {
			return err
		}
		rt.logger.Info().Msg("http server stopped")
		return rt.ctrl.SaveGameState(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides KONNEKTOREN_HTTP_ADDR)")
}
