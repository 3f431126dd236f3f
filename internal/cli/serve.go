package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/launchrank/internal/mcp"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the launcher as MCP tools on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			s, err := openSession(ctx, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			server := mcp.NewServer(s.launcher)
			s.logger.Info("MCP server ready, listening on stdio",
				"version", Version,
				"items", s.launcher.Status().Items,
				"history", s.store.Location())

			errChan := make(chan error, 1)
			go func() {
				errChan <- server.Serve(ctx)
			}()

			select {
			case <-ctx.Done():
				s.logger.Info("shutting down")
				return nil
			case err := <-errChan:
				return err
			}
		},
	}
}
