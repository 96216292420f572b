package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codecity/internal/server"
)

// serveCommand creates the serve command running the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		cf   cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

POST /v1/layout accepts {"city": ..., "options": ...} and returns the layout
with a job id. GET /healthz reports liveness. Use --redis to share cached
layouts between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cf)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printInfo("Serving on %s", StyleHighlight.Render(addr))
			err = server.New(runner, c.Logger).ListenAndServe(ctx, addr)
			if errors.Is(err, context.Canceled) {
				printSuccess("Server stopped")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cf.register(cmd)
	return cmd
}
