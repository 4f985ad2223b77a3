package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abyssdigger/logvisor"
)

func newStressCmd() *cobra.Command {
	var (
		sinks      sinkOptions
		goroutines int
		count      int
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Report concurrently from many goroutines.",
		Long: `Starts the requested number of goroutines, each with its own module and
thread name, and lets every one of them emit the requested number of info
reports. Every sink receives goroutines*count whole lines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if goroutines <= 0 || count <= 0 {
				return errors.New("goroutines and count must be positive")
			}

			reg, err := sinks.registry()
			if err != nil {
				return err
			}
			defer reg.UnregisterLoggers()

			started := time.Now()
			if err := stress(cmd.Context(), reg, goroutines, count); err != nil {
				return err
			}

			elapsed := time.Since(started)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d reports to %d sinks in %s\n",
				goroutines*count, reg.SinkCount(), elapsed.Round(time.Millisecond))

			return nil
		},
	}

	sinks.bind(cmd)
	flags := cmd.Flags()
	flags.IntVarP(&goroutines, "goroutines", "g", 8, "number of reporting goroutines")
	flags.IntVarP(&count, "count", "n", 1000, "reports per goroutine")

	return cmd
}

func stress(ctx context.Context, reg *logvisor.Registry, goroutines, count int) error {
	if ctx == nil {
		ctx = context.Background()
	}

	g, gctx := errgroup.WithContext(ctx)

	for worker := range goroutines {
		g.Go(func() error {
			name := fmt.Sprintf("stress-%d", worker)
			reg.RegisterThreadName(name)
			mod := reg.NewModule(name)

			for i := range count {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				mod.Report(logvisor.LVL_INFO, "report %d of %d", i+1, count)
			}

			return nil
		})
	}

	return g.Wait()
}
