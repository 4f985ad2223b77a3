package cmd

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abyssdigger/logvisor"
)

var errErrorsReported = errors.New("error reports were emitted")

func newEmitCmd() *cobra.Command {
	var (
		sinks  sinkOptions
		module string
		level  string
		source string
		thread string
		frame  uint64
	)

	cmd := &cobra.Command{
		Use:   "emit message...",
		Short: "Emit one report.",
		Long: `Emits one report built from the arguments joined with spaces.

An error report makes the command exit with status 1, a fatal report
terminates it with status 134 once every sink has written the line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, ok := logvisor.ParseLevel(level)
			if !ok {
				return errors.Errorf("unknown level %q", level)
			}

			reg, err := sinks.registry()
			if err != nil {
				return err
			}
			defer reg.UnregisterLoggers()

			if frame != 0 {
				reg.SetFrameIndex(frame)
			}

			if thread != "" {
				reg.RegisterThreadName(thread)
			}

			message := strings.Join(args, " ")
			mod := reg.NewModule(module)

			if source == "" {
				mod.Report(lvl, "%s", message)
			} else {
				file, line, err := parseSource(source)
				if err != nil {
					return err
				}

				mod.ReportSource(lvl, file, line, "%s", message)
			}

			if reg.ErrorCount() > 0 {
				return errErrorsReported
			}

			return nil
		},
	}

	sinks.bind(cmd)
	flags := cmd.Flags()
	flags.StringVarP(&module, "module", "m", "logvisor", "module name shown in the report")
	flags.StringVarP(&level, "level", "l", "info", "report level: info, warning, error or fatal")
	flags.StringVarP(&source, "source", "s", "", "source location as file:line")
	flags.StringVarP(&thread, "thread", "t", "", "thread name shown in the report")
	flags.Uint64Var(&frame, "frame", 0, "frame index shown in the report (0 hides it)")

	return cmd
}

// parseSource splits "file:line"; the last colon separates the line.
func parseSource(s string) (string, uint, error) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 {
		return "", 0, errors.Errorf("source %q is not file:line", s)
	}

	line, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return "", 0, errors.Wrapf(err, "source %q", s)
	}

	return s[:i], uint(line), nil
}
