package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-relay/internal/config"
	"github.com/oshokin/alarm-relay/internal/service/common"
	"github.com/oshokin/alarm-relay/internal/service/reporter"
	"github.com/oshokin/alarm-relay/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// serverAddress overrides server_addr from the configuration file.
	serverAddress string
	// sink overrides the configured sink.
	sink string
	// alarmName is the --name flag, for names the positional argument cannot carry.
	alarmName string
	// reportEvent collects the event flags of the root command.
	reportEvent eventFlags

	// rootCmd represents the base command for reporting one alarm.
	rootCmd = &cobra.Command{
		Use:   "alarm-report <alarm-name> | --name <alarm-name>",
		Short: "Raise or clear an alarm.",
		Long: `Builds one alarm event and publishes it to the configured sink.

The alarm is raised unless --clear is given. The reporter defaults to
<executable>@<hostname> of this process, or the reporter from the configuration file.
Publishing is retried every second up to the configured number of attempts.

Sinks: grpc (alarm-listener), mqtt, redis, stdout.

An alarm named like a subcommand (encode, decode, version, help) must be given
with --name, e.g. alarm-report --name version --severity 3.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := resolveAlarmName(args, alarmName)
			if err != nil {
				return err
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return reporter.Run(ctx, &reporter.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
				Sink:          sink,
				Event:         reportEvent.options(name),
				Output:        cmd.OutOrStdout(),
			})
		},
	}
)

var (
	// errAlarmNameRequired is returned when neither the argument nor --name is given.
	errAlarmNameRequired = errors.New("alarm name is required: pass it as the argument or with --name")
	// errAlarmNameTwice is returned when both the argument and --name are given.
	errAlarmNameTwice = errors.New("alarm name given both as the argument and with --name")
)

// resolveAlarmName picks the alarm name from the positional argument or the --name flag.
func resolveAlarmName(args []string, flagName string) (string, error) {
	switch {
	case len(args) > 0 && flagName != "":
		return "", errAlarmNameTwice
	case len(args) > 0:
		return args[0], nil
	case flagName != "":
		return flagName, nil
	default:
		return "", errAlarmNameRequired
	}
}

// eventFlags holds the flags shared by the report and encode commands.
type eventFlags struct {
	clear       bool
	reporter    string
	description string
	parameters  string
	params      []string
	severity    uint8
}

// bind registers the event flags on cmd.
func (f *eventFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.BoolVar(&f.clear, "clear", false, "report the alarm as cleared")
	flags.StringVarP(&f.reporter, "reporter", "r", "", "reporter name, defaults to <executable>@<hostname>")
	flags.StringVarP(&f.description, "description", "d", "", "problem description")
	flags.StringVarP(&f.parameters, "parameters", "p", "", "raw parameters payload")
	flags.StringArrayVar(&f.params, "param", nil, "key=value parameter, repeatable; encoded as a JSON object")
	flags.Uint8VarP(&f.severity, "severity", "s", 0, "severity from 0 to 255")

	cmd.MarkFlagsMutuallyExclusive("parameters", "param")
}

// options converts the flags into event options for the named alarm.
func (f *eventFlags) options(alarmName string) common.EventOptions {
	return common.EventOptions{
		AlarmName:   alarmName,
		Raised:      !f.clear,
		Reporter:    f.reporter,
		Description: f.description,
		Parameters:  f.parameters,
		Params:      f.params,
		Severity:    f.severity,
	}
}

// Execute runs the alarm-report CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&serverAddress, "server", "", "alarm-listener address, overrides server_addr")
	rootCmd.Flags().StringVarP(&alarmName, "name", "n", "", "alarm name, for names that collide with a subcommand")
	rootCmd.Flags().StringVar(&sink, "sink", "", "grpc, mqtt, redis or stdout, overrides the configured sink")

	reportEvent.bind(rootCmd)

	rootCmd.AddCommand(encodeCmd, decodeCmd)
}
