package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-relay/internal/service/codec"
)

var (
	// encodeEvent collects the event flags of the encode command.
	encodeEvent eventFlags
	// encodeFormat is the output format of the encode command.
	encodeFormat string
	// decodeFormat is the input format of the decode command.
	decodeFormat string
	// decodeRaw reads the payload as stored bytes instead of printable text.
	decodeRaw bool

	encodeCmd = &cobra.Command{
		Use:   "encode <alarm-name>",
		Short: "Print an alarm event in wire form.",
		Long: `Builds an alarm event from the same flags as alarm-report and prints it
without sending it. The proto format is printed as base64.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return codec.Encode(context.Background(), cmd.OutOrStdout(), &codec.EncodeOptions{
				Format: encodeFormat,
				Event:  encodeEvent.options(args[0]),
			})
		},
	}

	decodeCmd = &cobra.Command{
		Use:   "decode [payload]",
		Short: "Print an encoded alarm event as YAML.",
		Long: `Decodes an alarm event produced by encode or by the stdout sink.
The payload is read from standard input when no argument is given.

The mqtt and redis sinks store the payload bytes as they are, without base64.
Pipe such a payload in with --raw, e.g.:

  mosquitto_sub -N -C 1 -t alarms/battery-low | alarm-report decode --raw`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) > 0 {
				text = args[0]
			}

			return codec.Decode(context.Background(), os.Stdin, cmd.OutOrStdout(), &codec.DecodeOptions{
				Format: decodeFormat,
				Text:   text,
				Raw:    decodeRaw,
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	encodeEvent.bind(encodeCmd)
	encodeCmd.Flags().StringVarP(&encodeFormat, "format", "f", "proto", "proto or json")
	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", "proto", "proto or json")
	decodeCmd.Flags().BoolVar(&decodeRaw, "raw", false, "payload is stored mqtt/redis bytes, not printable text")
}
