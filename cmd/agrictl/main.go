// Command agrictl runs the advisory engine offline and maintains reference
// tables.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agripredict/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOpts struct {
	logLevel string
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOpts{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:          "agrictl",
		Short:        "Crop yield advisory tools",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			l, err := logging.New(o.logLevel, "console")
			if err != nil {
				return err
			}
			o.logger = l
			return nil
		},
	}
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newEvaluateCmd(o),
		newReferenceCmd(o),
		newPriceSyncCmd(o),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
