package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agripredict/pkg/reference"
)

func newReferenceCmd(root *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Inspect and convert reference tables",
	}
	cmd.AddCommand(newReferenceValidateCmd(root), newReferenceExportCmd(root))
	return cmd
}

func newReferenceValidateCmd(root *rootOpts) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load reference tables and report what was found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := reference.Load(path)
			if err != nil {
				return err
			}
			root.logger.Debug("reference loaded", zap.String("path", path))
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"ok":      true,
				"states":  len(d.WeatherTable()),
				"crops":   len(d.CropTable()),
				"weather": d.WeatherTable(),
				"crop":    d.CropTable(),
			})
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "CSV directory, .xlsx workbook or .yaml file; built-ins when empty")
	return cmd
}

func newReferenceExportCmd(root *rootOpts) *cobra.Command {
	var from, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write reference tables as a CSV directory or an .xlsx workbook",
		Long: `Loads tables from --from (built-ins when empty) and writes them to --out.
An --out ending in .xlsx produces a workbook; anything else is a directory of
crops.csv and weather.csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := reference.Load(from)
			if err != nil {
				return err
			}
			if strings.EqualFold(filepath.Ext(out), ".xlsx") {
				err = reference.WriteWorkbook(out, d)
			} else {
				err = reference.WriteDir(out, d)
			}
			if err != nil {
				return err
			}
			root.logger.Info("reference exported", zap.String("out", out))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source tables; built-ins when empty")
	cmd.Flags().StringVar(&out, "out", "", "destination directory or .xlsx file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
