package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agripredict/entities"
	"agripredict/pkg/market"
	"agripredict/pkg/reference"
)

type priceSyncOpts struct {
	url     string
	dir     string
	allow   []string
	timeout time.Duration
	dryRun  bool
}

func newPriceSyncCmd(root *rootOpts) *cobra.Command {
	o := &priceSyncOpts{}
	cmd := &cobra.Command{
		Use:   "pricesync",
		Short: "Refresh crop market prices from a published price bulletin",
		Long: `Fetches an HTML price bulletin, reads the modal price per quintal of each
supported crop and rewrites the market_price column of <dir>/crops.csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.dir == "" && !o.dryRun {
				return fmt.Errorf("--dir is required unless --dry-run is set")
			}
			return runPriceSync(cmd, root.logger, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.url, "url", "", "price bulletin URL")
	f.StringVar(&o.dir, "dir", "", "reference CSV directory to update")
	f.StringSliceVar(&o.allow, "allow-host", nil, "only fetch from these hosts")
	f.DurationVar(&o.timeout, "timeout", 30*time.Second, "fetch timeout")
	f.BoolVar(&o.dryRun, "dry-run", false, "print quotes without writing")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func runPriceSync(cmd *cobra.Command, log *zap.Logger, o *priceSyncOpts) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	quotes, err := market.NewFetcher(market.WithAllowedHosts(o.allow...)).FetchQuotes(ctx, o.url)
	if err != nil {
		return err
	}
	log.Info("quotes fetched", zap.Int("crops", len(quotes)), zap.String("url", o.url))

	out := cmd.OutOrStdout()
	for _, c := range sortedCrops(quotes) {
		fmt.Fprintf(out, "%-18s %10.2f\n", c, quotes[c])
	}
	if o.dryRun {
		return nil
	}

	changed, err := reference.UpdatePrices(o.dir, quotes)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "updated %d crop price(s) in %s\n", len(changed), o.dir)
	return nil
}

func sortedCrops(m map[entities.Crop]float64) []entities.Crop {
	out := make([]entities.Crop, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
