package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agripredict/entities"
	"agripredict/pkg/engine"
	"agripredict/pkg/predictor"
	"agripredict/pkg/reference"
)

type evaluateOpts struct {
	params    entities.FarmParameters
	state     string
	crop      string
	season    string
	yield     float64
	reference string
	mode      string
	endpoint  string
	timeout   time.Duration
	cropYear  int
}

func newEvaluateCmd(root *rootOpts) *cobra.Command {
	o := &evaluateOpts{}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Assess one farm: rainfall risk, revenue, yield category and recommendations",
		Long: `Runs the advisory engine for one set of farm parameters and prints the
assessment as JSON. The yield comes from --yield or, when --endpoint is set,
from the model server.`,
		Example: `  agrictl evaluate --state Karnataka --crop Rice --season Kharif \
    --area 2.5 --rainfall 400 --fertilizer 50 --pesticide 25 --yield 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			yieldSet := cmd.Flags().Changed("yield")
			if !yieldSet && o.endpoint == "" {
				return fmt.Errorf("either --yield or --endpoint is required")
			}
			return runEvaluate(cmd, root.logger, o, yieldSet)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.state, "state", "", "state, e.g. Karnataka")
	f.StringVar(&o.crop, "crop", "", "crop, e.g. Rice")
	f.StringVar(&o.season, "season", "", "season, e.g. Kharif")
	f.Float64Var(&o.params.AreaHectares, "area", 0, "area in hectares")
	f.Float64Var(&o.params.AnnualRainfallMM, "rainfall", 0, "annual rainfall in mm")
	f.Float64Var(&o.params.FertilizerKgPerHa, "fertilizer", 0, "fertilizer in kg/ha")
	f.Float64Var(&o.params.PesticideKgPerHa, "pesticide", 0, "pesticide in kg/ha")
	f.Float64Var(&o.yield, "yield", 0, "predicted yield in quintals/ha")
	f.StringVar(&o.reference, "reference", "", "reference tables (CSV dir, .xlsx or .yaml); built-ins when empty")
	f.StringVar(&o.mode, "mode", string(engine.ModeFixed), "yield category mode (fixed, crop_bands)")
	f.StringVar(&o.endpoint, "endpoint", "", "model server base URL")
	f.DurationVar(&o.timeout, "timeout", 10*time.Second, "model request timeout")
	f.IntVar(&o.cropYear, "crop-year", time.Now().Year(), "Crop_Year sent to the model")
	for _, name := range []string{"state", "crop", "season", "area"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runEvaluate(cmd *cobra.Command, log *zap.Logger, o *evaluateOpts, yieldSet bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	p := o.params
	p.State = entities.State(o.state)
	p.Crop = entities.Crop(o.crop)
	p.Season = entities.Season(o.season)

	ref, err := reference.Load(o.reference)
	if err != nil {
		return err
	}
	mode, err := engine.ParseCategoryMode(o.mode)
	if err != nil {
		return err
	}
	eng := engine.New(ref, engine.WithCategoryMode(mode))
	if err := engine.ValidateParams(p); err != nil {
		return err
	}

	y, source := o.yield, "manual"
	if !yieldSet {
		model := predictor.NewHTTP(o.endpoint, o.timeout)
		w, err := ref.Weather(p.State)
		if err != nil {
			return err
		}
		if y, err = model.Predict(ctx, predictor.NewModelInput(p, w, o.cropYear)); err != nil {
			return err
		}
		source = model.Name()
		log.Info("predicted", zap.String("predictor", source), zap.Float64("yield", y))
	}

	a, err := eng.Evaluate(p, y)
	if err != nil {
		return err
	}
	a.Predictor = source
	return printJSON(cmd.OutOrStdout(), a)
}
