package predictor

import (
	"context"
	"strconv"

	"agripredict/pkg/apperr"
)

type fixed struct{ v float64 }

// NewFixed always predicts v. Used for demos and smoke tests when no model
// server is running.
func NewFixed(v float64) Predictor { return &fixed{v: v} }

func (f *fixed) Name() string { return "fixed:" + strconv.FormatFloat(f.v, 'f', -1, 64) }

func (f *fixed) Predict(ctx context.Context, _ ModelInput) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return f.v, nil
}

type disabled struct{ reason string }

// NewDisabled is used when no model is configured. Every call reports
// MODEL_UNAVAILABLE so the API can switch prediction off without crashing.
func NewDisabled(reason string) Predictor { return &disabled{reason: reason} }

func (d *disabled) Name() string { return "disabled" }

func (d *disabled) Predict(context.Context, ModelInput) (float64, error) {
	return 0, apperr.New(apperr.CodeModelUnavailable, d.reason)
}

func (d *disabled) Ping(context.Context) error {
	return apperr.New(apperr.CodeModelUnavailable, d.reason)
}
