package predictor

import (
	"fmt"
	"strings"
	"time"
)

const (
	KindAuto  = "auto"
	KindHTTP  = "http"
	KindFixed = "fixed"
	KindNone  = "none"
)

type Options struct {
	Kind       string
	Endpoint   string
	Timeout    time.Duration
	FixedYield *float64 // required for KindFixed
}

// FromOptions picks the predictor. "auto" uses the model server when an
// endpoint is set and disables prediction otherwise; it never falls back to a
// made-up yield.
func FromOptions(o Options) (Predictor, error) {
	kind := strings.ToLower(strings.TrimSpace(o.Kind))
	if kind == "" || kind == KindAuto {
		if o.Endpoint != "" {
			kind = KindHTTP
		} else {
			kind = KindNone
		}
	}
	switch kind {
	case KindHTTP:
		if o.Endpoint == "" {
			return nil, fmt.Errorf("predictor %q needs MODEL_ENDPOINT", kind)
		}
		return NewHTTP(o.Endpoint, o.Timeout), nil
	case KindFixed:
		if o.FixedYield == nil {
			return nil, fmt.Errorf("predictor %q needs PREDICTOR_FIXED_YIELD", kind)
		}
		return NewFixed(*o.FixedYield), nil
	case KindNone:
		return NewDisabled("prediction is disabled: no yield model is configured"), nil
	default:
		return nil, fmt.Errorf("unknown predictor %q", o.Kind)
	}
}
