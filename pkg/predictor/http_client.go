package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"agripredict/pkg/apperr"
)

type httpModel struct {
	endpoint string
	httpc    *http.Client
}

// NewHTTP talks to a model server exposing POST /predict and GET /health.
func NewHTTP(endpoint string, timeout time.Duration) Predictor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpModel{endpoint: strings.TrimRight(endpoint, "/"), httpc: &http.Client{Timeout: timeout}}
}

func (c *httpModel) Name() string { return "http:" + c.endpoint }

type predictReq struct {
	Instances []ModelInput `json:"instances"`
}

type predictResp struct {
	Predictions []float64 `json:"predictions"`
	Error       string    `json:"error,omitempty"`
}

func (c *httpModel) Predict(ctx context.Context, in ModelInput) (float64, error) {
	b, err := json.Marshal(predictReq{Instances: []ModelInput{in}})
	if err != nil {
		return 0, apperr.Wrap(apperr.CodePredictionFailure, err, "encode model input")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/predict", bytes.NewReader(b))
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeModelUnavailable, err, "build model request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, err
		}
		return 0, apperr.Wrap(apperr.CodeModelUnavailable, err, "model server unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusServiceUnavailable:
		return 0, apperr.Newf(apperr.CodeModelUnavailable, "model server returned %s", resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, apperr.Newf(apperr.CodePredictionFailure, "model server returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var out predictResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, apperr.Wrap(apperr.CodePredictionFailure, err, "decode model response")
	}
	if out.Error != "" {
		return 0, apperr.Newf(apperr.CodePredictionFailure, "model error: %s", out.Error)
	}
	if len(out.Predictions) == 0 {
		return 0, apperr.New(apperr.CodePredictionFailure, "model returned no predictions")
	}
	v := out.Predictions[0]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperr.Newf(apperr.CodePredictionFailure, "model returned non-finite prediction %v", v)
	}
	return v, nil
}

func (c *httpModel) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.CodeModelUnavailable, err, "model server unreachable")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apperr.Newf(apperr.CodeModelUnavailable, "model health: %s", resp.Status)
	}
	return nil
}

var _ Pinger = (*httpModel)(nil)
