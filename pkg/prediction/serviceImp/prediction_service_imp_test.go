package serviceImp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"agripredict/database"
	"agripredict/entities"
	"agripredict/pkg/apperr"
	"agripredict/pkg/engine"
	"agripredict/pkg/prediction/repositoryImp"
	"agripredict/pkg/predictor"
	"agripredict/pkg/reference"
)

var fixedNow = time.Date(2025, 7, 14, 8, 30, 0, 0, time.UTC)

// recorder captures the model input so tests can check what was sent.
type recorder struct {
	yield float64
	got   []predictor.ModelInput
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Predict(_ context.Context, in predictor.ModelInput) (float64, error) {
	r.got = append(r.got, in)
	return r.yield, nil
}

func newSvc(t *testing.T, model predictor.Predictor, history bool) *PredictionSvc {
	t.Helper()
	ref := reference.Defaults()
	eng := engine.New(ref)
	n := 0
	opts := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	}
	if !history {
		return NewPredictionService(eng, ref, model, nil, nil, opts...)
	}
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	return NewPredictionService(eng, ref, model, repositoryImp.New(db), nil, opts...)
}

func karnatakaRice() entities.FarmParameters {
	return entities.FarmParameters{
		State: entities.Karnataka, Crop: entities.Rice, Season: entities.Kharif,
		AreaHectares: 2.5, AnnualRainfallMM: 400, FertilizerKgPerHa: 50, PesticideKgPerHa: 25,
	}
}

func TestPredictBuildsModelInputAndPersists(t *testing.T) {
	model := &recorder{yield: 30}
	svc := newSvc(t, model, true)

	a, err := svc.Predict(context.Background(), "s1", karnatakaRice())
	require.NoError(t, err)
	assert.Equal(t, "id-1", a.ID)
	assert.Equal(t, "recorder", a.Predictor)
	assert.InDelta(t, 157500, a.Result.Revenue, 1e-9)

	require.Len(t, model.got, 1)
	in := model.got[0]
	assert.Equal(t, "Karnataka", in.State)
	assert.Equal(t, 2025, in.CropYear)
	assert.InDelta(t, 26.3, in.AvgTemp, 1e-9)
	assert.Zero(t, in.Production)

	row, err := svc.Get("s1", "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Rice", row.Crop)
	assert.Equal(t, "recorder", row.Source)
	assert.Equal(t, a.RainfallRisk.Label, row.RainfallRisk)
	assert.Equal(t, a.Recommendations, row.Recommendations)
	assert.True(t, row.CreatedAt.Equal(fixedNow))

	_, err = svc.Get("other", "id-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPredictPropagatesModelErrors(t *testing.T) {
	svc := newSvc(t, predictor.NewDisabled("no model"), true)
	_, err := svc.Predict(context.Background(), "s1", karnatakaRice())
	assert.ErrorIs(t, err, apperr.ErrModelUnavailable)

	rows, err := svc.History("s1", 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPredictRejectsBadInputBeforeCallingModel(t *testing.T) {
	model := &recorder{yield: 30}
	svc := newSvc(t, model, false)
	p := karnatakaRice()
	p.Crop = "Wheat"
	_, err := svc.Predict(context.Background(), "s1", p)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Empty(t, model.got)
}

func TestEvaluateManualYield(t *testing.T) {
	svc := newSvc(t, predictor.NewDisabled("no model"), true)
	a, err := svc.Evaluate(context.Background(), "s1", karnatakaRice(), 12.5)
	require.NoError(t, err)
	assert.Equal(t, SourceManual, a.Predictor)
	assert.Equal(t, 12.5, a.Result.PredictedYield)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Evaluate(ctx, "s1", karnatakaRice(), 12.5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHistoryDisabled(t *testing.T) {
	svc := newSvc(t, predictor.NewFixed(20), false)
	a, err := svc.Predict(context.Background(), "s1", karnatakaRice())
	require.NoError(t, err)
	assert.Empty(t, a.ID)
	assert.False(t, svc.HistoryEnabled())

	rows, err := svc.History("s1", 10)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = svc.Get("s1", "id-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSummary(t *testing.T) {
	svc := newSvc(t, predictor.NewDisabled("off"), true)
	ctx := context.Background()
	maize := karnatakaRice()
	maize.Crop = entities.Maize
	for _, y := range []float64{10, 20, 30} {
		_, err := svc.Evaluate(ctx, "s1", karnatakaRice(), y)
		require.NoError(t, err)
	}
	_, err := svc.Evaluate(ctx, "s1", maize, 40)
	require.NoError(t, err)
	_, err = svc.Evaluate(ctx, "s2", maize, 99)
	require.NoError(t, err)

	sum, err := svc.Summary("s1")
	require.NoError(t, err)
	require.Len(t, sum, 2)

	rice := sum[0]
	assert.Equal(t, entities.Rice, rice.Crop)
	assert.Equal(t, 3, rice.Count)
	assert.InDelta(t, 20, rice.Mean, 1e-9)
	assert.InDelta(t, 20, rice.Median, 1e-9)
	assert.InDelta(t, 8.16496580927726, rice.StdDev, 1e-9)
	assert.Equal(t, 10.0, rice.Min)
	assert.Equal(t, 30.0, rice.Max)

	assert.Equal(t, entities.CropSummary{Crop: entities.Maize, Count: 1, Mean: 40, Median: 40, Min: 40, Max: 40}, sum[1])

	empty, err := svc.Summary("nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestExportWorkbook(t *testing.T) {
	svc := newSvc(t, predictor.NewFixed(30), true)
	_, err := svc.Predict(context.Background(), "s1", karnatakaRice())
	require.NoError(t, err)

	b, err := svc.Export("s1")
	require.NoError(t, err)

	x, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer x.Close()
	rows, err := x.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "id-1", rows[1][0])
	assert.Equal(t, "fixed:30", rows[1][2])
	assert.Equal(t, "Rice", rows[1][4])
	assert.Equal(t, "157500", rows[1][12])
	assert.Contains(t, rows[1][15], "Critical Water Management")
}

// failingRepo rejects every write.
type failingRepo struct{}

func (failingRepo) Create(*entities.Evaluation) error { return errors.New("database is locked") }

func (failingRepo) FindByID(id, _ string) (*entities.Evaluation, error) {
	return nil, apperr.Newf(apperr.CodeNotFound, "prediction %s not found", id)
}

func (failingRepo) ListBySession(string, int) ([]entities.Evaluation, error) { return nil, nil }

func TestPredictSurvivesHistoryWriteFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ref := reference.Defaults()
	svc := NewPredictionService(engine.New(ref), ref, predictor.NewFixed(30), failingRepo{}, zap.New(core),
		WithClock(func() time.Time { return fixedNow }))

	a, err := svc.Predict(context.Background(), "s1", karnatakaRice())
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Empty(t, a.ID)
	assert.InDelta(t, 157500, a.Result.Revenue, 1e-9)

	entries := logs.FilterMessage("history write failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.Equal(t, "s1", entries[0].ContextMap()["session"])
	assert.Equal(t, "database is locked", entries[0].ContextMap()["error"])
}
