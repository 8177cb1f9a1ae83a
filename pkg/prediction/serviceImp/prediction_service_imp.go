package serviceImp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agripredict/entities"
	"agripredict/pkg/engine"
	"agripredict/pkg/prediction/repository"
	"agripredict/pkg/predictor"
)

// SourceManual marks history rows whose yield was supplied by the caller.
const SourceManual = "manual"

type PredictionSvc struct {
	eng   *engine.Engine
	ref   engine.Reference
	model predictor.Predictor
	repo  repository.PredictionRepository // nil disables history
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*PredictionSvc)

// WithClock fixes the clock used for the model's Crop_Year and row timestamps.
func WithClock(now func() time.Time) Option { return func(s *PredictionSvc) { s.now = now } }

func WithIDs(newID func() string) Option { return func(s *PredictionSvc) { s.newID = newID } }

func NewPredictionService(eng *engine.Engine, ref engine.Reference, model predictor.Predictor, repo repository.PredictionRepository, log *zap.Logger, opts ...Option) *PredictionSvc {
	if log == nil {
		log = zap.NewNop()
	}
	s := &PredictionSvc{
		eng:   eng,
		ref:   ref,
		model: model,
		repo:  repo,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *PredictionSvc) Predictor() predictor.Predictor { return s.model }

func (s *PredictionSvc) HistoryEnabled() bool { return s.repo != nil }

func (s *PredictionSvc) Predict(ctx context.Context, sessionID string, p entities.FarmParameters) (*entities.Assessment, error) {
	if err := engine.ValidateParams(p); err != nil {
		return nil, err
	}
	w, err := s.ref.Weather(p.State)
	if err != nil {
		return nil, err
	}
	in := predictor.NewModelInput(p, w, s.now().Year())

	start := time.Now()
	y, err := s.model.Predict(ctx, in)
	if err != nil {
		s.log.Warn("predict failed",
			zap.String("predictor", s.model.Name()),
			zap.String("crop", in.Crop),
			zap.String("state", in.State),
			zap.Error(err))
		return nil, err
	}
	s.log.Debug("predicted",
		zap.String("predictor", s.model.Name()),
		zap.Float64("yield", y),
		zap.Duration("took", time.Since(start)))

	return s.assess(sessionID, s.model.Name(), p, y)
}

func (s *PredictionSvc) Evaluate(ctx context.Context, sessionID string, p entities.FarmParameters, predictedYield float64) (*entities.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.assess(sessionID, SourceManual, p, predictedYield)
}

func (s *PredictionSvc) assess(sessionID, source string, p entities.FarmParameters, y float64) (*entities.Assessment, error) {
	a, err := s.eng.Evaluate(p, y)
	if err != nil {
		return nil, err
	}
	a.Predictor = source
	if s.repo == nil {
		return a, nil
	}

	row := entities.NewEvaluation(s.newID(), sessionID, source, a)
	row.CreatedAt = s.now().UTC()
	// History is auxiliary; a failed write never hides a computed assessment.
	if err := s.repo.Create(row); err != nil {
		s.log.Error("history write failed", zap.String("session", sessionID), zap.Error(err))
		return a, nil
	}
	a.ID = row.ID
	return a, nil
}

func (s *PredictionSvc) Preview(p entities.FarmParameters) (*entities.Preview, error) {
	return s.eng.Preview(p)
}

func (s *PredictionSvc) History(sessionID string, limit int) ([]entities.Evaluation, error) {
	if s.repo == nil {
		return []entities.Evaluation{}, nil
	}
	rows, err := s.repo.ListBySession(sessionID, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []entities.Evaluation{}
	}
	return rows, nil
}

func (s *PredictionSvc) Get(sessionID, id string) (*entities.Evaluation, error) {
	if s.repo == nil {
		return nil, errHistoryDisabled
	}
	return s.repo.FindByID(id, sessionID)
}
