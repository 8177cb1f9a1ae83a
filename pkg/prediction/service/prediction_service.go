package service

import (
	"context"

	"agripredict/entities"
)

type PredictionService interface {
	Predict(ctx context.Context, sessionID string, p entities.FarmParameters) (*entities.Assessment, error)
	Evaluate(ctx context.Context, sessionID string, p entities.FarmParameters, predictedYield float64) (*entities.Assessment, error)
	Preview(p entities.FarmParameters) (*entities.Preview, error)
	History(sessionID string, limit int) ([]entities.Evaluation, error)
	Get(sessionID, id string) (*entities.Evaluation, error)
	Export(sessionID string) ([]byte, error)
	Summary(sessionID string) ([]entities.CropSummary, error)
}
