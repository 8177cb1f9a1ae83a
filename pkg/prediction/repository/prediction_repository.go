package repository

import "agripredict/entities"

type PredictionRepository interface {
	Create(e *entities.Evaluation) error
	FindByID(id, sessionID string) (*entities.Evaluation, error)
	// ListBySession returns newest first; limit <= 0 means all rows.
	ListBySession(sessionID string, limit int) ([]entities.Evaluation, error)
}
