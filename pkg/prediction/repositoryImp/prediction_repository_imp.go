package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"agripredict/entities"
	"agripredict/pkg/apperr"
	"agripredict/pkg/prediction/repository"
)

type predictionRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PredictionRepository { return &predictionRepo{db} }

func (r *predictionRepo) Create(e *entities.Evaluation) error { return r.db.Create(e).Error }

func (r *predictionRepo) FindByID(id, sessionID string) (*entities.Evaluation, error) {
	var e entities.Evaluation
	err := r.db.Where("id = ? AND session_id = ?", id, sessionID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.CodeNotFound, "prediction %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *predictionRepo) ListBySession(sessionID string, limit int) ([]entities.Evaluation, error) {
	q := r.db.Where("session_id = ?", sessionID).Order("created_at desc, id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []entities.Evaluation
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
