package repositoryImp

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agripredict/database"
	"agripredict/entities"
	"agripredict/pkg/apperr"
)

func TestRepositoryScopesBySession(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	repo := New(db)

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	rows := []entities.Evaluation{
		{ID: "a", SessionID: "s1", Crop: "Rice", PredictedYield: 30, CreatedAt: base},
		{ID: "b", SessionID: "s1", Crop: "Maize", PredictedYield: 25, CreatedAt: base.Add(time.Minute)},
		{ID: "c", SessionID: "s2", Crop: "Rice", PredictedYield: 12, CreatedAt: base},
	}
	for i := range rows {
		require.NoError(t, repo.Create(&rows[i]))
	}

	got, err := repo.ListBySession("s1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	got, err = repo.ListBySession("s1", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	e, err := repo.FindByID("c", "s2")
	require.NoError(t, err)
	assert.Equal(t, 12.0, e.PredictedYield)

	_, err = repo.FindByID("c", "s1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRecommendationsRoundTrip(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	repo := New(db)

	recs := []entities.Recommendation{{Icon: "💧", Title: "Irrigation Required", Priority: entities.PriorityHigh, Color: "#FF5722"}}
	require.NoError(t, repo.Create(&entities.Evaluation{ID: "x", SessionID: "s", Recommendations: recs}))

	e, err := repo.FindByID("x", "s")
	require.NoError(t, err)
	assert.Equal(t, recs, e.Recommendations)
}
