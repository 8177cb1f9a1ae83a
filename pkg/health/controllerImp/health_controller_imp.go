package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agripredict/pkg/predictor"
	"agripredict/pkg/reference"
)

var appStart = time.Now()

const checkTimeout = 800 * time.Millisecond

type HealthCtrl struct {
	db    *gorm.DB // nil when history is disabled
	model predictor.Predictor
	ref   *reference.Data
}

func NewHealthCtrl(db *gorm.DB, model predictor.Predictor, ref *reference.Data) *HealthCtrl {
	return &HealthCtrl{db: db, model: model, ref: ref}
}

type sub struct {
	OK       bool   `json:"ok"`
	Disabled bool   `json:"disabled,omitempty"`
	Name     string `json:"name,omitempty"`
	Err      string `json:"err,omitempty"`
}

// Health fails (503) only when the history database is unreachable. An
// unreachable model leaves /evaluate working, so it only marks the service
// degraded.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	db := h.checkDB(ctx)
	model := h.checkModel(ctx)

	status := http.StatusOK
	state := "ok"
	if !db.OK {
		status = http.StatusServiceUnavailable
		state = "down"
	} else if !model.OK {
		state = "degraded"
	}

	resp := map[string]any{
		"status":     state,
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database":  db,
			"predictor": model,
		},
		"reference": map[string]int{
			"states": len(h.ref.WeatherTable()),
			"crops":  len(h.ref.CropTable()),
		},
		"time": time.Now().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}

func (h *HealthCtrl) checkDB(ctx context.Context) sub {
	if h.db == nil {
		return sub{OK: true, Disabled: true}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return sub{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return sub{Err: "ping: " + err.Error()}
	}
	return sub{OK: true}
}

func (h *HealthCtrl) checkModel(ctx context.Context) sub {
	s := sub{Name: h.model.Name()}
	p, ok := h.model.(predictor.Pinger)
	if !ok {
		s.OK = true
		return s
	}
	if err := p.Ping(ctx); err != nil {
		s.Err = err.Error()
		return s
	}
	s.OK = true
	return s
}
