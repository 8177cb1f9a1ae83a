package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agripredict/entities"
	"agripredict/pkg/engine"
	"agripredict/pkg/reference"
)

type ReferenceCtrl struct {
	ref  *reference.Data
	mode engine.CategoryMode
}

func NewReferenceCtrl(ref *reference.Data, mode engine.CategoryMode) *ReferenceCtrl {
	return &ReferenceCtrl{ref: ref, mode: mode}
}

// Get returns the choice lists and tables the input form is built from.
func (h *ReferenceCtrl) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"states":              entities.States,
		"crops":               entities.Crops,
		"seasons":             entities.Seasons,
		"weather":             h.ref.WeatherTable(),
		"crop_reference":      h.ref.CropTable(),
		"yield_category_mode": h.mode,
	})
}
