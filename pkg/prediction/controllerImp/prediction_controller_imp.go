package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agripredict/entities"
	"agripredict/pkg/apperr"
	"agripredict/pkg/middleware"
	"agripredict/pkg/prediction/controller"
	"agripredict/pkg/prediction/service"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type predictionCtrl struct {
	svc service.PredictionService
	log *zap.Logger
}

func New(svc service.PredictionService, log *zap.Logger) controller.PredictionController {
	if log == nil {
		log = zap.NewNop()
	}
	return &predictionCtrl{svc: svc, log: log}
}

type evaluateReq struct {
	entities.FarmParameters
	PredictedYield *float64 `json:"predicted_yield"`
}

// fail answers with the coded error body. Internal causes are logged, not sent.
func (h *predictionCtrl) fail(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	switch {
	case status == http.StatusInternalServerError:
		h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	case status >= http.StatusInternalServerError:
		h.log.Warn("model call failed", zap.String("path", c.Path()), zap.Int("status", status), zap.Error(err))
	}
	return c.JSON(status, apperr.BodyOf(err))
}

func bindParams(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperr.InvalidInput("bad json")
	}
	return nil
}

func (h *predictionCtrl) Predict(c echo.Context) error {
	var p entities.FarmParameters
	if err := bindParams(c, &p); err != nil {
		return h.fail(c, err)
	}
	a, err := h.svc.Predict(c.Request().Context(), middleware.SessionID(c), p)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *predictionCtrl) Evaluate(c echo.Context) error {
	var req evaluateReq
	if err := bindParams(c, &req); err != nil {
		return h.fail(c, err)
	}
	if req.PredictedYield == nil {
		return h.fail(c, apperr.InvalidInput("predicted_yield is required"))
	}
	a, err := h.svc.Evaluate(c.Request().Context(), middleware.SessionID(c), req.FarmParameters, *req.PredictedYield)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *predictionCtrl) Preview(c echo.Context) error {
	var p entities.FarmParameters
	if err := bindParams(c, &p); err != nil {
		return h.fail(c, err)
	}
	pv, err := h.svc.Preview(p)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, pv)
}

func (h *predictionCtrl) History(c echo.Context) error {
	limit := defaultHistoryLimit
	if q := c.QueryParam("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			return h.fail(c, apperr.InvalidInput("limit must be a positive integer"))
		}
		limit = min(n, maxHistoryLimit)
	}
	rows, err := h.svc.History(middleware.SessionID(c), limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": rows, "count": len(rows)})
}

func (h *predictionCtrl) Get(c echo.Context) error {
	row, err := h.svc.Get(middleware.SessionID(c), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, row)
}

func (h *predictionCtrl) Export(c echo.Context) error {
	b, err := h.svc.Export(middleware.SessionID(c))
	if err != nil {
		return h.fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="predictions.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, b)
}

func (h *predictionCtrl) Summary(c echo.Context) error {
	sum, err := h.svc.Summary(middleware.SessionID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"crops": sum})
}
