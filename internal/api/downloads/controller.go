package downloads

import (
	"context"
	"net/http"

	"github.com/clipfetch/clipfetch/internal/api/util"
	"github.com/clipfetch/clipfetch/internal/fetch"
	"github.com/clipfetch/clipfetch/internal/outcome"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	FetchService interface {
		Fetch(ctx context.Context, req *fetch.Request) (string, error)
		FetchBatch(ctx context.Context, urls []string, common *fetch.Request) []fetch.BatchResult
	}

	HistoryProvider interface {
		FetchHistory(limit int) ([]*outcome.FetchRecord, error)
	}

	// BatchRequest fetches multiple URLs with an optional common set
	// of request settings applied to each. The common request is
	// validated separately (see createBatch) as its URL field is
	// supplied per entry rather than on the common block.
	BatchRequest struct {
		URLs   []string       `json:"urls" validate:"required,min=1"`
		Common *fetch.Request `json:"common" validate:"-"`
	}

	Controller struct {
		validate *validator.Validate
		service  FetchService
		history  HistoryProvider
	}
)

const defaultHistoryLimit = 20

func New(validate *validator.Validate, service FetchService, history HistoryProvider) *Controller {
	return &Controller{validate: validate, service: service, history: history}
}

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.POST("/", controller.create)
	eg.POST("/batch/", controller.createBatch)
	eg.GET("/history/", controller.list)
}

// create accepts a fetch request, runs it to completion and responds
// with the path of the discovered artifact.
func (controller *Controller) create(ec echo.Context) error {
	var req fetch.Request
	if err := ec.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := controller.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	path, err := controller.service.Fetch(ec.Request().Context(), &req)
	if err != nil {
		return util.MapServiceError(err)
	}

	return ec.JSON(http.StatusOK, echo.Map{"path": path})
}

func (controller *Controller) createBatch(ec echo.Context) error {
	var req BatchRequest
	if err := ec.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := controller.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Common != nil {
		// The common settings must meet the same constraints as a
		// single fetch request, minus the per-entry URL.
		if err := controller.validate.StructExcept(req.Common, "URL"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	results := controller.service.FetchBatch(ec.Request().Context(), req.URLs, req.Common)
	return ec.JSON(http.StatusOK, echo.Map{"results": results})
}

// list returns the most recent fetch outcomes. An unavailable store is
// not an error surface here; the caller simply receives an empty list.
func (controller *Controller) list(ec echo.Context) error {
	records, err := controller.history.FetchHistory(util.QueryLimit(ec, defaultHistoryLimit))
	if err != nil || records == nil {
		records = []*outcome.FetchRecord{}
	}

	return ec.JSON(http.StatusOK, echo.Map{"items": records})
}
