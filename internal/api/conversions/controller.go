package conversions

import (
	"context"
	"net/http"

	"github.com/clipfetch/clipfetch/internal/api/util"
	"github.com/clipfetch/clipfetch/internal/convert"
	"github.com/clipfetch/clipfetch/internal/outcome"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ConvertService interface {
		Convert(ctx context.Context, req *convert.Request) (string, error)
	}

	HistoryProvider interface {
		ConversionHistory(limit int) ([]*outcome.ConvertRecord, error)
	}

	Controller struct {
		validate *validator.Validate
		service  ConvertService
		history  HistoryProvider
	}
)

const defaultHistoryLimit = 20

func New(validate *validator.Validate, service ConvertService, history HistoryProvider) *Controller {
	return &Controller{validate: validate, service: service, history: history}
}

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.POST("/", controller.create)
	eg.GET("/history/", controller.list)
}

// create accepts a conversion request and responds with the output
// path once the transcode tool completes.
func (controller *Controller) create(ec echo.Context) error {
	var req convert.Request
	if err := ec.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := controller.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	output, err := controller.service.Convert(ec.Request().Context(), &req)
	if err != nil {
		return util.MapServiceError(err)
	}

	return ec.JSON(http.StatusOK, echo.Map{"output": output})
}

func (controller *Controller) list(ec echo.Context) error {
	records, err := controller.history.ConversionHistory(util.QueryLimit(ec, defaultHistoryLimit))
	if err != nil || records == nil {
		records = []*outcome.ConvertRecord{}
	}

	return ec.JSON(http.StatusOK, echo.Map{"items": records})
}
