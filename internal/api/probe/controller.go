package probe

import (
	"context"
	"net/http"

	"github.com/clipfetch/clipfetch/internal/api/util"
	"github.com/labstack/echo/v4"
)

type (
	ProbeService interface {
		Probe(ctx context.Context, path string) (string, error)
	}

	Controller struct {
		service ProbeService
	}
)

func New(service ProbeService) *Controller {
	return &Controller{service: service}
}

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.GET("/", controller.get)
}

// get runs the transcode tool's inspection mode against the file named
// by the 'path' query parameter and returns its raw textual output.
func (controller *Controller) get(ec echo.Context) error {
	path := ec.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "'path' query parameter is required")
	}

	raw, err := controller.service.Probe(ec.Request().Context(), path)
	if err != nil {
		return util.MapServiceError(err)
	}

	return ec.JSON(http.StatusOK, echo.Map{"raw": raw})
}
