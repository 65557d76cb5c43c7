package files

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// Controller streams previously fetched or converted files back to the
// caller. It serves whatever path it is given; session workspaces are
// the expected source but this mirrors the permissive retrieval
// surface of the original service.
type Controller struct{}

func New() *Controller {
	return &Controller{}
}

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.GET("/", controller.get)
}

func (controller *Controller) get(ec echo.Context) error {
	path := ec.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "'path' query parameter is required")
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	}

	return ec.Attachment(path, filepath.Base(path))
}
