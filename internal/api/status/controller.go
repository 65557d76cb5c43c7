package status

import (
	"net/http"
	"os/exec"

	"github.com/labstack/echo/v4"
)

type (
	StoreStatus interface {
		Connected() bool
	}

	// Tools names the external binaries this service shells out to,
	// so the status endpoint can report on their availability.
	Tools struct {
		FetchBin     string
		TranscodeBin string
	}

	ToolDto struct {
		Found bool   `json:"found"`
		Path  string `json:"path,omitempty"`
	}

	StatusDto struct {
		Backend    string  `json:"backend"`
		FetchTool  ToolDto `json:"fetch_tool"`
		Transcoder ToolDto `json:"transcode_tool"`
		OutcomeLog bool    `json:"outcome_log_connected"`
	}

	Controller struct {
		tools Tools
		store StoreStatus
	}
)

func New(tools Tools, store StoreStatus) *Controller {
	return &Controller{tools: tools, store: store}
}

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.GET("/", controller.get)
}

func (controller *Controller) get(ec echo.Context) error {
	return ec.JSON(http.StatusOK, StatusDto{
		Backend:    "running",
		FetchTool:  lookupTool(controller.tools.FetchBin),
		Transcoder: lookupTool(controller.tools.TranscodeBin),
		OutcomeLog: controller.store.Connected(),
	})
}

func lookupTool(bin string) ToolDto {
	path, err := exec.LookPath(bin)
	if err != nil {
		return ToolDto{Found: false}
	}

	return ToolDto{Found: true, Path: path}
}
