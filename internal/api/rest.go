package api

import (
	"context"
	"net"
	"sync"

	"github.com/clipfetch/clipfetch/internal/api/conversions"
	"github.com/clipfetch/clipfetch/internal/api/downloads"
	"github.com/clipfetch/clipfetch/internal/api/files"
	"github.com/clipfetch/clipfetch/internal/api/probe"
	"github.com/clipfetch/clipfetch/internal/api/status"
	"github.com/clipfetch/clipfetch/internal/api/util"
	"github.com/clipfetch/clipfetch/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var log = logger.Get("API")

type (
	RestConfig struct {
		Host string `yaml:"host" env:"HOST" env-default:"0.0.0.0"`
		Port string `yaml:"port" env:"PORT" env-default:"8000"`
	}

	controller interface {
		SetRoutes(*echo.Group)
	}

	// historyProvider is the union of the controllers' read-side
	// requirements on the outcome recorder.
	historyProvider interface {
		downloads.HistoryProvider
		conversions.HistoryProvider
		status.StoreStatus
	}

	// The RestGateway is a thin wrapper around the Echo HTTP router.
	// Its sole responsibility is to create the routes the service
	// exposes and bind them to the controllers; all decision logic
	// lives below it.
	RestGateway struct {
		config                *RestConfig
		ec                    *echo.Echo
		downloadsController   controller
		conversionsController controller
		probeController       controller
		filesController       controller
		statusController      controller
	}
)

func (config *RestConfig) Address() string {
	return net.JoinHostPort(config.Host, config.Port)
}

// NewRestGateway constructs the Echo router and populates it with all
// the routes defined by the various controllers.
func NewRestGateway(
	config *RestConfig,
	fetchService downloads.FetchService,
	convertService conversions.ConvertService,
	probeService probe.ProbeService,
	history historyProvider,
	tools status.Tools,
) *RestGateway {
	ec := echo.New()
	ec.OnAddRouteHandler = func(host string, route echo.Route, handler echo.HandlerFunc, middleware []echo.MiddlewareFunc) {
		log.Emit(logger.DEBUG, "Registered new route %s %s\n", route.Method, route.Path)
	}
	ec.HidePort = true
	ec.HideBanner = true

	validate := util.NewValidator()
	gateway := &RestGateway{
		config:                config,
		ec:                    ec,
		downloadsController:   downloads.New(validate, fetchService, history),
		conversionsController: conversions.New(validate, convertService, history),
		probeController:       probe.New(probeService),
		filesController:       files.New(),
		statusController:      status.New(tools, history),
	}

	ec.Use(middleware.Logger())
	ec.Use(middleware.Recover())
	ec.Use(middleware.CORS())
	ec.Pre(middleware.AddTrailingSlash())

	downloadsGroup := ec.Group("/api/clipfetch/v1/downloads")
	gateway.downloadsController.SetRoutes(downloadsGroup)

	conversionsGroup := ec.Group("/api/clipfetch/v1/conversions")
	gateway.conversionsController.SetRoutes(conversionsGroup)

	probeGroup := ec.Group("/api/clipfetch/v1/probe")
	gateway.probeController.SetRoutes(probeGroup)

	filesGroup := ec.Group("/api/clipfetch/v1/files")
	gateway.filesController.SetRoutes(filesGroup)

	statusGroup := ec.Group("/api/clipfetch/v1/status")
	gateway.statusController.SetRoutes(statusGroup)

	return gateway
}

// Run starts the router and blocks until the context is cancelled or
// the router fails.
func (gateway *RestGateway) Run(parentCtx context.Context) error {
	ctx, ctxCancel := context.WithCancelCause(parentCtx)
	wg := &sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := gateway.ec.Start(gateway.config.Address()); err != nil {
			ctxCancel(err)
		}
	}()

	go func(ec *echo.Echo) {
		<-ctx.Done()
		ec.Close()
	}(gateway.ec)

	wg.Wait()

	// Return cancellation cause if any, otherwise nil as parent context
	// cancellation is not an error case we should report.
	if cause := context.Cause(ctx); cause != ctx.Err() {
		return cause
	}

	return nil
}
