package middleware

import (
	"context"

	"github.com/OFFIS-RIT/feedlens/internal/storage"
	"github.com/OFFIS-RIT/feedlens/pkg/analysis"
	"github.com/OFFIS-RIT/feedlens/pkg/store"

	"github.com/labstack/echo/v4"
)

// ReportPublisher enqueues report jobs for the workers.
type ReportPublisher interface {
	PublishReport(ctx context.Context, reportID string) error
}

// App holds the dependencies shared by all handlers. It is built once at
// startup and never changed afterwards.
type App struct {
	Pipeline *analysis.Pipeline
	Store    store.ReportStore
	Objects  storage.ObjectStore
	Queue    ReportPublisher
}

type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware exposes app to handlers through AppContext.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
