package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/feedlens/internal/server/middleware"
	"github.com/OFFIS-RIT/feedlens/internal/storage"
	"github.com/OFFIS-RIT/feedlens/internal/util"
	"github.com/OFFIS-RIT/feedlens/pkg/logger"
	"github.com/OFFIS-RIT/feedlens/pkg/store"

	"github.com/labstack/echo/v4"
)

type reportParams struct {
	ReportID string `param:"id" validate:"required"`
}

type reportResponse struct {
	Message string              `json:"message"`
	Report  *store.StoredReport `json:"report,omitempty"`
}

func bindReportID(c echo.Context) (string, bool) {
	params := new(reportParams)
	if err := c.Bind(params); err != nil {
		return "", false
	}
	if err := c.Validate(params); err != nil {
		return "", false
	}
	return params.ReportID, util.IsID(params.ReportID)
}

// CreateReportHandler stores the submitted text and queues a report job
func CreateReportHandler(c echo.Context) error {
	type createReportBody struct {
		Text     string `json:"text" validate:"required"`
		WithSwot bool   `json:"with_swot"`
	}

	data := new(createReportBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, reportResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, reportResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	id := util.NewID()
	key := storage.InputKey(id)
	if err := app.Objects.PutText(ctx, key, data.Text); err != nil {
		logger.Error("[Server] Failed to store report input", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, reportResponse{
			Message: "Internal server error",
		})
	}

	report, err := app.Store.CreateReport(ctx, id, key, data.WithSwot)
	if err != nil {
		logger.Error("[Server] Failed to create report", "id", id, "err", err)
		_ = app.Objects.DeleteFile(ctx, key)
		return c.JSON(http.StatusInternalServerError, reportResponse{
			Message: "Internal server error",
		})
	}

	if err := app.Queue.PublishReport(ctx, id); err != nil {
		logger.Error("[Server] Failed to queue report", "id", id, "err", err)
		_ = app.Store.FailReport(ctx, id, "failed to queue report")
		return c.JSON(http.StatusServiceUnavailable, reportResponse{
			Message: "Report could not be queued",
		})
	}

	return c.JSON(http.StatusAccepted, reportResponse{
		Message: "Report queued",
		Report:  &report,
	})
}

// GetReportHandler returns a report with its result once it is completed
func GetReportHandler(c echo.Context) error {
	id, ok := bindReportID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, reportResponse{
			Message: "Invalid report id",
		})
	}

	app := c.(*middleware.AppContext).App
	report, err := app.Store.GetReport(c.Request().Context(), id)
	if err != nil {
		status, msg := errorStatus(err)
		return c.JSON(status, reportResponse{Message: msg})
	}

	return c.JSON(http.StatusOK, reportResponse{
		Message: "Report " + string(report.Status),
		Report:  &report,
	})
}

// DeleteReportHandler removes a report and its stored input
func DeleteReportHandler(c echo.Context) error {
	id, ok := bindReportID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, reportResponse{
			Message: "Invalid report id",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	report, err := app.Store.DeleteReport(ctx, id)
	if err != nil {
		status, msg := errorStatus(err)
		return c.JSON(status, reportResponse{Message: msg})
	}

	if err := app.Objects.DeleteFile(ctx, report.InputKey); err != nil {
		logger.Warn("[Server] Failed to delete report input", "id", id, "key", report.InputKey, "err", err)
	}

	return c.JSON(http.StatusOK, reportResponse{
		Message: "Report deleted",
	})
}
