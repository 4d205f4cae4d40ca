package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/feedlens/internal/server/middleware"
	"github.com/OFFIS-RIT/feedlens/pkg/common"

	"github.com/labstack/echo/v4"
)

type analysisBody struct {
	Text string `json:"text" validate:"required"`
}

func bindText(c echo.Context) (string, bool) {
	data := new(analysisBody)
	if err := c.Bind(data); err != nil {
		return "", false
	}
	if err := c.Validate(data); err != nil {
		return "", false
	}
	return data.Text, true
}

// SummaryHandler returns sentence, duplicate and cluster counts
func SummaryHandler(c echo.Context) error {
	type summaryResponse struct {
		Message string               `json:"message"`
		Summary *common.QuickSummary `json:"summary,omitempty"`
	}

	text, ok := bindText(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, summaryResponse{
			Message: "Invalid request body",
		})
	}

	pipeline := c.(*middleware.AppContext).App.Pipeline
	summary := pipeline.Summarize(text)

	return c.JSON(http.StatusOK, summaryResponse{
		Message: "Summary computed",
		Summary: &summary,
	})
}

// SentimentHandler returns per sentence sentiment and its aggregate
func SentimentHandler(c echo.Context) error {
	type sentimentResponse struct {
		Message   string                  `json:"message"`
		Sentiment *common.SentimentReport `json:"sentiment,omitempty"`
	}

	text, ok := bindText(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, sentimentResponse{
			Message: "Invalid request body",
		})
	}

	pipeline := c.(*middleware.AppContext).App.Pipeline
	report, err := pipeline.Sentiment(text)
	if err != nil {
		status, msg := errorStatus(err)
		return c.JSON(status, sentimentResponse{Message: msg})
	}

	return c.JSON(http.StatusOK, sentimentResponse{
		Message:   "Sentiment computed",
		Sentiment: &report,
	})
}

// OverviewHandler returns the document level sentiment
func OverviewHandler(c echo.Context) error {
	type overviewResponse struct {
		Message  string                    `json:"message"`
		Overview *common.SentimentOverview `json:"overview,omitempty"`
	}

	text, ok := bindText(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, overviewResponse{
			Message: "Invalid request body",
		})
	}

	pipeline := c.(*middleware.AppContext).App.Pipeline
	overview := pipeline.Overview(text)

	return c.JSON(http.StatusOK, overviewResponse{
		Message:  "Overview computed",
		Overview: &overview,
	})
}

// SwotHandler asks the text generation service for a SWOT analysis
func SwotHandler(c echo.Context) error {
	type swotResponse struct {
		Message string               `json:"message"`
		Swot    *common.SwotAnalysis `json:"swot,omitempty"`
	}

	text, ok := bindText(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, swotResponse{
			Message: "Invalid request body",
		})
	}

	pipeline := c.(*middleware.AppContext).App.Pipeline
	result, err := pipeline.Swot(c.Request().Context(), text)
	if err != nil {
		status, msg := errorStatus(err)
		return c.JSON(status, swotResponse{Message: msg})
	}

	return c.JSON(http.StatusOK, swotResponse{
		Message: "SWOT analysis generated",
		Swot:    &result,
	})
}

// InterpretHandler answers a free prompt, or interprets the statistics of
// a text when no prompt is given.
func InterpretHandler(c echo.Context) error {
	type interpretBody struct {
		Prompt string `json:"prompt"`
		Text   string `json:"text"`
	}

	type interpretResponse struct {
		Message        string `json:"message"`
		Interpretation string `json:"interpretation,omitempty"`
	}

	data := new(interpretBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, interpretResponse{
			Message: "Invalid request body",
		})
	}
	if data.Prompt == "" && data.Text == "" {
		return c.JSON(http.StatusBadRequest, interpretResponse{
			Message: "Either prompt or text is required",
		})
	}

	ctx := c.Request().Context()
	pipeline := c.(*middleware.AppContext).App.Pipeline

	var (
		answer string
		err    error
	)
	if data.Prompt != "" {
		answer, err = pipeline.Interpret(ctx, data.Prompt)
	} else {
		var sentiment *common.SentimentSummary
		if report, sErr := pipeline.Sentiment(data.Text); sErr == nil {
			sentiment = &report.Summary
		}
		answer, err = pipeline.InterpretSummary(ctx, pipeline.Summarize(data.Text), sentiment)
	}
	if err != nil {
		status, msg := errorStatus(err)
		return c.JSON(status, interpretResponse{Message: msg})
	}

	return c.JSON(http.StatusOK, interpretResponse{
		Message:        "Interpretation generated",
		Interpretation: answer,
	})
}
