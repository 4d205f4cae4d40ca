package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/feedlens/pkg/ai"
	"github.com/OFFIS-RIT/feedlens/pkg/logger"
	"github.com/OFFIS-RIT/feedlens/pkg/sentiment"
	"github.com/OFFIS-RIT/feedlens/pkg/similarity"
	"github.com/OFFIS-RIT/feedlens/pkg/store"
)

// errorStatus maps an analysis or storage error to a status code and a
// client facing message.
func errorStatus(err error) (int, string) {
	var genErr *ai.GenerationError
	switch {
	case errors.Is(err, sentiment.ErrEmptyInput):
		return http.StatusUnprocessableEntity, "Text contains no analysable sentences"
	case errors.Is(err, similarity.ErrInsufficientData):
		return http.StatusUnprocessableEntity, "Text contains too few sentences"
	case errors.As(err, &genErr):
		if genErr.Timeout() {
			return http.StatusGatewayTimeout, "Text generation timed out"
		}
		return http.StatusBadGateway, "Text generation failed"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "Report not found"
	default:
		logger.Error("[Server] Request failed", "err", err)
		return http.StatusInternalServerError, "Internal server error"
	}
}
