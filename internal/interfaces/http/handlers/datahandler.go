package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/asadlib11/arbolitics-dashboard/internal/shared/errors"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/logger"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/utils"
)

// DatasetForwarder retrieves the upstream dataset's inner data array as raw
// bytes, preserving fields this service does not model.
type DatasetForwarder interface {
	FetchDatasetRaw(ctx context.Context, token string, locationID, limit int) (json.RawMessage, error)
}

type DataHandler struct {
	upstream   DatasetForwarder
	locationID int
	logger     logger.Interface
}

func NewDataHandler(upstreamClient DatasetForwarder, locationID int, log logger.Interface) *DataHandler {
	return &DataHandler{
		upstream:   upstreamClient,
		locationID: locationID,
		logger:     log,
	}
}

// GetArboliticData is the thin data proxy. The caller supplies the bearer
// token as a query parameter; the location id is fixed server-side. On
// success only the inner data array of the upstream envelope is returned,
// verbatim.
func (h *DataHandler) GetArboliticData(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authorization token is required"))
		return
	}

	// Unparseable limits forward as zero, mirroring the original proxy's
	// tolerance; the upstream decides what an absent limit means.
	limit, _ := strconv.Atoi(c.Query("limit"))

	data, err := h.upstream.FetchDatasetRaw(c.Request.Context(), token, h.locationID, limit)
	if err != nil {
		h.logger.Errorw("dataset proxy failed", "error", err, "limit", limit)
		utils.ErrorResponseWithError(c, errors.NewInternalError("Failed to fetch data"))
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}
