package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asadlib11/arbolitics-dashboard/internal/analytics"
	"github.com/asadlib11/arbolitics-dashboard/internal/interfaces/http/middleware"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/errors"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/logger"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/utils"
)

// AnalyticsProvider produces the chart payload for a time range.
type AnalyticsProvider interface {
	Snapshot(ctx context.Context, token string, rng analytics.Range) (*analytics.Snapshot, error)
}

type DashboardHandler struct {
	analytics AnalyticsProvider
	logger    logger.Interface
}

func NewDashboardHandler(analyticsService AnalyticsProvider, log logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		analytics: analyticsService,
		logger:    log,
	}
}

// CompanyInfo is the company panel of the dashboard.
type CompanyInfo struct {
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// InfoCard is one of the dashboard's summary cards.
type InfoCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// OverviewResponse is the data behind the dashboard landing page.
type OverviewResponse struct {
	Company CompanyInfo `json:"company"`
	Cards   []InfoCard  `json:"cards"`
}

// Overview serves the company panel and info cards from the cached profile.
func (h *DashboardHandler) Overview(c *gin.Context) {
	manager, err := middleware.SessionFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	user := manager.User()
	if user == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	c.JSON(http.StatusOK, OverviewResponse{
		Company: CompanyInfo{
			Name:     user.Company.Name,
			IsActive: user.Company.IsActive,
		},
		Cards: []InfoCard{
			{Title: "User Role", Value: user.Role},
			{Title: "Email", Value: user.Email},
			{Title: "Member Since", Value: memberSince(user.CreatedAt)},
		},
	})
}

// Analytics serves per-device temperature and humidity chart options for
// the selected range. A terminal fetch failure (after the pipeline's single
// retry) becomes the error panel's 502.
func (h *DashboardHandler) Analytics(c *gin.Context) {
	rng, err := analytics.ParseRange(c.Query("range"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("Unknown time range"))
		return
	}

	manager, err := middleware.SessionFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	snapshot, err := h.analytics.Snapshot(c.Request.Context(), manager.Token(), rng)
	if err != nil {
		h.logger.Errorw("analytics snapshot failed", "range", rng, "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadGatewayError("Error loading data"))
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// memberSince reduces the profile's creation timestamp to a date, falling
// back to the raw value when it is not RFC 3339.
func memberSince(createdAt string) string {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return createdAt
	}
	return t.Format("2006-01-02")
}
