package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sanctify-api/internal/metrics"
	"sanctify-api/internal/middleware/auth"
	"sanctify-api/internal/models"
)

// quotaExceeded is the designed terminal state when the daily free
// quota is spent: not an error, a prompt to upgrade.
func (h *Handler) quotaExceeded(c echo.Context, noun string) error {
	return c.JSON(http.StatusForbidden, map[string]interface{}{
		"code":    "quota_exceeded",
		"message": fmt.Sprintf("You've used all %d free %s for today. Upgrade to Sanctify Plus Premium for unlimited access!", h.ledger.Limit(), noun),
	})
}

func (h *Handler) burstAllowed(c echo.Context, uid string) bool {
	if h.rateLimiter == nil || h.rateLimiter.IsAllowed(uid) {
		return true
	}
	metrics.RateLimitDroppedTotal.Inc()
	return false
}

// GeneratePrayer writes a prayer, metered by the daily ledger.
func (h *Handler) GeneratePrayer(c echo.Context) error {
	ctx := c.Request().Context()
	uid := auth.UID(c)

	var req struct {
		Theme    string `json:"theme"`
		Language string `json:"language"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if !h.burstAllowed(c, uid) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
	}
	if !h.ledger.Authorize(ctx, uid, models.FeaturePrayer) {
		return h.quotaExceeded(c, "prayers")
	}

	prayer := h.devotions.GeneratePrayer(ctx, req.Theme, req.Language)
	return c.JSON(http.StatusOK, prayer)
}

// DeepDive explains a verse or one word of it, metered by the daily
// ledger.
func (h *Handler) DeepDive(c echo.Context) error {
	ctx := c.Request().Context()
	uid := auth.UID(c)

	var req struct {
		Reference string `json:"reference"`
		Verse     string `json:"verse"`
		Word      string `json:"word"`
		Language  string `json:"language"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Reference) == "" || strings.TrimSpace(req.Verse) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reference and verse are required")
	}

	if !h.burstAllowed(c, uid) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
	}
	if !h.ledger.Authorize(ctx, uid, models.FeatureDeepDive) {
		return h.quotaExceeded(c, "Deep Dives")
	}

	insight := h.devotions.DeepDive(ctx, req.Reference, req.Verse, req.Word, req.Language)
	return c.JSON(http.StatusOK, insight)
}

// ScanVerse analyzes a photographed Bible page. Not metered; the burst
// limiter still applies.
func (h *Handler) ScanVerse(c echo.Context) error {
	ctx := c.Request().Context()
	uid := auth.UID(c)

	var req struct {
		Image    string `json:"image"`
		MimeType string `json:"mime_type"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(image) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "image must be base64-encoded")
	}

	if !h.burstAllowed(c, uid) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
	}

	insight := h.devotions.ScanVerse(ctx, image, req.MimeType)
	return c.JSON(http.StatusOK, insight)
}

// SummarizeSermon transcribes and summarizes a sermon recording.
func (h *Handler) SummarizeSermon(c echo.Context) error {
	ctx := c.Request().Context()
	uid := auth.UID(c)

	var req struct {
		Audio    string `json:"audio"`
		MimeType string `json:"mime_type"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil || len(audio) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "audio must be base64-encoded")
	}

	if !h.burstAllowed(c, uid) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
	}

	summary := h.devotions.SummarizeSermon(ctx, audio, req.MimeType)
	return c.JSON(http.StatusOK, summary)
}
