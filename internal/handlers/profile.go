package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"sanctify-api/internal/middleware/auth"
	"sanctify-api/internal/models"
	"sanctify-api/internal/store"
)

// Signup bootstraps the users/{uid} profile document right after
// account creation.
func (h *Handler) Signup(c echo.Context) error {
	uid := auth.UID(c)

	var req struct {
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	profile := &models.UserProfile{
		UID:         uid,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		CreatedAt:   time.Now(),
	}
	if err := h.store.CreateProfile(c.Request().Context(), profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create profile")
	}
	return c.JSON(http.StatusCreated, profile)
}

func (h *Handler) GetProfile(c echo.Context) error {
	uid := auth.UID(c)

	profile, err := h.store.GetProfile(c.Request().Context(), uid)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "profile not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch profile")
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	uid := auth.UID(c)

	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "display_name is required")
	}

	err := h.store.UpdateDisplayName(c.Request().Context(), uid, req.DisplayName)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "profile not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update profile")
	}
	return c.JSON(http.StatusOK, map[string]string{"display_name": req.DisplayName})
}

// GetUsage reports how much of each metered feature is left today.
func (h *Handler) GetUsage(c echo.Context) error {
	uid := auth.UID(c)

	profile, err := h.store.GetProfile(c.Request().Context(), uid)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch usage")
	}
	// A missing profile reads as a fresh, unused account.

	type featureUsage struct {
		Used      int `json:"used"`
		Remaining int `json:"remaining"`
	}
	limit := h.ledger.Limit()
	usageFor := func(f models.Feature) featureUsage {
		remaining := h.ledger.Remaining(profile, f)
		return featureUsage{Used: limit - remaining, Remaining: remaining}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"is_premium": profile != nil && profile.IsPremium,
		"limit":      limit,
		"features": map[string]featureUsage{
			string(models.FeaturePrayer):   usageFor(models.FeaturePrayer),
			string(models.FeatureDeepDive): usageFor(models.FeatureDeepDive),
		},
	})
}
