package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sanctify-api/internal/middleware/auth"
	"sanctify-api/internal/models"
)

// The archive endpoints are fail-closed: a storage error surfaces as a
// 5xx and nothing is partially written, unlike the fail-open ledger.

func (h *Handler) ListVerses(c echo.Context) error {
	verses, err := h.store.ListVerses(c.Request().Context(), auth.UID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list saved verses")
	}
	return c.JSON(http.StatusOK, verses)
}

func (h *Handler) SaveVerse(c echo.Context) error {
	var req struct {
		Reference    string `json:"reference"`
		Text         string `json:"text"`
		OriginalWord string `json:"original_word"`
		Meaning      string `json:"meaning"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Reference) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reference is required")
	}

	id, err := h.store.AddVerse(c.Request().Context(), auth.UID(c), models.SavedVerse{
		Reference:    req.Reference,
		Text:         req.Text,
		OriginalWord: req.OriginalWord,
		Meaning:      req.Meaning,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save verse")
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) DeleteVerse(c echo.Context) error {
	if err := h.store.DeleteVerse(c.Request().Context(), auth.UID(c), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete verse")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListPrayers(c echo.Context) error {
	prayers, err := h.store.ListPrayers(c.Request().Context(), auth.UID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list saved prayers")
	}
	return c.JSON(http.StatusOK, prayers)
}

func (h *Handler) SavePrayer(c echo.Context) error {
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		Amen  string `json:"amen"`
		Theme string `json:"theme"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and body are required")
	}
	if req.Theme == "" {
		req.Theme = "General"
	}
	if req.Amen == "" {
		req.Amen = "Amen."
	}

	id, err := h.store.AddPrayer(c.Request().Context(), auth.UID(c), models.SavedPrayer{
		Title: req.Title,
		Body:  req.Body,
		Amen:  req.Amen,
		Theme: req.Theme,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save prayer")
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) DeletePrayer(c echo.Context) error {
	if err := h.store.DeletePrayer(c.Request().Context(), auth.UID(c), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete prayer")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListSermonNotes(c echo.Context) error {
	notes, err := h.store.ListSermonNotes(c.Request().Context(), auth.UID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list sermon notes")
	}
	return c.JSON(http.StatusOK, notes)
}

func (h *Handler) SaveSermonNote(c echo.Context) error {
	var req struct {
		Title    string `json:"title"`
		Preacher string `json:"preacher"`
		Date     string `json:"date"`
		Duration string `json:"duration"`
		Badge    string `json:"badge"`
		Content  string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and content are required")
	}

	id, err := h.store.AddSermonNote(c.Request().Context(), auth.UID(c), models.SermonNote{
		Title:    req.Title,
		Preacher: req.Preacher,
		Date:     req.Date,
		Duration: req.Duration,
		Badge:    req.Badge,
		Content:  req.Content,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save sermon note")
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) DeleteSermonNote(c echo.Context) error {
	if err := h.store.DeleteSermonNote(c.Request().Context(), auth.UID(c), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete sermon note")
	}
	return c.NoContent(http.StatusNoContent)
}
