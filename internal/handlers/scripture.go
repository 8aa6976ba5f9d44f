package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sanctify-api/internal/scripture"
)

// ListBooks serves the canon with localized display names and the
// supported translations, so a reader client can build its book picker
// without hardcoding the tables.
func (h *Handler) ListBooks(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"versions": scripture.Versions,
		"books":    scripture.Canon(),
	})
}

func (h *Handler) GetChapter(c echo.Context) error {
	version := c.Param("version")
	book := c.Param("book")
	chapter, err := strconv.Atoi(c.Param("chapter"))
	if err != nil || chapter < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "chapter must be a positive number")
	}
	if !scripture.VersionSupported(version) {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported translation")
	}
	if scripture.BookIndex(book) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown book")
	}

	verses, err := h.scripture.Chapter(c.Request().Context(), version, book, chapter)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to fetch chapter")
	}
	return c.JSON(http.StatusOK, verses)
}
