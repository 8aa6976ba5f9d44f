package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sanctify-api/internal/ai"
	"sanctify-api/internal/billing"
	"sanctify-api/internal/middleware/ratelimit"
	"sanctify-api/internal/models"
	"sanctify-api/internal/store"
)

// Devotions runs the AI features. Results are always renderable;
// provider failures have already been degraded to defaults.
type Devotions interface {
	ScanVerse(ctx context.Context, image []byte, mimeType string) ai.VerseInsight
	SummarizeSermon(ctx context.Context, audio []byte, mimeType string) ai.SermonSummary
	GeneratePrayer(ctx context.Context, theme, language string) ai.Prayer
	DeepDive(ctx context.Context, reference, verse, word, language string) ai.VerseInsight
}

// Authorizer is the daily usage ledger.
type Authorizer interface {
	Authorize(ctx context.Context, uid string, feature models.Feature) bool
	Remaining(p *models.UserProfile, feature models.Feature) int
	Limit() int
}

// Biller drives the premium upgrade flow.
type Biller interface {
	CreateOrder(ctx context.Context, uid string) (*billing.CheckoutOrder, error)
	CaptureOrder(ctx context.Context, uid, orderID string) (string, error)
	Simulate(ctx context.Context, uid string) error
	Orders(ctx context.Context, uid string) ([]models.Order, error)
}

// ScriptureReader serves chapters of scripture text.
type ScriptureReader interface {
	Chapter(ctx context.Context, version, book string, chapter int) ([]models.Verse, error)
}

// Pinger checks one dependency for the health endpoint.
type Pinger func(ctx context.Context) error

type Handler struct {
	store       store.Store
	ledger      Authorizer
	devotions   Devotions
	biller      Biller
	scripture   ScriptureReader
	rateLimiter *ratelimit.RateLimiter

	// Health checks; nil means the dependency is not wired (reported
	// as "disabled" rather than unhealthy).
	DBCheck    Pinger
	RedisCheck Pinger
	StoreCheck Pinger
}

func NewHandler(
	st store.Store,
	ledger Authorizer,
	devotions Devotions,
	biller Biller,
	scripture ScriptureReader,
	rateLimiter *ratelimit.RateLimiter,
) *Handler {
	return &Handler{
		store:       st,
		ledger:      ledger,
		devotions:   devotions,
		biller:      biller,
		scripture:   scripture,
		rateLimiter: rateLimiter,
	}
}

// Register mounts all routes. authMW guards everything under /api.
func (h *Handler) Register(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.GET("/health", h.HealthCheck)
	e.GET("/scripture/books", h.ListBooks)
	e.GET("/scripture/:version/:book/:chapter", h.GetChapter)

	api := e.Group("/api", authMW)
	api.POST("/signup", h.Signup)
	api.GET("/profile", h.GetProfile)
	api.PUT("/profile", h.UpdateProfile)
	api.GET("/usage", h.GetUsage)

	api.POST("/devotions/prayer", h.GeneratePrayer)
	api.POST("/devotions/deep-dive", h.DeepDive)
	api.POST("/devotions/verse-scan", h.ScanVerse)
	api.POST("/devotions/sermon", h.SummarizeSermon)

	api.GET("/verses", h.ListVerses)
	api.POST("/verses", h.SaveVerse)
	api.DELETE("/verses/:id", h.DeleteVerse)
	api.GET("/prayers", h.ListPrayers)
	api.POST("/prayers", h.SavePrayer)
	api.DELETE("/prayers/:id", h.DeletePrayer)
	api.GET("/sermon-notes", h.ListSermonNotes)
	api.POST("/sermon-notes", h.SaveSermonNote)
	api.DELETE("/sermon-notes/:id", h.DeleteSermonNote)

	api.GET("/billing/orders", h.ListOrders)
	api.POST("/billing/orders", h.CreateOrder)
	api.POST("/billing/orders/:id/capture", h.CaptureOrder)
	api.POST("/billing/simulate", h.SimulatePayment)
}

func (h *Handler) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()

	check := func(p Pinger) string {
		if p == nil {
			return "disabled"
		}
		if err := p(ctx); err != nil {
			return "unhealthy"
		}
		return "healthy"
	}

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Database:  check(h.DBCheck),
		Redis:     check(h.RedisCheck),
		Firestore: check(h.StoreCheck),
	}
	if response.Database == "unhealthy" || response.Firestore == "unhealthy" {
		response.Status = "degraded"
	}

	return c.JSON(http.StatusOK, response)
}
