package ai

import (
	"context"
	"time"

	"sanctify-api/internal/logger"
	"sanctify-api/internal/metrics"
)

// Service runs the four devotional AI features against a Generator.
// Its methods never fail: provider and parse errors degrade to canned
// results per the response contract, so every caller always has
// something renderable.
type Service struct {
	gen        Generator
	flashModel string
	proModel   string
	now        func() time.Time
}

func NewService(gen Generator, flashModel, proModel string) *Service {
	return &Service{
		gen:        gen,
		flashModel: flashModel,
		proModel:   proModel,
		now:        time.Now,
	}
}

func (s *Service) generate(ctx context.Context, model string, parts []Part, jsonOnly bool) (string, error) {
	metrics.AIRequestsTotal.Inc()
	start := time.Now()
	raw, err := s.gen.Generate(ctx, model, parts, jsonOnly)
	metrics.AIRequestDurationSeconds.Observe(time.Since(start).Seconds())
	return raw, err
}

// ScanVerse analyzes a photographed Bible page.
func (s *Service) ScanVerse(ctx context.Context, image []byte, mimeType string) VerseInsight {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	raw, err := s.generate(ctx, s.proModel, []Part{
		{Data: image, MIMEType: mimeType},
		{Text: verseScanPrompt},
	}, false)
	if err != nil {
		logger.Error("verse scan generation failed", "error", err)
		return VerseInsight{
			Reference:    "Unknown Reference",
			Text:         "Could not read text clearly.",
			OriginalWord: "Deep Insight",
			Meaning:      "Error contacting AI server.",
		}
	}
	return DecodeVerseInsight(raw)
}

// SummarizeSermon transcribes and summarizes a sermon recording.
func (s *Service) SummarizeSermon(ctx context.Context, audio []byte, mimeType string) SermonSummary {
	if mimeType == "" {
		mimeType = "audio/m4a"
	}
	date := s.now().Format("Jan 2, 2006")
	raw, err := s.generate(ctx, s.flashModel, []Part{
		{Data: audio, MIMEType: mimeType},
		{Text: sermonPrompt},
	}, false)
	if err != nil {
		logger.Error("sermon summarization failed", "error", err)
		return SermonSummary{
			Title:    "Spiritual Reflection",
			Preacher: "Sermon Audio",
			Date:     date,
			Duration: "Just now",
			Badge:    "NEW",
			Content:  "Failed to transcribe audio properly.",
		}
	}
	return DecodeSermonSummary(raw, date)
}

// GeneratePrayer writes a prayer, optionally focused on a theme.
// language is the fallback language when the theme gives no signal.
func (s *Service) GeneratePrayer(ctx context.Context, theme, language string) Prayer {
	if language == "" {
		language = "English"
	}
	raw, err := s.generate(ctx, s.proModel, []Part{
		{Text: prayerPrompt(theme, language)},
	}, true)
	if err != nil {
		logger.Error("prayer generation failed", "theme", theme, "error", err)
		return ErrorPrayer()
	}
	return DecodePrayer(raw)
}

// DeepDive explains a verse, or a single word of it when word is
// non-empty.
func (s *Service) DeepDive(ctx context.Context, reference, verse, word, language string) VerseInsight {
	if language == "" {
		language = "English"
	}
	prompt := deepDivePrompt(reference, verse, language)
	if word != "" {
		prompt = wordStudyPrompt(reference, verse, word, language)
	}
	raw, err := s.generate(ctx, s.proModel, []Part{{Text: prompt}}, true)
	if err != nil {
		logger.Error("deep dive generation failed", "reference", reference, "error", err)
		return VerseInsight{
			Reference:    reference,
			Text:         verse,
			OriginalWord: "Deep Insight",
			Meaning:      "Error contacting AI server.",
		}
	}
	return DecodeDeepDive(raw)
}
