package ai

import (
	"encoding/json"
	"strings"

	"sanctify-api/internal/metrics"
)

// Decoders for the model's free-text JSON replies. The contract: the
// caller always gets a fully populated result. Missing or empty keys
// get human-readable defaults; an unparseable reply degrades to a
// canned result built from the raw text. No decoder ever returns an
// error.

// VerseInsight is the structured result of a verse scan or deep dive.
type VerseInsight struct {
	Reference    string `json:"reference"`
	Text         string `json:"text"`
	OriginalWord string `json:"original_word"`
	Meaning      string `json:"meaning"`
}

// SermonSummary is the structured result of a sermon transcription.
type SermonSummary struct {
	Title    string `json:"title"`
	Preacher string `json:"preacher"`
	Date     string `json:"date"`
	Duration string `json:"duration"`
	Badge    string `json:"badge"`
	Content  string `json:"content"`
}

// Prayer is a generated prayer.
type Prayer struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Amen  string `json:"amen"`
}

// StripCodeFences removes markdown code-fence markers the model may
// add despite being told not to.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// DecodeVerseInsight parses a verse-scan reply.
func DecodeVerseInsight(raw string) VerseInsight {
	clean := StripCodeFences(raw)
	var data struct {
		Reference    string `json:"reference"`
		Text         string `json:"text"`
		OriginalWord string `json:"originalWord"`
		Meaning      string `json:"meaning"`
	}
	if err := json.Unmarshal([]byte(clean), &data); err != nil {
		metrics.AIParseFailuresTotal.Inc()
		return VerseInsight{
			Reference:    "Analysis Complete",
			Text:         "Extracted meaning from the passage...",
			OriginalWord: "Deep Insight",
			Meaning:      truncate(clean, 150) + "...",
		}
	}
	return VerseInsight{
		Reference:    orDefault(data.Reference, "Unknown Reference"),
		Text:         orDefault(data.Text, "Could not read text clearly."),
		OriginalWord: orDefault(data.OriginalWord, "Deep Insight"),
		Meaning:      orDefault(data.Meaning, "The AI is pondering the spiritual depth of this passage..."),
	}
}

// DecodeDeepDive parses a deep-dive or word-study reply. The prompt
// asks for snake_case original_word; camelCase is tolerated since the
// model sometimes mirrors the scan schema instead.
func DecodeDeepDive(raw string) VerseInsight {
	clean := StripCodeFences(raw)
	var data struct {
		Reference     string `json:"reference"`
		Text          string `json:"text"`
		OriginalWord  string `json:"original_word"`
		OriginalCamel string `json:"originalWord"`
		Meaning       string `json:"meaning"`
	}
	if err := json.Unmarshal([]byte(clean), &data); err != nil {
		metrics.AIParseFailuresTotal.Inc()
		return VerseInsight{
			Reference:    "Analysis Complete",
			Text:         "Extracted meaning from the passage...",
			OriginalWord: "Deep Insight",
			Meaning:      truncate(clean, 150) + "...",
		}
	}
	word := data.OriginalWord
	if strings.TrimSpace(word) == "" {
		word = data.OriginalCamel
	}
	return VerseInsight{
		Reference:    orDefault(data.Reference, "Unknown Reference"),
		Text:         orDefault(data.Text, "Could not read text clearly."),
		OriginalWord: orDefault(word, "Deep Insight"),
		Meaning:      orDefault(data.Meaning, "The AI is pondering the spiritual depth of this passage..."),
	}
}

// DecodeSermonSummary parses a sermon reply. date is the display date
// stamped on the note.
func DecodeSermonSummary(raw, date string) SermonSummary {
	clean := StripCodeFences(raw)
	var data struct {
		Title    string `json:"title"`
		Preacher string `json:"preacher"`
		Duration string `json:"duration"`
		Badge    string `json:"badge"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal([]byte(clean), &data); err != nil {
		metrics.AIParseFailuresTotal.Inc()
		return SermonSummary{
			Title:    "Spiritual Reflection",
			Preacher: "Sermon Audio",
			Date:     date,
			Duration: "Just now",
			Badge:    "NEW",
			Content:  truncate(clean, 150) + "...",
		}
	}
	badge := "NEW"
	if strings.TrimSpace(data.Badge) != "" {
		badge = strings.ToUpper(data.Badge)
	}
	return SermonSummary{
		Title:    orDefault(data.Title, "Spiritual Reflection"),
		Preacher: orDefault(data.Preacher, "Pastor"),
		Date:     date,
		Duration: orDefault(data.Duration, "Just now"),
		Badge:    badge,
		Content:  orDefault(data.Content, "A word of encouragement from today's message."),
	}
}

// DecodePrayer parses a prayer reply.
func DecodePrayer(raw string) Prayer {
	clean := StripCodeFences(raw)
	var data Prayer
	if err := json.Unmarshal([]byte(clean), &data); err != nil {
		metrics.AIParseFailuresTotal.Inc()
		return ErrorPrayer()
	}
	return Prayer{
		Title: orDefault(data.Title, "A Quiet Moment"),
		Body:  orDefault(data.Body, "Lord, we come before You in stillness, trusting that You hear what words cannot carry."),
		Amen:  orDefault(data.Amen, "Amen."),
	}
}

// ErrorPrayer is the canned result when prayer generation fails
// entirely; it is still renderable.
func ErrorPrayer() Prayer {
	return Prayer{
		Title: "Error Generating Prayer",
		Body:  "Could not load the prayer. Please try again.",
		Amen:  "Amen.",
	}
}
