package ai

import "fmt"

// The prompts pin two things the decoders rely on: the reply must be in
// the language detected from the input, and it must be a bare JSON
// object with an exact key set.

const verseScanPrompt = `Analyze this Bible verse image.
IMPORTANT RULE: You MUST output all your analysis in the EXACT SAME LANGUAGE as the text written in the image. If the image contains Korean text, you MUST answer entirely in Korean. If English, answer in English.

Return ONLY a JSON object with exactly these keys:
{
  "reference": "e.g., John 3:16 (or 요한복음 3:16)",
  "text": "The main verse text you can read in its original language",
  "originalWord": "e.g., Agape (Greek: ἀγάπη) - pick one key word from the text and show its original Biblical language (Greek/Hebrew) origin",
  "meaning": "Profound theological meaning of that original word in 1-2 sentences, written in the detected language of the image"
}
Do not include ` + "```json" + ` markdown blocks, just the raw JSON.`

const sermonPrompt = `Listen to this sermon recording (it could be in Korean or English).
IMPORTANT RULE: You MUST output all your analysis in the EXACT SAME LANGUAGE as the audio. If they speak Korean, answer in Korean.

Return ONLY a JSON object with strictly these keys (No markdown formatting):
{
  "title": "A short, catchy, and spiritual title for this sermon (3-5 words)",
  "preacher": "The speaker's name if mentioned, otherwise 'Pastor'",
  "duration": "A short guess of the summary length, e.g., '1 min read'",
  "badge": "A highly relevant 1-word tag (e.g., GRACE, FAITH, LOVE, 소망)",
  "content": "A beautiful 2-3 sentence summary/transcript of the core message"
}`

func prayerPrompt(theme, language string) string {
	focus := "Provide an uplifting, comforting, and deeply profound general prayer for today."
	if theme != "" {
		focus = fmt.Sprintf("The user is specifically asking for prayer regarding: %q. Please focus the prayer entirely on this topic.", theme)
	}
	return fmt.Sprintf(`You are a deeply empathetic, poetic Christian prayer artisan providing a premium, profound spiritual experience.
Write a deeply moving, beautifully crafted, multi-paragraph prayer.

%s

The prayer must be deeply moving, rich in spiritual depth, and sound natural. It should have 3 distinct paragraphs capturing: 1) Acknowledgment of God, 2) The core petition/struggle, 3) Trust and closing hope.
Return strictly as JSON:
{
  "title": "A short, beautiful 3-4 word title for the prayer",
  "body": "The rich, 3-paragraph prayer text itself with natural language flow. Separate the paragraphs clearly with standard newline formatting (\n\n). Do not include 'Amen' at the end.",
  "amen": "The word for Amen in the requested language (e.g. 'Amen.', '아멘.')"
}
IMPORTANT: Write the prayer in the EXACT SAME LANGUAGE as the user's request. If the user's request is empty, default to fluent %s language. Ensure proper formatting.`, focus, language)
}

func deepDivePrompt(reference, verse, language string) string {
	return fmt.Sprintf(`You are a profound theologian and Bible scholar.
Analyze the following verse and provide a rich "Deep Dive" explanation.

Reference: %s
Text: %q

Return the response strictly as a JSON object with this exact structure:
{
  "reference": "%s",
  "text": "%s",
  "original_word": "Brief interesting Greek/Hebrew word from this verse with its meaning",
  "meaning": "Deep spiritual and theological meaning (2-3 sentences max)"
}

IMPORTANT: Reply ONLY in JSON. Also, the output values MUST be in %s.`, reference, verse, reference, verse, language)
}

func wordStudyPrompt(reference, verse, word, language string) string {
	return fmt.Sprintf(`You are a profound theologian and Bible scholar.
Analyze the original Hebrew/Greek word for %q within the context of the following verse.

Reference: %s
Verse: %q

Return the response strictly as a JSON object with this exact structure:
{
  "reference": "%s",
  "text": "Word: %s",
  "original_word": "The Original Greek/Hebrew word for '%s'",
  "meaning": "Detailed meaning, origin, and significance of this specific word (2-3 sentences max)"
}

IMPORTANT: Reply ONLY in JSON. Also, the output values MUST be in %s.`, word, reference, verse, reference, word, word, language)
}
