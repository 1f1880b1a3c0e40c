package assistant

import (
	"strconv"
	"strings"

	"codeberg.org/docqa/server/internal/llm"
	"codeberg.org/docqa/server/internal/sessions"
	"codeberg.org/docqa/server/internal/store"
)

// questions answered from precomputed statistics instead of retrieval
var statsKeywords = []string{"how many words", "word count", "total words", "page count", "document size"}

// leading prefixes models sometimes echo despite the prompt
var answerPrefixes = []string{"Answer:", "Response:", "A:"}

func isStatsQuestion(question string) bool {
	q := strings.ToLower(strings.TrimSpace(question))

	for _, kw := range statsKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}

	return false
}

// strips the first matching answer prefix
func cleanAnswer(answer string) string {
	for _, prefix := range answerPrefixes {
		if strings.HasPrefix(answer, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(answer, prefix))
		}
	}

	return answer
}

// truncates chunk content to 200 runes and marks the cut
func sourceSnippet(content string) string {
	runes := []rune(content)
	if len(runes) > 200 {
		runes = runes[:200]
	}

	return string(runes) + "..."
}

func buildSources(results []store.Result, limit int) []string {
	if limit > len(results) {
		limit = len(results)
	}

	sources := make([]string, 0, limit)
	for _, result := range results[:limit] {
		sources = append(sources, sourceSnippet(result.Content))
	}

	return sources
}

func joinContents(results []store.Result, separator string) string {
	contents := make([]string, len(results))
	for i, result := range results {
		contents[i] = result.Content
	}

	return strings.Join(contents, separator)
}

func historyToMessages(history []sessions.Message) []llm.Message {
	messages := make([]llm.Message, len(history))
	for i, msg := range history {
		messages[i] = llm.Message{Role: msg.Role, Content: msg.Content}
	}

	return messages
}

// groups digits into thousands: 1234567 becomes "1,234,567"
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder

	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}

	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(s[i : i+3])
	}

	return b.String()
}
