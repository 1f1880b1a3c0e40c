package assistant

import (
	"fmt"

	"codeberg.org/docqa/server/docqa/documents"
)

const noDocumentMessage = "Please upload and process a document first."

const statsSource = "Calculated from document"

const qaSystemPrompt = `You are a document assistant. Answer using ONLY the provided context.

Rules:
- Extract facts, names, dates, numbers from context
- If asked for summary, cover main points
- If asked for details, be specific
- If not in context, say: "I cannot find that information"
- Do not add information not in context`

const contextualizeSystemPrompt = `Given a chat history and the latest user question which might reference context in the chat history, formulate a standalone question which can be understood without the chat history.

Consider:
- Previous questions and answers in the conversation
- References to "it", "this", "that", "the document", etc.
- Follow-up questions that build on previous answers

Do NOT answer the question, just reformulate it if needed and otherwise return it as is.`

func buildQAUserMessage(contextText, question string) string {
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s\n\nAnswer:", contextText, question)
}

func buildMemoryQASystemPrompt(contextText string) string {
	return fmt.Sprintf(`You are an AI assistant helping users understand documents. Use the following context to answer the question accurately and conversationally.

Guidelines:
1. Answer based ONLY on the provided context
2. If information is not in the context, say "I cannot find that information in the document"
3. Reference previous parts of the conversation when relevant
4. Be conversational but accurate
5. Quote specific parts of the document when helpful

Context: %s`, contextText)
}

func buildStatsAnswer(doc *documents.Document) string {
	return fmt.Sprintf("**Document Statistics:**\n\nFile: %s\nTotal Words: %s\nCharacters: %s\nChunks: %d",
		doc.Filename,
		formatThousands(doc.Stats.TotalWords),
		formatThousands(doc.Stats.TotalCharacters),
		doc.Stats.TotalChunks,
	)
}
