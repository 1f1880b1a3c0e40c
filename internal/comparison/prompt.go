package comparison

import "fmt"

const analyzerSystemPrompt = "You are a document analyzer. Extract specific information concisely in bullet points."

const recommenderSystemPrompt = "You are an expert analyst providing detailed, actionable recommendations."

const extractorSystemPrompt = "You are a data extraction specialist. Return only valid JSON."

// marker embedded in comparison results for unknown documents
const documentNotFound = "Document not found"

func buildAspectPrompt(aspect, contextText string) string {
	return fmt.Sprintf(`Analyze this document section and extract information about %s.
Be specific and concise. List key points as bullet points.

Document section:
%s

Extract information about %s:`, aspect, contextText, aspect)
}

func buildRecommendationPrompt(contextText, jobRole string) string {
	roleContext := ""
	if jobRole != "" {
		roleContext = fmt.Sprintf(" for the role of '%s'", jobRole)
	}

	return fmt.Sprintf(`Based on the document comparison below, provide a comprehensive recommendation%s.

%s

Provide your analysis in this format:

## Overall Recommendation
[Which document/candidate is the strongest and why - be specific]

## Individual Strengths
[List key strengths of each candidate]

## Best Fit Analysis
[Explain which candidate is best suited and why]

## Key Differentiators
[What sets the top candidate apart]

Be specific, actionable, and professional.`, roleContext, contextText)
}

func buildExtractionPrompt(text string) string {
	return fmt.Sprintf(`Extract structured information from this document.
Provide a JSON response with these fields (use "N/A" if not found):
{
  "name": "Full name",
  "email": "Email address",
  "phone": "Phone number",
  "skills": ["skill1", "skill2", "skill3"],
  "experience_years": 0,
  "education": ["degree1", "degree2"],
  "certifications": ["cert1", "cert2"],
  "key_achievements": ["achievement1", "achievement2", "achievement3"]
}

Document text:
%s

Respond with ONLY valid JSON, no other text.`, text)
}
