package ai

// SwotSystemPrompt frames the model for SWOT extraction.
const SwotSystemPrompt = "You are an expert SWOT analyst."

// Generation settings for SWOT extraction.
const (
	SwotTemperature = 0.5
	SwotMaxTokens   = 600
)

// InterpretationSystemPrompt frames the model for free-form interpretation
// of computed statistics.
const InterpretationSystemPrompt = "You are a helpful AI assistant that analyzes data and provides insights."

// Generation settings for interpretation.
const (
	InterpretationTemperature = 0.7
	InterpretationMaxTokens   = 500
)

// SwotPrompt asks for a SWOT analysis of cleaned feedback text. The response
// format is the bulleted layout read by swot.Parse.
const SwotPrompt = `
# Task Context
You are a business analyst. You will be provided with customer feedback collected from reviews, surveys and support tickets.

# Background Data
%s

# Detailed Task Description & Rules
- Generate a concise SWOT analysis of the feedback above.
- Focus on recurring themes and insights, not on single remarks.
- Strengths and Weaknesses describe the product or service itself.
- Opportunities and Threats describe the market and customer situation around it.
- Each point is one short sentence.
- Do not invent facts that the feedback does not support.

# Output Formatting
Respond in exactly this structured format, one bullet per line:
Strengths:
- ...
Weaknesses:
- ...
Opportunities:
- ...
Threats:
- ...
`

// SwotFormatPrompt is SwotPrompt for structured output, where the response is
// decoded into a JSON object instead of bullets.
const SwotFormatPrompt = `
# Task Context
You are a business analyst. You will be provided with customer feedback collected from reviews, surveys and support tickets.

# Background Data
%s

# Detailed Task Description & Rules
- Generate a concise SWOT analysis of the feedback above.
- Focus on recurring themes and insights, not on single remarks.
- Each point is one short sentence.
- Do not invent facts that the feedback does not support.

# Output Formatting
Return a JSON object with the keys "Strengths", "Weaknesses", "Opportunities" and "Threats", each holding a list of strings.
`

// SummaryInterpretationPrompt asks for an interpretation of the quick
// summary statistics. The arguments are the summary and the sentiment
// summary, both rendered as JSON.
const SummaryInterpretationPrompt = `
# Task Context
You will be provided with statistics computed from a batch of customer feedback.

# Background Data
Quick summary (sentence count, near-duplicate pairs, topic clusters and sample clusters):
%s

Sentiment summary:
%s

# Detailed Task Description & Rules
- Explain what the statistics say about the feedback in plain language.
- Point out repeated complaints or praise visible in the sample clusters.
- Mention the overall sentiment balance if it is available.
- Keep the answer short and end with a complete sentence.
`
