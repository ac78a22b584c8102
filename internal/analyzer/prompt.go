// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyzer

import (
	"regexp"
	"strings"
)

// =============================================================================
// PROMPT CONSTRUCTION
// =============================================================================

// promptTemplate frames a snippet for the model. The numbered structure
// keeps responses consistent across models.
const promptTemplate = "Please analyze and explain the following code:\n\n" +
	"```\n%CODE%\n```\n\n" +
	"Please provide:\n" +
	"1. Overall purpose of the code\n" +
	"2. Breakdown of key functions or components\n" +
	"3. Potential bugs or edge cases\n" +
	"4. Performance considerations\n"

// BuildPrompt renders the analysis prompt for a snippet.
func BuildPrompt(snippet string) string {
	return strings.Replace(promptTemplate, "%CODE%", strings.TrimSpace(snippet), 1)
}

// =============================================================================
// TOKEN ESTIMATION
// =============================================================================

// tokenPattern approximates model tokenization: each word and each piece of
// punctuation counts as one token.
var tokenPattern = regexp.MustCompile(`\b\w+\b|[^\w\s]`)

// EstimateTokens approximates the token count of a text. The estimate is
// used when the server does not report exact counts.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(tokenPattern.FindAllString(text, -1))
}
