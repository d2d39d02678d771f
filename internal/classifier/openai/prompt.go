// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package openai

import (
	"strings"

	"judgment-extract/internal/classifier"
	"judgment-extract/internal/record"
	"judgment-extract/internal/rules"
)

const systemPrompt = "You are a professional Hong Kong legal document analyst. " +
	"Always return a single valid JSON object and nothing else."

// maxEvidence bounds each evidence passage sent to the model.
const maxEvidence = 3000

var hintOrder = []struct{ key, label string }{
	{record.FieldCaseNumber, "Case Number"},
	{record.FieldPlaintiff, "Plaintiff"},
	{record.FieldDefendant, "Defendant"},
	{record.FieldJudge, "Judge"},
	{record.FieldLanguage, "Language"},
}

func buildPrompt(ev classifier.Evidence) string {
	var b strings.Builder
	b.WriteString("Analyze the following information extracted from a court judgment and return standardized labels.\n\n")
	b.WriteString("## Extracted information\n")
	for _, h := range hintOrder {
		line(&b, h.label, ev.Hints[h.key])
	}
	line(&b, "Case Type Text", ev.CaseType)
	line(&b, "Judgment Text", ev.JudgmentResult)
	line(&b, "Claim Amount Text", ev.ClaimAmount)
	line(&b, "Judgment Amount Text", ev.JudgmentAmount)

	b.WriteString("\n## Representation passage\n")
	if strings.TrimSpace(ev.Lawyer) == "" {
		b.WriteString("(none found)\n")
	} else {
		b.WriteString(rules.Truncate(ev.Lawyer, maxEvidence))
		b.WriteString("\n")
	}

	b.WriteString("\n## Labels\n")
	b.WriteString("- case_type: the best fitting of ")
	b.WriteString(strings.Join(quoted(classifier.CaseTypeLabels), ", "))
	b.WriteString(". Use \"Civil Action\" when nothing fits.\n")
	b.WriteString("- judgment_result: exactly one of ")
	b.WriteString(strings.Join(quoted(classifier.ResultLabels), ", "))
	b.WriteString(", or \"unknown\". Win means the plaintiff succeeds; Lose means the application or claim is dismissed or refused.\n")
	b.WriteString("- plaintiff_lawyer, defendant_lawyer: counsel for each side as \"Name (Firm)\", comma-separated when several, \"unknown\" when absent.\n")
	b.WriteString("- normalized_amount: the total the court ordered the defendant to pay, with currency (HK$, USD, RMB), or \"unknown\".\n\n")
	b.WriteString(`Return JSON: {"case_type": "", "judgment_result": "", "plaintiff_lawyer": "", "defendant_lawyer": "", "normalized_amount": ""}`)
	return b.String()
}

func line(b *strings.Builder, label, value string) {
	b.WriteString("- ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(rules.Truncate(strings.TrimSpace(value), maxEvidence))
	b.WriteString("\n")
}

func quoted(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = `"` + l + `"`
	}
	return out
}
