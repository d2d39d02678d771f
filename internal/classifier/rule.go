// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"context"
	"regexp"
	"strings"

	"judgment-extract/internal/logging"
	"judgment-extract/internal/record"

	"go.uber.org/zap"
)

type keywordLabel struct {
	label    string
	keywords []string
}

// resultRules are tried in order; the first label with a matching keyword wins.
var resultRules = []keywordLabel{
	{ResultPlaintiffWithdrawn, []string{"withdrawn", "withdraw", "discontinued", "notice of discontinuance", "撤回", "撤訴", "撤诉", "中止訴訟"}},
	{ResultAppealDismissed, []string{"appeal is dismissed", "appeal be dismissed", "appeal dismissed", "dismiss the appeal", "appeals are dismissed", "駁回上訴", "驳回上诉", "上訴被駁回"}},
	{ResultJudgmentAffirmed, []string{"affirmed", "upheld", "uphold the", "維持原判", "维持原判"}},
	{ResultLose, []string{"dismissed", "refused", "dismiss the", "is rejected", "駁回", "驳回", "拒絕", "不予批准"}},
	{ResultWin, []string{"judgment entered", "judgment be entered", "granted", "allowed", "shall pay", "ordered to pay", "do pay", "is entitled", "勝訴", "胜诉", "須支付", "须支付", "批准", "判給"}},
}

// caseTypeRules map case-type evidence onto CaseTypeLabels.
var caseTypeRules = []keywordLabel{
	{"Appeal", []string{"appeal", "上訴", "上诉"}},
	{"Setting Aside Application", []string{"set aside", "setting aside", "擱置", "撤銷"}},
	{"Security for Costs Application", []string{"security for costs", "訟費保證"}},
	{"Mareva Injunction Discharge Application", []string{"mareva", "injunction", "禁制令"}},
	{"Trust Dispute", []string{"trust", "trustee", "信託"}},
	{"Amendment Application", []string{"amend", "amendment", "修訂"}},
	{"Debt Recovery", []string{"debt", "loan", "repayment", "債務", "欠款", "貸款"}},
	{"Contract Dispute", []string{"contract", "agreement", "breach", "合約", "合同", "協議"}},
	{"Commercial Dispute", []string{"commercial", "shareholder", "company", "商業"}},
	{"Miscellaneous Proceedings", []string{"miscellaneous proceedings", "雜項"}},
}

var (
	counselLine = regexp.MustCompile(`(?i)\b((?:mr|ms|mrs|miss|dr)\.?\s+[^,;|]+?),?\s+(?:of\s+counsel,?\s+)?instructed\s+by\s+(?:messrs\.?\s+)?([^,;|]+?),?\s+for\s+the\s+(?:\d+(?:st|nd|rd|th)\s+)?(plaintiff|applicant|appellant|petitioner|defendant|respondent)s?\b`)
	inPerson    = regexp.MustCompile(`(?i)\bthe\s+(?:\d+(?:st|nd|rd|th)\s+)?(plaintiff|applicant|appellant|petitioner|defendant|respondent)s?\s+(?:was\s+|were\s+)?(?:acted\s+|appeared\s+)?(?:in\s+person|not\s+represented|acting\s+in\s+person)`)
	rolledUp    = regexp.MustCompile(`^(?:HK\$|USD|RMB|\$)?\d[\d,]*$`)
	chineseRep  = regexp.MustCompile(`([^，。,|\s由]{2,40}?(?:大律師|律師|律师)[^，。|]{0,30}?)代表(原告|申請人|申请人|上訴人|上诉人|被告|被申請人|被申请人|答辯人|答辩人)`)
)

// RuleClassifier labels evidence with keyword tables and counsel patterns.
// It never fails and needs no network.
type RuleClassifier struct {
	logger *zap.Logger
}

// NewRuleClassifier creates a RuleClassifier.
func NewRuleClassifier(logger *zap.Logger) *RuleClassifier {
	return &RuleClassifier{logger: logging.OrNop(logger).With(zap.String("component", "rule_classifier"))}
}

// Classify implements Classifier.
func (c *RuleClassifier) Classify(_ context.Context, ev Evidence) (Labels, error) {
	plaintiff, defendant := SplitCounsel(ev.Lawyer)
	labels := Labels{
		CaseType:         CaseTypeLabel(ev.CaseType),
		JudgmentResult:   ResultLabel(ev.JudgmentResult),
		PlaintiffLawyer:  plaintiff,
		DefendantLawyer:  defendant,
		NormalizedAmount: leadingAmount(ev.JudgmentAmount),
	}.Normalize()
	c.logger.Debug("classified by rules",
		zap.String("file", ev.Hints[record.FieldFileName]),
		zap.String("judgment_result", labels.JudgmentResult),
		zap.String("case_type", labels.CaseType))
	return labels, nil
}

// ResultLabel maps judgment-result evidence to a label, or record.Unknown.
func ResultLabel(text string) string {
	if label := firstLabel(text, resultRules); label != "" {
		return label
	}
	return record.Unknown
}

// CaseTypeLabel maps case-type evidence to a label. Non-empty evidence
// without a more specific match is a Civil Action.
func CaseTypeLabel(text string) string {
	if strings.TrimSpace(text) == "" {
		return record.Unknown
	}
	if label := firstLabel(text, caseTypeRules); label != "" {
		return label
	}
	return "Civil Action"
}

func firstLabel(text string, table []keywordLabel) string {
	lower := strings.ToLower(text)
	for _, rule := range table {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label
			}
		}
	}
	return ""
}

// SplitCounsel separates a representation passage into plaintiff-side and
// defendant-side counsel, each formatted "Name (Firm)" and comma-joined.
// Parties acting in person are reported as "In person".
func SplitCounsel(passage string) (plaintiff, defendant string) {
	var ps, ds []string
	add := func(side, value string) {
		if plaintiffSide(side) {
			ps = appendUnique(ps, value)
		} else {
			ds = appendUnique(ds, value)
		}
	}

	for _, m := range counselLine.FindAllStringSubmatch(passage, -1) {
		add(m[3], strings.TrimSpace(m[1])+" ("+strings.TrimSpace(m[2])+")")
	}
	for _, m := range inPerson.FindAllStringSubmatch(passage, -1) {
		add(m[1], "In person")
	}
	for _, m := range chineseRep.FindAllStringSubmatch(passage, -1) {
		add(m[2], strings.TrimSpace(m[1]))
	}
	return strings.Join(ps, ", "), strings.Join(ds, ", ")
}

func plaintiffSide(side string) bool {
	switch strings.ToLower(side) {
	case "plaintiff", "applicant", "appellant", "petitioner",
		"原告", "申請人", "申请人", "上訴人", "上诉人":
		return true
	}
	return false
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// leadingAmount returns the rolled-up total that prefixes amount evidence.
func leadingAmount(evidence string) string {
	total, _, _ := strings.Cut(evidence, " | ")
	total = strings.TrimSpace(total)
	if !rolledUp.MatchString(total) {
		return record.Unknown
	}
	return total
}
