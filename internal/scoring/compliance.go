package scoring

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/govassess/internal/catalog"
)

// Tier is a discrete compliance level.
type Tier string

const (
	TierHigh     Tier = "high"
	TierModerate Tier = "moderate"
	TierLow      Tier = "low"
)

// Tier thresholds, inclusive lower bounds.
const (
	HighThreshold     = 90
	ModerateThreshold = 70
)

// Compliance is a classified percentage.
type Compliance struct {
	Tier  Tier   `json:"tier"`
	Label string `json:"label"`
}

// Classify maps a percentage to a compliance tier. Values outside 0..100
// use the same thresholds.
func Classify(percentage int) Compliance {
	switch {
	case percentage >= HighThreshold:
		return Compliance{Tier: TierHigh, Label: "High Compliance"}
	case percentage >= ModerateThreshold:
		return Compliance{Tier: TierModerate, Label: "Moderate Compliance"}
	default:
		return Compliance{Tier: TierLow, Label: "Low Compliance"}
	}
}

// WellAlignedAdvice is returned when no category falls below the gap threshold.
const WellAlignedAdvice = "Your current practices are well aligned with best practices. " +
	"Focus on maintaining your governance approach and staying current with evolving standards."

// GenericAdvice is used for modules without a dedicated template.
const GenericAdvice = "Focus on the lowest-scoring categories to improve your overall assessment."

// adviceTemplates hold one %s for the comma-joined category list.
var adviceTemplates = map[string]string{
	catalog.ModuleMapping: "Consider reviewing your selections related to %s. " +
		"A more appropriate model architecture or approach may better address your specific needs in these areas.",
	catalog.ModuleRegulation: "To enhance regulatory compliance, prioritize improvements in %s. " +
		"Consider implementing a more formal governance structure with clear documentation and review processes for these aspects.",
	catalog.ModuleResponsibleAI: "To strengthen responsible AI practices, focus on improvements in %s. " +
		"Implementing regular audits and creating more robust processes in these areas will enhance your overall responsible AI framework.",
	catalog.ModuleRisk: "For better risk management, strengthen your approach to %s. " +
		"Establish clearer ownership of risks in these categories and implement regular review cycles to address emerging concerns.",
}

// GapCategories returns the categories scoring below the moderate threshold.
func GapCategories(categories []CategoryScore) []CategoryScore {
	var gaps []CategoryScore
	for _, c := range categories {
		if c.Percentage < ModerateThreshold {
			gaps = append(gaps, c)
		}
	}
	return gaps
}

// AdviseOnGaps writes improvement advice naming every category below the
// moderate threshold.
func AdviseOnGaps(categories []CategoryScore, moduleID string) string {
	gaps := GapCategories(categories)
	if len(gaps) == 0 {
		return WellAlignedAdvice
	}

	tmpl, ok := adviceTemplates[moduleID]
	if !ok {
		return GenericAdvice
	}

	names := make([]string, len(gaps))
	for i, c := range gaps {
		names[i] = c.Category
	}
	return fmt.Sprintf(tmpl, strings.Join(names, ", "))
}
