package analyzer

import "github.com/nao1215/docscan/internal/model"

// newFinding builds a finding with severity metadata attached from the
// central finding type mapping.
func newFinding(findingType, title, description, value, location string, line int) model.Finding {
	info := model.GetFindingInfo(findingType)
	return model.Finding{
		Type:           findingType,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Title:          title,
		Description:    description,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
		Value:          value,
		Location:       location,
		Line:           line,
	}
}
