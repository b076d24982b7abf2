package api

import (
	"time"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
	"github.com/Hemanth-2OOT/Care-cloud/internal/store"
)

// AnalysisResponse is the wire form of a verdict. DetectedLabels always
// carries every category, set or not, so clients never have to guess the
// label vocabulary.
type AnalysisResponse struct {
	RequestID            string          `json:"request_id" description:"Request identifier, generated when the caller omits one"`
	RequesterName        string          `json:"requester_name,omitempty" description:"Display name of the child or session owner"`
	ToxicityScore        int             `json:"toxicity_score" description:"Fused risk score 0-100"`
	SeverityLevel        string          `json:"severity_level" description:"low, medium, high or critical"`
	DetectedLabels       map[string]bool `json:"detected_labels" description:"Every risk category with its detection flag"`
	Explanation          string          `json:"explanation" description:"Why the message is risky, written for a guardian"`
	VictimSupportMessage string          `json:"victim_support_message" description:"Reassurance text addressed to the child"`
	SafeResponseSteps    []string        `json:"safe_response_steps" description:"Recommended next actions"`
	ParentAlertRequired  bool            `json:"parent_alert_required" description:"True when a guardian alert was triggered"`
	ContentPreview       string          `json:"content_preview,omitempty" description:"First 100 characters of the analyzed message, history responses only"`
	CreatedAt            time.Time       `json:"created_at" description:"When the verdict was produced"`
}

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"API version"`
}

// NewAnalysisResponse maps a verdict to its wire form. The MCP surface
// reuses it so both surfaces emit identical JSON.
func NewAnalysisResponse(verdict models.RiskVerdict) AnalysisResponse {
	return AnalysisResponse{
		RequestID:            verdict.RequestID,
		RequesterName:        verdict.RequesterName,
		ToxicityScore:        verdict.Score,
		SeverityLevel:        string(verdict.Severity),
		DetectedLabels:       fullLabelMap(verdict.Labels),
		Explanation:          verdict.Explanation,
		VictimSupportMessage: verdict.SupportMessage,
		SafeResponseSteps:    verdict.ActionSteps,
		ParentAlertRequired:  verdict.AlertRequired,
		CreatedAt:            verdict.CreatedAt,
	}
}

func fromStoredAnalysis(a store.Analysis) AnalysisResponse {
	set := make(map[models.Category]bool)
	for _, label := range a.Labels() {
		set[models.Category(label)] = true
	}

	return AnalysisResponse{
		RequestID:            a.RequestID,
		RequesterName:        a.RequesterName,
		ToxicityScore:        a.Score,
		SeverityLevel:        a.Severity,
		DetectedLabels:       fullLabelMap(set),
		Explanation:          a.Explanation,
		VictimSupportMessage: a.SupportMessage,
		SafeResponseSteps:    a.Steps(),
		ParentAlertRequired:  a.AlertRequired,
		ContentPreview:       a.ContentPreview,
		CreatedAt:            a.CreatedAt,
	}
}

func fullLabelMap(set map[models.Category]bool) map[string]bool {
	out := make(map[string]bool, len(models.Categories))
	for _, c := range models.Categories {
		out[string(c)] = set[c]
	}
	return out
}
