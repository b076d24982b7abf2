package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

const previewLimit = 100

// Analysis is one persisted verdict. Records are append-only; the engine
// never updates or deletes them. Only a short content preview is stored,
// never the full message.
type Analysis struct {
	ID             uint   `gorm:"primaryKey"`
	RequestID      string `gorm:"size:64;index"`
	RequesterName  string `gorm:"size:128;index"`
	Score          int
	Severity       string `gorm:"size:16"`
	LabelsJSON     string `gorm:"type:text"`
	Explanation    string `gorm:"type:text"`
	SupportMessage string `gorm:"type:text"`
	StepsJSON      string `gorm:"type:text"`
	ContentPreview string `gorm:"size:100"`
	AlertRequired  bool
	CreatedAt      time.Time `gorm:"index;autoCreateTime"`
}

// NewAnalysis builds the persisted row for a verdict.
func NewAnalysis(verdict models.RiskVerdict, content string) *Analysis {
	a := &Analysis{
		RequestID:      verdict.RequestID,
		RequesterName:  verdict.RequesterName,
		Score:          verdict.Score,
		Severity:       string(verdict.Severity),
		Explanation:    verdict.Explanation,
		SupportMessage: verdict.SupportMessage,
		ContentPreview: preview(content),
		AlertRequired:  verdict.AlertRequired,
	}

	labels := make([]string, 0, len(verdict.Labels))
	for _, c := range verdict.ActiveLabels() {
		labels = append(labels, string(c))
	}
	a.SetLabels(labels)
	a.SetSteps(verdict.ActionSteps)
	return a
}

// SetLabels persists the label list as JSON.
func (a *Analysis) SetLabels(labels []string) {
	if labels == nil {
		a.LabelsJSON = "[]"
		return
	}
	payload, _ := json.Marshal(labels)
	a.LabelsJSON = string(payload)
}

// Labels returns the unmarshalled label names.
func (a *Analysis) Labels() []string {
	if strings.TrimSpace(a.LabelsJSON) == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(a.LabelsJSON), &out); err != nil {
		return nil
	}
	return out
}

// SetSteps persists the action steps as JSON.
func (a *Analysis) SetSteps(steps []string) {
	if steps == nil {
		a.StepsJSON = "[]"
		return
	}
	payload, _ := json.Marshal(steps)
	a.StepsJSON = string(payload)
}

// Steps reads the stored action steps.
func (a *Analysis) Steps() []string {
	if strings.TrimSpace(a.StepsJSON) == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(a.StepsJSON), &out); err != nil {
		return nil
	}
	return out
}

func preview(content string) string {
	runes := []rune(strings.TrimSpace(content))
	if len(runes) > previewLimit {
		return string(runes[:previewLimit])
	}
	return string(runes)
}
