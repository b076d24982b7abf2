package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/Hemanth-2OOT/Care-cloud/internal/analyzer"
	"github.com/Hemanth-2OOT/Care-cloud/internal/consolidate"
	"github.com/Hemanth-2OOT/Care-cloud/internal/engine/mocks"
	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
	"github.com/Hemanth-2OOT/Care-cloud/internal/notify"
	"github.com/Hemanth-2OOT/Care-cloud/internal/store"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestEngine(runner AdapterRunner, records RecordStore, alerts AlertDispatcher) *Engine {
	return NewEngine(runner, consolidate.NewConsolidator(newTestLogger()), records, alerts, newTestLogger())
}

func TestEngine_Analyze_FullPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := mocks.NewMockAdapterRunner(ctrl)
	mockStore := mocks.NewMockRecordStore(ctrl)
	mockAlerts := mocks.NewMockAlertDispatcher(ctrl)

	req := models.AnalysisRequest{
		RequestID:       "req-001",
		RequesterName:   "mia",
		GuardianContact: "parent@example.com",
		Content:         "this is our secret, don't tell your parents",
	}

	mockRunner.EXPECT().Run(gomock.Any(), req.Content).Return([]analyzer.Result{
		{Source: models.SourceGenerativeLabeler, Payload: map[string]any{
			"score":       72.0,
			"labels":      map[string]any{"grooming": true},
			"explanation": "adult demanding secrecy from a child",
		}},
		{Source: models.SourceExternalClassifier, Payload: map[string]any{
			"TOXICITY": 0.40,
		}},
		{Source: models.SourceLocalFallback, Payload: map[string]any{
			"score":  55,
			"labels": map[string]any{"harassment": true},
		}},
	})

	var savedRow *store.Analysis
	mockStore.EXPECT().SaveAnalysis(gomock.Any()).DoAndReturn(func(a *store.Analysis) error {
		savedRow = a
		return nil
	})

	var sentAlert notify.Alert
	mockAlerts.EXPECT().Enqueue(gomock.Any()).DoAndReturn(func(alert notify.Alert) bool {
		sentAlert = alert
		return true
	})

	e := newTestEngine(mockRunner, mockStore, mockAlerts)

	verdict, err := e.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// max(72,40,55)=72, grooming floor lifts to 80
	if verdict.Score != 80 {
		t.Errorf("expected score 80, got %d", verdict.Score)
	}
	if verdict.Severity != models.SeverityHigh {
		t.Errorf("expected high severity, got %s", verdict.Severity)
	}
	if !verdict.AlertRequired {
		t.Error("expected alert for grooming verdict")
	}
	if !verdict.Labels[models.CategoryGrooming] || !verdict.Labels[models.CategoryHarassment] {
		t.Errorf("expected grooming+harassment labels, got %v", verdict.Labels)
	}
	if verdict.Explanation != "adult demanding secrecy from a child" {
		t.Errorf("labeler explanation lost: %q", verdict.Explanation)
	}
	if verdict.CreatedAt.IsZero() {
		t.Error("verdict missing timestamp")
	}

	if savedRow == nil {
		t.Fatal("analysis was not persisted")
	}
	if savedRow.RequestID != "req-001" || savedRow.Score != 80 {
		t.Errorf("persisted row mismatch: %+v", savedRow)
	}
	if strings.Contains(savedRow.ContentPreview, "parents") && len([]rune(savedRow.ContentPreview)) > 100 {
		t.Errorf("preview not truncated: %q", savedRow.ContentPreview)
	}

	if sentAlert.RequestID != "req-001" || sentAlert.GuardianContact != "parent@example.com" {
		t.Errorf("alert payload mismatch: %+v", sentAlert)
	}
	for _, l := range sentAlert.Labels {
		if l != "grooming" && l != "harassment" {
			t.Errorf("unexpected alert label %q", l)
		}
	}
}

func TestEngine_Analyze_EmptyContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newTestEngine(mocks.NewMockAdapterRunner(ctrl), mocks.NewMockRecordStore(ctrl), mocks.NewMockAlertDispatcher(ctrl))

	_, err := e.Analyze(context.Background(), models.AnalysisRequest{Content: "   \n\t "})
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}

func TestEngine_Analyze_AllAdaptersFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := mocks.NewMockAdapterRunner(ctrl)
	mockStore := mocks.NewMockRecordStore(ctrl)
	mockAlerts := mocks.NewMockAlertDispatcher(ctrl)

	mockRunner.EXPECT().Run(gomock.Any(), gomock.Any()).Return([]analyzer.Result{
		{Source: models.SourceGenerativeLabeler, Err: errors.New("bedrock down")},
		{Source: models.SourceExternalClassifier, Err: errors.New("api 503")},
		{Source: models.SourceLocalFallback, Err: errors.New("panic recovered")},
	})
	mockStore.EXPECT().SaveAnalysis(gomock.Any()).Return(nil)
	// No Enqueue expectation: a quiet verdict must not alert.

	e := newTestEngine(mockRunner, mockStore, mockAlerts)

	verdict, err := e.Analyze(context.Background(), models.AnalysisRequest{Content: "hello there"})
	if err != nil {
		t.Fatalf("total adapter failure must still produce a verdict, got error: %v", err)
	}

	if verdict.Score != 0 || verdict.Severity != models.SeverityLow {
		t.Errorf("expected quiet verdict, got score=%d severity=%s", verdict.Score, verdict.Severity)
	}
	if len(verdict.Labels) != 0 {
		t.Errorf("expected no labels, got %v", verdict.Labels)
	}
	if verdict.AlertRequired {
		t.Error("quiet verdict must not alert")
	}
	if verdict.Explanation != consolidate.DefaultExplanation {
		t.Errorf("expected default explanation, got %q", verdict.Explanation)
	}
}

func TestEngine_Analyze_GeneratesRequestID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := mocks.NewMockAdapterRunner(ctrl)
	mockStore := mocks.NewMockRecordStore(ctrl)

	mockRunner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil)

	var savedRow *store.Analysis
	mockStore.EXPECT().SaveAnalysis(gomock.Any()).DoAndReturn(func(a *store.Analysis) error {
		savedRow = a
		return nil
	})

	e := newTestEngine(mockRunner, mockStore, mocks.NewMockAlertDispatcher(ctrl))

	verdict, err := e.Analyze(context.Background(), models.AnalysisRequest{Content: "hi"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if verdict.RequestID == "" {
		t.Error("expected generated request id")
	}
	if savedRow.RequestID != verdict.RequestID {
		t.Errorf("persisted id %q does not match verdict id %q", savedRow.RequestID, verdict.RequestID)
	}
}

func TestEngine_Analyze_StoreFailureDoesNotFailRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := mocks.NewMockAdapterRunner(ctrl)
	mockStore := mocks.NewMockRecordStore(ctrl)

	mockRunner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil)
	mockStore.EXPECT().SaveAnalysis(gomock.Any()).Return(errors.New("disk full"))

	e := newTestEngine(mockRunner, mockStore, mocks.NewMockAlertDispatcher(ctrl))

	if _, err := e.Analyze(context.Background(), models.AnalysisRequest{Content: "hi"}); err != nil {
		t.Errorf("storage failure must not fail the request, got %v", err)
	}
}

func TestEngine_Analyze_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := mocks.NewMockAdapterRunner(ctrl)
	mockRunner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil)

	e := newTestEngine(mockRunner, mocks.NewMockRecordStore(ctrl), mocks.NewMockAlertDispatcher(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Analyze(ctx, models.AnalysisRequest{Content: "hi"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEngine_Analyze_NoAlertBelowThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := mocks.NewMockAdapterRunner(ctrl)
	mockStore := mocks.NewMockRecordStore(ctrl)

	mockRunner.EXPECT().Run(gomock.Any(), gomock.Any()).Return([]analyzer.Result{
		{Source: models.SourceExternalClassifier, Payload: map[string]any{"TOXICITY": 0.45}},
	})
	mockStore.EXPECT().SaveAnalysis(gomock.Any()).Return(nil)
	// No Enqueue expectation.

	e := newTestEngine(mockRunner, mockStore, mocks.NewMockAlertDispatcher(ctrl))

	verdict, err := e.Analyze(context.Background(), models.AnalysisRequest{Content: "borderline message"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if verdict.Score != 45 || verdict.Severity != models.SeverityMedium {
		t.Errorf("expected 45/medium, got %d/%s", verdict.Score, verdict.Severity)
	}
	if !verdict.Labels[models.CategoryHarassment] {
		t.Errorf("expected consistency harassment label, got %v", verdict.Labels)
	}
	if verdict.AlertRequired {
		t.Error("expected no alert at score 45")
	}
}
