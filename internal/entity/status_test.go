package entity

import (
	"testing"
)

func TestStatusForDecision(t *testing.T) {
	tests := []struct {
		name     string
		decision AnalysisDecision
		want     TenderStatus
	}{
		{"keep moves to in progress", DecisionKeep, StatusInProgress},
		{"discard moves to rejected", DecisionDiscard, StatusRejected},
		{"review moves to in doubt", DecisionReview, StatusInDoubt},
		{"empty falls back to pending", AnalysisDecision(""), StatusPending},
		{"garbage falls back to pending", AnalysisDecision("MAYBE"), StatusPending},
		{"lowercase is not recognized", AnalysisDecision("keep"), StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusForDecision(tt.decision); got != tt.want {
				t.Errorf("StatusForDecision(%q) = %v, want %v", tt.decision, got, tt.want)
			}
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if TenderStatus("DELETED").IsValid() {
		t.Error("DELETED should not be valid")
	}
	if TenderStatus("").IsValid() {
		t.Error("empty status should not be valid")
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status TenderStatus
		want   string
	}{
		{StatusPending, "PENDIENTE"},
		{StatusInProgress, "EN TRAMITE"},
		{StatusInDoubt, "EN DUDA"},
		{StatusRejected, "DESCARTADO"},
		{StatusArchived, "ARCHIVADO"},
	}
	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.want {
			t.Errorf("Label(%s) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestSameIdentity(t *testing.T) {
	tender := &Tender{Name: "Suministro informático", ExpedientNumber: "2024/00012"}

	if !tender.SameIdentity("2024/00012", "Suministro informático") {
		t.Error("exact pair should collide")
	}
	if !tender.SameIdentity("  2024/00012 ", "SUMINISTRO INFORMÁTICO") {
		t.Error("trimmed, case-insensitive pair should collide")
	}
	if tender.SameIdentity("2024/00013", "Suministro informático") {
		t.Error("different expedient number should not collide")
	}
	if tender.SameIdentity("2024/00012", "Otro suministro") {
		t.Error("different name should not collide")
	}
}
