package models

import "testing"

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{CampaignStatusDraft, CampaignStatusSubmitted, true},
		{CampaignStatusSubmitted, CampaignStatusInReview, true},
		{CampaignStatusInReview, CampaignStatusApproved, true},
		{CampaignStatusInReview, CampaignStatusRejected, true},
		{CampaignStatusInReview, CampaignStatusDraft, true},
		{CampaignStatusApproved, CampaignStatusActive, true},
		{CampaignStatusActive, CampaignStatusPaused, true},
		{CampaignStatusActive, CampaignStatusCompleted, true},
		{CampaignStatusPaused, CampaignStatusActive, true},
		{CampaignStatusPaused, CampaignStatusCompleted, true},

		// Resubmission after rejection
		{CampaignStatusRejected, CampaignStatusDraft, true},

		// Invalid transitions
		{CampaignStatusDraft, CampaignStatusActive, false},
		{CampaignStatusDraft, CampaignStatusApproved, false},
		{CampaignStatusDraft, CampaignStatusInReview, false},
		{CampaignStatusSubmitted, CampaignStatusApproved, false},
		{CampaignStatusSubmitted, CampaignStatusActive, false},
		{CampaignStatusApproved, CampaignStatusPaused, false},
		{CampaignStatusApproved, CampaignStatusDraft, false},
		{CampaignStatusRejected, CampaignStatusActive, false},
		{CampaignStatusRejected, CampaignStatusSubmitted, false},
		{CampaignStatusPaused, CampaignStatusDraft, false},
		{CampaignStatusCompleted, CampaignStatusActive, false},
		{CampaignStatusCompleted, CampaignStatusDraft, false},
		{"nonexistent", CampaignStatusSubmitted, false},
		{CampaignStatusDraft, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestAllStatusesHaveTransitionEntry(t *testing.T) {
	allStatuses := []string{
		CampaignStatusDraft, CampaignStatusSubmitted, CampaignStatusInReview,
		CampaignStatusApproved, CampaignStatusRejected,
		CampaignStatusActive, CampaignStatusPaused, CampaignStatusCompleted,
	}

	for _, status := range allStatuses {
		if _, ok := ValidCampaignTransitions[status]; !ok {
			t.Errorf("status %q missing from ValidCampaignTransitions map", status)
		}
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	if transitions := ValidCampaignTransitions[CampaignStatusCompleted]; len(transitions) != 0 {
		t.Errorf("completed should have no transitions, got %v", transitions)
	}
}

func TestDecisionTarget(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		message string
		want    string
		wantErr bool
	}{
		{"approve without message", AdminActionApprove, "", CampaignStatusApproved, false},
		{"approve with message", AdminActionApprove, "looks good", CampaignStatusApproved, false},
		{"reject with reason", AdminActionReject, "misleading claims", CampaignStatusRejected, false},
		{"reject without reason", AdminActionReject, "", "", true},
		{"reject with blank reason", AdminActionReject, "   ", "", true},
		{"request changes with reason", AdminActionRequestChanges, "fix the headline", CampaignStatusDraft, false},
		{"request changes without reason", AdminActionRequestChanges, "", "", true},
		{"unknown action", "escalate", "whatever", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecisionTarget(tt.action, tt.message)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DecisionTarget(%q, %q) expected error, got %q", tt.action, tt.message, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecisionTarget(%q, %q) unexpected error: %v", tt.action, tt.message, err)
			}
			if got != tt.want {
				t.Errorf("DecisionTarget(%q, %q) = %q, want %q", tt.action, tt.message, got, tt.want)
			}
		})
	}
}

func TestEditable(t *testing.T) {
	editable := map[string]bool{
		CampaignStatusDraft:     true,
		CampaignStatusRejected:  true,
		CampaignStatusSubmitted: false,
		CampaignStatusInReview:  false,
		CampaignStatusApproved:  false,
		CampaignStatusActive:    false,
		CampaignStatusPaused:    false,
		CampaignStatusCompleted: false,
	}

	for status, want := range editable {
		c := Campaign{Status: status}
		if got := c.Editable(); got != want {
			t.Errorf("Editable() in %q = %v, want %v", status, got, want)
		}
	}
}

func TestClampDensityMultiplier(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.1, 0.5},
		{0.5, 0.5},
		{1.0, 1.0},
		{5.0, 5.0},
		{7.5, 5.0},
		{-1, 0.5},
	}

	for _, tt := range tests {
		if got := ClampDensityMultiplier(tt.in); got != tt.want {
			t.Errorf("ClampDensityMultiplier(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
