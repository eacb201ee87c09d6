package domain

import (
	"testing"
	"time"
)

func TestCampaignIsActive(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		campaign Campaign
		want     bool
	}{
		{"active inside window", Campaign{Status: CampaignActive, StartDate: start, EndDate: end}, true},
		{"active on start date", Campaign{Status: CampaignActive, StartDate: now, EndDate: end}, true},
		{"active on end date", Campaign{Status: CampaignActive, StartDate: start, EndDate: now}, true},
		{"draft inside window", Campaign{Status: CampaignDraft, StartDate: start, EndDate: end}, false},
		{"active before window", Campaign{Status: CampaignActive, StartDate: now.AddDate(0, 1, 0), EndDate: now.AddDate(0, 2, 0)}, false},
		{"active after window", Campaign{Status: CampaignActive, StartDate: start, EndDate: now.AddDate(0, -1, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.campaign.IsActive(now); got != tt.want {
				t.Errorf("IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCampaignHasValidDateRange(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	c := Campaign{StartDate: start, EndDate: start.AddDate(0, 1, 0)}
	if !c.HasValidDateRange() {
		t.Error("start before end should be valid")
	}

	c = Campaign{StartDate: start, EndDate: start}
	if !c.HasValidDateRange() {
		t.Error("start equal to end should be valid")
	}

	c = Campaign{StartDate: start, EndDate: start.AddDate(0, 0, -1)}
	if c.HasValidDateRange() {
		t.Error("start after end should be invalid")
	}
}

func TestCampaignCanBeDeleted(t *testing.T) {
	for _, status := range []CampaignStatus{CampaignDraft, CampaignCancelled} {
		c := Campaign{Status: status}
		if !c.CanBeDeleted() {
			t.Errorf("%s campaign should be deletable", status)
		}
	}

	for _, status := range []CampaignStatus{CampaignActive, CampaignCompleted} {
		c := Campaign{Status: status}
		if c.CanBeDeleted() {
			t.Errorf("%s campaign should not be deletable", status)
		}
	}
}
