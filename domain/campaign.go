package domain

import (
	"time"
)

type CampaignType string

const (
	CampaignAcquisition CampaignType = "ACQUISITION"
	CampaignRetention   CampaignType = "RETENTION"
	CampaignUpselling   CampaignType = "UPSELLING"
	CampaignCrossSell   CampaignType = "CROSS_SELLING"
	CampaignWinback     CampaignType = "CHURN_PREVENTION"
)

func (t CampaignType) Description() string {
	switch t {
	case CampaignAcquisition:
		return "신규유치"
	case CampaignRetention:
		return "고객유지"
	case CampaignUpselling:
		return "업셀링"
	case CampaignCrossSell:
		return "크로스셀링"
	case CampaignWinback:
		return "이탈방지"
	}
	return string(t)
}

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "DRAFT"
	CampaignActive    CampaignStatus = "ACTIVE"
	CampaignCompleted CampaignStatus = "COMPLETED"
	CampaignCancelled CampaignStatus = "CANCELLED"
)

type Campaign struct {
	ID          uint64         `gorm:"column:campaign_id;primaryKey;autoIncrement" json:"campaignId"`
	Name        string         `gorm:"column:name;size:100;not null" json:"name"`
	Type        CampaignType   `gorm:"column:type;type:varchar(30);not null" json:"type"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Benefit     string         `gorm:"column:benefit;type:text" json:"benefit"`
	StartDate   time.Time      `gorm:"column:start_date;not null" json:"startDate"`
	EndDate     time.Time      `gorm:"column:end_date;not null" json:"endDate"`
	Status      CampaignStatus `gorm:"column:status;type:varchar(20);default:DRAFT" json:"status"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updated_at" json:"updatedAt"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// IsActive reports whether the campaign is currently running. Status must be
// ACTIVE and now must fall inside the start/end window (inclusive).
func (c *Campaign) IsActive(now time.Time) bool {
	if c.Status != CampaignActive {
		return false
	}
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// HasValidDateRange reports whether the start date is not after the end date.
func (c *Campaign) HasValidDateRange() bool {
	return !c.StartDate.After(c.EndDate)
}

// CanBeDeleted reports whether the campaign may be removed. Only drafts and
// cancelled campaigns can go, completed ones stay for reporting.
func (c *Campaign) CanBeDeleted() bool {
	return c.Status == CampaignDraft || c.Status == CampaignCancelled
}
