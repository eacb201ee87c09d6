package domain

import (
	"time"
)

type MessageType string

const (
	MessageSegment    MessageType = "SEGMENT"
	MessageIndividual MessageType = "INDIVIDUAL"
)

// Message is a saved marketing message. Generation produces three transient
// variants sharing a group id; the marketer saves the one they picked, which
// is what lands here.
type Message struct {
	ID             uint64      `gorm:"column:message_id;primaryKey;autoIncrement" json:"messageId"`
	GroupID        string      `gorm:"column:group_id;size:30;not null;index" json:"groupId"`
	Version        int         `gorm:"column:version;not null" json:"version"`
	Type           MessageType `gorm:"column:type;type:varchar(15);not null" json:"type"`
	Content        string      `gorm:"column:content;type:text;not null" json:"content"`
	CharacterCount int         `gorm:"column:character_count;not null" json:"characterCount"`
	ToneID         string      `gorm:"column:tone_id;size:10;not null" json:"toneId"`
	CampaignID     uint64      `gorm:"column:campaign_id;not null" json:"campaignId"`
	ProductID      uint64      `gorm:"column:product_id;not null" json:"productId"`
	SegmentID      *uint64     `gorm:"column:segment_id" json:"segmentId"`
	CustomerID     *uint64     `gorm:"column:customer_id" json:"customerId"`
	UserID         uint        `gorm:"column:user_id;not null" json:"userId"`
	Model          string      `gorm:"column:model;size:50" json:"model"`
	Prompt         string      `gorm:"column:prompt;type:text" json:"-"`
	CreatedAt      time.Time   `gorm:"column:created_at" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}

// GeneratedMessage is one variant as returned from the provider, before the
// marketer picks one to save. CharacterCount counts runes, not bytes, since
// the content is Korean.
type GeneratedMessage struct {
	Version        int    `json:"version"`
	Content        string `json:"content"`
	CharacterCount int    `json:"characterCount"`
}
