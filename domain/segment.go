package domain

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// SegmentFilter is the set of criteria a segment is defined by. All fields
// are optional, an empty filter matches every customer.
type SegmentFilter struct {
	AgeMin          *int             `json:"ageMin" validate:"omitempty,min=0,max=150"`
	AgeMax          *int             `json:"ageMax" validate:"omitempty,min=0,max=150"`
	Gender          *Gender          `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	Regions         []Region         `json:"regions" validate:"omitempty,dive,oneof=SEOUL GYEONGGI INCHEON BUSAN DAEGU DAEJEON GWANGJU ULSAN GANGWON JEJU"`
	MembershipLevel *MembershipLevel `json:"membershipLevel" validate:"omitempty,oneof=BASIC WHITE SILVER GOLD VIP VVIP"`
	RecencyMaxDays  *int             `json:"recencyMaxDays" validate:"omitempty,min=0"`
}

// Description renders the filter as human readable Korean, used in message
// prompts and in the segment listing.
func (f SegmentFilter) Description() string {
	var parts []string
	switch {
	case f.AgeMin != nil && f.AgeMax != nil:
		parts = append(parts, fmt.Sprintf("%d~%d세", *f.AgeMin, *f.AgeMax))
	case f.AgeMin != nil:
		parts = append(parts, fmt.Sprintf("%d세 이상", *f.AgeMin))
	case f.AgeMax != nil:
		parts = append(parts, fmt.Sprintf("%d세 이하", *f.AgeMax))
	}
	if f.Gender != nil {
		parts = append(parts, f.Gender.Description())
	}
	if len(f.Regions) > 0 {
		names := make([]string, 0, len(f.Regions))
		for _, r := range f.Regions {
			names = append(names, r.Description())
		}
		parts = append(parts, strings.Join(names, "/")+" 거주")
	}
	if f.MembershipLevel != nil {
		parts = append(parts, f.MembershipLevel.Description()+" 등급")
	}
	if f.RecencyMaxDays != nil {
		parts = append(parts, fmt.Sprintf("최근 %d일 이내 구매", *f.RecencyMaxDays))
	}
	if len(parts) == 0 {
		return "전체 고객"
	}
	return strings.Join(parts, ", ")
}

// RegionSetEquals compares the filter's regions with another list as sets,
// ignoring order and duplicates.
func (f SegmentFilter) RegionSetEquals(other []Region) bool {
	set := make(map[Region]struct{}, len(f.Regions))
	for _, r := range f.Regions {
		set[r] = struct{}{}
	}
	otherSet := make(map[Region]struct{}, len(other))
	for _, r := range other {
		otherSet[r] = struct{}{}
	}
	if len(set) != len(otherSet) {
		return false
	}
	for r := range set {
		if _, ok := otherSet[r]; !ok {
			return false
		}
	}
	return true
}

// Segment is a persisted, deduplicated customer segment. Scalar criteria map
// to columns so they can be matched in SQL, regions live in a JSON column and
// are compared as a set in the service layer.
type Segment struct {
	ID                  uint64           `gorm:"column:segment_id;primaryKey;autoIncrement" json:"segmentId"`
	AgeMin              *int             `gorm:"column:age_min" json:"ageMin"`
	AgeMax              *int             `gorm:"column:age_max" json:"ageMax"`
	Gender              *Gender          `gorm:"column:gender;type:varchar(10)" json:"gender"`
	Regions             datatypes.JSON   `gorm:"column:regions;type:jsonb" json:"regions"`
	MembershipLevel     *MembershipLevel `gorm:"column:membership_level;type:varchar(20)" json:"membershipLevel"`
	RecencyMaxDays      *int             `gorm:"column:recency_max_days" json:"recencyMaxDays"`
	TargetCustomerCount int64            `gorm:"column:target_customer_count;default:0" json:"targetCustomerCount"`
	CreatedAt           time.Time        `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt           time.Time        `gorm:"column:updated_at" json:"updatedAt"`
}

func (Segment) TableName() string {
	return "segments"
}
