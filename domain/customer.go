package domain

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

func (g Gender) Description() string {
	switch g {
	case GenderMale:
		return "남성"
	case GenderFemale:
		return "여성"
	}
	return string(g)
}

type MembershipLevel string

const (
	MembershipBasic  MembershipLevel = "BASIC"
	MembershipWhite  MembershipLevel = "WHITE"
	MembershipSilver MembershipLevel = "SILVER"
	MembershipGold   MembershipLevel = "GOLD"
	MembershipVIP    MembershipLevel = "VIP"
	MembershipVVIP   MembershipLevel = "VVIP"
)

func (m MembershipLevel) Description() string {
	switch m {
	case MembershipBasic:
		return "일반"
	case MembershipWhite:
		return "화이트"
	case MembershipSilver:
		return "실버"
	case MembershipGold:
		return "골드"
	case MembershipVIP:
		return "VIP"
	case MembershipVVIP:
		return "VVIP"
	}
	return string(m)
}

type Region string

const (
	RegionSeoul    Region = "SEOUL"
	RegionGyeonggi Region = "GYEONGGI"
	RegionIncheon  Region = "INCHEON"
	RegionBusan    Region = "BUSAN"
	RegionDaegu    Region = "DAEGU"
	RegionDaejeon  Region = "DAEJEON"
	RegionGwangju  Region = "GWANGJU"
	RegionUlsan    Region = "ULSAN"
	RegionGangwon  Region = "GANGWON"
	RegionJeju     Region = "JEJU"
)

func (r Region) Description() string {
	switch r {
	case RegionSeoul:
		return "서울"
	case RegionGyeonggi:
		return "경기"
	case RegionIncheon:
		return "인천"
	case RegionBusan:
		return "부산"
	case RegionDaegu:
		return "대구"
	case RegionDaejeon:
		return "대전"
	case RegionGwangju:
		return "광주"
	case RegionUlsan:
		return "울산"
	case RegionGangwon:
		return "강원"
	case RegionJeju:
		return "제주"
	}
	return string(r)
}

// Customer is a read projection of the customer base. The service never
// mutates customers, it only filters, counts and reads them.
type Customer struct {
	ID               uint64           `gorm:"column:customer_id;primaryKey;autoIncrement" json:"customerId"`
	Name             string           `gorm:"column:name;size:50;not null" json:"name"`
	Phone            string           `gorm:"column:phone;size:30;not null" json:"phone"`
	Age              *int             `gorm:"column:age" json:"age"`
	Gender           *Gender          `gorm:"column:gender;type:varchar(10)" json:"gender"`
	Region           *Region          `gorm:"column:region;type:varchar(20)" json:"region"`
	MembershipLevel  *MembershipLevel `gorm:"column:membership_level;type:varchar(20)" json:"membershipLevel"`
	CurrentPlan      string           `gorm:"column:current_plan;size:100" json:"currentPlan"`
	CurrentDevice    string           `gorm:"column:current_device;size:100" json:"currentDevice"`
	ContractEndDate  *time.Time       `gorm:"column:contract_end_date" json:"contractEndDate"`
	AvgDataUsageGB   *float64         `gorm:"column:avg_data_usage_gb;type:numeric(10,2)" json:"avgDataUsageGb"`
	JoinDate         *time.Time       `gorm:"column:join_date" json:"joinDate"`
	LastPurchaseDate *time.Time       `gorm:"column:last_purchase_date" json:"lastPurchaseDate"`
	CreatedAt        time.Time        `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time        `gorm:"column:updated_at" json:"updatedAt"`
}

func (Customer) TableName() string {
	return "customers"
}

// RecencyDays returns the number of days since the last purchase, or nil when
// the customer never purchased.
func (c *Customer) RecencyDays() *int {
	if c.LastPurchaseDate == nil {
		return nil
	}
	days := int(time.Since(*c.LastPurchaseDate).Hours() / 24)
	return &days
}

// TenureYears returns full years since the join date, or nil when unknown.
func (c *Customer) TenureYears() *int {
	if c.JoinDate == nil {
		return nil
	}
	years := int(time.Since(*c.JoinDate).Hours() / 24 / 365)
	return &years
}

func (c *Customer) IsContractExpiringSoon(daysThreshold int) bool {
	if c.ContractEndDate == nil {
		return false
	}
	daysUntilExpiry := int(time.Until(*c.ContractEndDate).Hours() / 24)
	return daysUntilExpiry > 0 && daysUntilExpiry <= daysThreshold
}

func (c *Customer) IsHighDataUser(thresholdGB float64) bool {
	if c.AvgDataUsageGB == nil {
		return false
	}
	return *c.AvgDataUsageGB >= thresholdGB
}
