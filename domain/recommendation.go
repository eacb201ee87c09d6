package domain

import (
	"time"
)

// AIProductCandidate is one entry of the provider's product recommendation
// JSON, exactly as returned. Nothing in it is trusted until it has been
// reconciled against the catalog.
type AIProductCandidate struct {
	Rank            int     `json:"rank"`
	ProductID       uint64  `json:"productId"`
	Reason          string  `json:"reason"`
	ExpectedBenefit string  `json:"expectedBenefit"`
	RelevanceScore  float64 `json:"relevanceScore"`
}

// AICampaignCandidate mirrors AIProductCandidate for campaign picks.
type AICampaignCandidate struct {
	Rank            int     `json:"rank"`
	CampaignID      uint64  `json:"campaignId"`
	Reason          string  `json:"reason"`
	ExpectedBenefit string  `json:"expectedBenefit"`
	RelevanceScore  float64 `json:"relevanceScore"`
}

// RecommendedProduct is a reconciled product pick, the catalog row joined
// with the provider's rationale.
type RecommendedProduct struct {
	Rank            int     `json:"rank"`
	Product         Product `json:"product"`
	Reason          string  `json:"reason"`
	ExpectedBenefit string  `json:"expectedBenefit"`
	RelevanceScore  float64 `json:"relevanceScore"`
}

// RecommendedCampaign is a reconciled campaign pick.
type RecommendedCampaign struct {
	Rank            int      `json:"rank"`
	Campaign        Campaign `json:"campaign"`
	Reason          string   `json:"reason"`
	ExpectedBenefit string   `json:"expectedBenefit"`
	RelevanceScore  float64  `json:"relevanceScore"`
}

// CustomerProfileSummary is the slice of a customer profile echoed back in
// recommendation responses. Unknown fields stay nil and are omitted.
type CustomerProfileSummary struct {
	CustomerID      uint64           `json:"customerId"`
	Name            string           `json:"name"`
	Age             *int             `json:"age,omitempty"`
	Gender          *Gender          `json:"gender,omitempty"`
	Region          *Region          `json:"region,omitempty"`
	MembershipLevel *MembershipLevel `json:"membershipLevel,omitempty"`
	CurrentPlan     string           `json:"currentPlan,omitempty"`
	CurrentDevice   string           `json:"currentDevice,omitempty"`
	AvgDataUsageGB  *float64         `json:"avgDataUsageGb,omitempty"`
}

// SummarizeCustomer builds the response profile from a customer row.
func SummarizeCustomer(c *Customer) CustomerProfileSummary {
	return CustomerProfileSummary{
		CustomerID:      c.ID,
		Name:            c.Name,
		Age:             c.Age,
		Gender:          c.Gender,
		Region:          c.Region,
		MembershipLevel: c.MembershipLevel,
		CurrentPlan:     c.CurrentPlan,
		CurrentDevice:   c.CurrentDevice,
		AvgDataUsageGB:  c.AvgDataUsageGB,
	}
}

// ProductRecommendationResult is the full payload of a product
// recommendation run.
type ProductRecommendationResult struct {
	Customer        CustomerProfileSummary `json:"customer"`
	Campaign        *Campaign              `json:"campaign,omitempty"`
	Recommendations []RecommendedProduct   `json:"recommendations"`
	Model           string                 `json:"model"`
	GeneratedAt     time.Time              `json:"generatedAt"`
}

// CampaignRecommendationResult is the full payload of a campaign
// recommendation run.
type CampaignRecommendationResult struct {
	Customer        CustomerProfileSummary `json:"customer"`
	Product         *Product               `json:"product,omitempty"`
	Recommendations []RecommendedCampaign  `json:"recommendations"`
	Model           string                 `json:"model"`
	GeneratedAt     time.Time              `json:"generatedAt"`
}
