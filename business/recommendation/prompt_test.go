package recommendation

import (
	"strings"
	"testing"

	"aiMarketingMsg/domain"
)

func float64Ptr(v float64) *float64 { return &v }

func testCustomer() domain.Customer {
	gender := domain.GenderMale
	membership := domain.MembershipVIP
	return domain.Customer{
		ID:              1,
		Name:            "김민수",
		Age:             intPtr(35),
		Gender:          &gender,
		MembershipLevel: &membership,
		CurrentPlan:     "5G 시그니처",
		AvgDataUsageGB:  float64Ptr(72.5),
	}
}

func TestBuildProductPromptContainsCatalog(t *testing.T) {
	customer := testCustomer()
	products := []domain.Product{
		{ID: 7, Name: "5G 프리미엄 요금제", Category: "모바일", Price: 89000, Benefits: "데이터 무제한/OTT 할인"},
	}

	prompt := buildProductPrompt(&customer, products, nil)

	for _, want := range []string{
		"productId: 7",
		"5G 프리미엄 요금제",
		"김민수",
		"35세",
		"반드시 3개 상품 추천",
		"85-100 사이 점수",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("product prompt missing %q", want)
		}
	}
}

func TestBuildProductPromptRules(t *testing.T) {
	customer := testCustomer()
	prompt := buildProductPrompt(&customer, eligiblePool(), nil)

	// 5G plan means no downgrade, heavy user means large data plans only,
	// VIP means no price band
	for _, want := range []string{
		"다운그레이드 금지",
		"헤비 유저",
		"가격대 제한 없음",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("product prompt missing rule %q", want)
		}
	}
}

func TestBuildProductPromptPriceBandByMembership(t *testing.T) {
	tests := []struct {
		membership domain.MembershipLevel
		want       string
	}{
		{domain.MembershipWhite, "±20%"},
		{domain.MembershipGold, "±30%"},
		{domain.MembershipVVIP, "가격대 제한 없음"},
	}

	for _, tt := range tests {
		t.Run(string(tt.membership), func(t *testing.T) {
			customer := testCustomer()
			customer.MembershipLevel = &tt.membership

			prompt := buildProductPrompt(&customer, eligiblePool(), nil)
			if !strings.Contains(prompt, tt.want) {
				t.Errorf("prompt for %s missing %q", tt.membership, tt.want)
			}
		})
	}
}

func TestBuildProductPromptWithCampaign(t *testing.T) {
	customer := testCustomer()
	campaign := domain.Campaign{
		ID:   10,
		Name: "5G 전환 캠페인",
		Type: domain.CampaignUpselling,
	}

	prompt := buildProductPrompt(&customer, eligiblePool(), &campaign)

	for _, want := range []string{
		"5G 전환 캠페인",
		"업셀링",
		"캠페인 목적 부합도: 50%",
		"고객 프로필 적합도: 50%",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("campaign-anchored prompt missing %q", want)
		}
	}
}

func TestBuildCampaignPromptListsCampaignIDs(t *testing.T) {
	customer := testCustomer()
	campaigns := []domain.Campaign{
		{ID: 10, Name: "5G 전환 캠페인", Type: domain.CampaignUpselling},
		{ID: 11, Name: "가족 결합 캠페인", Type: domain.CampaignRetention},
	}

	prompt := buildCampaignPrompt(&customer, campaigns, nil)

	for _, want := range []string{
		"[ID:10]",
		"[ID:11]",
		"85~100 사이 점수",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("campaign prompt missing %q", want)
		}
	}
}

func TestBuildCampaignPromptWithTargetProduct(t *testing.T) {
	customer := testCustomer()
	campaigns := []domain.Campaign{{ID: 10, Name: "5G 전환 캠페인", Type: domain.CampaignUpselling}}
	product := domain.Product{ID: 7, Name: "5G 프리미엄 요금제", Category: "모바일", Price: 89000}

	prompt := buildCampaignPrompt(&customer, campaigns, &product)

	for _, want := range []string{
		"타겟 상품 정보",
		"5G 프리미엄 요금제",
		"상품 연관성: 50%",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("product-anchored campaign prompt missing %q", want)
		}
	}
}

func TestFormatBenefitsSplitsSeparators(t *testing.T) {
	got := formatBenefits("데이터 무제한, OTT 할인/멤버십 2배")

	for _, want := range []string{"• 데이터 무제한", "• OTT 할인", "• 멤버십 2배"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted benefits missing %q in %q", want, got)
		}
	}
}
