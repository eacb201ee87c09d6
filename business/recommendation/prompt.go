package recommendation

import (
	"fmt"
	"strings"

	"aiMarketingMsg/domain"
)

// System personas sent alongside each recommendation prompt. The JSON-only
// instruction is repeated in both so a chatty model has no excuse.
const (
	productSystemPrompt  = "당신은 KT의 전문 상품 추천 컨설턴트입니다. 고객 데이터를 심층 분석하여 최적의 상품을 추천합니다. JSON 형식으로만 응답합니다."
	campaignSystemPrompt = "당신은 KT의 개인화 마케팅 캠페인 추천 전문가입니다. JSON 형식으로만 응답합니다."
)

func buildProductPrompt(customer *domain.Customer, products []domain.Product, campaign *domain.Campaign) string {
	var b strings.Builder

	b.WriteString("당신은 KT의 전문 상품 추천 컨설턴트입니다.\n")
	if campaign != nil {
		b.WriteString("특정 마케팅 캠페인에 맞춰 고객에게 가장 적합한 상품 3가지를 추천해주세요.\n\n")
		b.WriteString("🎯 **핵심 미션**: 아래 캠페인과 고객을 위한 최적의 상품을 찾아주세요!\n\n")
	} else {
		b.WriteString("고객의 프로필과 현재 이용 상황을 심층 분석하여 가장 적합한 상품 3가지를 추천해주세요.\n\n")
		b.WriteString("🎯 **핵심 미션**: 아래 고객을 위한 최적의 상품 3가지를 찾아주세요!\n\n")
	}

	if customer.Age != nil {
		fmt.Fprintf(&b, "⚠️ **중요**: 이 고객은 **%d세**입니다. 상품명에 연령 제한이 있으면 절대 준수하세요!\n\n", *customer.Age)
	}

	b.WriteString("🚫 **절대 추천 금지 상품**:\n")
	b.WriteString("- 군인 전용 상품 (고객의 군인 여부 정보 없음)\n")
	b.WriteString("- 외국인 전용 상품 (고객의 국적 정보 없음)\n")
	b.WriteString("- 장애인/복지 대상자 전용 상품 (고객의 복지 대상 여부 정보 없음)\n")
	b.WriteString("→ 이러한 상품은 이미 필터링되었으므로 목록에 없습니다.\n\n")

	if campaign != nil {
		b.WriteString("### 🎁 타겟 마케팅 캠페인 (매우 중요)\n")
		fmt.Fprintf(&b, "- **캠페인명**: %s\n", campaign.Name)
		fmt.Fprintf(&b, "- **캠페인 유형**: %s\n", campaign.Type.Description())
		if campaign.Description != "" {
			fmt.Fprintf(&b, "- **캠페인 설명**: %s\n", campaign.Description)
		}
		fmt.Fprintf(&b, "- **캠페인 기간**: %s ~ %s\n",
			campaign.StartDate.Format("2006-01-02"), campaign.EndDate.Format("2006-01-02"))
		b.WriteString("\n")
	}

	writeCustomerProfile(&b, customer)

	b.WriteString("### 📋 추천 가능 상품 목록\n")
	b.WriteString("✅ 아래 상품들은 이미 연령 및 특수 조건 필터링을 거쳤습니다.\n")
	writeProductList(&b, products)
	b.WriteString("\n")

	b.WriteString("## 🎯 추천 기준 (반드시 준수)\n\n")

	if campaign != nil {
		b.WriteString("⚖️ **추천 균형 원칙**:\n")
		b.WriteString("- 캠페인 목적 부합도: 50%\n")
		b.WriteString("- 고객 프로필 적합도: 50%\n")
		b.WriteString("→ 두 요소를 균형있게 고려하여 추천하세요.\n\n")
	}

	b.WriteString("#### 1. 논리적 적합성 검증 (필수)\n")
	b.WriteString("추천 전에 다음을 반드시 확인하세요:\n")
	if campaign != nil {
		b.WriteString("- 이 상품이 캠페인 목적(신규유치/고객유지/업셀링 등)에 부합하는가?\n")
	}
	if customer.Age != nil {
		fmt.Fprintf(&b, "- ⚠️ **이 고객은 %d세입니다!** 상품명에 연령 제한이 있으면 절대 추천 금지!\n", *customer.Age)
	}

	writeRecommendationRules(&b, customer)

	b.WriteString("- 모바일 카테고리 상품이라면 위 조건들을 철저히 검토\n")
	b.WriteString("- 기타 카테고리(OTT, 디바이스, 생활편의 등)는 고객 프로필에 맞춰 자유롭게 추천\n\n")

	writeProductReasonGuide(&b, customer, campaign)

	exampleReason := buildProductExampleReason(customer, campaign)
	b.WriteString("**reason 예시:**\n")
	fmt.Fprintf(&b, "\"%s\"\n\n", exampleReason)

	writeProductResponseFormat(&b, exampleReason)

	return b.String()
}

func buildCampaignPrompt(customer *domain.Customer, campaigns []domain.Campaign, product *domain.Product) string {
	var b strings.Builder

	b.WriteString("당신은 KT의 마케팅 전문가입니다.\n")
	b.WriteString("고객 정보와 활성 캠페인 목록을 분석하여 최적의 캠페인 3개를 추천해주세요.\n\n")

	if product != nil {
		b.WriteString("🎯 **핵심 미션**: 아래 타겟 상품과 고객을 위한 최적 캠페인을 찾아주세요!\n\n")
		b.WriteString("### 📦 타겟 상품 정보 (매우 중요)\n")
		fmt.Fprintf(&b, "- 상품명: %s\n", product.Name)
		fmt.Fprintf(&b, "- 카테고리: %s\n", product.Category)
		fmt.Fprintf(&b, "- 가격: %.0f원\n", product.Price)
		if product.Benefits != "" {
			fmt.Fprintf(&b, "- 핵심 혜택:\n%s", formatBenefits(product.Benefits))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("🎯 **핵심 미션**: 아래의 고객 프로필과 활성 캠페인 정보를 분석하여 최적 캠페인을 찾아주세요!\n\n")
	}

	writeCustomerProfile(&b, customer)
	writeCampaignList(&b, campaigns)

	if product != nil {
		b.WriteString("⚖️ **추천 균형 원칙 (반드시 준수)**:\n")
		b.WriteString("- 상품 연관성: 50% - 이 상품과 직접 관련된 캠페인인가?\n")
		b.WriteString("- 고객 적합성: 50% - 이 고객에게도 적합한 캠페인인가?\n")
		b.WriteString("→ 두 요소를 균형있게 고려하여 추천하세요.\n\n")

		b.WriteString("### 🎯 추천 기준 (반드시 준수)\n\n")
		b.WriteString("#### 1. 논리적 적합성 검증 (필수)\n")
		b.WriteString("추천 전에 다음을 반드시 확인하세요:\n")
		b.WriteString("- 상품 타겟 연령/조건이 고객과 맞는가?\n")
		b.WriteString("- 캠페인 대상이 고객과 맞는가?\n")
		b.WriteString("#### 2. reason 작성 3단계 (구체적으로)\n\n")
		b.WriteString("**[1단계] 고객의 현재 상황 분석**\n")
		b.WriteString("**[2단계] 상품의 핵심 특징 파악**\n")
		fmt.Fprintf(&b, "- %s: %s 카테고리\n", product.Name, product.Category)
		if product.Benefits != "" {
			b.WriteString("- 상품 혜택:\n")
			b.WriteString(formatBenefits(product.Benefits))
		}
		b.WriteString("\n")
		b.WriteString("**[3단계] 연결고리 명확히 설명**\n")
		b.WriteString("reason에 반드시 포함할 내용:\n")
		b.WriteString("1. 이 상품이 고객에게 왜 필요한가? (구체적 근거)\n")
		b.WriteString("2. 이 캠페인이 왜 이 상품 구매를 도와주는가? (할인/혜택)\n")
		b.WriteString("3. 두 가지가 결합되면 고객에게 무엇이 좋은가? (시너지)\n\n")
	} else {
		b.WriteString("\n## 🎯 추천 기준\n\n")
		b.WriteString("**추천 시 반드시 고려할 점:**\n")
		b.WriteString("1. **고객의 현재 상태를 구체적으로 언급**하세요\n")
		b.WriteString("   - 예: \"000 고객은 5G 시그니처 요금제를 사용중이며...\"\n")
		b.WriteString("   - 예: \"VIP 등급으로서 프리미엄 서비스 선호도가 높으므로...\"\n\n")
		b.WriteString("2. **reason 작성 시 필수 포함 요소:**\n")
		b.WriteString("   - 고객의 이름\n")
		b.WriteString("   - 고객의 구체적 상황 (요금제, 멤버십, 사용 패턴 등)\n")
		b.WriteString("   - 이 캠페인이 **왜 이 고객에게** 적합한지 개인화된 설명\n\n")
		b.WriteString("3. **일반적 마케팅 용어 지양:**\n")
		b.WriteString("   - ❌ \"고객의 구매욕구를 자극\"\n")
		b.WriteString("   - ❌ \"고객유지 효과 기대\"\n")
		b.WriteString("   - ✅ \"000 고객님의 [구체적 상황]을 고려할 때...\"\n\n")
	}

	exampleReason := buildCampaignExampleReason(customer, product)
	writeCampaignResponseFormat(&b, product != nil, exampleReason)

	return b.String()
}

func writeCustomerProfile(b *strings.Builder, customer *domain.Customer) {
	b.WriteString("## 📊 고객 프로필\n")
	fmt.Fprintf(b, "- **이름**: %s\n", customer.Name)

	if customer.Age != nil {
		gender := "미지정"
		if customer.Gender != nil {
			gender = customer.Gender.Description()
		}
		fmt.Fprintf(b, "- **나이/성별**: %d세 %s\n", *customer.Age, gender)
	}

	membership := "미지정"
	if customer.MembershipLevel != nil {
		membership = customer.MembershipLevel.Description()
	}
	fmt.Fprintf(b, "- **멤버십**: %s 등급\n", membership)

	if customer.JoinDate != nil {
		years := 0
		if y := customer.TenureYears(); y != nil {
			years = *y
		}
		fmt.Fprintf(b, "- **가입일**: %s (%d년 이용 고객)\n", customer.JoinDate.Format("2006-01-02"), years)
	}

	if customer.Region != nil {
		fmt.Fprintf(b, "- **거주 지역**: %s\n", customer.Region.Description())
	}

	if customer.CurrentPlan != "" {
		fmt.Fprintf(b, "- **현재 요금제**: %s\n", customer.CurrentPlan)
	}

	if customer.CurrentDevice != "" {
		fmt.Fprintf(b, "- **현재 기기**: %s\n", customer.CurrentDevice)
	}

	if customer.AvgDataUsageGB != nil {
		fmt.Fprintf(b, "- **데이터 사용량**: %.1fGB (월평균)\n", *customer.AvgDataUsageGB)
	}

	if recency := customer.RecencyDays(); recency != nil {
		fmt.Fprintf(b, "- **마지막 구매**: %d일 전\n", *recency)
	}

	if customer.ContractEndDate != nil {
		fmt.Fprintf(b, "- **약정 종료일**: %s\n", customer.ContractEndDate.Format("2006-01-02"))
	}
	b.WriteString("\n")
}

// writeRecommendationRules emits the plan quality rules that protect the
// customer from nonsense picks: no network downgrades, no plans below the
// measured data usage, and price bands tied to the membership level.
func writeRecommendationRules(b *strings.Builder, customer *domain.Customer) {
	if customer.CurrentPlan != "" {
		plan := customer.CurrentPlan
		if strings.Contains(plan, "5G") {
			fmt.Fprintf(b, "- 🚨 **다운그레이드 금지**: 현재 '%s' 사용 중 → LTE나 3G 요금제 추천 절대 금지!\n", plan)
			b.WriteString("- 5G 요금제 또는 동급 이상 상품만 추천 가능\n")
		} else if strings.Contains(plan, "LTE") {
			fmt.Fprintf(b, "- 🚨 **다운그레이드 금지**: 현재 '%s' 사용 중 → 3G 요금제 추천 절대 금지!\n", plan)
			b.WriteString("- LTE 요금제 또는 5G 업그레이드 상품 추천 가능\n")
		}
	}

	if customer.MembershipLevel != nil {
		membership := customer.MembershipLevel.Description()
		if strings.Contains(membership, "VIP") {
			fmt.Fprintf(b, "- 💎 **프리미엄 고객**: %s 등급 → 저가형 상품(슬림/베이직) 추천 지양, 프리미엄/시그니처급 우선\n", membership)
		}
	}

	if customer.AvgDataUsageGB != nil {
		usage := *customer.AvgDataUsageGB
		if usage > 50 {
			fmt.Fprintf(b, "- 📊 **헤비 유저**: 월 %.1fGB 사용 → 대용량/무제한 데이터 요금제 필수\n", usage)
		}
		fmt.Fprintf(b, "- 💾 **데이터 사용량 검증 필수**: 추천 요금제의 데이터 제공량이 %.1fGB 이상이어야 함\n", usage)
		b.WriteString("  (무제한 요금제는 자동 통과, 소용량 요금제는 사용량 부족 시 추천 금지)\n")
	}

	if customer.MembershipLevel != nil && customer.CurrentPlan != "" {
		membership := string(*customer.MembershipLevel)
		plan := customer.CurrentPlan

		b.WriteString("- 💰 **멤버십별 가격대 제한** (모바일 요금제 한정):\n")
		switch {
		case membership == "WHITE" || membership == "BASIC":
			fmt.Fprintf(b, "  WHITE/BASIC 등급 → 현재 요금제(%s) 기준 ±20%% 가격대 내 추천 권장\n", plan)
			b.WriteString("  (예: 5만원 요금제 → 4만~6만원대 추천, 급격한 업셀링 지양)\n")
		case membership == "SILVER" || membership == "GOLD":
			fmt.Fprintf(b, "  SILVER/GOLD 등급 → 현재 요금제(%s) 기준 ±30%% 가격대 내 추천 권장\n", plan)
			b.WriteString("  (적당한 업셀링 가능)\n")
		case strings.Contains(membership, "VIP"):
			b.WriteString("  VIP/VVIP 등급 → 프리미엄 고객이므로 가격대 제한 없음\n")
			b.WriteString("  (고가 요금제 자유롭게 추천 가능)\n")
		}
	}
}

func writeProductReasonGuide(b *strings.Builder, customer *domain.Customer, campaign *domain.Campaign) {
	b.WriteString("#### 2. reason 작성 3단계 (구체적으로)\n\n")
	b.WriteString("**[1단계] 고객의 현재 상황 분석**\n")

	membership := "일반"
	if customer.MembershipLevel != nil {
		membership = customer.MembershipLevel.Description()
	}
	region := ""
	if customer.Region != nil {
		region = customer.Region.Description()
	}
	if customer.Age != nil {
		fmt.Fprintf(b, "- %s님은 %d세, %s, %s 거주\n", customer.Name, *customer.Age, membership, region)
	} else {
		fmt.Fprintf(b, "- %s님은 %s 등급, %s 거주\n", customer.Name, membership, region)
	}

	if years := customer.TenureYears(); years != nil {
		fmt.Fprintf(b, "- %d년 이용 고객\n", *years)
	}
	if customer.CurrentPlan != "" {
		fmt.Fprintf(b, "- 현재 %s 사용 중\n", customer.CurrentPlan)
	}
	if customer.AvgDataUsageGB != nil {
		fmt.Fprintf(b, "- 데이터 %.1fGB 사용\n", *customer.AvgDataUsageGB)
	}
	if recency := customer.RecencyDays(); recency != nil {
		if campaign != nil {
			state := "활동 중"
			if *recency > 365 {
				state = "이탈 위험"
			}
			fmt.Fprintf(b, "- %d일 동안 미구매 → %s\n", *recency, state)
		} else {
			fmt.Fprintf(b, "- %d일 동안 미구매\n", *recency)
		}
	}
	b.WriteString("\n")

	if campaign != nil {
		b.WriteString("**[2단계] 캠페인-상품 연결고리 파악**\n")
		fmt.Fprintf(b, "- 이 캠페인(%s)의 목적은 무엇인가?\n", campaign.Type.Description())
		b.WriteString("- 이 상품이 캠페인 목표 달성에 어떻게 기여하는가?\n")
		b.WriteString("- 고객의 현재 상황에서 이 조합이 효과적인가?\n\n")
		b.WriteString("**[3단계] 종합 설명 (reason 작성)**\n")
		b.WriteString("reason에 반드시 포함할 내용:\n")
		b.WriteString("1. 캠페인 목적과 이 상품의 연관성 (50%)\n")
		b.WriteString("2. 고객의 현재 상황에서 이 상품이 적합한 이유 (50%)\n")
		b.WriteString("3. 캠페인-상품-고객의 시너지 효과\n\n")
	} else {
		b.WriteString("**[2단계] 상품의 핵심 가치 파악**\n")
		b.WriteString("- 이 상품이 제공하는 핵심 혜택은 무엇인가?\n")
		b.WriteString("- 이 상품의 타겟 고객층은 누구인가?\n")
		b.WriteString("- 가격 대비 제공되는 가치는 충분한가?\n\n")
		b.WriteString("**[3단계] 연결고리 명확히 설명**\n")
		b.WriteString("reason에 반드시 포함할 내용:\n")
		b.WriteString("1. 이 상품이 **왜 이 고객에게** 필요한가? (구체적 근거)\n")
		b.WriteString("2. 고객의 현재 상황에서 이 상품이 어떤 문제를 해결하는가?\n")
		b.WriteString("3. 이 상품을 통해 고객이 얻는 실질적 이익은 무엇인가?\n\n")
	}
}

func writeProductList(b *strings.Builder, products []domain.Product) {
	for i, product := range products {
		fmt.Fprintf(b, "\n**[상품 %d]**\n", i+1)
		fmt.Fprintf(b, "- productId: %d\n", product.ID)
		fmt.Fprintf(b, "- 상품명: %s\n", product.Name)
		fmt.Fprintf(b, "- 카테고리: %s\n", product.Category)
		fmt.Fprintf(b, "- 정상가: %.0f원\n", product.Price)
		if product.DiscountRate > 0 {
			fmt.Fprintf(b, "- 할인율: %.0f%%\n", product.DiscountRate)
			fmt.Fprintf(b, "- 할인가: %.0f원\n", product.DiscountedPrice())
		}
		if product.Benefits != "" {
			b.WriteString("- 주요 혜택:\n")
			b.WriteString(formatBenefits(product.Benefits))
		}
	}
}

func writeCampaignList(b *strings.Builder, campaigns []domain.Campaign) {
	b.WriteString("### 📋 활성 캠페인 목록\n")
	for i, c := range campaigns {
		fmt.Fprintf(b, "%d. [ID:%d] %s (%s)\n", i+1, c.ID, c.Name, c.Type.Description())
		if c.Description != "" {
			fmt.Fprintf(b, "   혜택: %s\n", c.Description)
		}
	}
	b.WriteString("\n")
}

func buildProductExampleReason(customer *domain.Customer, campaign *domain.Campaign) string {
	var b strings.Builder

	membership := "회원"
	if customer.MembershipLevel != nil {
		membership = customer.MembershipLevel.Description()
	}
	if customer.Age != nil {
		fmt.Fprintf(&b, "%s 고객은 %d세 %s 등급으로 ", customer.Name, *customer.Age, membership)
	} else {
		fmt.Fprintf(&b, "%s 고객은 %s 등급으로 ", customer.Name, membership)
	}

	if campaign != nil {
		if years := customer.TenureYears(); years != nil {
			fmt.Fprintf(&b, "%d년 이용 고객이며 ", *years)
		}
		if customer.CurrentPlan != "" {
			fmt.Fprintf(&b, "%s를 사용 중입니다. ", customer.CurrentPlan)
		}
		fmt.Fprintf(&b, "'%s' 캠페인은 %s를 목표로 하며, ", campaign.Name, campaign.Type.Description())
	} else {
		if customer.CurrentPlan != "" {
			fmt.Fprintf(&b, "%s를 사용 중이며 ", customer.CurrentPlan)
		}
		if customer.AvgDataUsageGB != nil {
			fmt.Fprintf(&b, "월 %.1fGB의 데이터를 소비하는 ", *customer.AvgDataUsageGB)
			if *customer.AvgDataUsageGB > 50 {
				b.WriteString("헤비 ")
			}
			b.WriteString("유저입니다. ")
		}
	}

	isVIP := customer.MembershipLevel != nil && strings.Contains(customer.MembershipLevel.Description(), "VIP")
	switch {
	case campaign != nil && isVIP:
		b.WriteString("프리미엄 고객인 점을 고려하여 이 상품은 [프리미엄 상품 특징]을 통해 캠페인 목적에 부합하고, ")
		b.WriteString("고객의 [현재 프리미엄 니즈]를 충족시키면서 [캠페인 혜택 + 상품 혜택]을 통해 [가치 극대화 효과]를 달성할 수 있습니다.")
	case campaign != nil:
		b.WriteString("이 상품은 [상품 특징]을 통해 캠페인 목적에 부합하고, ")
		b.WriteString("고객의 [현재 상황]을 고려할 때 [캠페인 혜택 + 상품 혜택]을 통해 [기대 효과]를 달성할 수 있습니다.")
	case isVIP:
		b.WriteString("프리미엄 고객으로서 더 나은 서비스를 추구하시는 고객입니다. ")
		b.WriteString("이 상품은 [상품의 프리미엄 특징]을 제공하며, 고객의 [현재 니즈]를 충족시키면서 ")
		b.WriteString("[업그레이드/추가 혜택]을 통해 [가치 향상 효과]를 얻을 수 있습니다.")
	default:
		b.WriteString("이 상품은 [상품의 핵심 특징]을 제공하며, 고객의 [구체적 상황/니즈]를 고려할 때 ")
		b.WriteString("[실질적 혜택]을 통해 [기대 효과]를 얻을 수 있습니다.")
	}

	return b.String()
}

func buildCampaignExampleReason(customer *domain.Customer, product *domain.Product) string {
	if product != nil {
		return fmt.Sprintf(
			"000님은 00세 VIP 고객으로 0000를 사용 중이며 월 00GB의 데이터를 소비하는 유저입니다. "+
				"%s 상품은 [상품의 구체적 특징]을 제공하며, "+
				"이 캠페인의 [캠페인 혜택 구체적 명시]를 통해 "+
				"[고객이 얻는 실질적 이득]을 누릴 수 있습니다.",
			product.Name)
	}

	membership := "회원"
	if customer.MembershipLevel != nil {
		membership = customer.MembershipLevel.Description()
	}
	plan := "현재"
	if customer.CurrentPlan != "" {
		plan = customer.CurrentPlan
	}
	return fmt.Sprintf("%s 고객은 %s 등급이며 %s 요금제를 사용중입니다. 이 캠페인은 고객의 현재 상황에 매우 적합하며...",
		customer.Name, membership, plan)
}

func writeProductResponseFormat(b *strings.Builder, exampleReason string) {
	b.WriteString("### 📤 응답 형식 (JSON만 출력, 다른 텍스트 금지)\n")
	b.WriteString("[\n")
	b.WriteString("  {\n")
	b.WriteString("    \"rank\": 1,\n")
	b.WriteString("    \"productId\": 상품ID(숫자),\n")
	fmt.Fprintf(b, "    \"reason\": \"%s\",\n", exampleReason)
	b.WriteString("    \"expectedBenefit\": \"고객이 실제 받을 수 있는 구체적 혜택\",\n")
	b.WriteString("    \"relevanceScore\": 85-100 사이 점수\n")
	b.WriteString("  },\n")
	b.WriteString("  ... (총 3개 추천)\n")
	b.WriteString("]\n\n")

	b.WriteString("### ✅ 응답 규칙\n")
	b.WriteString("- **rank**: 1 (최우선), 2, 3 순서대로 부여 (필수)\n")
	b.WriteString("- **productId**: 위 상품 목록의 ID 중 선택 (반드시)\n")
	b.WriteString("- **reason**: 고객 이름과 구체적 상황 포함한 개인화된 설명 (200자 이내)\n")
	b.WriteString("  → 일반적 마케팅 용어 지양, 이 고객만의 맞춤 이유 설명\n")
	b.WriteString("  → 고객의 현재 요금제, 멤버십, 사용 패턴 등 구체적 데이터 활용\n")
	b.WriteString("- **expectedBenefit**: 이 고객이 이 상품으로 얻는 실질적 혜택 (150자 이내)\n")
	b.WriteString("- **relevanceScore**: 고객 적합도를 정확히 반영한 85-100 사이 점수\n")
	b.WriteString("- 반드시 3개 상품 추천 (더 많거나 적으면 안됨)\n")
}

func writeCampaignResponseFormat(b *strings.Builder, withProduct bool, exampleReason string) {
	b.WriteString("### 📤 응답 형식 (JSON만 출력, 다른 텍스트 금지)\n")
	b.WriteString("[\n")
	for i := 0; i < 3; i++ {
		b.WriteString("  {\n")
		b.WriteString("    \"rank\": 순위,\n")
		b.WriteString("    \"campaignId\": 캠페인아이디,\n")
		fmt.Fprintf(b, "    \"reason\": \"%s\",\n", exampleReason)
		b.WriteString("    \"expectedBenefit\": \"예상 혜택\",\n")
		b.WriteString("    \"relevanceScore\": 연관도 점수\n")
		if i < 2 {
			b.WriteString("  },\n")
		} else {
			b.WriteString("  }\n")
		}
	}
	b.WriteString("]\n\n")
	b.WriteString("- **rank**: 1 (최우선), 2, 3 순서대로 부여\n")
	b.WriteString("- **relevanceScore**: 85~100 사이 점수\n")
	if withProduct {
		b.WriteString("- **reason**: 타겟 상품 연관성(50%) + 고객 적합성(50%) 모두 명시\n")
	} else {
		b.WriteString("- **reason**: 고객의 이름과 구체적 상황을 포함한 개인화된 설명\n")
	}
}

func formatBenefits(benefits string) string {
	if benefits == "" {
		return "  (혜택 정보 없음)\n"
	}

	var b strings.Builder
	for _, line := range strings.FieldsFunc(benefits, func(r rune) bool {
		return r == ',' || r == '/' || r == '\n'
	}) {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			fmt.Fprintf(&b, "  • %s\n", trimmed)
		}
	}
	return b.String()
}
