package message

import (
	"fmt"
	"strings"

	"aiMarketingMsg/domain"
)

const generationSystemPrompt = "당신은 KT의 전문 마케팅 메시지 작성자입니다."

const (
	minMessageLength = 90
	maxMessageLength = 120
)

func buildSegmentPrompt(filter domain.SegmentFilter, targetCount int64, campaign *domain.Campaign, product *domain.Product, tone domain.ToneManner, additionalContext string) string {
	var b strings.Builder

	b.WriteString("당신은 KT의 전문 마케팅 메시지 작성자입니다.\n")
	b.WriteString("고객 세그먼트 데이터를 분석하여 개인화된 SMS/알림톡 메시지를 생성합니다.\n\n")

	b.WriteString("[타겟 세그먼트]\n")
	writeSegmentInfo(&b, filter)
	fmt.Fprintf(&b, "- 타겟 고객 수: %d명\n\n", targetCount)

	writeProductInfo(&b, product)
	writeCampaignInfo(&b, campaign)
	writeToneInfo(&b, tone)

	if additionalContext != "" {
		b.WriteString("[추가 컨텍스트]\n")
		b.WriteString(additionalContext)
		b.WriteString("\n\n")
	}

	writeGenerationRequirements(&b)

	return b.String()
}

func buildIndividualPrompt(customer *domain.Customer, campaign *domain.Campaign, product *domain.Product, tone domain.ToneManner, additionalContext string) string {
	var b strings.Builder

	b.WriteString("당신은 KT의 1:1 개인화 마케팅 전문가입니다.\n")
	b.WriteString("고객의 프로필과 구매 이력을 분석하여 맞춤형 메시지를 생성합니다.\n\n")

	b.WriteString("[고객 프로필]\n")
	writeCustomerInfo(&b, customer)
	b.WriteString("\n")

	b.WriteString("[캠페인 정보]\n")
	fmt.Fprintf(&b, "- 캠페인명: %s\n", campaign.Name)
	fmt.Fprintf(&b, "- 캠페인 유형: %s\n", campaign.Type.Description())
	if campaign.Description != "" {
		fmt.Fprintf(&b, "- 캠페인 목적: %s\n", campaign.Description)
	}
	b.WriteString("\n")

	writeProductInfo(&b, product)
	writeToneInfo(&b, tone)

	if additionalContext != "" {
		b.WriteString("[추가 컨텍스트]\n")
		b.WriteString(additionalContext)
		b.WriteString("\n\n")
	}

	b.WriteString("**중요**: 고객의 이름과 프로필 정보를 자연스럽게 활용하여 개인화된 메시지를 작성하세요.\n\n")

	writeGenerationRequirements(&b)

	return b.String()
}

func writeSegmentInfo(b *strings.Builder, filter domain.SegmentFilter) {
	if filter.AgeMin != nil && filter.AgeMax != nil {
		fmt.Fprintf(b, "- 연령대: %d~%d세\n", *filter.AgeMin, *filter.AgeMax)
	}

	if filter.Gender != nil {
		fmt.Fprintf(b, "- 성별: %s\n", filter.Gender.Description())
	}

	if len(filter.Regions) > 0 {
		names := make([]string, 0, len(filter.Regions))
		for _, r := range filter.Regions {
			names = append(names, string(r))
		}
		fmt.Fprintf(b, "- 지역: %s\n", strings.Join(names, ", "))
	}

	if filter.MembershipLevel != nil {
		fmt.Fprintf(b, "- 멤버십: %s 등급\n", filter.MembershipLevel.Description())
	} else {
		b.WriteString("- 멤버십: 전체 등급 (등급 제한 없음)\n")
	}

	if filter.RecencyMaxDays != nil {
		fmt.Fprintf(b, "- 최근 구매: %d일 이내\n", *filter.RecencyMaxDays)
	}
}

func writeCustomerInfo(b *strings.Builder, customer *domain.Customer) {
	fmt.Fprintf(b, "- 이름: %s\n", customer.Name)
	if customer.Age != nil {
		fmt.Fprintf(b, "- 연령: %d세\n", *customer.Age)
	}

	gender := "미지정"
	if customer.Gender != nil {
		gender = customer.Gender.Description()
	}
	fmt.Fprintf(b, "- 성별: %s\n", gender)

	region := "미지정"
	if customer.Region != nil {
		region = customer.Region.Description()
	}
	fmt.Fprintf(b, "- 지역: %s\n", region)

	membership := "미지정"
	if customer.MembershipLevel != nil {
		membership = customer.MembershipLevel.Description()
	}
	fmt.Fprintf(b, "- 멤버십: %s\n", membership)

	if customer.CurrentPlan != "" {
		fmt.Fprintf(b, "- 현재 요금제: %s\n", customer.CurrentPlan)
	}
	if customer.CurrentDevice != "" {
		fmt.Fprintf(b, "- 현재 단말기: %s\n", customer.CurrentDevice)
	}
	if recency := customer.RecencyDays(); recency != nil {
		fmt.Fprintf(b, "- 최근 구매: %d일 전\n", *recency)
	}
}

func writeProductInfo(b *strings.Builder, product *domain.Product) {
	b.WriteString("[상품 정보]\n")
	fmt.Fprintf(b, "- 상품명: %s\n", product.Name)
	fmt.Fprintf(b, "- 카테고리: %s\n", product.Category)

	fmt.Fprintf(b, "**정상 가격**: %.0f원\n", product.Price)
	if product.DiscountRate > 0 {
		fmt.Fprintf(b, "**할인율**: %.0f%% 할인\n", product.DiscountRate)
		fmt.Fprintf(b, "**할인가**: %.0f원\n", product.DiscountedPrice())
	}

	if product.Benefits != "" {
		b.WriteString("\n**📌 주요 혜택 (메시지에 반드시 포함할 것)**:\n")
		for _, benefit := range strings.Split(product.Benefits, "/") {
			trimmed := strings.TrimSpace(benefit)
			if trimmed != "" {
				fmt.Fprintf(b, "  • %s\n", trimmed)
			}
		}
	}

	b.WriteString("\n⚠️ **중요**: 위 혜택 중 최소 2~3가지는 메시지에 구체적으로 포함해주세요.\n\n")
}

func writeCampaignInfo(b *strings.Builder, campaign *domain.Campaign) {
	b.WriteString("[진행 중인 마케팅 캠페인 정보]\n")
	fmt.Fprintf(b, "- 캠페인명: %s\n", campaign.Name)
	fmt.Fprintf(b, "- 캠페인 유형: %s\n", campaign.Type.Description())

	if campaign.Description != "" {
		b.WriteString("\n🎁 **캠페인 특별 혜택 (메시지에 반드시 1개 이상 포함)**:\n")
		count := 1
		for _, benefit := range strings.FieldsFunc(campaign.Description, func(r rune) bool {
			return r == ',' || r == '.'
		}) {
			trimmed := strings.TrimSpace(benefit)
			if trimmed != "" {
				fmt.Fprintf(b, "  %d. %s\n", count, trimmed)
				count++
			}
		}
	}

	fmt.Fprintf(b, "\n- 캠페인 기간: %s ~ %s\n",
		campaign.StartDate.Format("2006-01-02"), campaign.EndDate.Format("2006-01-02"))
	b.WriteString("\n")
}

func writeToneInfo(b *strings.Builder, tone domain.ToneManner) {
	b.WriteString("[톤앤매너]\n")
	fmt.Fprintf(b, "- 스타일: %s\n", tone.Name)
	fmt.Fprintf(b, "- 설명: %s\n", tone.Description)
	fmt.Fprintf(b, "- 예시: %s\n", tone.Example)
	b.WriteString("\n")
}

func writeGenerationRequirements(b *strings.Builder) {
	b.WriteString("📝 **메시지 생성 요구사항**:\n\n")
	b.WriteString("위 정보를 바탕으로 SMS/알림톡용 마케팅 메시지 3가지 버전을 생성해주세요.\n\n")
	b.WriteString("각 메시지는 다음을 반드시 포함해야 합니다:\n")
	b.WriteString("1. **캠페인의 특별 혜택** 1~2가지 (위 '캠페인 특별 혜택'에서 선택)\n")
	b.WriteString("2. **상품의 핵심 혜택** 1~2가지 (위 '상품 핵심 혜택'에서 선택)\n")
	b.WriteString("3. **가격/할인 정보** (있는 경우)\n")
	b.WriteString("4. **타겟 고객에 대한 호칭** (예: VIP 고객님, 20대 여성 고객님)\n")
	b.WriteString("5. **명확한 행동 유도(CTA)**\n")
	b.WriteString("6. 이모지를 적절히 활용하여 시각적 효과 극대화\n\n")

	fmt.Fprintf(b, "**글자 수**: %d-%d자 이내\n\n", minMessageLength, maxMessageLength)

	b.WriteString("❌ **피해야 할 것**: \n")
	b.WriteString("  - 캠페인 설명만 나열하거나, 상품 설명만 나열하지 마세요!\n")
	b.WriteString("  - 타겟 세그먼트에 명시되지 않은 멤버십 등급으로 호칭하지 마세요!\n")
	b.WriteString("  - '전체 등급'일 때 특정 등급(골드, VIP 등)을 임의로 선택하지 마세요!\n\n")
	b.WriteString("✅ **해야 할 것**: \n")
	b.WriteString("  - 캠페인 특별 혜택 + 상품 핵심 혜택을 조합하여 매력적으로 전달하세요!\n")
	b.WriteString("  - [타겟 세그먼트]에 명시된 멤버십 등급을 정확히 사용하세요!\n")
	b.WriteString("  - 멤버십이 '전체 등급'이면 '고객님' 또는 '연령대 기반 호칭'을 사용하세요!\n\n")

	b.WriteString("JSON 형식으로만 응답해주세요:\n")
	b.WriteString("[\n")
	b.WriteString("  {\"version\": 1, \"content\": \"메시지 내용\"},\n")
	b.WriteString("  {\"version\": 2, \"content\": \"메시지 내용\"},\n")
	b.WriteString("  {\"version\": 3, \"content\": \"메시지 내용\"}\n")
	b.WriteString("]\n")
}
