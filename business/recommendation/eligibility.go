package recommendation

import (
	"regexp"
	"strconv"
	"strings"

	"aiMarketingMsg/domain"

	"aiMarketingMsg/pkg/logger"
)

// Korean age limit notations found in product names, e.g. "만 34세 이하",
// "만 65세 이상", "만 18~29세".
var (
	maxAgePattern   = regexp.MustCompile(`만\s*(\d+)세\s*이하`)
	minAgePattern   = regexp.MustCompile(`만\s*(\d+)세\s*이상`)
	ageRangePattern = regexp.MustCompile(`만\s*(\d+)세?\s*~\s*(\d+)세`)
)

// exclusionMarkers are product markers the customer data cannot verify, so
// matching products are never recommended. The welfare markers only exclude
// when combined with "전용" (dedicated).
var exclusionMarkers = []struct {
	words        []string
	requiresOnly bool
	reason       string
}{
	{words: []string{"군인"}, reason: "군인 전용 상품 (고객 정보 미확인)"},
	{words: []string{"외국인"}, reason: "외국인 전용 상품 (고객 정보 미확인)"},
	{words: []string{"장애인", "복지", "국가유공자"}, requiresOnly: true, reason: "복지 대상자 전용 상품 (고객 정보 미확인)"},
}

// FilterProducts drops products the customer cannot subscribe to, preserving
// catalog order. A customer with no recorded age only loses the marker-based
// products, age limits are not enforced against an unknown age.
func FilterProducts(products []domain.Product, customerAge *int) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))

	for _, product := range products {
		eligible, reason := checkEligibility(&product, customerAge)
		if eligible {
			filtered = append(filtered, product)
		} else {
			logger.Debug("product filtered out", "product", product.Name, "reason", reason)
		}
	}

	return filtered
}

// IsProductEligible re-checks a single product, used to reject candidates the
// provider picked despite the instructions.
func IsProductEligible(product *domain.Product, customerAge *int) bool {
	eligible, _ := checkEligibility(product, customerAge)
	return eligible
}

func checkEligibility(product *domain.Product, customerAge *int) (bool, string) {
	name := product.Name
	benefits := product.Benefits
	combined := name + " " + benefits

	for _, marker := range exclusionMarkers {
		if !containsAny(combined, marker.words) {
			continue
		}
		if marker.requiresOnly && !strings.Contains(combined, "전용") {
			continue
		}
		return false, marker.reason
	}

	// age limits only apply when the customer's age is known
	if customerAge == nil {
		return true, ""
	}
	age := *customerAge

	if m := maxAgePattern.FindStringSubmatch(name); m != nil {
		maxAge, _ := strconv.Atoi(m[1])
		if age > maxAge {
			return false, "최대 연령 제한(" + m[1] + "세) 초과"
		}
	}

	if m := minAgePattern.FindStringSubmatch(name); m != nil {
		minAge, _ := strconv.Atoi(m[1])
		if age < minAge {
			return false, "최소 연령 제한(" + m[1] + "세) 미달"
		}
	}

	if m := ageRangePattern.FindStringSubmatch(name); m != nil {
		minAge, _ := strconv.Atoi(m[1])
		maxAge, _ := strconv.Atoi(m[2])
		if age < minAge || age > maxAge {
			return false, "연령 범위(" + m[1] + "~" + m[2] + "세) 벗어남"
		}
	}

	return true, ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
