package recommendation

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"
	"aiMarketingMsg/pkg/metrics"
)

const (
	minRelevanceScore = 85
	maxRelevanceScore = 100

	recommendationCount = 3
)

var codeFencePattern = regexp.MustCompile("```(?:json)?\\s*")

// stripCodeFences removes markdown fences some models wrap around JSON even
// when told not to.
func stripCodeFences(content string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(content, ""))
}

func parseProductCandidates(content string) ([]domain.AIProductCandidate, error) {
	cleaned := stripCodeFences(content)

	var candidates []domain.AIProductCandidate
	if err := json.Unmarshal([]byte(cleaned), &candidates); err != nil {
		logger.Error("failed to parse ai product recommendation", "content", content, err)
		return nil, apperror.Wrap(apperror.CodeMalformedResponse, "ai response could not be parsed", err)
	}

	return candidates, nil
}

func parseCampaignCandidates(content string) ([]domain.AICampaignCandidate, error) {
	cleaned := stripCodeFences(content)

	var candidates []domain.AICampaignCandidate
	if err := json.Unmarshal([]byte(cleaned), &candidates); err != nil {
		logger.Error("failed to parse ai campaign recommendation", "content", content, err)
		return nil, apperror.Wrap(apperror.CodeMalformedResponse, "ai response could not be parsed", err)
	}

	return candidates, nil
}

// reconcileProducts validates every candidate against the eligible pool. Ids
// not in the pool are dropped silently, as are products that fail a fresh
// eligibility check, duplicates (first occurrence wins), ranks outside 1..3
// or already taken, and scores outside the requested band. At most three
// survivors come back, sorted by rank. An empty result after all that is an
// error, one or two survivors are not.
func reconcileProducts(candidates []domain.AIProductCandidate, eligible []domain.Product, customerAge *int) ([]domain.RecommendedProduct, error) {
	pool := make(map[uint64]domain.Product, len(eligible))
	for _, p := range eligible {
		pool[p.ID] = p
	}

	seen := make(map[uint64]struct{}, len(candidates))
	seenRanks := make(map[int]struct{}, recommendationCount)
	recommendations := make([]domain.RecommendedProduct, 0, recommendationCount)

	for _, c := range candidates {
		product, ok := pool[c.ProductID]
		if !ok {
			logger.Warn("ai recommended an unknown product", "productId", c.ProductID)
			metrics.ReconcilerDroppedCandidates.WithLabelValues("unknown_id").Inc()
			continue
		}

		if _, dup := seen[c.ProductID]; dup {
			logger.Warn("ai recommended the same product twice", "productId", c.ProductID)
			metrics.ReconcilerDroppedCandidates.WithLabelValues("duplicate").Inc()
			continue
		}

		if c.Rank < 1 || c.Rank > recommendationCount {
			logger.Warn("ai returned an invalid rank", "productId", c.ProductID, "rank", c.Rank)
			metrics.ReconcilerDroppedCandidates.WithLabelValues("invalid_rank").Inc()
			continue
		}

		if _, dup := seenRanks[c.Rank]; dup {
			logger.Warn("ai returned the same rank twice", "productId", c.ProductID, "rank", c.Rank)
			metrics.ReconcilerDroppedCandidates.WithLabelValues("duplicate_rank").Inc()
			continue
		}

		if !IsProductEligible(&product, customerAge) {
			logger.Warn("ai recommended an ineligible product",
				"productId", product.ID, "productName", product.Name)
			metrics.ReconcilerDroppedCandidates.WithLabelValues("ineligible").Inc()
			continue
		}

		if c.RelevanceScore < minRelevanceScore || c.RelevanceScore > maxRelevanceScore {
			logger.Warn("ai returned an out-of-band relevance score",
				"productId", c.ProductID, "score", c.RelevanceScore)
			metrics.ReconcilerDroppedCandidates.WithLabelValues("score_out_of_band").Inc()
			continue
		}

		seen[c.ProductID] = struct{}{}
		seenRanks[c.Rank] = struct{}{}
		recommendations = append(recommendations, domain.RecommendedProduct{
			Rank:            c.Rank,
			Product:         product,
			Reason:          c.Reason,
			ExpectedBenefit: c.ExpectedBenefit,
			RelevanceScore:  c.RelevanceScore,
		})
	}

	if len(recommendations) == 0 {
		return nil, apperror.New(apperror.CodeReconciliationFailed, "no valid recommendations survived validation")
	}

	sort.Slice(recommendations, func(i, j int) bool {
		return recommendations[i].Rank < recommendations[j].Rank
	})

	return recommendations, nil
}

// reconcileCampaigns mirrors reconcileProducts for the campaign pool. There
// is no re-eligibility check because campaign membership has no per-customer
// criteria beyond being in the active pool.
func reconcileCampaigns(candidates []domain.AICampaignCandidate, active []domain.Campaign) ([]domain.RecommendedCampaign, error) {
	pool := make(map[uint64]domain.Campaign, len(active))
	for _, c := range active {
		pool[c.ID] = c
	}

	seen := make(map[uint64]struct{}, len(candidates))
	seenRanks := make(map[int]struct{}, recommendationCount)
	recommendations := make([]domain.RecommendedCampaign, 0, recommendationCount)

	for _, c := range candidates {
		campaign, ok := pool[c.CampaignID]
		if !ok {
			logger.Warn("ai recommended an unknown campaign", "campaignId", c.CampaignID)
			metrics.ReconcilerDroppedCandidates.WithLabelValues("unknown_id").Inc()
			continue
		}

		if _, dup := seen[c.CampaignID]; dup {
			logger.Warn("ai recommended the same campaign twice", "campaignId", c.CampaignID)
			metrics.ReconcilerDroppedCandidates.WithLabelValues("duplicate").Inc()
			continue
		}

		if c.Rank < 1 || c.Rank > recommendationCount {
			logger.Warn("ai returned an invalid rank", "campaignId", c.CampaignID, "rank", c.Rank)
			metrics.ReconcilerDroppedCandidates.WithLabelValues("invalid_rank").Inc()
			continue
		}

		if _, dup := seenRanks[c.Rank]; dup {
			logger.Warn("ai returned the same rank twice", "campaignId", c.CampaignID, "rank", c.Rank)
			metrics.ReconcilerDroppedCandidates.WithLabelValues("duplicate_rank").Inc()
			continue
		}

		if c.RelevanceScore < minRelevanceScore || c.RelevanceScore > maxRelevanceScore {
			logger.Warn("ai returned an out-of-band relevance score",
				"campaignId", c.CampaignID, "score", c.RelevanceScore)
			metrics.ReconcilerDroppedCandidates.WithLabelValues("score_out_of_band").Inc()
			continue
		}

		seen[c.CampaignID] = struct{}{}
		seenRanks[c.Rank] = struct{}{}
		recommendations = append(recommendations, domain.RecommendedCampaign{
			Rank:            c.Rank,
			Campaign:        campaign,
			Reason:          c.Reason,
			ExpectedBenefit: c.ExpectedBenefit,
			RelevanceScore:  c.RelevanceScore,
		})
	}

	if len(recommendations) == 0 {
		return nil, apperror.New(apperror.CodeReconciliationFailed, "no valid recommendations survived validation")
	}

	sort.Slice(recommendations, func(i, j int) bool {
		return recommendations[i].Rank < recommendations[j].Rank
	})

	return recommendations, nil
}
