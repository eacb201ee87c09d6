package recommendation

import (
	"testing"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
)

func eligiblePool() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "5G 프리미엄 요금제", Price: 89000},
		{ID: 2, Name: "5G 스탠다드 요금제", Price: 69000},
		{ID: 3, Name: "LTE 베이직 요금제", Price: 49000},
	}
}

func TestParseProductCandidatesStripsCodeFences(t *testing.T) {
	content := "```json\n[{\"rank\":1,\"productId\":2,\"reason\":\"r\",\"expectedBenefit\":\"b\",\"relevanceScore\":92}]\n```"

	candidates, err := parseProductCandidates(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ProductID != 2 {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}
}

func TestParseProductCandidatesMalformed(t *testing.T) {
	_, err := parseProductCandidates("Sorry, I can't help with that.")
	if err == nil {
		t.Fatal("expected error for non-JSON content")
	}
	if !apperror.Is(err, apperror.CodeMalformedResponse) {
		t.Errorf("expected MALFORMED_RESPONSE, got %v", err)
	}
}

func TestReconcileProductsDropsUnknownID(t *testing.T) {
	candidates := []domain.AIProductCandidate{
		{Rank: 1, ProductID: 999, RelevanceScore: 95},
		{Rank: 2, ProductID: 1, RelevanceScore: 90},
	}

	recs, err := reconcileProducts(candidates, eligiblePool(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].Product.ID != 1 {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
}

func TestReconcileProductsDuplicateFirstWins(t *testing.T) {
	candidates := []domain.AIProductCandidate{
		{Rank: 1, ProductID: 2, Reason: "first", RelevanceScore: 95},
		{Rank: 2, ProductID: 2, Reason: "second", RelevanceScore: 90},
		{Rank: 3, ProductID: 3, RelevanceScore: 88},
	}

	recs, err := reconcileProducts(candidates, eligiblePool(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].Reason != "first" {
		t.Errorf("duplicate resolution kept %q, want the first occurrence", recs[0].Reason)
	}
}

func TestReconcileProductsRejectsIneligible(t *testing.T) {
	pool := []domain.Product{
		{ID: 1, Name: "청년 요금제 만 18~29세"},
		{ID: 2, Name: "5G 스탠다드 요금제"},
	}
	candidates := []domain.AIProductCandidate{
		{Rank: 1, ProductID: 1, RelevanceScore: 95},
		{Rank: 2, ProductID: 2, RelevanceScore: 90},
	}

	recs, err := reconcileProducts(candidates, pool, intPtr(45))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].Product.ID != 2 {
		t.Fatalf("expected only the eligible product, got %+v", recs)
	}
}

func TestReconcileProductsScoreBand(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		kept  bool
	}{
		{"below band", 84, false},
		{"lower edge", 85, true},
		{"upper edge", 100, true},
		{"above band", 101, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := []domain.AIProductCandidate{
				{Rank: 1, ProductID: 1, RelevanceScore: tt.score},
				{Rank: 2, ProductID: 2, RelevanceScore: 90},
			}
			recs, err := reconcileProducts(candidates, eligiblePool(), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := len(recs) == 2
			if got != tt.kept {
				t.Errorf("score %v kept=%v, want %v", tt.score, got, tt.kept)
			}
		})
	}
}

func TestReconcileProductsAllDropped(t *testing.T) {
	candidates := []domain.AIProductCandidate{
		{Rank: 1, ProductID: 999, RelevanceScore: 95},
		{Rank: 2, ProductID: 998, RelevanceScore: 90},
	}

	_, err := reconcileProducts(candidates, eligiblePool(), nil)
	if err == nil {
		t.Fatal("expected error when every candidate is dropped")
	}
	if !apperror.Is(err, apperror.CodeReconciliationFailed) {
		t.Errorf("expected RECONCILIATION_FAILED, got %v", err)
	}
}

func TestReconcileProductsSortsByRank(t *testing.T) {
	candidates := []domain.AIProductCandidate{
		{Rank: 3, ProductID: 3, RelevanceScore: 88},
		{Rank: 1, ProductID: 1, RelevanceScore: 95},
		{Rank: 2, ProductID: 2, RelevanceScore: 92},
	}

	recs, err := reconcileProducts(candidates, eligiblePool(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, rec := range recs {
		if rec.Rank != i+1 {
			t.Errorf("recs[%d].Rank = %d, want %d", i, rec.Rank, i+1)
		}
	}
}

func TestReconcileProductsRankRules(t *testing.T) {
	// rank 7 is outside 1..3, the second rank-1 candidate loses to the first
	candidates := []domain.AIProductCandidate{
		{Rank: 7, ProductID: 1, RelevanceScore: 95},
		{Rank: 1, ProductID: 2, Reason: "first rank 1", RelevanceScore: 92},
		{Rank: 1, ProductID: 3, Reason: "second rank 1", RelevanceScore: 90},
	}

	recs, err := reconcileProducts(candidates, eligiblePool(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Product.ID != 2 || recs[0].Reason != "first rank 1" {
		t.Errorf("duplicate rank resolution kept %+v, want the first rank-1 candidate", recs[0])
	}
}

func TestReconcileProductsNeverReturnsMoreThanThree(t *testing.T) {
	pool := append(eligiblePool(), domain.Product{ID: 4, Name: "OTT 번들 요금제", Price: 99000})
	candidates := []domain.AIProductCandidate{
		{Rank: 1, ProductID: 1, RelevanceScore: 95},
		{Rank: 2, ProductID: 2, RelevanceScore: 92},
		{Rank: 3, ProductID: 3, RelevanceScore: 90},
		{Rank: 4, ProductID: 4, RelevanceScore: 88},
	}

	recs, err := reconcileProducts(candidates, pool, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want at most 3", len(recs))
	}
	for i, rec := range recs {
		if rec.Rank != i+1 {
			t.Errorf("recs[%d].Rank = %d, want %d", i, rec.Rank, i+1)
		}
	}
}

func TestReconcileCampaigns(t *testing.T) {
	active := []domain.Campaign{
		{ID: 10, Name: "5G 전환 캠페인"},
		{ID: 11, Name: "가족 결합 캠페인"},
	}
	candidates := []domain.AICampaignCandidate{
		{Rank: 2, CampaignID: 11, RelevanceScore: 90},
		{Rank: 1, CampaignID: 10, RelevanceScore: 95},
		{Rank: 3, CampaignID: 77, RelevanceScore: 99},
	}

	recs, err := reconcileCampaigns(candidates, active)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].Campaign.ID != 10 || recs[1].Campaign.ID != 11 {
		t.Errorf("recommendations not ordered by rank: %+v", recs)
	}
}

func TestReconcileCampaignsRankRules(t *testing.T) {
	active := []domain.Campaign{
		{ID: 10, Name: "5G 전환 캠페인"},
		{ID: 11, Name: "가족 결합 캠페인"},
		{ID: 12, Name: "장기 고객 감사 캠페인"},
		{ID: 13, Name: "신규 가입 캠페인"},
	}
	candidates := []domain.AICampaignCandidate{
		{Rank: 0, CampaignID: 10, RelevanceScore: 95},
		{Rank: 1, CampaignID: 11, RelevanceScore: 92},
		{Rank: 1, CampaignID: 12, RelevanceScore: 90},
		{Rank: 4, CampaignID: 13, RelevanceScore: 88},
	}

	recs, err := reconcileCampaigns(candidates, active)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Campaign.ID != 11 {
		t.Errorf("kept campaign %d, want 11", recs[0].Campaign.ID)
	}
}
