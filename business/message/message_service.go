package message

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"
	"aiMarketingMsg/pkg/metrics"

	"github.com/google/uuid"
)

// CampaignRepository contract interface
type CampaignRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Campaign, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

// CustomerRepository contract interface
type CustomerRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Customer, error)
	CountBySegmentFilter(ctx context.Context, filter domain.SegmentFilter) (int64, error)
}

// MessageRepository contract interface
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	FindByID(ctx context.Context, id uint64) (domain.Message, error)
	FindAll(ctx context.Context, userID uint, msgType domain.MessageType, campaignID uint64, limit, offset int) ([]domain.Message, error)
	Count(ctx context.Context, userID uint, msgType domain.MessageType, campaignID uint64) (int64, error)
}

// SegmentResolver deduplicates segment filters into persisted segments.
type SegmentResolver interface {
	FindOrCreate(ctx context.Context, filter domain.SegmentFilter) (domain.Segment, error)
}

// AIProvider is the completion backend. Its output is untrusted.
type AIProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error)
	Model() string
}

// GenerateSegmentRequest asks for message variants aimed at a whole segment.
type GenerateSegmentRequest struct {
	CampaignID        uint64               `json:"campaignId" validate:"required"`
	ProductID         uint64               `json:"productId" validate:"required"`
	ToneID            string               `json:"toneId"`
	SegmentFilter     domain.SegmentFilter `json:"segmentFilter"`
	AdditionalContext string               `json:"additionalContext"`
}

// GenerateIndividualRequest asks for message variants aimed at one customer.
type GenerateIndividualRequest struct {
	CustomerID        uint64 `json:"customerId" validate:"required"`
	CampaignID        uint64 `json:"campaignId" validate:"required"`
	ProductID         uint64 `json:"productId" validate:"required"`
	ToneID            string `json:"toneId"`
	AdditionalContext string `json:"additionalContext"`
}

// GenerateResult carries the transient variants back to the marketer. The
// prompt is echoed so it can be stored alongside a saved message.
type GenerateResult struct {
	GroupID             string                    `json:"messageGroupId"`
	Messages            []domain.GeneratedMessage `json:"messages"`
	TargetCustomerCount int64                     `json:"targetCustomerCount"`
	Model               string                    `json:"model"`
	Prompt              string                    `json:"-"`
}

// SaveRequest persists the variant the marketer picked.
type SaveRequest struct {
	GroupID       string                `json:"messageGroupId" validate:"required"`
	Version       int                   `json:"version" validate:"required,min=1,max=3"`
	Type          domain.MessageType    `json:"messageType" validate:"required,oneof=SEGMENT INDIVIDUAL"`
	Content       string                `json:"content" validate:"required"`
	ToneID        string                `json:"toneId"`
	CampaignID    uint64                `json:"campaignId" validate:"required"`
	ProductID     uint64                `json:"productId" validate:"required"`
	CustomerID    *uint64               `json:"customerId"`
	SegmentFilter *domain.SegmentFilter `json:"segmentFilter"`
	Model         string                `json:"model"`
	Prompt        string                `json:"prompt"`
}

type messageService struct {
	campaignRepo CampaignRepository
	productRepo  ProductRepository
	customerRepo CustomerRepository
	messageRepo  MessageRepository
	segments     SegmentResolver
	provider     AIProvider
	temperature  float64
	maxTokens    int
}

func NewMessageService(
	campaignRepo CampaignRepository,
	productRepo ProductRepository,
	customerRepo CustomerRepository,
	messageRepo MessageRepository,
	segments SegmentResolver,
	provider AIProvider,
	temperature float64,
	maxTokens int,
) *messageService {
	return &messageService{
		campaignRepo: campaignRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		messageRepo:  messageRepo,
		segments:     segments,
		provider:     provider,
		temperature:  temperature,
		maxTokens:    maxTokens,
	}
}

// GenerateSegmentMessage produces three message variants for a segment. The
// variants are not persisted, saving a chosen one is a separate call.
func (s *messageService) GenerateSegmentMessage(ctx context.Context, req GenerateSegmentRequest) (*GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when generating segment message")
		return nil, fmt.Errorf("context error: %w", err)
	}

	metrics.MessageGenerationRequests.WithLabelValues("segment").Inc()

	campaign, err := s.campaignRepo.FindByID(ctx, req.CampaignID)
	if err != nil {
		logger.Error("failed to find campaign for message generation", err)
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("failed to find product for message generation", err)
		return nil, err
	}

	tone := domain.ToneByID(req.ToneID)
	if req.ToneID != "" && !domain.IsKnownTone(req.ToneID) {
		logger.Warn("unknown tone id, falling back to friendly", "toneId", req.ToneID)
	}

	targetCount, err := s.customerRepo.CountBySegmentFilter(ctx, req.SegmentFilter)
	if err != nil {
		logger.Error("failed to count segment customers", err)
		return nil, err
	}
	logger.Info("segment message generation", "campaignId", req.CampaignID,
		"productId", req.ProductID, "targetCustomers", targetCount)

	prompt := buildSegmentPrompt(req.SegmentFilter, targetCount, &campaign, &product, tone, req.AdditionalContext)

	messages, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		GroupID:             newMessageGroupID(),
		Messages:            messages,
		TargetCustomerCount: targetCount,
		Model:               s.provider.Model(),
		Prompt:              prompt,
	}, nil
}

// GenerateIndividualMessage produces three message variants for a single
// customer.
func (s *messageService) GenerateIndividualMessage(ctx context.Context, req GenerateIndividualRequest) (*GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when generating individual message")
		return nil, fmt.Errorf("context error: %w", err)
	}

	metrics.MessageGenerationRequests.WithLabelValues("individual").Inc()

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		logger.Error("failed to find customer for message generation", err)
		return nil, err
	}

	campaign, err := s.campaignRepo.FindByID(ctx, req.CampaignID)
	if err != nil {
		logger.Error("failed to find campaign for message generation", err)
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("failed to find product for message generation", err)
		return nil, err
	}

	tone := domain.ToneByID(req.ToneID)
	if req.ToneID != "" && !domain.IsKnownTone(req.ToneID) {
		logger.Warn("unknown tone id, falling back to friendly", "toneId", req.ToneID)
	}

	prompt := buildIndividualPrompt(&customer, &campaign, &product, tone, req.AdditionalContext)

	messages, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		GroupID:             newMessageGroupID(),
		Messages:            messages,
		TargetCustomerCount: 1,
		Model:               s.provider.Model(),
		Prompt:              prompt,
	}, nil
}

// SaveMessage stores the variant the marketer picked. Segment messages get
// their filter resolved to a deduplicated segment row first.
func (s *messageService) SaveMessage(ctx context.Context, userID uint, req SaveRequest) (*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when saving message")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.campaignRepo.FindByID(ctx, req.CampaignID); err != nil {
		logger.Error("failed to find campaign for message save", err)
		return nil, err
	}
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		logger.Error("failed to find product for message save", err)
		return nil, err
	}

	msg := domain.Message{
		GroupID:        req.GroupID,
		Version:        req.Version,
		Type:           req.Type,
		Content:        req.Content,
		CharacterCount: utf8.RuneCountInString(req.Content),
		ToneID:         req.ToneID,
		CampaignID:     req.CampaignID,
		ProductID:      req.ProductID,
		UserID:         userID,
		Model:          req.Model,
		Prompt:         req.Prompt,
	}

	switch req.Type {
	case domain.MessageSegment:
		if req.SegmentFilter == nil {
			return nil, apperror.New(apperror.CodeValidation, "segment filter is required for segment messages")
		}
		segment, err := s.segments.FindOrCreate(ctx, *req.SegmentFilter)
		if err != nil {
			logger.Error("failed to resolve segment for message save", err)
			return nil, err
		}
		msg.SegmentID = &segment.ID
	case domain.MessageIndividual:
		if req.CustomerID == nil {
			return nil, apperror.New(apperror.CodeValidation, "customerId is required for individual messages")
		}
		if _, err := s.customerRepo.FindByID(ctx, *req.CustomerID); err != nil {
			logger.Error("failed to find customer for message save", err)
			return nil, err
		}
		msg.CustomerID = req.CustomerID
	default:
		return nil, apperror.New(apperror.CodeValidation, "invalid message type").
			WithDetail("messageType", string(req.Type))
	}

	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		logger.Error("failed to save message", err)
		return nil, err
	}

	logger.Info("message saved", "messageId", msg.ID, "characterCount", msg.CharacterCount)

	return &msg, nil
}

func (s *messageService) GetMessage(ctx context.Context, id uint64) (domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return domain.Message{}, fmt.Errorf("context error: %w", err)
	}

	return s.messageRepo.FindByID(ctx, id)
}

// MessageListResult is one page of saved messages.
type MessageListResult struct {
	Messages   []domain.Message `json:"messages"`
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// GetMessages lists the caller's saved messages, newest first.
func (s *messageService) GetMessages(ctx context.Context, userID uint, msgType domain.MessageType, campaignID uint64, page, size int) (*MessageListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	messages, err := s.messageRepo.FindAll(ctx, userID, msgType, campaignID, size, (page-1)*size)
	if err != nil {
		logger.Error("failed to list messages", err)
		return nil, err
	}

	total, err := s.messageRepo.Count(ctx, userID, msgType, campaignID)
	if err != nil {
		logger.Error("failed to count messages", err)
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	return &MessageListResult{
		Messages:   messages,
		TotalCount: total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// generate calls the provider once and validates the three variants.
func (s *messageService) generate(ctx context.Context, prompt string) ([]domain.GeneratedMessage, error) {
	content, err := s.provider.Complete(ctx, generationSystemPrompt, prompt, s.temperature, s.maxTokens)
	if err != nil {
		logger.Error("ai provider call failed for message generation", err)
		return nil, err
	}

	variants, err := parseVariants(content)
	if err != nil {
		return nil, err
	}

	return variants, nil
}

var codeFenceReplacer = strings.NewReplacer("```json", "", "```", "")

// parseVariants decodes the provider JSON and enforces the variant contract:
// versions must be unique and in 1..3, content must be non-empty. Character
// counts are recomputed locally, never trusted from the provider.
func parseVariants(content string) ([]domain.GeneratedMessage, error) {
	cleaned := strings.TrimSpace(codeFenceReplacer.Replace(content))

	var variants []domain.GeneratedMessage
	if err := json.Unmarshal([]byte(cleaned), &variants); err != nil {
		logger.Error("failed to parse generated messages", "content", content, err)
		return nil, apperror.Wrap(apperror.CodeMalformedResponse, "ai response could not be parsed", err)
	}

	if len(variants) == 0 {
		return nil, apperror.New(apperror.CodeMalformedResponse, "ai returned no message variants")
	}

	seen := make(map[int]struct{}, len(variants))
	for i := range variants {
		v := &variants[i]
		if v.Version < 1 || v.Version > 3 {
			return nil, apperror.New(apperror.CodeMalformedResponse, "message variant has an invalid version").
				WithDetail("version", v.Version)
		}
		if _, dup := seen[v.Version]; dup {
			return nil, apperror.New(apperror.CodeMalformedResponse, "message variant versions are not unique").
				WithDetail("version", v.Version)
		}
		seen[v.Version] = struct{}{}

		if strings.TrimSpace(v.Content) == "" {
			return nil, apperror.New(apperror.CodeMalformedResponse, "message variant has empty content").
				WithDetail("version", v.Version)
		}

		v.CharacterCount = utf8.RuneCountInString(v.Content)
		if v.CharacterCount < minMessageLength || v.CharacterCount > maxMessageLength {
			logger.Warn("message variant is outside the requested length",
				"version", v.Version, "characterCount", v.CharacterCount)
		}
	}

	sort.Slice(variants, func(i, j int) bool {
		return variants[i].Version < variants[j].Version
	})

	return variants, nil
}

func newMessageGroupID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "MSG_GROUP_" + strings.ToUpper(raw[:12])
}
