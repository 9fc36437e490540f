package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"influhub/internal/models/db_models"
	"influhub/internal/models/request_models"
	"influhub/internal/models/response_models"
	"influhub/internal/repositories"
	"influhub/pkg/logging"
	"influhub/pkg/utils"
)

const (
	defaultPageSize    = 20
	maxPageSize        = 100
	enrichmentBatchMax = 10
)

type DiscoveryServiceInterface interface {
	ListProducts(ctx context.Context, category string, page, pageSize int) (*response_models.ProductListResponse, error)
	CreateProduct(ctx context.Context, request request_models.ProductRequest) (*db_models.WinningProduct, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	// EnrichPending summarizes products still missing an AI summary.
	// Failures on individual products are logged and skipped so one bad
	// product cannot stall the batch.
	EnrichPending(ctx context.Context) error
}

type DiscoveryService struct {
	productRepo repositories.ProductRepository
	ai          *openai.Client
}

func NewDiscoveryService(productRepo repositories.ProductRepository, ai *openai.Client) DiscoveryServiceInterface {
	return &DiscoveryService{
		productRepo: productRepo,
		ai:          ai,
	}
}

func (d *DiscoveryService) ListProducts(ctx context.Context, category string, page, pageSize int) (*response_models.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	products, err := d.productRepo.List(ctx, category, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	total, err := d.productRepo.Count(ctx, category)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]response_models.ProductItem, 0, len(products))
	for _, product := range products {
		items = append(items, response_models.ProductItem{
			ID:           product.ID.String(),
			Name:         product.Name,
			Description:  product.Description,
			ImageURL:     product.ImageURL,
			Price:        product.Price,
			Currency:     product.Currency,
			Category:     product.Category,
			SupplierLink: product.SupplierLink,
			TrendScore:   product.TrendScore,
			AISummary:    product.AISummary,
		})
	}

	return &response_models.ProductListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (d *DiscoveryService) CreateProduct(ctx context.Context, request request_models.ProductRequest) (*db_models.WinningProduct, error) {
	product := &db_models.WinningProduct{
		Name:         request.Name,
		Description:  request.Description,
		ImageURL:     request.ImageURL,
		Price:        request.Price,
		Currency:     request.Currency,
		Category:     request.Category,
		SupplierLink: request.SupplierLink,
		TrendScore:   request.TrendScore,
	}
	if err := d.productRepo.Insert(ctx, product); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return product, nil
}

func (d *DiscoveryService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	rows, err := d.productRepo.Delete(ctx, productID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if rows == 0 {
		return utils.ErrProductNotFound
	}
	return nil
}

func (d *DiscoveryService) EnrichPending(ctx context.Context) error {
	if d.ai == nil {
		return nil
	}

	products, err := d.productRepo.ListUnenriched(ctx, enrichmentBatchMax)
	if err != nil {
		return utils.ErrDatabaseError
	}

	for _, product := range products {
		summary, err := d.summarize(ctx, &product)
		if err != nil {
			logging.L().Warn("product enrichment failed",
				zap.String("product_id", product.ID.String()), logging.Err(err))
			continue
		}
		if err := d.productRepo.SetSummary(ctx, product.ID, summary); err != nil {
			return utils.ErrDatabaseError
		}
	}
	return nil
}

func (d *DiscoveryService) summarize(ctx context.Context, product *db_models.WinningProduct) (string, error) {
	description := ""
	if product.Description != nil {
		description = *product.Description
	}
	prompt := fmt.Sprintf(
		"Write a two-sentence pitch for dropshippers on why %q (category: %s, price: %.2f %s) is trending. Product notes: %s",
		product.Name, product.Category, product.Price, product.Currency, description,
	)

	resp, err := d.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a concise e-commerce product analyst."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 160,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion for product %s", product.ID)
	}
	return resp.Choices[0].Message.Content, nil
}
