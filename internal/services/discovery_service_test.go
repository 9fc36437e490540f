package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influhub/internal/models/request_models"
	"influhub/pkg/utils"
)

func TestListProductsPaginatesByTrendScore(t *testing.T) {
	repo := newFakeProductRepo()
	service := NewDiscoveryService(repo, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := service.CreateProduct(ctx, request_models.ProductRequest{
			Name:       "Gadget",
			Category:   "tech",
			TrendScore: float64(i),
		})
		require.NoError(t, err)
	}

	page, err := service.ListProducts(ctx, "tech", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 4.0, page.Items[0].TrendScore)
	assert.Equal(t, 3.0, page.Items[1].TrendScore)

	last, err := service.ListProducts(ctx, "tech", 3, 2)
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	assert.Equal(t, 0.0, last.Items[0].TrendScore)
}

func TestListProductsClampsPaging(t *testing.T) {
	service := NewDiscoveryService(newFakeProductRepo(), nil)

	page, err := service.ListProducts(context.Background(), "", -3, 100000)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, maxPageSize, page.PageSize)
}

func TestListProductsFiltersByCategory(t *testing.T) {
	repo := newFakeProductRepo()
	service := NewDiscoveryService(repo, nil)
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, request_models.ProductRequest{Name: "A", Category: "beauty"})
	require.NoError(t, err)
	_, err = service.CreateProduct(ctx, request_models.ProductRequest{Name: "B", Category: "tech"})
	require.NoError(t, err)

	page, err := service.ListProducts(ctx, "beauty", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "A", page.Items[0].Name)
}

func TestDeleteProductUnknown(t *testing.T) {
	service := NewDiscoveryService(newFakeProductRepo(), nil)

	err := service.DeleteProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestEnrichPendingWithoutClientIsNoOp(t *testing.T) {
	repo := newFakeProductRepo()
	service := NewDiscoveryService(repo, nil)
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, request_models.ProductRequest{Name: "A"})
	require.NoError(t, err)

	require.NoError(t, service.EnrichPending(ctx))
	products, err := repo.ListUnenriched(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
