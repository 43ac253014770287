package catalog

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/integration"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// fakeProductRepo is an in-memory ProductRepository
type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
	saveErr  error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindByExternalID(_ context.Context, externalID string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.ExternalID != nil && *p.ExternalID == externalID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ catalog.ProductFilter) ([]catalog.Product, int64, error) {
	items := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		items = append(items, *p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, int64(len(items)), nil
}

func (r *fakeProductRepo) ListExternalIDs(_ context.Context) ([]string, error) {
	var ids []string
	for _, p := range r.products {
		if p.IsLinked() {
			ids = append(ids, *p.ExternalID)
		}
	}
	return ids, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DeleteByExternalIDNotIn(_ context.Context, externalIDs []string) (int64, error) {
	keep := make(map[string]bool, len(externalIDs))
	for _, id := range externalIDs {
		keep[id] = true
	}

	var deleted int64
	for id, p := range r.products {
		if p.IsLinked() && !keep[*p.ExternalID] {
			delete(r.products, id)
			deleted++
		}
	}
	return deleted, nil
}

// fakePlatform scripts CommercePlatform responses
type fakePlatform struct {
	nextID     int
	createErr  error
	updateErr  error
	deleteErr  error
	listErr    error
	remote     []integration.RemoteProduct
	created    []integration.ProductPush
	updatedIDs []string
	deletedIDs []string
}

func (p *fakePlatform) CreateProduct(_ context.Context, push integration.ProductPush) (string, error) {
	if p.createErr != nil {
		return "", p.createErr
	}
	p.nextID++
	p.created = append(p.created, push)
	return fmt.Sprintf("ext-%d", p.nextID), nil
}

func (p *fakePlatform) UpdateProduct(_ context.Context, externalID string, _ integration.ProductPush) error {
	if p.updateErr != nil {
		return p.updateErr
	}
	p.updatedIDs = append(p.updatedIDs, externalID)
	return nil
}

func (p *fakePlatform) DeleteProduct(_ context.Context, externalID string) error {
	if p.deleteErr != nil {
		return p.deleteErr
	}
	p.deletedIDs = append(p.deletedIDs, externalID)
	return nil
}

func (p *fakePlatform) ListProducts(_ context.Context) ([]integration.RemoteProduct, error) {
	if p.listErr != nil {
		return nil, p.listErr
	}
	return p.remote, nil
}

func (p *fakePlatform) ListOrders(_ context.Context) ([]integration.RemoteOrder, error) {
	return nil, nil
}

func validCreateRequest() CreateProductRequest {
	return CreateProductRequest{
		Name:        "Leather Wallet",
		Description: "Hand stitched",
		Price:       decimal.NewFromInt(50),
		Stock:       10,
		Category:    "accessories",
		ImageURLs:   []string{"https://cdn/img.png"},
	}
}

func TestProductService_Create(t *testing.T) {
	t.Run("mirrors and links", func(t *testing.T) {
		repo := newFakeProductRepo()
		platform := &fakePlatform{}
		svc := NewProductService(repo, platform, zap.NewNop())

		resp, err := svc.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)
		require.NotNil(t, resp.ExternalID)
		assert.Equal(t, "ext-1", *resp.ExternalID)

		stored, err := repo.FindByID(context.Background(), resp.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsLinked())

		require.Len(t, platform.created, 1)
		assert.Equal(t, "Leather Wallet", platform.created[0].Title)
	})

	t.Run("mirror failure rolls back the local insert", func(t *testing.T) {
		repo := newFakeProductRepo()
		platform := &fakePlatform{createErr: integration.ErrPlatformUnavailable}
		svc := NewProductService(repo, platform, zap.NewNop())

		_, err := svc.Create(context.Background(), validCreateRequest())
		require.ErrorIs(t, err, shared.ErrSyncFailed)
		assert.Empty(t, repo.products, "local insert must be compensated")
	})

	t.Run("invalid input never reaches the platform", func(t *testing.T) {
		repo := newFakeProductRepo()
		platform := &fakePlatform{}
		svc := NewProductService(repo, platform, zap.NewNop())

		req := validCreateRequest()
		req.Name = "  "
		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.Empty(t, platform.created)
	})

	t.Run("without a platform products stay local", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewProductService(repo, nil, zap.NewNop())

		resp, err := svc.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)
		assert.Nil(t, resp.ExternalID)
	})
}

func TestProductService_Update(t *testing.T) {
	seed := func(t *testing.T, repo *fakeProductRepo, platform *fakePlatform) uuid.UUID {
		t.Helper()
		svc := NewProductService(repo, platform, zap.NewNop())
		resp, err := svc.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("pushes changed fields", func(t *testing.T) {
		repo := newFakeProductRepo()
		platform := &fakePlatform{}
		id := seed(t, repo, platform)
		svc := NewProductService(repo, platform, zap.NewNop())

		resp, err := svc.Update(context.Background(), id, UpdateProductRequest{
			Name:  "Leather Wallet v2",
			Price: decimal.NewFromInt(60),
			Stock: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, "Leather Wallet v2", resp.Name)
		assert.Equal(t, []string{"ext-1"}, platform.updatedIDs)
	})

	t.Run("vanished remote product is recreated with a new id", func(t *testing.T) {
		repo := newFakeProductRepo()
		platform := &fakePlatform{}
		id := seed(t, repo, platform)

		platform.updateErr = integration.ErrRemoteProductNotFound
		svc := NewProductService(repo, platform, zap.NewNop())

		resp, err := svc.Update(context.Background(), id, UpdateProductRequest{
			Name:  "Leather Wallet",
			Price: decimal.NewFromInt(50),
			Stock: 10,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.ExternalID)
		assert.Equal(t, "ext-2", *resp.ExternalID, "relinked to the recreated remote product")

		stored, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "ext-2", *stored.ExternalID)
	})

	t.Run("other platform failures keep the local update and report partial sync", func(t *testing.T) {
		repo := newFakeProductRepo()
		platform := &fakePlatform{}
		id := seed(t, repo, platform)

		platform.updateErr = integration.ErrPlatformUnavailable
		svc := NewProductService(repo, platform, zap.NewNop())

		_, err := svc.Update(context.Background(), id, UpdateProductRequest{
			Name:  "Renamed",
			Price: decimal.NewFromInt(1),
			Stock: 1,
		})
		require.ErrorIs(t, err, shared.ErrSyncFailed)

		stored, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", stored.Name, "local update survives the failed mirror")
		assert.Equal(t, "ext-1", *stored.ExternalID, "link to the old remote product is kept")
	})

	t.Run("unknown product", func(t *testing.T) {
		svc := NewProductService(newFakeProductRepo(), &fakePlatform{}, zap.NewNop())
		_, err := svc.Update(context.Background(), uuid.New(), UpdateProductRequest{Name: "x"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_Delete(t *testing.T) {
	t.Run("removes remote copy first", func(t *testing.T) {
		repo := newFakeProductRepo()
		platform := &fakePlatform{}
		svc := NewProductService(repo, platform, zap.NewNop())

		resp, err := svc.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), resp.ID))
		assert.Equal(t, []string{"ext-1"}, platform.deletedIDs)
		assert.Empty(t, repo.products)
	})

	t.Run("remote failure blocks the local delete", func(t *testing.T) {
		repo := newFakeProductRepo()
		platform := &fakePlatform{}
		svc := NewProductService(repo, platform, zap.NewNop())

		resp, err := svc.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)

		platform.deleteErr = integration.ErrPlatformUnavailable
		err = svc.Delete(context.Background(), resp.ID)
		require.ErrorIs(t, err, shared.ErrSyncFailed)
		assert.Len(t, repo.products, 1)
	})
}

func TestProductService_List(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil, zap.NewNop())

	for _, name := range []string{"Alpha", "Beta"} {
		req := validCreateRequest()
		req.Name = name
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), ProductListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alpha", page.Items[0].Name)
}
