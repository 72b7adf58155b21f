package usecase

import (
	"context"
	"fmt"

	"mobimart-storefront/config"
	"mobimart-storefront/internal/domain"
	"mobimart-storefront/internal/variant"
	"mobimart-storefront/pkg/cache"
)

// BrowseUsecase is the read side of the storefront: listings, category
// navigation and product detail, with remote responses memoized in the cache.
type BrowseUsecase struct {
	catalog domain.CatalogClient
	cache   cache.CacheService
	cfg     *config.Config
}

func NewBrowseUsecase(catalog domain.CatalogClient, cache cache.CacheService, cfg *config.Config) *BrowseUsecase {
	return &BrowseUsecase{
		catalog: catalog,
		cache:   cache,
		cfg:     cfg,
	}
}

type productPage struct {
	Products []domain.Product
	Total    int64
}

func (u *BrowseUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	key := fmt.Sprintf("products:%s:%s:%s:%s:%d:%d",
		filter.CategoryID, filter.Query, filter.Brand, filter.Sort, filter.Limit, filter.Offset)
	if val, found := u.cache.Get(key); found {
		page := val.(productPage)
		return page.Products, page.Total, nil
	}

	products, total, err := u.catalog.ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	u.cache.Set(key, productPage{Products: products, Total: total}, u.cfg.CacheProductTTL)
	return products, total, nil
}

func (u *BrowseUsecase) GetCategories(ctx context.Context) ([]domain.Category, error) {
	key := "categories:all"
	if val, found := u.cache.Get(key); found {
		return val.([]domain.Category), nil
	}

	categories, err := u.catalog.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, categories, u.cfg.CacheCategoryTTL)
	return categories, nil
}

func (u *BrowseUsecase) getProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := "product:" + id
	if val, found := u.cache.Get(key); found {
		p := val.(domain.Product)
		return &p, nil
	}

	product, err := u.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, *product, u.cfg.CacheProductTTL)
	return product, nil
}

// GetProductDetail assembles the detail view for the given selection. A nil
// selection means "first visit": the initial choice is derived from the
// in-stock inventory. Resolution is computed fresh on every call, so a stale
// result can never survive a product or selection change.
func (u *BrowseUsecase) GetProductDetail(ctx context.Context, id string, sel *domain.VariantSelection) (*domain.ProductView, error) {
	product, err := u.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	selection := variant.InitialSelection(product.Variants)
	if sel != nil {
		selection = *sel
	}

	resolved := variant.Resolve(product.Variants, selection)

	view := &domain.ProductView{
		Product:      *product,
		Selection:    selection,
		Resolved:     resolved,
		DisplayPrice: variant.DisplayPrice(product, resolved),
	}
	if resolved != nil {
		view.InStock = true
	} else {
		// No in-stock variant: fall back to the product's own stock count.
		view.InStock = product.CurrentStock > 0
	}
	return view, nil
}

// Snapshot captures the display fields a cart line or favorite stores for a
// product, pricing it through the resolver so the stored unit price is the
// one the shopper saw — never a price supplied by the client.
func (u *BrowseUsecase) Snapshot(ctx context.Context, id string, sel *domain.VariantSelection) (domain.ProductSnapshot, error) {
	view, err := u.GetProductDetail(ctx, id, sel)
	if err != nil {
		return domain.ProductSnapshot{}, err
	}

	image := view.Product.Thumbnail
	if image == "" && len(view.Product.Images) > 0 {
		image = view.Product.Images[0]
	}

	return domain.ProductSnapshot{
		ProductID: view.Product.ID,
		Name:      view.Product.Name,
		Slug:      view.Product.Slug,
		Image:     image,
		UnitPrice: view.DisplayPrice,
	}, nil
}
