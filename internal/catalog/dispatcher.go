package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"shopfront/internal/api"
	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

// Dispatcher translates catalogue queries into backend requests and
// normalizes the paginated response shape.
type Dispatcher interface {
	// FetchProducts retrieves one page of products for the server-side
	// subset of the filter.
	FetchProducts(ctx context.Context, filter model.ProductFilter, page, limit int) (*model.ProductPage, error)

	// FetchProductByID retrieves a single product.
	FetchProductByID(ctx context.Context, id string) (*model.Product, error)

	// FetchCategories retrieves the category tree.
	FetchCategories(ctx context.Context) ([]model.Category, error)

	// FetchProductsByCategory retrieves one page of a category's products.
	FetchProductsByCategory(ctx context.Context, categoryID string, page, limit int) (*model.ProductPage, error)

	// FetchFeatured retrieves up to limit featured products.
	FetchFeatured(ctx context.Context, limit int) ([]model.Product, error)

	// SearchProducts retrieves one page of products matching the query.
	SearchProducts(ctx context.Context, query string, page, limit int) (*model.ProductPage, error)

	// FetchOrders retrieves one page of the customer's order history.
	FetchOrders(ctx context.Context, page, limit int) (*model.OrderPage, error)

	// FetchOrderByID retrieves a single order.
	FetchOrderByID(ctx context.Context, id string) (*model.Order, error)
}

// apiDispatcher implements Dispatcher against the backend API client.
type apiDispatcher struct {
	client *api.Client
	logger zerolog.Logger
}

// NewDispatcher creates a backend-backed query dispatcher.
func NewDispatcher(client *api.Client, logger zerolog.Logger) Dispatcher {
	return &apiDispatcher{
		client: client,
		logger: logger.With().Str("component", "dispatcher").Logger(),
	}
}

// QueryParams builds the outgoing query for the server-side subset of the
// filter. Price bounds are deliberately omitted: they are applied client
// side only, so adjusting them never costs a network round-trip.
func QueryParams(filter model.ProductFilter, page, limit int) url.Values {
	params := url.Values{}

	if filter.CategoryID != nil {
		params.Set("categoryId", *filter.CategoryID)
	}
	if filter.Category != nil {
		params.Set("category", *filter.Category)
	}
	if filter.Brand != nil {
		params.Set("brand", *filter.Brand)
	}
	if filter.InStock != nil {
		params.Set("inStock", strconv.FormatBool(*filter.InStock))
	}
	if filter.SearchQuery != nil && *filter.SearchQuery != "" {
		params.Set("search", *filter.SearchQuery)
	}
	if filter.Rating != nil {
		params.Set("rating", strconv.FormatFloat(*filter.Rating, 'f', -1, 64))
	}
	if filter.Featured != nil {
		params.Set("featured", strconv.FormatBool(*filter.Featured))
	}
	if filter.OnSale != nil {
		params.Set("onSale", strconv.FormatBool(*filter.OnSale))
	}
	if len(filter.Tags) > 0 {
		params.Set("tags", strings.Join(filter.Tags, ","))
	}

	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	return params
}

// FetchProducts retrieves one page of products for the filter.
func (d *apiDispatcher) FetchProducts(ctx context.Context, filter model.ProductFilter, page, limit int) (*model.ProductPage, error) {
	return d.fetchProductPage(ctx, "/products", QueryParams(filter, page, limit))
}

// FetchProductByID retrieves a single product by ID.
func (d *apiDispatcher) FetchProductByID(ctx context.Context, id string) (*model.Product, error) {
	resp, err := d.client.Get(ctx, "/products/"+url.PathEscape(id), nil)
	if err != nil {
		if api.IsNotFound(err) {
			d.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(resp.Data, &product); err != nil {
		d.logger.Error().Err(err).Str("product_id", id).Msg("failed to decode product")
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}

	return &product, nil
}

// FetchCategories retrieves all categories.
func (d *apiDispatcher) FetchCategories(ctx context.Context) ([]model.Category, error) {
	resp, err := d.client.Get(ctx, "/categories", nil)
	if err != nil {
		return nil, err
	}

	var categories []model.Category
	if err := json.Unmarshal(resp.Data, &categories); err != nil {
		d.logger.Error().Err(err).Msg("failed to decode categories")
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

// FetchProductsByCategory retrieves one page of a category's products.
func (d *apiDispatcher) FetchProductsByCategory(ctx context.Context, categoryID string, page, limit int) (*model.ProductPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	return d.fetchProductPage(ctx, "/categories/"+url.PathEscape(categoryID)+"/products", params)
}

// FetchFeatured retrieves up to limit featured products.
func (d *apiDispatcher) FetchFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	params := url.Values{}
	params.Set("featured", "true")
	params.Set("limit", strconv.Itoa(limit))

	page, err := d.fetchProductPage(ctx, "/products", params)
	if err != nil {
		return nil, err
	}

	return page.Products, nil
}

// SearchProducts retrieves one page of products matching the query.
func (d *apiDispatcher) SearchProducts(ctx context.Context, query string, page, limit int) (*model.ProductPage, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	return d.fetchProductPage(ctx, "/products", params)
}

// FetchOrders retrieves one page of the customer's order history.
func (d *apiDispatcher) FetchOrders(ctx context.Context, page, limit int) (*model.OrderPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	resp, err := d.client.GetPage(ctx, "/orders", params)
	if err != nil {
		return nil, err
	}

	var orders []model.Order
	if err := json.Unmarshal(resp.Data, &orders); err != nil {
		d.logger.Error().Err(err).Msg("failed to decode orders")
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return &model.OrderPage{Orders: orders, Meta: resp.Meta}, nil
}

// FetchOrderByID retrieves a single order by ID.
func (d *apiDispatcher) FetchOrderByID(ctx context.Context, id string) (*model.Order, error) {
	resp, err := d.client.Get(ctx, "/orders/"+url.PathEscape(id), nil)
	if err != nil {
		if api.IsNotFound(err) {
			d.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}

	var order model.Order
	if err := json.Unmarshal(resp.Data, &order); err != nil {
		d.logger.Error().Err(err).Str("order_id", id).Msg("failed to decode order")
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}

	return &order, nil
}

func (d *apiDispatcher) fetchProductPage(ctx context.Context, path string, params url.Values) (*model.ProductPage, error) {
	resp, err := d.client.GetPage(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal(resp.Data, &products); err != nil {
		d.logger.Error().Err(err).Str("path", path).Msg("failed to decode products")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	d.logger.Debug().
		Str("path", path).
		Int("count", len(products)).
		Int("total", resp.Meta.Total).
		Msg("fetched product page")

	return &model.ProductPage{Products: products, Meta: resp.Meta}, nil
}
