package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/types"
)

type stubAPI struct {
	mu    sync.Mutex
	calls []string

	productsFn func(page, pageSize int) (*types.ProductPage, error)
	searchFn   func(query string, page, pageSize int) (*types.ProductPage, error)
	filterFn   func(filter types.ProductFilter, page, pageSize int) (*types.ProductPage, error)
	productFn  func(id int) (*types.Product, error)
	createFn   func(form types.ProductForm) (*types.Product, error)
	updateFn   func(id int, form types.ProductForm) (*types.Product, error)
	deleteFn   func(id int) error
}

func (s *stubAPI) record(call string) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
}

func (s *stubAPI) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *stubAPI) Products(_ context.Context, page, pageSize int) (*types.ProductPage, error) {
	s.record(fmt.Sprintf("products %d/%d", page, pageSize))
	return s.productsFn(page, pageSize)
}

func (s *stubAPI) SearchProducts(_ context.Context, query string, page, pageSize int) (*types.ProductPage, error) {
	s.record(fmt.Sprintf("search %q %d/%d", query, page, pageSize))
	return s.searchFn(query, page, pageSize)
}

func (s *stubAPI) FilterProducts(_ context.Context, filter types.ProductFilter, page, pageSize int) (*types.ProductPage, error) {
	s.record(fmt.Sprintf("filter cat=%d %d/%d", filter.CategoryID, page, pageSize))
	return s.filterFn(filter, page, pageSize)
}

func (s *stubAPI) Product(_ context.Context, id int) (*types.Product, error) {
	s.record(fmt.Sprintf("product %d", id))
	return s.productFn(id)
}

func (s *stubAPI) CreateProduct(_ context.Context, form types.ProductForm) (*types.Product, error) {
	s.record("create")
	return s.createFn(form)
}

func (s *stubAPI) UpdateProduct(_ context.Context, id int, form types.ProductForm) (*types.Product, error) {
	s.record(fmt.Sprintf("update %d", id))
	return s.updateFn(id, form)
}

func (s *stubAPI) DeleteProduct(_ context.Context, id int) error {
	s.record(fmt.Sprintf("delete %d", id))
	return s.deleteFn(id)
}

func page(products []types.Product, current, totalPages, totalItems, pageSize int) *types.ProductPage {
	return &types.ProductPage{
		Products: products,
		Pagination: types.Pagination{
			CurrentPage: current,
			TotalPages:  totalPages,
			TotalItems:  totalItems,
			PageSize:    pageSize,
		},
	}
}

func testProduct(id int) types.Product {
	return types.Product{ID: id, Name: fmt.Sprintf("part-%d", id), Price: decimal.NewFromInt(int64(id * 10)), StockQuantity: 5}
}

func newTestStore(t *testing.T, api *stubAPI) *Store {
	t.Helper()
	s, err := NewStore(api, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestFetchReplacesStateWholesale(t *testing.T) {
	t.Parallel()

	api := &stubAPI{
		productsFn: func(p, ps int) (*types.ProductPage, error) {
			return page([]types.Product{testProduct(1), testProduct(2)}, p, 4, 20, ps), nil
		},
	}
	s := newTestStore(t, api)

	if err := s.Fetch(context.Background(), 2, 6); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	state := s.State()
	if len(state.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(state.Products))
	}
	if state.Pagination.CurrentPage != 2 || state.Pagination.TotalItems != 20 {
		t.Fatalf("pagination not replaced: %+v", state.Pagination)
	}
	if state.CurrentSearchQuery != "" || !state.CurrentFilters.IsZero() {
		t.Fatalf("criteria not cleared: %+v", state)
	}
}

func TestSearchSupersedesFilter(t *testing.T) {
	t.Parallel()

	api := &stubAPI{
		searchFn: func(q string, p, ps int) (*types.ProductPage, error) {
			return page([]types.Product{testProduct(1)}, p, 1, 1, ps), nil
		},
		filterFn: func(f types.ProductFilter, p, ps int) (*types.ProductPage, error) {
			return page([]types.Product{testProduct(2)}, p, 1, 1, ps), nil
		},
	}
	s := newTestStore(t, api)
	ctx := context.Background()

	if err := s.Filter(ctx, types.ProductFilter{CategoryID: 2}, 1, 6); err != nil {
		t.Fatalf("filter: %v", err)
	}
	if got := s.State().CurrentFilters.CategoryID; got != 2 {
		t.Fatalf("filter not remembered: %d", got)
	}

	if err := s.Search(ctx, "filtre", 1, 6); err != nil {
		t.Fatalf("search: %v", err)
	}

	state := s.State()
	if !state.CurrentFilters.IsZero() {
		t.Fatalf("filters must be cleared by search: %+v", state.CurrentFilters)
	}
	if state.CurrentSearchQuery != "filtre" {
		t.Fatalf("search query not remembered: %q", state.CurrentSearchQuery)
	}
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	api := &stubAPI{
		productsFn: func(p, ps int) (*types.ProductPage, error) {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "backend unavailable")
		},
	}
	s := newTestStore(t, api)

	if err := s.Fetch(context.Background(), 1, 6); err == nil {
		t.Fatal("expected error")
	}
	state := s.State()
	if state.Err != "backend unavailable" {
		t.Fatalf("error not surfaced: %q", state.Err)
	}
	if state.IsLoading {
		t.Fatal("loading flag stuck")
	}
}

func TestFetchByID(t *testing.T) {
	t.Parallel()

	want := testProduct(7)
	api := &stubAPI{
		productFn: func(id int) (*types.Product, error) {
			if id != 7 {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
			}
			return &want, nil
		},
	}
	s := newTestStore(t, api)

	if err := s.FetchByID(context.Background(), 7); err != nil {
		t.Fatalf("fetch by id: %v", err)
	}
	if got := s.State().Selected; got == nil || got.ID != 7 {
		t.Fatalf("selected not set: %+v", got)
	}

	if err := s.FetchByID(context.Background(), 8); err == nil {
		t.Fatal("expected not found")
	}
	if s.State().Selected != nil {
		t.Fatal("selected must be cleared on failed fetch")
	}
}

func TestCreateSplicesOnFirstPage(t *testing.T) {
	t.Parallel()

	created := testProduct(99)
	api := &stubAPI{
		productsFn: func(p, ps int) (*types.ProductPage, error) {
			return page([]types.Product{testProduct(1), testProduct(2)}, 1, 1, 2, 2), nil
		},
		createFn: func(form types.ProductForm) (*types.Product, error) {
			return &created, nil
		},
	}
	s := newTestStore(t, api)
	ctx := context.Background()
	s.Fetch(ctx, 1, 2)

	form := types.ProductForm{Name: "Spark plug", Price: decimal.NewFromInt(35), CategoryID: 1}
	if _, err := s.Create(ctx, form); err != nil {
		t.Fatalf("create: %v", err)
	}

	state := s.State()
	if !state.AdminActionSuccess {
		t.Fatal("admin success flag not set")
	}
	if state.Pagination.TotalItems != 3 || state.Pagination.TotalPages != 2 {
		t.Fatalf("counts not patched: %+v", state.Pagination)
	}
	if state.Products[0].ID != 99 {
		t.Fatalf("new product not spliced to front: %+v", state.Products)
	}
	// The visible slice stays capped at the page size.
	if len(state.Products) != 2 {
		t.Fatalf("visible slice exceeds page size: %d", len(state.Products))
	}
}

func TestCreateDoesNotSpliceOffFirstPage(t *testing.T) {
	t.Parallel()

	created := testProduct(99)
	api := &stubAPI{
		productsFn: func(p, ps int) (*types.ProductPage, error) {
			return page([]types.Product{testProduct(3), testProduct(4)}, 2, 2, 4, 2), nil
		},
		createFn: func(form types.ProductForm) (*types.Product, error) {
			return &created, nil
		},
	}
	s := newTestStore(t, api)
	ctx := context.Background()
	s.Fetch(ctx, 2, 2)

	form := types.ProductForm{Name: "Spark plug", Price: decimal.NewFromInt(35), CategoryID: 1}
	if _, err := s.Create(ctx, form); err != nil {
		t.Fatalf("create: %v", err)
	}

	state := s.State()
	for _, p := range state.Products {
		if p.ID == 99 {
			t.Fatal("must not splice into a non-first page")
		}
	}
	if state.Pagination.TotalItems != 5 {
		t.Fatalf("counts not patched: %+v", state.Pagination)
	}
}

func TestCreateValidatesForm(t *testing.T) {
	t.Parallel()

	api := &stubAPI{}
	s := newTestStore(t, api)

	if _, err := s.Create(context.Background(), types.ProductForm{}); err == nil {
		t.Fatal("expected validation error")
	}
	if len(api.recorded()) != 0 {
		t.Fatal("invalid form must not reach the backend")
	}
	if s.State().AdminActionErr == "" {
		t.Fatal("admin error slot not populated")
	}
}

func TestUpdatePatchesInPlace(t *testing.T) {
	t.Parallel()

	updated := testProduct(2)
	updated.Name = "renamed"
	api := &stubAPI{
		productsFn: func(p, ps int) (*types.ProductPage, error) {
			return page([]types.Product{testProduct(1), testProduct(2)}, 1, 1, 2, 6), nil
		},
		productFn: func(id int) (*types.Product, error) {
			p := testProduct(2)
			return &p, nil
		},
		updateFn: func(id int, form types.ProductForm) (*types.Product, error) {
			return &updated, nil
		},
	}
	s := newTestStore(t, api)
	ctx := context.Background()
	s.Fetch(ctx, 1, 6)
	s.FetchByID(ctx, 2)

	form := types.ProductForm{Name: "renamed", Price: decimal.NewFromInt(20), CategoryID: 1}
	if _, err := s.Update(ctx, 2, form); err != nil {
		t.Fatalf("update: %v", err)
	}

	state := s.State()
	if state.Products[1].Name != "renamed" {
		t.Fatalf("row not patched: %+v", state.Products[1])
	}
	if state.Selected == nil || state.Selected.Name != "renamed" {
		t.Fatalf("selected not patched: %+v", state.Selected)
	}
}

func TestDeleteBoundaryRefetchesPreviousPage(t *testing.T) {
	t.Parallel()

	api := &stubAPI{
		productsFn: func(p, ps int) (*types.ProductPage, error) {
			if p == 3 {
				return page([]types.Product{testProduct(9)}, 3, 3, 13, 6), nil
			}
			return page([]types.Product{testProduct(7), testProduct(8)}, p, 2, 12, 6), nil
		},
		deleteFn: func(id int) error { return nil },
	}
	s := newTestStore(t, api)
	ctx := context.Background()
	s.Fetch(ctx, 3, 6)

	// Product 9 is the only row on page 3 of 3; deleting it must pull
	// page 2 back in.
	if err := s.Delete(ctx, 9); err != nil {
		t.Fatalf("delete: %v", err)
	}

	calls := api.recorded()
	if calls[len(calls)-1] != "products 2/6" {
		t.Fatalf("expected re-fetch of page 2, calls: %v", calls)
	}
	state := s.State()
	if state.Pagination.CurrentPage != 2 {
		t.Fatalf("expected page 2 showing, got %d", state.Pagination.CurrentPage)
	}
	if len(state.Products) != 2 {
		t.Fatalf("expected refetched rows, got %d", len(state.Products))
	}
}

func TestDeleteMidPagePatchesCounts(t *testing.T) {
	t.Parallel()

	api := &stubAPI{
		productsFn: func(p, ps int) (*types.ProductPage, error) {
			return page([]types.Product{testProduct(1), testProduct(2)}, 1, 1, 2, 6), nil
		},
		deleteFn: func(id int) error { return nil },
	}
	s := newTestStore(t, api)
	ctx := context.Background()
	s.Fetch(ctx, 1, 6)

	if err := s.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	state := s.State()
	if state.Pagination.TotalItems != 1 {
		t.Fatalf("counts not patched: %+v", state.Pagination)
	}
	if len(state.Products) != 1 || state.Products[0].ID != 2 {
		t.Fatalf("row not removed: %+v", state.Products)
	}
	// No boundary hit, so no extra fetch beyond the initial one.
	if calls := api.recorded(); len(calls) != 2 {
		t.Fatalf("unexpected calls: %v", calls)
	}
}

func TestStaleListResponseDiscarded(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	started := make(chan struct{})
	api := &stubAPI{
		productsFn: func(p, ps int) (*types.ProductPage, error) {
			close(started)
			<-gate // slow plain fetch
			return page([]types.Product{testProduct(1)}, 1, 1, 1, 6), nil
		},
		searchFn: func(q string, p, ps int) (*types.ProductPage, error) {
			return page([]types.Product{testProduct(2)}, 1, 1, 1, 6), nil
		},
	}
	s := newTestStore(t, api)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- s.Fetch(ctx, 1, 6)
	}()

	<-started
	// The newer search completes while the fetch is still in flight.
	if err := s.Search(ctx, "filtre", 1, 6); err != nil {
		t.Fatalf("search: %v", err)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("fetch: %v", err)
	}

	state := s.State()
	if len(state.Products) != 1 || state.Products[0].ID != 2 {
		t.Fatalf("stale response overwrote newer one: %+v", state.Products)
	}
	if state.CurrentSearchQuery != "filtre" {
		t.Fatalf("search criteria lost: %q", state.CurrentSearchQuery)
	}
}

func TestPriceLabel(t *testing.T) {
	t.Parallel()

	p := types.Product{Price: decimal.NewFromFloat(249.9)}
	if got := PriceLabel(p, true); got != "249.90" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := PriceLabel(p, false); got != "Log in to view price" {
		t.Fatalf("unexpected affordance: %q", got)
	}
}
