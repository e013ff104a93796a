package categories

import (
	"context"
	"testing"

	pkgerrors "github.com/otomarket/storefront-client/pkg/errors"
	"github.com/otomarket/storefront-client/pkg/types"
)

type stubCategoriesAPI struct {
	list    []types.Category
	listErr error

	single    *types.Category
	singleErr error

	created   *types.Category
	createErr error

	updated   *types.Category
	updateErr error

	deleteErr   error
	deleteCalls int
	createCalls int
}

func (s *stubCategoriesAPI) Categories(context.Context) ([]types.Category, error) {
	return s.list, s.listErr
}

func (s *stubCategoriesAPI) Category(context.Context, int) (*types.Category, error) {
	return s.single, s.singleErr
}

func (s *stubCategoriesAPI) CreateCategory(context.Context, types.CategoryForm) (*types.Category, error) {
	s.createCalls++
	return s.created, s.createErr
}

func (s *stubCategoriesAPI) UpdateCategory(context.Context, int, types.CategoryForm) (*types.Category, error) {
	return s.updated, s.updateErr
}

func (s *stubCategoriesAPI) DeleteCategory(context.Context, int) error {
	s.deleteCalls++
	return s.deleteErr
}

func seeded() []types.Category {
	return []types.Category{
		{ID: 1, Name: "Filters", ProductCount: 4},
		{ID: 2, Name: "Brakes", ProductCount: 2},
	}
}

func TestFetchReplacesList(t *testing.T) {
	t.Parallel()

	store, err := NewStore(&stubCategoriesAPI{list: seeded()}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}

	st := store.State()
	if len(st.Categories) != 2 || st.Categories[0].Name != "Filters" {
		t.Fatalf("unexpected categories: %+v", st.Categories)
	}
	if st.IsLoading || st.Err != "" {
		t.Fatalf("expected settled state, got loading=%v err=%q", st.IsLoading, st.Err)
	}
}

func TestFetchErrorSurfaced(t *testing.T) {
	t.Parallel()

	api := &stubCategoriesAPI{listErr: pkgerrors.New(pkgerrors.CodeDependency, "network error")}
	store, _ := NewStore(api, nil)

	if err := store.Fetch(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	st := store.State()
	if st.Err != "network error" {
		t.Fatalf("Err = %q, want %q", st.Err, "network error")
	}
	if st.IsLoading {
		t.Fatal("loading flag not cleared on failure")
	}
}

func TestCreateAppends(t *testing.T) {
	t.Parallel()

	api := &stubCategoriesAPI{
		list:    seeded(),
		created: &types.Category{ID: 3, Name: "Ignition"},
	}
	store, _ := NewStore(api, nil)
	ctx := context.Background()

	if err := store.Fetch(ctx); err != nil {
		t.Fatal(err)
	}
	if err := store.Create(ctx, types.CategoryForm{Name: "Ignition"}); err != nil {
		t.Fatal(err)
	}

	st := store.State()
	if len(st.Categories) != 3 || st.Categories[2].Name != "Ignition" {
		t.Fatalf("unexpected categories after create: %+v", st.Categories)
	}
}

func TestCreateValidatesBeforeDispatch(t *testing.T) {
	t.Parallel()

	api := &stubCategoriesAPI{}
	store, _ := NewStore(api, nil)

	err := store.Create(context.Background(), types.CategoryForm{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if api.createCalls != 0 {
		t.Fatalf("backend called %d times for invalid form", api.createCalls)
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg := appErr.FieldErrors()["name"]; msg == "" {
		t.Fatalf("missing field error for name: %v", appErr.FieldErrors())
	}
}

func TestUpdatePatchesRowAndSelected(t *testing.T) {
	t.Parallel()

	api := &stubCategoriesAPI{
		list:    seeded(),
		single:  &types.Category{ID: 2, Name: "Brakes", ProductCount: 2},
		updated: &types.Category{ID: 2, Name: "Braking systems", ProductCount: 2},
	}
	store, _ := NewStore(api, nil)
	ctx := context.Background()

	if err := store.Fetch(ctx); err != nil {
		t.Fatal(err)
	}
	if err := store.FetchByID(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if err := store.Update(ctx, 2, types.CategoryForm{Name: "Braking systems"}); err != nil {
		t.Fatal(err)
	}

	st := store.State()
	if st.Categories[1].Name != "Braking systems" {
		t.Fatalf("row not patched: %+v", st.Categories[1])
	}
	if st.Selected == nil || st.Selected.Name != "Braking systems" {
		t.Fatalf("selected not patched: %+v", st.Selected)
	}
	if st.Categories[0].Name != "Filters" {
		t.Fatalf("unrelated row changed: %+v", st.Categories[0])
	}
}

func TestDeleteRemovesRowAndClearsSelected(t *testing.T) {
	t.Parallel()

	api := &stubCategoriesAPI{
		list:   seeded(),
		single: &types.Category{ID: 1, Name: "Filters"},
	}
	store, _ := NewStore(api, nil)
	ctx := context.Background()

	if err := store.Fetch(ctx); err != nil {
		t.Fatal(err)
	}
	if err := store.FetchByID(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}

	st := store.State()
	if len(st.Categories) != 1 || st.Categories[0].ID != 2 {
		t.Fatalf("unexpected categories after delete: %+v", st.Categories)
	}
	if st.Selected != nil {
		t.Fatalf("selected not cleared: %+v", st.Selected)
	}
	if api.deleteCalls != 1 {
		t.Fatalf("delete called %d times", api.deleteCalls)
	}
}

func TestDeleteFailureLeavesListIntact(t *testing.T) {
	t.Parallel()

	api := &stubCategoriesAPI{
		list:      seeded(),
		deleteErr: pkgerrors.New(pkgerrors.CodeConflict, "category has products"),
	}
	store, _ := NewStore(api, nil)
	ctx := context.Background()

	if err := store.Fetch(ctx); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, 1); err == nil {
		t.Fatal("expected error")
	}

	st := store.State()
	if len(st.Categories) != 2 {
		t.Fatalf("list changed on failed delete: %+v", st.Categories)
	}
	if st.Err != "category has products" {
		t.Fatalf("Err = %q", st.Err)
	}

	store.ClearError()
	if st := store.State(); st.Err != "" {
		t.Fatalf("ClearError left %q", st.Err)
	}
}
