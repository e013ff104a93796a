package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/otomarket/storefront-client/internal/cart"
	"github.com/otomarket/storefront-client/internal/catalog"
	"github.com/otomarket/storefront-client/internal/categories"
	"github.com/otomarket/storefront-client/internal/dashboard"
	"github.com/otomarket/storefront-client/internal/guard"
	"github.com/otomarket/storefront-client/internal/orders"
	"github.com/otomarket/storefront-client/internal/reports"
	"github.com/otomarket/storefront-client/internal/session"
	"github.com/otomarket/storefront-client/internal/settings"
	"github.com/otomarket/storefront-client/internal/users"
	"github.com/otomarket/storefront-client/pkg/apiclient"
	"github.com/otomarket/storefront-client/pkg/config"
	"github.com/otomarket/storefront-client/pkg/logger"
	"github.com/otomarket/storefront-client/pkg/storage"
	"github.com/otomarket/storefront-client/pkg/types"
)

// keyCartItems persists the cart between CLI invocations, next to the
// session keys in the same KV store.
const keyCartItems = "cart.items"

// app owns the wired object graph behind every command. Stores are
// built once per invocation; the KV store is what carries state across
// invocations.
type app struct {
	cfg  *config.Config
	logg *logger.Logger

	kv     storage.KV
	client *apiclient.Client

	session    *session.Store
	cart       *cart.Store
	catalog    *catalog.Store
	orders     *orders.Store
	categories *categories.Store
	users      *users.Store
	reports    *reports.Store
	dashboard  *dashboard.Store
	settings   *settings.Store
}

func (a *app) bootstrap(ctx context.Context) error {
	kv, err := storage.Open(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("opening local storage: %w", err)
	}
	a.kv = kv

	client, err := apiclient.New(a.cfg.API, nil, a.logg)
	if err != nil {
		return fmt.Errorf("building api client: %w", err)
	}
	a.client = client

	a.session, err = session.NewStore(ctx, session.Params{API: client, KV: kv, Logger: a.logg})
	if err != nil {
		return err
	}
	client.SetTokenSource(a.session)

	a.cart = cart.NewStore()
	if err := a.loadCart(ctx); err != nil {
		a.logg.Warn(ctx, "stored cart is unreadable, starting empty")
	}

	if a.catalog, err = catalog.NewStore(client, a.logg); err != nil {
		return err
	}
	if a.orders, err = orders.NewStore(client, a.cart, a.logg); err != nil {
		return err
	}
	if a.categories, err = categories.NewStore(client, a.logg); err != nil {
		return err
	}
	if a.users, err = users.NewStore(client, a.session, a.logg); err != nil {
		return err
	}
	if a.reports, err = reports.NewStore(client, a.logg); err != nil {
		return err
	}
	if a.dashboard, err = dashboard.NewStore(client, a.logg); err != nil {
		return err
	}
	if a.settings, err = settings.NewStore(client, a.logg); err != nil {
		return err
	}
	return nil
}

func (a *app) shutdown() error {
	if a.kv == nil {
		return nil
	}
	return a.kv.Close()
}

func (a *app) loadCart(ctx context.Context) error {
	raw, err := a.kv.Get(ctx, keyCartItems)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}

	var items []cart.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return err
	}
	for _, item := range items {
		product := types.Product{
			ID:            item.ID,
			Name:          item.Name,
			Price:         item.Price,
			ImageURL:      item.ImageURL,
			StockQuantity: item.StockQuantity,
		}
		if _, err := a.cart.Add(product, item.Quantity); err != nil {
			continue
		}
	}
	return nil
}

func (a *app) saveCart(ctx context.Context) error {
	raw, err := json.Marshal(a.cart.Items())
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, keyCartItems, string(raw))
}

// requireAuth is the CLI's route guard for commands that need a
// signed-in user.
func (a *app) requireAuth(admin bool, path string) error {
	st := a.session.State()
	decision := guard.Decide(guard.Session{
		IsAuthenticated: st.IsAuthenticated,
		IsAdmin:         st.IsAdmin,
		IsLoading:       st.IsLoading,
	}, admin, path)

	switch decision.Outcome {
	case guard.Allow:
		return nil
	case guard.Redirect:
		if admin && st.IsAuthenticated {
			return fmt.Errorf("admin access required")
		}
		return fmt.Errorf("not signed in, run: storefront login")
	default:
		return fmt.Errorf("session still loading, try again")
	}
}
