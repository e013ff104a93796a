// Package apitest runs an in-process fake of the storefront backend
// for exercising the API client and stores against real HTTP.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/otomarket/storefront-client/pkg/types"
)

const (
	// Fixture credentials accepted by the login endpoint.
	CustomerToken = "abc"
	AdminToken    = "admin-token"
)

// Server is a seedable fixture backend. Mutate the exported fields
// before issuing requests; they are guarded by mu during handling.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	Products   []types.Product
	Categories []types.Category
	Orders     []types.Order
	Users      []types.User
	Config     types.Settings

	// LastRange records the dateRange of the most recent report call.
	LastRange types.DateRange

	nextProductID int
	nextOrderID   int
	nextUserID    int
}

// New starts the fake backend with a small seeded catalog.
func New() *Server {
	s := &Server{
		Products: []types.Product{
			{ID: 1, Name: "Oil filter", Price: decimal.NewFromInt(100), CategoryID: 1, CategoryName: "Filters", StockQuantity: 3, SKU: "FLT-001", IsActive: true},
			{ID: 2, Name: "Air filter", Price: decimal.NewFromInt(80), CategoryID: 1, CategoryName: "Filters", StockQuantity: 10, SKU: "FLT-002", IsActive: true},
			{ID: 3, Name: "Brake pad set", Price: decimal.NewFromInt(450), CategoryID: 2, CategoryName: "Brakes", StockQuantity: 5, SKU: "BRK-001", IsActive: true, IsFeatured: true},
		},
		Categories: []types.Category{
			{ID: 1, Name: "Filters", ProductCount: 2},
			{ID: 2, Name: "Brakes", ProductCount: 1},
		},
		Users: []types.User{
			{ID: 1, FirstName: "Alice", LastName: "Customer", Email: "alice@example.com", IsActive: true},
			{ID: 2, FirstName: "Ada", LastName: "Admin", Email: "admin@example.com", IsAdmin: true, IsActive: true},
		},
		Config: types.Settings{
			SiteName:         "Otomarket",
			CompanyName:      "Otomarket Ltd",
			ShippingFlatRate: decimal.NewFromInt(25),
			TaxRate:          decimal.NewFromInt(20),
			CashOnDelivery:   true,
		},
		nextProductID: 4,
		nextOrderID:   1,
		nextUserID:    3,
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.handleProducts)
		r.Get("/search", s.handleSearch)
		r.Get("/filter", s.handleFilter)
		r.Get("/{id}", s.handleProduct)
		r.Post("/", s.requireAdmin(s.handleCreateProduct))
		r.Put("/{id}", s.requireAdmin(s.handleUpdateProduct))
		r.Delete("/{id}", s.requireAdmin(s.handleDeleteProduct))
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.handleCategories)
		r.Get("/{id}", s.handleCategory)
		r.Post("/", s.requireAdmin(s.handleCreateCategory))
		r.Put("/{id}", s.requireAdmin(s.handleUpdateCategory))
		r.Delete("/{id}", s.requireAdmin(s.handleDeleteCategory))
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", s.requireAuth(s.handleCreateOrder))
		r.Get("/my-orders", s.requireAuth(s.handleMyOrders))
		r.Get("/admin", s.requireAdmin(s.handleAllOrders))
		r.Get("/{id}", s.requireAuth(s.handleOrder))
		r.Put("/{id}/status", s.requireAdmin(s.handleOrderStatus))
	})

	r.Route("/users", func(r chi.Router) {
		r.Put("/profile", s.requireAuth(s.handleProfile))
		r.Get("/", s.requireAdmin(s.handleUsers))
		r.Get("/{id}", s.requireAdmin(s.handleUser))
		r.Post("/", s.requireAdmin(s.handleCreateUser))
		r.Put("/{id}", s.requireAdmin(s.handleUpdateUser))
		r.Delete("/{id}", s.requireAdmin(s.handleDeleteUser))
		r.Patch("/{id}/status", s.requireAdmin(s.handleUserStatus))
	})

	r.Get("/dashboard/stats", s.requireAdmin(s.handleStats))
	r.Get("/dashboard/recent-orders", s.requireAdmin(s.handleRecentOrders))
	r.Get("/dashboard/low-stock", s.requireAdmin(s.handleLowStock))

	r.Get("/reports/sales", s.requireAdmin(s.handleSalesReport))
	r.Get("/reports/top-products", s.requireAdmin(s.handleTopProducts))
	r.Get("/reports/top-customers", s.requireAdmin(s.handleTopCustomers))
	r.Get("/reports/sales-by-category", s.requireAdmin(s.handleSalesByCategory))
	r.Get("/reports/sales-timeline", s.requireAdmin(s.handleSalesTimeline))

	r.Get("/settings", s.requireAdmin(s.handleSettings))
	r.Put("/settings", s.requireAdmin(s.handleSaveSettings))

	return r
}

func bearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := bearer(r); token != CustomerToken && token != AdminToken {
			writeError(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		next(w, r)
	}
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch bearer(r) {
		case AdminToken:
			next(w, r)
		case CustomerToken:
			writeError(w, http.StatusForbidden, "admin access required", nil)
		default:
			writeError(w, http.StatusUnauthorized, "authentication required", nil)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	writeJSON(w, status, types.ErrorEnvelope{Message: message, Errors: fields})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds types.Credentials
	json.NewDecoder(r.Body).Decode(&creds)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case creds.Username == "alice" && creds.Password == "secret":
		writeJSON(w, http.StatusOK, types.LoginResult{User: s.Users[0], Token: CustomerToken})
	case creds.Username == "admin" && creds.Password == "admin":
		writeJSON(w, http.StatusOK, types.LoginResult{User: s.Users[1], Token: AdminToken})
	default:
		writeError(w, http.StatusUnauthorized, "Invalid username or password", nil)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg types.Registration
	json.NewDecoder(r.Body).Decode(&reg)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.Email == reg.Email {
			writeError(w, http.StatusBadRequest, "validation failed", map[string]string{"email": "is already registered"})
			return
		}
	}
	user := types.User{
		ID:        s.nextUserID,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Phone:     reg.Phone,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	s.nextUserID++
	s.Users = append(s.Users, user)
	writeJSON(w, http.StatusCreated, user)
}

func pageParams(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("pageSize"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 6
	}
	return page, pageSize
}

func paginate(items []types.Product, page, pageSize int) types.ProductPage {
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	out := make([]types.Product, end-start)
	copy(out, items[start:end])
	return types.ProductPage{
		Products: out,
		Pagination: types.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			PageSize:    pageSize,
		},
	}
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, paginate(s.Products, page, pageSize))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	query := strings.ToLower(r.URL.Query().Get("query"))

	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []types.Product
	for _, p := range s.Products {
		if strings.Contains(strings.ToLower(p.Name), query) {
			matched = append(matched, p)
		}
	}
	writeJSON(w, http.StatusOK, paginate(matched, page, pageSize))
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	categoryID, _ := strconv.Atoi(r.URL.Query().Get("categoryId"))

	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []types.Product
	for _, p := range s.Products {
		if categoryID > 0 && p.CategoryID != categoryID {
			continue
		}
		if r.URL.Query().Get("inStock") == "true" && p.StockQuantity == 0 {
			continue
		}
		if r.URL.Query().Get("featured") == "true" && !p.IsFeatured {
			continue
		}
		matched = append(matched, p)
	}
	writeJSON(w, http.StatusOK, paginate(matched, page, pageSize))
}

func idParam(r *http.Request) int {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	return id
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Products {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Product not found", nil)
}

func (s *Server) productFromForm(r *http.Request, id int) types.Product {
	r.ParseMultipartForm(8 << 20)
	price, _ := decimal.NewFromString(r.FormValue("price"))
	categoryID, _ := strconv.Atoi(r.FormValue("categoryId"))
	stock, _ := strconv.Atoi(r.FormValue("stockQuantity"))
	p := types.Product{
		ID:            id,
		Name:          r.FormValue("name"),
		Description:   r.FormValue("description"),
		Price:         price,
		CategoryID:    categoryID,
		StockQuantity: stock,
		SKU:           r.FormValue("sku"),
		IsActive:      r.FormValue("isActive") == "true",
		IsFeatured:    r.FormValue("isFeatured") == "true",
	}
	if file, header, err := r.FormFile("image"); err == nil {
		file.Close()
		p.ImageURL = "/uploads/" + header.Filename
	}
	return p
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.productFromForm(r, s.nextProductID)
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "validation failed", map[string]string{"name": "is required"})
		return
	}
	s.nextProductID++
	s.Products = append([]types.Product{p}, s.Products...)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.Products {
		if existing.ID == id {
			p := s.productFromForm(r, id)
			if p.ImageURL == "" {
				p.ImageURL = existing.ImageURL
			}
			s.Products[i] = p
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Product not found", nil)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.Products {
		if p.ID == id {
			s.Products = append(s.Products[:i], s.Products[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Product not found", nil)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Categories)
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.Categories {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Category not found", nil)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var form types.CategoryForm
	json.NewDecoder(r.Body).Decode(&form)

	s.mu.Lock()
	defer s.mu.Unlock()
	maxID := 0
	for _, c := range s.Categories {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	cat := types.Category{ID: maxID + 1, Name: form.Name, Description: form.Description}
	s.Categories = append(s.Categories, cat)
	writeJSON(w, http.StatusCreated, cat)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	var form types.CategoryForm
	json.NewDecoder(r.Body).Decode(&form)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.Categories {
		if c.ID == id {
			c.Name = form.Name
			c.Description = form.Description
			s.Categories[i] = c
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Category not found", nil)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.Categories {
		if c.ID == id {
			s.Categories = append(s.Categories[:i], s.Categories[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Category not found", nil)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var draft types.OrderDraft
	json.NewDecoder(r.Body).Decode(&draft)

	if len(draft.OrderItems) == 0 {
		writeError(w, http.StatusBadRequest, "Cart is empty", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range draft.OrderItems {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	order := types.Order{
		ID:              s.nextOrderID,
		OrderNumber:     "ORD-" + strconv.Itoa(1000+s.nextOrderID),
		OrderDate:       time.Now().UTC(),
		Status:          types.OrderStatusPending,
		PaymentMethod:   draft.PaymentMethod,
		ShippingAddress: draft.ShippingAddress,
		Notes:           draft.Notes,
		TotalAmount:     total.Add(s.Config.ShippingFlatRate),
		ShippingCost:    s.Config.ShippingFlatRate,
		OrderItems:      draft.OrderItems,
	}
	s.nextOrderID++
	s.Orders = append(s.Orders, order)
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleMyOrders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Orders)
}

func (s *Server) handleAllOrders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Orders)
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.ID == id {
			writeJSON(w, http.StatusOK, o)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Order not found", nil)
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	var payload struct {
		Status types.OrderStatus `json:"status"`
	}
	json.NewDecoder(r.Body).Decode(&payload)
	if !payload.Status.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown order status", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.Orders {
		if o.ID == id {
			o.Status = payload.Status
			s.Orders[i] = o
			writeJSON(w, http.StatusOK, o)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Order not found", nil)
}

func (s *Server) handleUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Users)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.ID == id {
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found", nil)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var form types.UserForm
	json.NewDecoder(r.Body).Decode(&form)

	s.mu.Lock()
	defer s.mu.Unlock()
	user := types.User{
		ID:        s.nextUserID,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     form.Phone,
		IsAdmin:   form.IsAdmin,
		IsActive:  form.IsActive,
		CreatedAt: time.Now().UTC(),
	}
	s.nextUserID++
	s.Users = append(s.Users, user)
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	var form types.UserForm
	json.NewDecoder(r.Body).Decode(&form)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.Users {
		if u.ID == id {
			u.FirstName = form.FirstName
			u.LastName = form.LastName
			u.Email = form.Email
			u.Phone = form.Phone
			u.IsAdmin = form.IsAdmin
			u.IsActive = form.IsActive
			s.Users[i] = u
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found", nil)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.Users {
		if u.ID == id {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found", nil)
}

func (s *Server) handleUserStatus(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	var payload struct {
		IsActive bool `json:"isActive"`
	}
	json.NewDecoder(r.Body).Decode(&payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.Users {
		if u.ID == id {
			u.IsActive = payload.IsActive
			s.Users[i] = u
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found", nil)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	var form types.ProfileForm
	json.NewDecoder(r.Body).Decode(&form)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Profile edits always apply to the first fixture user.
	u := s.Users[0]
	u.FirstName = form.FirstName
	u.LastName = form.LastName
	u.Email = form.Email
	u.Phone = form.Phone
	s.Users[0] = u
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	revenue := decimal.Zero
	for _, o := range s.Orders {
		revenue = revenue.Add(o.TotalAmount)
	}
	writeJSON(w, http.StatusOK, types.DashboardStats{
		TotalProducts: len(s.Products),
		TotalOrders:   len(s.Orders),
		TotalUsers:    len(s.Users),
		TotalRevenue:  revenue,
	})
}

func (s *Server) handleRecentOrders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Orders)
}

func (s *Server) handleLowStock(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var low []types.Product
	for _, p := range s.Products {
		if p.StockQuantity < 5 {
			low = append(low, p)
		}
	}
	writeJSON(w, http.StatusOK, low)
}

func (s *Server) recordRange(r *http.Request) bool {
	rng := types.DateRange(r.URL.Query().Get("dateRange"))
	if !rng.Valid() {
		return false
	}
	s.mu.Lock()
	s.LastRange = rng
	s.mu.Unlock()
	return true
}

func (s *Server) handleSalesReport(w http.ResponseWriter, r *http.Request) {
	if !s.recordRange(r) {
		writeError(w, http.StatusBadRequest, "Unknown date range", nil)
		return
	}
	writeJSON(w, http.StatusOK, types.SalesReport{
		TotalSales:   decimal.NewFromInt(1250),
		OrderCount:   4,
		AverageOrder: decimal.NewFromFloat(312.5),
		ItemsSold:    9,
	})
}

func (s *Server) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	if !s.recordRange(r) {
		writeError(w, http.StatusBadRequest, "Unknown date range", nil)
		return
	}
	writeJSON(w, http.StatusOK, []types.TopProduct{
		{ProductID: 3, Name: "Brake pad set", UnitsSold: 2, Revenue: decimal.NewFromInt(900)},
	})
}

func (s *Server) handleTopCustomers(w http.ResponseWriter, r *http.Request) {
	if !s.recordRange(r) {
		writeError(w, http.StatusBadRequest, "Unknown date range", nil)
		return
	}
	writeJSON(w, http.StatusOK, []types.TopCustomer{
		{UserID: 1, Name: "Alice Customer", OrderCount: 3, TotalSpent: decimal.NewFromInt(700)},
	})
}

func (s *Server) handleSalesByCategory(w http.ResponseWriter, r *http.Request) {
	if !s.recordRange(r) {
		writeError(w, http.StatusBadRequest, "Unknown date range", nil)
		return
	}
	writeJSON(w, http.StatusOK, []types.CategorySales{
		{CategoryID: 2, Name: "Brakes", Revenue: decimal.NewFromInt(900), UnitsSold: 2},
	})
}

func (s *Server) handleSalesTimeline(w http.ResponseWriter, r *http.Request) {
	if !s.recordRange(r) {
		writeError(w, http.StatusBadRequest, "Unknown date range", nil)
		return
	}
	writeJSON(w, http.StatusOK, []types.TimelinePoint{
		{Date: "2025-08-01", Revenue: decimal.NewFromInt(450), Orders: 1},
		{Date: "2025-08-02", Revenue: decimal.NewFromInt(800), Orders: 3},
	})
}

func (s *Server) handleSettings(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Config)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var incoming types.Settings
	json.NewDecoder(r.Body).Decode(&incoming)

	fields := map[string]string{}
	if strings.TrimSpace(incoming.SiteName) == "" {
		fields["siteName"] = "is required"
	}
	if strings.TrimSpace(incoming.CompanyName) == "" {
		fields["companyName"] = "is required"
	}
	if len(fields) > 0 {
		writeError(w, http.StatusBadRequest, "validation failed", fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Config = incoming
	writeJSON(w, http.StatusOK, s.Config)
}
