// Package types holds the wire models exchanged with the storefront
// backend. The backend owns every entity here except CartItem, which
// never leaves the client before checkout.
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Registration struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password" validate:"required,min=6"`
}

// LoginResult is the payload returned by POST /auth/login.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    int             `json:"categoryId"`
	CategoryName  string          `json:"categoryName,omitempty"`
	StockQuantity int             `json:"stockQuantity"`
	SKU           string          `json:"sku,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	IsActive      bool            `json:"isActive"`
	IsFeatured    bool            `json:"isFeatured"`
}

// ProductForm carries the admin create/update payload. The image is
// uploaded as a multipart file part when present.
type ProductForm struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	CategoryID    int             `json:"categoryId" validate:"required,gt=0"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
	SKU           string          `json:"sku"`
	IsActive      bool            `json:"isActive"`
	IsFeatured    bool            `json:"isFeatured"`
	ImageName     string          `json:"-"`
	Image         []byte          `json:"-"`
}

// ProductFilter narrows catalog listings. Zero values mean "no
// constraint" and are left off the query string.
type ProductFilter struct {
	CategoryID int
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    bool
	Featured   bool
}

func (f ProductFilter) IsZero() bool {
	return f.CategoryID == 0 && f.MinPrice == nil && f.MaxPrice == nil && !f.InStock && !f.Featured
}

type Category struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ProductCount int    `json:"productCount"`
}

type CategoryForm struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Pagination mirrors the paging block every list endpoint returns.
// The client never computes page counts itself.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	PageSize    int `json:"pageSize"`
}

type ProductPage struct {
	Products []Product `json:"products"`
	Pagination
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID int             `json:"productId"`
	Product   *Product        `json:"product,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type Order struct {
	ID              int             `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	OrderDate       time.Time       `json:"orderDate"`
	Status          OrderStatus     `json:"status"`
	IsPaid          bool            `json:"isPaid"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	ShippingAddress string          `json:"shippingAddress"`
	Notes           string          `json:"notes,omitempty"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	OrderItems      []OrderItem     `json:"orderItems"`
}

// OrderDraft is the checkout submission payload.
type OrderDraft struct {
	ShippingAddress string      `json:"shippingAddress" validate:"required"`
	PaymentMethod   string      `json:"paymentMethod" validate:"required"`
	Notes           string      `json:"notes,omitempty"`
	OrderItems      []OrderItem `json:"orderItems" validate:"required,min=1"`
}

// UserForm is the admin user create/update payload. Password is
// write-only and dropped from updates when left blank.
type UserForm struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
	IsActive  bool   `json:"isActive"`
}

// ProfileForm is the self-service profile update payload.
type ProfileForm struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
}

// Settings is replaced wholesale on every fetch and save.
type Settings struct {
	SiteName          string          `json:"siteName"`
	SiteDescription   string          `json:"siteDescription,omitempty"`
	CompanyName       string          `json:"companyName"`
	CompanyAddress    string          `json:"companyAddress,omitempty"`
	CompanyPhone      string          `json:"companyPhone,omitempty"`
	CompanyEmail      string          `json:"companyEmail" validate:"omitempty,email"`
	ShippingFlatRate  decimal.Decimal `json:"shippingFlatRate"`
	FreeShippingAbove decimal.Decimal `json:"freeShippingAbove"`
	TaxRate           decimal.Decimal `json:"taxRate"`
	CashOnDelivery    bool            `json:"cashOnDelivery"`
	BankTransfer      bool            `json:"bankTransfer"`
	SMTPHost          string          `json:"smtpHost,omitempty"`
	SMTPPort          int             `json:"smtpPort,omitempty"`
	SMTPUser          string          `json:"smtpUser,omitempty"`
	SMTPPassword      string          `json:"smtpPassword,omitempty"`
}

type DashboardStats struct {
	TotalProducts int             `json:"totalProducts"`
	TotalOrders   int             `json:"totalOrders"`
	TotalUsers    int             `json:"totalUsers"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

type DateRange string

const (
	RangeWeek    DateRange = "week"
	RangeMonth   DateRange = "month"
	RangeQuarter DateRange = "quarter"
	RangeYear    DateRange = "year"
)

func (r DateRange) Valid() bool {
	switch r {
	case RangeWeek, RangeMonth, RangeQuarter, RangeYear:
		return true
	}
	return false
}

type SalesReport struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	OrderCount    int             `json:"orderCount"`
	AverageOrder  decimal.Decimal `json:"averageOrder"`
	ItemsSold     int             `json:"itemsSold"`
	RefundedCount int             `json:"refundedCount,omitempty"`
}

type TopProduct struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	UnitsSold int             `json:"unitsSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type TopCustomer struct {
	UserID     int             `json:"userId"`
	Name       string          `json:"name"`
	OrderCount int             `json:"orderCount"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

type CategorySales struct {
	CategoryID int             `json:"categoryId"`
	Name       string          `json:"name"`
	Revenue    decimal.Decimal `json:"revenue"`
	UnitsSold  int             `json:"unitsSold"`
}

type TimelinePoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// ErrorEnvelope is the backend's failure payload shape.
type ErrorEnvelope struct {
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}
