package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

// Read-side calls. These sit outside the store contract: plain (value, error)
// pairs, no snapshot to keep.

func (c *Client) Products(ctx context.Context, f domain.ProductFilter) (*domain.ProductPage, error) {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if f.CategoryID > 0 {
		q.Set("category_id", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.MinPrice > 0 {
		q.Set("min_price", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}

	var page domain.ProductPage
	if err := c.do(ctx, "GET", withQuery("/api/shop/products", q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) ProductCategories(ctx context.Context) ([]domain.Category, error) {
	var out struct {
		Categories []domain.Category `json:"categories"`
	}
	if err := c.do(ctx, "GET", "/api/shop/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) Equipments(ctx context.Context, f domain.EquipmentFilter) (*domain.EquipmentPage, error) {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if f.CategoryID > 0 {
		q.Set("category_id", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}

	var page domain.EquipmentPage
	if err := c.do(ctx, "GET", withQuery("/api/shop/equipments", q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) AvailableSessions(ctx context.Context, f domain.SessionFilter) ([]domain.Session, error) {
	q := url.Values{}
	if f.ClassTypeID > 0 {
		q.Set("class_type_id", strconv.FormatInt(f.ClassTypeID, 10))
	}
	if f.DateFrom != "" {
		q.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("date_to", f.DateTo)
	}

	var out struct {
		Sessions []domain.Session `json:"sessions"`
	}
	if err := c.do(ctx, "GET", withQuery("/api/session-cart/available", q), nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

func (c *Client) ClassTypes(ctx context.Context) ([]domain.ClassType, error) {
	var out struct {
		ClassTypes []domain.ClassType `json:"class_types"`
	}
	if err := c.do(ctx, "GET", "/api/sessions/class-types", nil, &out); err != nil {
		return nil, err
	}
	return out.ClassTypes, nil
}

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type authResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Signup creates an account and returns the user plus a token the caller can
// hand to a TokenSource.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*domain.User, string, error) {
	var out authResponse
	if err := c.do(ctx, "POST", "/api/auth/signup", req, &out); err != nil {
		return nil, "", err
	}
	return &out.User, out.Token, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var out authResponse
	if err := c.do(ctx, "POST", "/api/auth/login", body, &out); err != nil {
		return nil, "", err
	}
	return &out.User, out.Token, nil
}

// Checkout pays for both carts in one order. Passing the same idempotency
// key on retry returns the original order instead of charging twice.
func (c *Client) Checkout(ctx context.Context, idempotencyKey string) (*domain.Order, error) {
	body := map[string]string{"idempotency_key": idempotencyKey}
	var order domain.Order
	if err := c.do(ctx, "POST", "/api/checkout", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return fmt.Sprintf("%s?%s", path, q.Encode())
}
