package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vlpworks/vlp/pkg/domain"
)

// Health is the API's /health payload.
type Health struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database,omitempty"`
}

// Health checks the API health endpoint, which is mounted outside the API prefix.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	origin, err := c.originURL()
	if err != nil {
		return nil, fmt.Errorf("client.Health: %w", err)
	}
	var h Health
	if err := c.do(ctx, origin+"/health", RequestOptions{}, &h); err != nil {
		return nil, fmt.Errorf("client.Health: %w", err)
	}
	return &h, nil
}

// --- Auth ---

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	res, err := Fetch[domain.LoginResult](ctx, c, "/auth/login", RequestOptions{Method: http.MethodPost, Body: body})
	if err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &res, nil
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*domain.Me, error) {
	me, err := Fetch[domain.Me](ctx, c, "/users/me", RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &me, nil
}

// --- Cars ---

// ListCars returns the cars visible to the signed-in user.
func (c *Client) ListCars(ctx context.Context) ([]domain.Car, error) {
	cars, err := Fetch[[]domain.Car](ctx, c, "/cars", RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.ListCars: %w", err)
	}
	return cars, nil
}

// GetCar fetches a single car by ID.
func (c *Client) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	car, err := Fetch[domain.Car](ctx, c, "/cars/"+url.PathEscape(id), RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.GetCar: %w", err)
	}
	return &car, nil
}

// CreateCar registers a new car.
func (c *Client) CreateCar(ctx context.Context, in domain.CarInput) (*domain.Car, error) {
	car, err := Fetch[domain.Car](ctx, c, "/cars", RequestOptions{Method: http.MethodPost, Body: in})
	if err != nil {
		return nil, fmt.Errorf("client.CreateCar: %w", err)
	}
	return &car, nil
}

// UpdateCar patches the fields set in in.
func (c *Client) UpdateCar(ctx context.Context, id string, in domain.CarInput) (*domain.Car, error) {
	car, err := Fetch[domain.Car](ctx, c, "/cars/"+url.PathEscape(id), RequestOptions{Method: http.MethodPut, Body: in})
	if err != nil {
		return nil, fmt.Errorf("client.UpdateCar: %w", err)
	}
	return &car, nil
}

// DeleteCar deletes a car.
func (c *Client) DeleteCar(ctx context.Context, id string) error {
	if err := c.Do(ctx, "/cars/"+url.PathEscape(id), RequestOptions{Method: http.MethodDelete}, nil); err != nil {
		return fmt.Errorf("client.DeleteCar: %w", err)
	}
	return nil
}

// --- Works ---

// ListWorks returns the work master.
func (c *Client) ListWorks(ctx context.Context, query string) ([]domain.Work, error) {
	path := "/works"
	if query != "" {
		params := url.Values{}
		params.Set("q", query)
		path += "?" + params.Encode()
	}
	works, err := Fetch[[]domain.Work](ctx, c, path, RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.ListWorks: %w", err)
	}
	return works, nil
}

// ListWorkMaterials returns the inventory items consumed by a work.
func (c *Client) ListWorkMaterials(ctx context.Context, workID string) ([]domain.WorkMaterial, error) {
	mats, err := Fetch[[]domain.WorkMaterial](ctx, c, "/works/"+url.PathEscape(workID)+"/materials", RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.ListWorkMaterials: %w", err)
	}
	return mats, nil
}

// --- Billing ---

// ListBilling returns billing documents, newest first.
func (c *Client) ListBilling(ctx context.Context, f domain.BillingFilter) ([]domain.BillingDoc, error) {
	params := url.Values{}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	if f.Kind != "" {
		params.Set("kind", f.Kind)
	}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		params.Set("offset", strconv.Itoa(f.Offset))
	}
	path := "/billing"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	docs, err := Fetch[[]domain.BillingDoc](ctx, c, path, RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.ListBilling: %w", err)
	}
	return docs, nil
}

// GetBilling fetches a billing document with its lines.
func (c *Client) GetBilling(ctx context.Context, id string) (*domain.BillingDetail, error) {
	doc, err := Fetch[domain.BillingDetail](ctx, c, "/billing/"+url.PathEscape(id), RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.GetBilling: %w", err)
	}
	return &doc, nil
}

// VoidBilling voids an issued invoice.
func (c *Client) VoidBilling(ctx context.Context, id, reason string) (*domain.BillingDoc, error) {
	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}
	doc, err := Fetch[domain.BillingDoc](ctx, c, "/billing/"+url.PathEscape(id)+"/void", RequestOptions{Method: http.MethodPost, Body: body})
	if err != nil {
		return nil, fmt.Errorf("client.VoidBilling: %w", err)
	}
	return &doc, nil
}

// --- Reports ---

func rangeQuery(r domain.DateRange) string {
	params := url.Values{}
	params.Set("date_from", r.From)
	params.Set("date_to", r.To)
	return params.Encode()
}

// DashboardSummary returns the sales/profit summary for the range.
func (c *Client) DashboardSummary(ctx context.Context, r domain.DateRange) (*domain.DashboardSummary, error) {
	s, err := Fetch[domain.DashboardSummary](ctx, c, "/dashboard/summary?"+rangeQuery(r), RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.DashboardSummary: %w", err)
	}
	return &s, nil
}

// ProfitSummary returns the profit totals for the range.
func (c *Client) ProfitSummary(ctx context.Context, r domain.DateRange) (*domain.ProfitSummary, error) {
	s, err := Fetch[domain.ProfitSummary](ctx, c, "/reports/profit-summary?"+rangeQuery(r), RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.ProfitSummary: %w", err)
	}
	return &s, nil
}

// ProfitDaily returns one row per day of the range.
func (c *Client) ProfitDaily(ctx context.Context, r domain.DateRange) (*domain.ProfitDaily, error) {
	d, err := Fetch[domain.ProfitDaily](ctx, c, "/reports/profit-daily?"+rangeQuery(r), RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.ProfitDaily: %w", err)
	}
	return &d, nil
}

// ProfitMonthly returns one row per month with sales in the range.
func (c *Client) ProfitMonthly(ctx context.Context, r domain.DateRange) (*domain.ProfitMonthly, error) {
	m, err := Fetch[domain.ProfitMonthly](ctx, c, "/reports/profit-monthly?"+rangeQuery(r), RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.ProfitMonthly: %w", err)
	}
	return &m, nil
}

// ProfitByWork returns sales, cost and profit per work for the range.
func (c *Client) ProfitByWork(ctx context.Context, r domain.DateRange) (*domain.ProfitByWork, error) {
	w, err := Fetch[domain.ProfitByWork](ctx, c, "/reports/profit-by-work?"+rangeQuery(r), RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.ProfitByWork: %w", err)
	}
	return &w, nil
}

// CostByItem returns material cost per inventory item for the range.
func (c *Client) CostByItem(ctx context.Context, r domain.DateRange) (*domain.CostByItem, error) {
	i, err := Fetch[domain.CostByItem](ctx, c, "/reports/cost-by-item?"+rangeQuery(r), RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.CostByItem: %w", err)
	}
	return &i, nil
}

// --- Licenses ---

// Seats returns the store's plan and seat usage.
func (c *Client) Seats(ctx context.Context) (*domain.Seats, error) {
	s, err := Fetch[domain.Seats](ctx, c, "/invites/seats", RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.Seats: %w", err)
	}
	return &s, nil
}

// ListInvites returns the store's invite codes.
func (c *Client) ListInvites(ctx context.Context) ([]domain.Invite, error) {
	invites, err := Fetch[[]domain.Invite](ctx, c, "/invites", RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.ListInvites: %w", err)
	}
	return invites, nil
}

// CreateInvite issues a new invite code.
func (c *Client) CreateInvite(ctx context.Context, in domain.InviteRequest) (*domain.Invite, error) {
	inv, err := Fetch[domain.Invite](ctx, c, "/invites", RequestOptions{Method: http.MethodPost, Body: in})
	if err != nil {
		return nil, fmt.Errorf("client.CreateInvite: %w", err)
	}
	return &inv, nil
}

// ListStores returns the stores the user can see.
func (c *Client) ListStores(ctx context.Context) ([]domain.Store, error) {
	stores, err := Fetch[[]domain.Store](ctx, c, "/stores", RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.ListStores: %w", err)
	}
	return stores, nil
}
