package domain

import "time"

// CarStatusInStock is the default status the API assigns to new cars.
const CarStatusInStock = "在庫"

// Car is a vehicle in the store's stock.
type Car struct {
	ID         string `json:"id"`
	StockNo    string `json:"stock_no"`
	CarNumber  string `json:"car_number,omitempty"`
	Status     string `json:"status"`
	Maker      string `json:"maker,omitempty"`
	Model      string `json:"model,omitempty"`
	ModelCode  string `json:"model_code,omitempty"`
	Grade      string `json:"grade,omitempty"`
	Year       *int   `json:"year,omitempty"`
	YearMonth  string `json:"year_month,omitempty"`
	Mileage    *int   `json:"mileage,omitempty"`
	Color      string `json:"color,omitempty"`
	VIN        string `json:"vin,omitempty"`
	Location   string `json:"location,omitempty"`
	Memo       string `json:"memo,omitempty"`

	PurchasePrice     *int `json:"purchase_price,omitempty"`
	ExpectedSellPrice *int `json:"expected_sell_price,omitempty"`
	ActualSellPrice   *int `json:"actual_sell_price,omitempty"`

	PurchaseDate     string `json:"purchase_date,omitempty"`
	SellDate         string `json:"sell_date,omitempty"`
	InspectionExpiry string `json:"inspection_expiry,omitempty"`
	InsuranceExpiry  string `json:"insurance_expiry,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Title returns "maker model grade" with empty parts dropped.
func (c Car) Title() string {
	out := ""
	for _, p := range []string{c.Maker, c.Model, c.Grade} {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	if out == "" {
		return c.StockNo
	}
	return out
}

// CarInput is the create/update payload. Nil pointers are omitted so that an
// update only touches the fields that were set.
type CarInput struct {
	StockNo           *string `json:"stock_no,omitempty"`
	CarNumber         *string `json:"car_number,omitempty"`
	Status            *string `json:"status,omitempty"`
	Maker             *string `json:"maker,omitempty"`
	Model             *string `json:"model,omitempty"`
	Grade             *string `json:"grade,omitempty"`
	Year              *int    `json:"year,omitempty"`
	Mileage           *int    `json:"mileage,omitempty"`
	Color             *string `json:"color,omitempty"`
	Location          *string `json:"location,omitempty"`
	Memo              *string `json:"memo,omitempty"`
	ExpectedSellPrice *int    `json:"expected_sell_price,omitempty"`
	InspectionExpiry  *string `json:"inspection_expiry,omitempty"`
}
