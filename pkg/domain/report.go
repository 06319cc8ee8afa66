package domain

import "github.com/google/uuid"

// DashboardSummary is the /dashboard/summary payload.
type DashboardSummary struct {
	DateFrom       string  `json:"date_from"`
	DateTo         string  `json:"date_to"`
	Sales          int     `json:"sales"`
	Cost           int     `json:"cost"`
	Profit         int     `json:"profit"`
	MarginRate     float64 `json:"margin_rate"`
	IssuedCount    int     `json:"issued_count"`
	InventoryValue int     `json:"inventory_value"`
}

// ProfitSummary is the /reports/profit-summary payload.
type ProfitSummary struct {
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	Sales      int     `json:"sales"`
	Cost       int     `json:"cost"`
	Profit     int     `json:"profit"`
	MarginRate float64 `json:"margin_rate"`
}

// ProfitDailyRow is one day of the daily report.
type ProfitDailyRow struct {
	Day    string `json:"day"`
	Sales  int    `json:"sales"`
	Cost   int    `json:"cost"`
	Profit int    `json:"profit"`
}

// ProfitDaily is the /reports/profit-daily payload.
type ProfitDaily struct {
	DateFrom string           `json:"date_from"`
	DateTo   string           `json:"date_to"`
	Rows     []ProfitDailyRow `json:"rows"`
}

// DateRange is an inclusive reporting range in YYYY-MM-DD form.
type DateRange struct {
	From string
	To   string
}

// ProfitMonthlyRow is one month of the monthly report. Month is the first
// day of the month, e.g. 2026-02-01.
type ProfitMonthlyRow struct {
	Month  string `json:"month"`
	Sales  int    `json:"sales"`
	Cost   int    `json:"cost"`
	Profit int    `json:"profit"`
}

// ProfitMonthly is the /reports/profit-monthly payload.
type ProfitMonthly struct {
	DateFrom string             `json:"date_from"`
	DateTo   string             `json:"date_to"`
	Rows     []ProfitMonthlyRow `json:"rows"`
}

// ProfitByWorkRow is the profit attributed to one work. The API splits a
// document's material cost across its works by sales share.
type ProfitByWorkRow struct {
	WorkID   uuid.UUID `json:"work_id"`
	WorkName string    `json:"work_name"`
	Sales    int       `json:"sales"`
	Cost     int       `json:"cost"`
	Profit   int       `json:"profit"`
}

// ProfitByWork is the /reports/profit-by-work payload.
type ProfitByWork struct {
	DateFrom string            `json:"date_from"`
	DateTo   string            `json:"date_to"`
	Rows     []ProfitByWorkRow `json:"rows"`
}

// CostByItemRow is the material cost of one inventory item.
type CostByItemRow struct {
	ItemID   uuid.UUID `json:"item_id"`
	ItemName string    `json:"item_name"`
	Qty      float64   `json:"qty"`
	Cost     int       `json:"cost"`
}

// CostByItem is the /reports/cost-by-item payload, highest cost first.
type CostByItem struct {
	DateFrom string          `json:"date_from"`
	DateTo   string          `json:"date_to"`
	Rows     []CostByItemRow `json:"rows"`
}
