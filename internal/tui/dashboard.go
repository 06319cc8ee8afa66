package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlpworks/vlp/internal/calendar"
	"github.com/vlpworks/vlp/pkg/domain"
)

type dashboardModel struct {
	deps    Deps
	month   time.Time
	summary *domain.DashboardSummary
	memo    string
	loading bool
	err     error
}

type dashboardLoadedMsg struct {
	result
	rng     domain.DateRange
	summary *domain.DashboardSummary
}

func newDashboardModel(d Deps) dashboardModel {
	m := dashboardModel{deps: d, month: d.Now(), loading: true}
	if d.Memos != nil {
		memo, err := d.Memos.Get(calendar.Key(d.Now()))
		if err == nil {
			m.memo = memo
		}
	}
	return m
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m dashboardModel) load() tea.Cmd {
	c, ctx, rng := m.deps.Client, m.deps.Ctx, monthRange(m.month)
	return func() tea.Msg {
		s, err := c.DashboardSummary(ctx, rng)
		return dashboardLoadedMsg{result: result{err}, rng: rng, summary: s}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		// A reply for a month we already left.
		if msg.rng != monthRange(m.month) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.summary = msg.summary
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.load()
		case "[":
			m.month = m.month.AddDate(0, -1, 0)
			m.summary = nil
			m.loading = true
			return m, m.load()
		case "]":
			m.month = m.month.AddDate(0, 1, 0)
			m.summary = nil
			m.loading = true
			return m, m.load()
		case "c":
			return m, navigate("/calendar")
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder
	rng := monthRange(m.month)
	b.WriteString("\n  " + titleStyle.Render("Dashboard") + "  " + metaStyle.Render(rng.From+" .. "+rng.To) + "\n\n")

	switch {
	case m.loading && m.summary == nil:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(errText(m.err)) + "\n")
	case m.summary != nil:
		s := m.summary
		rows := []struct{ label, value string }{
			{"Sales", formatYen(s.Sales)},
			{"Cost", formatYen(s.Cost)},
			{"Gross profit", formatYen(s.Profit)},
			{"Margin", formatRate(s.MarginRate)},
			{"Issued invoices", fmt.Sprintf("%d", s.IssuedCount)},
			{"Inventory value", formatYen(s.InventoryValue)},
		}
		for _, r := range rows {
			fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight(r.label, 18)), normalStyle.Render(r.value))
		}
	}

	b.WriteString("\n  " + sectionHeaderStyle.Render("Today") + "\n")
	if m.memo == "" {
		b.WriteString("  " + metaStyle.Render("no memo  (c: calendar)") + "\n")
	} else {
		for _, line := range strings.Split(m.memo, "\n") {
			b.WriteString("  " + memoDayStyle.Render(line) + "\n")
		}
	}
	return b.String()
}
