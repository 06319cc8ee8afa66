package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlpworks/vlp/pkg/domain"
)

type reportView int

const (
	reportDaily reportView = iota
	reportMonthly
	reportByWork
	reportByItem
	numReportViews
)

var reportViewNames = [numReportViews]string{"daily", "monthly", "by work", "by item"}

// monthlySpan is how many months the monthly view covers, ending at the
// selected month.
const monthlySpan = 12

type reportsModel struct {
	deps    Deps
	month   time.Time
	view    reportView
	summary *domain.ProfitSummary
	daily   *domain.ProfitDaily
	monthly *domain.ProfitMonthly
	byWork  *domain.ProfitByWork
	byItem  *domain.CostByItem
	cursor  int
	loading bool
	err     error
	height  int
}

type reportsLoadedMsg struct {
	result
	rng     domain.DateRange
	view    reportView
	summary *domain.ProfitSummary
	daily   *domain.ProfitDaily
	monthly *domain.ProfitMonthly
	byWork  *domain.ProfitByWork
	byItem  *domain.CostByItem
}

func newReportsModel(d Deps, height int) reportsModel {
	return reportsModel{deps: d, month: d.Now(), loading: true, height: height}
}

func (m reportsModel) Init() tea.Cmd {
	return m.load()
}

// breakdownRange is the range of the table below the summary.
func (m reportsModel) breakdownRange() domain.DateRange {
	rng := monthRange(m.month)
	if m.view == reportMonthly {
		first := time.Date(m.month.Year(), m.month.Month()-(monthlySpan-1), 1, 0, 0, 0, 0, time.UTC)
		rng.From = first.Format("2006-01-02")
	}
	return rng
}

func (m reportsModel) load() tea.Cmd {
	c, ctx := m.deps.Client, m.deps.Ctx
	rng, view, span := monthRange(m.month), m.view, m.breakdownRange()
	return func() tea.Msg {
		msg := reportsLoadedMsg{rng: rng, view: view}
		s, err := c.ProfitSummary(ctx, rng)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.summary = s
		switch view {
		case reportDaily:
			msg.daily, msg.err = c.ProfitDaily(ctx, span)
		case reportMonthly:
			msg.monthly, msg.err = c.ProfitMonthly(ctx, span)
		case reportByWork:
			msg.byWork, msg.err = c.ProfitByWork(ctx, span)
		case reportByItem:
			msg.byItem, msg.err = c.CostByItem(ctx, span)
		}
		return msg
	}
}

// reload drops the figures on screen so they never sit under another
// range's header.
func (m reportsModel) reload() (reportsModel, tea.Cmd) {
	m.loading = true
	m.cursor = 0
	m.summary = nil
	m.daily, m.monthly, m.byWork, m.byItem = nil, nil, nil, nil
	return m, m.load()
}

func (m reportsModel) Update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsLoadedMsg:
		if msg.rng != monthRange(m.month) || msg.view != m.view {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.summary = msg.summary
			m.daily, m.monthly, m.byWork, m.byItem = msg.daily, msg.monthly, msg.byWork, msg.byItem
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "[":
			m.month = m.month.AddDate(0, -1, 0)
			return m.reload()
		case "]":
			m.month = m.month.AddDate(0, 1, 0)
			return m.reload()
		case "v":
			m.view = (m.view + 1) % numReportViews
			return m.reload()
		case "r":
			return m.reload()
		default:
			m.cursor = moveCursor(m.cursor, len(m.rows()), msg.String())
		}
	}
	return m, nil
}

// header and rows are the breakdown table of the current view.
func (m reportsModel) header() string {
	switch m.view {
	case reportMonthly:
		return fmt.Sprintf("%-10s %14s %14s %14s", "month", "sales", "cost", "profit")
	case reportByWork:
		return fmt.Sprintf("%-24s %12s %12s %12s", "work", "sales", "cost", "profit")
	case reportByItem:
		return fmt.Sprintf("%-28s %10s %14s", "item", "qty", "cost")
	}
	return fmt.Sprintf("%-10s %14s %14s %14s", "day", "sales", "cost", "profit")
}

func (m reportsModel) rows() []string {
	var out []string
	switch m.view {
	case reportDaily:
		if m.daily != nil {
			for _, r := range m.daily.Rows {
				out = append(out, fmt.Sprintf("%-10s %14s %14s %14s", r.Day, formatYen(r.Sales), formatYen(r.Cost), formatYen(r.Profit)))
			}
		}
	case reportMonthly:
		if m.monthly != nil {
			for _, r := range m.monthly.Rows {
				month := r.Month
				if len(month) > 7 {
					month = month[:7]
				}
				out = append(out, fmt.Sprintf("%-10s %14s %14s %14s", month, formatYen(r.Sales), formatYen(r.Cost), formatYen(r.Profit)))
			}
		}
	case reportByWork:
		if m.byWork != nil {
			for _, r := range m.byWork.Rows {
				out = append(out, fmt.Sprintf("%-24s %12s %12s %12s", padRight(truncStr(orDash(r.WorkName), 24), 24), formatYen(r.Sales), formatYen(r.Cost), formatYen(r.Profit)))
			}
		}
	case reportByItem:
		if m.byItem != nil {
			for _, r := range m.byItem.Rows {
				out = append(out, fmt.Sprintf("%-28s %10g %14s", padRight(truncStr(orDash(r.ItemName), 28), 28), r.Qty, formatYen(r.Cost)))
			}
		}
	}
	return out
}

func (m reportsModel) helpKeys() string {
	return helpBar("1-7", "pages", "v", "view", "j/k", "scroll", "[/]", "month", "r", "reload", "q", "quit")
}

func (m reportsModel) View() string {
	var b strings.Builder
	rng := monthRange(m.month)
	fmt.Fprintf(&b, "\n  %s  %s  %s\n\n", titleStyle.Render("Profit report"), metaStyle.Render(rng.From+" .. "+rng.To), m.viewTabs())

	switch {
	case m.loading && m.summary == nil:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(errText(m.err)) + "\n")
		return b.String()
	case m.summary == nil:
		return b.String()
	}

	s := m.summary
	fmt.Fprintf(&b, "  %s %s   %s %s   %s %s   %s %s\n\n",
		dimStyle.Render("sales"), normalStyle.Render(formatYen(s.Sales)),
		dimStyle.Render("cost"), normalStyle.Render(formatYen(s.Cost)),
		dimStyle.Render("profit"), selectedStyle.Render(formatYen(s.Profit)),
		dimStyle.Render("margin"), normalStyle.Render(formatRate(s.MarginRate)))

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString("  " + metaStyle.Render("no sales in range") + "\n")
		return b.String()
	}

	if m.view == reportMonthly {
		span := m.breakdownRange()
		b.WriteString("  " + metaStyle.Render(span.From+" .. "+span.To) + "\n")
	}
	b.WriteString("  " + sectionHeaderStyle.Render(m.header()) + "\n")
	start, end := visibleRange(m.cursor, len(rows), m.height-7)
	for i := start; i < end; i++ {
		if i == m.cursor {
			b.WriteString(selectedRowBg.Render(" > "+selectedStyle.Render(rows[i])) + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(rows[i]) + "\n")
		}
	}
	return b.String()
}

func (m reportsModel) viewTabs() string {
	parts := make([]string, numReportViews)
	for i, name := range reportViewNames {
		if reportView(i) == m.view {
			parts[i] = accentStyle.Render(name)
		} else {
			parts[i] = dimStyle.Render(name)
		}
	}
	return strings.Join(parts, dimStyle.Render(" | "))
}
