package tui

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlpworks/vlp/internal/routes"
	"github.com/vlpworks/vlp/pkg/domain"
)

var (
	billingStatuses = []string{"", domain.BillingDraft, domain.BillingIssued, domain.BillingVoid}
	billingKinds    = []string{"", domain.KindEstimate, domain.KindInvoice}
)

type billingModel struct {
	deps    Deps
	filter  domain.BillingFilter
	docs    []domain.BillingDoc
	cursor  int
	loading bool
	err     error
	height  int
}

type billingLoadedMsg struct {
	result
	filter domain.BillingFilter
	docs   []domain.BillingDoc
}

// newBillingModel seeds the filter from the page query, e.g.
// /billing?status=issued&kind=invoice.
func newBillingModel(d Deps, q url.Values, height int) billingModel {
	f := domain.BillingFilter{Limit: pageSize}
	if s := q.Get("status"); contains(billingStatuses, s) {
		f.Status = s
	}
	if k := q.Get("kind"); contains(billingKinds, k) {
		f.Kind = k
	}
	return billingModel{deps: d, filter: f, loading: true, height: height}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// cycle returns the value after cur in list, wrapping around.
func cycle(list []string, cur string) string {
	for i, v := range list {
		if v == cur {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}

func (m billingModel) Init() tea.Cmd {
	return m.load()
}

func (m billingModel) load() tea.Cmd {
	c, ctx, f := m.deps.Client, m.deps.Ctx, m.filter
	return func() tea.Msg {
		docs, err := c.ListBilling(ctx, f)
		return billingLoadedMsg{result: result{err}, filter: f, docs: docs}
	}
}

func (m billingModel) reload() (billingModel, tea.Cmd) {
	m.loading = true
	m.cursor = 0
	m.docs = nil
	return m, m.load()
}

func (m billingModel) Update(msg tea.Msg) (billingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case billingLoadedMsg:
		// Filter or page changed while the request was in flight.
		if msg.filter != m.filter {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.docs = msg.docs
		}
		if m.cursor >= len(m.docs) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.cursor < len(m.docs) {
				return m, navigate(routes.BillingPath(m.docs[m.cursor].ID.String()))
			}
		case "s":
			m.filter.Status = cycle(billingStatuses, m.filter.Status)
			m.filter.Offset = 0
			return m.reload()
		case "t":
			m.filter.Kind = cycle(billingKinds, m.filter.Kind)
			m.filter.Offset = 0
			return m.reload()
		case "n":
			if len(m.docs) < m.filter.Limit {
				return m, nil
			}
			m.filter.Offset += m.filter.Limit
			return m.reload()
		case "p":
			if m.filter.Offset == 0 {
				return m, nil
			}
			m.filter.Offset -= m.filter.Limit
			if m.filter.Offset < 0 {
				m.filter.Offset = 0
			}
			return m.reload()
		case "r":
			m.loading = true
			return m, m.load()
		default:
			m.cursor = moveCursor(m.cursor, len(m.docs), msg.String())
		}
	}
	return m, nil
}

func filterLabel(v string) string {
	if v == "" {
		return "all"
	}
	return v
}

func (m billingModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s  %s %s  %s %s  %s\n\n",
		titleStyle.Render("Billing"),
		dimStyle.Render("status:"), accentStyle.Render(filterLabel(m.filter.Status)),
		dimStyle.Render("kind:"), accentStyle.Render(filterLabel(m.filter.Kind)),
		metaStyle.Render(fmt.Sprintf("from #%d", m.filter.Offset+1)))

	switch {
	case m.loading && len(m.docs) == 0:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(errText(m.err)) + "\n")
		return b.String()
	case len(m.docs) == 0:
		b.WriteString("  " + dimStyle.Render("no documents") + "\n")
		return b.String()
	}

	start, end := visibleRange(m.cursor, len(m.docs), m.height-4)
	for i := start; i < end; i++ {
		d := m.docs[i]
		status := StatusStyle(d.Status).Render(fmt.Sprintf("%-6s", d.Status))
		line := fmt.Sprintf("%-14s %-8s %-24s %12s %s",
			truncStr(d.Label(), 14),
			d.Kind,
			truncStr(orDash(d.CustomerName), 24),
			formatYen(d.Total),
			formatDate(d.IssuedAt))
		if i == m.cursor {
			b.WriteString(selectedRowBg.Render(" > "+selectedStyle.Render(line)) + " " + status + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(line) + " " + status + "\n")
		}
	}
	return b.String()
}
