package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlpworks/vlp/pkg/domain"
)

type docModel struct {
	deps       Deps
	id         string
	doc        *domain.BillingDetail
	confirming bool
	loading    bool
	err        error
	statusMsg  string
}

type docLoadedMsg struct {
	result
	doc *domain.BillingDetail
}

type docVoidedMsg struct {
	result
}

type openResultMsg struct {
	url string
	err error
}

func newDocModel(d Deps, id string) docModel {
	return docModel{deps: d, id: id, loading: true}
}

func (m docModel) Init() tea.Cmd {
	return m.load()
}

func (m docModel) load() tea.Cmd {
	c, ctx, id := m.deps.Client, m.deps.Ctx, m.id
	return func() tea.Msg {
		doc, err := c.GetBilling(ctx, id)
		return docLoadedMsg{result: result{err}, doc: doc}
	}
}

func (m docModel) Update(msg tea.Msg) (docModel, tea.Cmd) {
	switch msg := msg.(type) {
	case docLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.doc = msg.doc
		}
		return m, nil

	case docVoidedMsg:
		if msg.err != nil {
			m.statusMsg = "void failed: " + errText(msg.err)
			return m, nil
		}
		m.statusMsg = "voided"
		m.loading = true
		return m, m.load()

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed: " + msg.err.Error()
		} else {
			m.statusMsg = msg.what + " copied"
		}
		return m, nil

	case openResultMsg:
		if msg.err != nil {
			m.statusMsg = "open failed: " + msg.err.Error()
		} else {
			m.statusMsg = "opened " + msg.url
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			m.confirming = false
			if msg.String() == "y" {
				c, ctx, id := m.deps.Client, m.deps.Ctx, m.id
				m.statusMsg = "voiding..."
				return m, func() tea.Msg {
					_, err := c.VoidBilling(ctx, id, "")
					return docVoidedMsg{result{err}}
				}
			}
			m.statusMsg = ""
			return m, nil
		}

		m.statusMsg = ""
		switch msg.String() {
		case "esc", "backspace":
			return m, navigate("/billing")
		case "r":
			m.loading = true
			return m, m.load()
		case "c":
			if m.doc == nil {
				return m, nil
			}
			return m, copyCmd(m.deps.Copy, "document no", m.doc.Label())
		case "o":
			if m.doc == nil {
				return m, nil
			}
			u, open := m.deps.DocumentURL(m.doc.ID.String()), m.deps.Open
			return m, func() tea.Msg {
				return openResultMsg{url: u, err: open(u)}
			}
		case "v":
			if m.doc == nil {
				return m, nil
			}
			if !m.doc.Voidable() {
				m.statusMsg = "only issued invoices can be voided"
				return m, nil
			}
			m.confirming = true
		}
	}
	return m, nil
}

func (m docModel) helpKeys() string {
	if m.confirming {
		return helpBar("y", "void", "any", "cancel")
	}
	return helpBar("1-7", "pages", "c", "copy no", "o", "open", "v", "void", "r", "reload", "esc", "back")
}

func (m docModel) View() string {
	switch {
	case m.loading && m.doc == nil:
		return "\n  " + dimStyle.Render("loading...") + "\n"
	case m.err != nil && m.doc == nil:
		return "\n  " + errorStyle.Render(errText(m.err)) + "\n"
	case m.doc == nil:
		return ""
	}
	d := m.doc

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s  %s  %s\n", titleStyle.Render(d.Label()), dimStyle.Render(d.Kind), StatusStyle(d.Status).Render(d.Status))
	fmt.Fprintf(&b, "  %s  %s %s\n\n", normalStyle.Render(orDash(d.CustomerName)), dimStyle.Render("issued"), normalStyle.Render(formatDate(d.IssuedAt)))

	for _, l := range d.Lines {
		qty := fmt.Sprintf("%g", l.Qty)
		if l.Unit != "" {
			qty += " " + l.Unit
		}
		fmt.Fprintf(&b, "  %-30s %10s %12s %12s\n",
			truncStr(oneLine(l.Name), 30), qty, formatYen(l.UnitPrice), formatYen(l.Amount))
	}
	if len(d.Lines) == 0 {
		b.WriteString("  " + metaStyle.Render("no lines") + "\n")
	}

	b.WriteString("\n")
	for _, t := range []struct {
		label string
		value int
	}{{"Subtotal", d.Subtotal}, {"Tax", d.TaxTotal}, {"Total", d.Total}} {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(fmt.Sprintf("%54s", t.label)), selectedStyle.Render(fmt.Sprintf("%12s", formatYen(t.value))))
	}

	if m.confirming {
		b.WriteString("\n  " + errorStyle.Render("void "+d.Label()+"? this cannot be undone (y/N)") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n  " + noticeStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
