package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlpworks/vlp/pkg/domain"
)

type carModel struct {
	deps       Deps
	id         string
	car        *domain.Car
	memo       string
	editing    bool
	confirming bool
	loading    bool
	err        error
	statusMsg  string
}

type carLoadedMsg struct {
	result
	car *domain.Car
}

type carSavedMsg struct {
	result
	car *domain.Car
}

type carDeletedMsg struct {
	result
}

type copyResultMsg struct {
	what string
	err  error
}

func newCarModel(d Deps, id string) carModel {
	return carModel{deps: d, id: id, loading: true}
}

func (m carModel) Init() tea.Cmd {
	return m.load()
}

func (m carModel) load() tea.Cmd {
	c, ctx, id := m.deps.Client, m.deps.Ctx, m.id
	return func() tea.Msg {
		car, err := c.GetCar(ctx, id)
		return carLoadedMsg{result: result{err}, car: car}
	}
}

// copyCmd writes text to the clipboard off the event loop.
func copyCmd(copyFn func(string) error, what, text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{what: what, err: copyFn(text)}
	}
}

func (m carModel) Update(msg tea.Msg) (carModel, tea.Cmd) {
	switch msg := msg.(type) {
	case carLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.car = msg.car
		}
		return m, nil

	case carSavedMsg:
		if msg.err != nil {
			m.statusMsg = "save failed: " + errText(msg.err)
			return m, nil
		}
		m.car = msg.car
		m.editing = false
		m.statusMsg = "saved"
		return m, nil

	case carDeletedMsg:
		if msg.err != nil {
			m.statusMsg = "delete failed: " + errText(msg.err)
			return m, nil
		}
		return m, navigate("/cars")

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed: " + msg.err.Error()
		} else {
			m.statusMsg = msg.what + " copied"
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateMemo(msg)
		}
		if m.confirming {
			m.confirming = false
			if msg.String() == "y" && m.car != nil {
				c, ctx, id := m.deps.Client, m.deps.Ctx, m.car.ID
				m.statusMsg = "deleting..."
				return m, func() tea.Msg {
					return carDeletedMsg{result{c.DeleteCar(ctx, id)}}
				}
			}
			m.statusMsg = ""
			return m, nil
		}

		m.statusMsg = ""
		switch msg.String() {
		case "esc", "backspace":
			return m, navigate("/cars")
		case "r":
			m.loading = true
			return m, m.load()
		case "c":
			if m.car == nil || m.car.StockNo == "" {
				return m, nil
			}
			return m, copyCmd(m.deps.Copy, "stock no", m.car.StockNo)
		case "e":
			if m.car != nil {
				m.editing = true
				m.memo = m.car.Memo
			}
		case "D":
			if m.car != nil {
				m.confirming = true
			}
		}
	}
	return m, nil
}

func (m carModel) updateMemo(msg tea.KeyMsg) (carModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "ctrl+s":
		memo := m.memo
		c, ctx, id := m.deps.Client, m.deps.Ctx, m.car.ID
		m.statusMsg = "saving..."
		return m, func() tea.Msg {
			car, err := c.UpdateCar(ctx, id, domain.CarInput{Memo: &memo})
			return carSavedMsg{result: result{err}, car: car}
		}
	default:
		m.memo = editMultiline(m.memo, msg.String())
	}
	return m, nil
}

func (m carModel) helpKeys() string {
	switch {
	case m.editing:
		return helpBar("ctrl+s", "save", "esc", "cancel")
	case m.confirming:
		return helpBar("y", "delete", "any", "cancel")
	}
	return helpBar("1-7", "pages", "c", "copy stock no", "e", "memo", "D", "delete", "r", "reload", "esc", "back")
}

func (m carModel) View() string {
	var b strings.Builder
	switch {
	case m.loading && m.car == nil:
		return "\n  " + dimStyle.Render("loading...") + "\n"
	case m.err != nil && m.car == nil:
		return "\n  " + errorStyle.Render(errText(m.err)) + "\n"
	case m.car == nil:
		return ""
	}
	c := m.car

	fmt.Fprintf(&b, "\n  %s  %s\n\n", titleStyle.Render(c.Title()), metaStyle.Render(c.StockNo))

	price := func(p *int) string {
		if p == nil {
			return "-"
		}
		return formatYen(*p)
	}
	rows := []struct{ label, value string }{
		{"Status", orDash(c.Status)},
		{"Car number", orDash(c.CarNumber)},
		{"Model code", orDash(c.ModelCode)},
		{"Year", intOrDash(c.Year)},
		{"Mileage", intOrDash(c.Mileage)},
		{"Color", orDash(c.Color)},
		{"VIN", orDash(c.VIN)},
		{"Location", orDash(c.Location)},
		{"Purchase price", price(c.PurchasePrice)},
		{"Expected price", price(c.ExpectedSellPrice)},
		{"Sold for", price(c.ActualSellPrice)},
		{"Purchased", orDash(c.PurchaseDate)},
		{"Sold", orDash(c.SellDate)},
		{"Inspection", orDash(c.InspectionExpiry)},
		{"Insurance", orDash(c.InsuranceExpiry)},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight(r.label, 16)), normalStyle.Render(r.value))
	}

	b.WriteString("\n  " + sectionHeaderStyle.Render("Memo") + "\n")
	memo := c.Memo
	if m.editing {
		memo = m.memo + accentStyle.Render("█")
	}
	if memo == "" {
		b.WriteString("  " + metaStyle.Render("-") + "\n")
	} else {
		for _, line := range strings.Split(memo, "\n") {
			b.WriteString("  " + normalStyle.Render(line) + "\n")
		}
	}

	if m.confirming {
		b.WriteString("\n  " + errorStyle.Render("delete "+c.StockNo+"? (y/N)") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n  " + noticeStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
