package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlpworks/vlp/pkg/domain"
)

type worksModel struct {
	deps      Deps
	works     []domain.Work
	cursor    int
	query     string
	searching bool
	materials []domain.WorkMaterial
	matWork   string
	matErr    error
	loading   bool
	err       error
	height    int
}

type worksLoadedMsg struct {
	result
	works []domain.Work
}

type materialsLoadedMsg struct {
	result
	workID    string
	materials []domain.WorkMaterial
}

func newWorksModel(d Deps, height int) worksModel {
	return worksModel{deps: d, loading: true, height: height}
}

func (m worksModel) Init() tea.Cmd {
	return m.load()
}

func (m worksModel) load() tea.Cmd {
	c, ctx, q := m.deps.Client, m.deps.Ctx, strings.TrimSpace(m.query)
	return func() tea.Msg {
		works, err := c.ListWorks(ctx, q)
		return worksLoadedMsg{result: result{err}, works: works}
	}
}

func (m worksModel) loadMaterials(id string) tea.Cmd {
	c, ctx := m.deps.Client, m.deps.Ctx
	return func() tea.Msg {
		mats, err := c.ListWorkMaterials(ctx, id)
		return materialsLoadedMsg{result: result{err}, workID: id, materials: mats}
	}
}

func (m worksModel) Update(msg tea.Msg) (worksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case worksLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.works = msg.works
		}
		if m.cursor >= len(m.works) {
			m.cursor = 0
		}
		return m, nil

	case materialsLoadedMsg:
		if msg.workID != m.matWork {
			return m, nil
		}
		m.materials = msg.materials
		m.matErr = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter":
				m.searching = false
				m.loading = true
				m.cursor = 0
				m.matWork = ""
				return m, m.load()
			case "esc":
				m.searching = false
			default:
				m.query = editRune(m.query, msg.String())
			}
			return m, nil
		}

		switch msg.String() {
		case "/":
			m.searching = true
		case "r":
			m.loading = true
			return m, m.load()
		case "enter":
			if m.cursor >= len(m.works) {
				return m, nil
			}
			id := m.works[m.cursor].ID.String()
			if m.matWork == id {
				m.matWork = ""
				return m, nil
			}
			m.matWork = id
			m.materials = nil
			m.matErr = nil
			return m, m.loadMaterials(id)
		default:
			prev := m.cursor
			m.cursor = moveCursor(m.cursor, len(m.works), msg.String())
			if m.cursor != prev {
				m.matWork = ""
			}
		}
	}
	return m, nil
}

func (m worksModel) helpKeys() string {
	if m.searching {
		return helpBar("enter", "search", "esc", "cancel")
	}
	return helpBar("1-7", "pages", "j/k", "nav", "enter", "materials", "/", "search", "r", "reload", "q", "quit")
}

func (m worksModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Works"))
	if m.query != "" || m.searching {
		b.WriteString("  " + inputPromptStyle.Render("/") + normalStyle.Render(m.query))
		if m.searching {
			b.WriteString(accentStyle.Render("█"))
		}
	}
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.works) == 0:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(errText(m.err)) + "\n")
		return b.String()
	case len(m.works) == 0:
		b.WriteString("  " + dimStyle.Render("no works") + "\n")
		return b.String()
	}

	start, end := visibleRange(m.cursor, len(m.works), m.height-8)
	for i := start; i < end; i++ {
		w := m.works[i]
		line := fmt.Sprintf("%-8s %-30s %10s / %s",
			truncStr(orDash(w.Code), 8),
			truncStr(w.Name, 30),
			formatYenDecimal(w.UnitPrice),
			orDash(w.Unit))
		if i == m.cursor {
			b.WriteString(selectedRowBg.Render(" > "+selectedStyle.Render(line)) + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(line) + "\n")
		}
	}

	if m.matWork != "" {
		b.WriteString("\n  " + sectionHeaderStyle.Render("Materials per work") + "\n")
		switch {
		case m.matErr != nil:
			b.WriteString("  " + errorStyle.Render(errText(m.matErr)) + "\n")
		case m.materials == nil:
			b.WriteString("  " + dimStyle.Render("loading...") + "\n")
		case len(m.materials) == 0:
			b.WriteString("  " + metaStyle.Render("none") + "\n")
		default:
			for _, mat := range m.materials {
				fmt.Fprintf(&b, "  %s  x %s\n", metaStyle.Render(mat.ItemID.String()[:8]), normalStyle.Render(string(mat.QtyPerWork)))
			}
		}
	}
	return b.String()
}

func formatYenDecimal(d domain.Decimal) string {
	if d == "" {
		return "-"
	}
	return formatYen(int(d.Float()))
}
