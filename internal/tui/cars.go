package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlpworks/vlp/internal/routes"
	"github.com/vlpworks/vlp/pkg/domain"
)

type carsMode int

const (
	carsBrowse carsMode = iota
	carsFilter
	carsCreate
)

// Fields of the new car form.
const (
	newCarStockNo = iota
	newCarMaker
	newCarModelName
	newCarNumber
	newCarYear
	numNewCarFields
)

var newCarLabels = [numNewCarFields]string{"Stock no", "Maker", "Model", "Car number", "Year"}

type carsModel struct {
	deps      Deps
	cars      []domain.Car
	cursor    int
	filter    string
	mode      carsMode
	form      [numNewCarFields]string
	focus     int
	loading   bool
	err       error
	statusMsg string
	height    int
}

type carsLoadedMsg struct {
	result
	cars []domain.Car
}

type carCreatedMsg struct {
	result
	car *domain.Car
}

func newCarsModel(d Deps, height int) carsModel {
	return carsModel{deps: d, loading: true, height: height}
}

func (m carsModel) Init() tea.Cmd {
	return m.load()
}

func (m carsModel) load() tea.Cmd {
	c, ctx := m.deps.Client, m.deps.Ctx
	return func() tea.Msg {
		cars, err := c.ListCars(ctx)
		return carsLoadedMsg{result: result{err}, cars: cars}
	}
}

func (m carsModel) editing() bool {
	return m.mode != carsBrowse
}

// visible returns the cars matching the filter.
func (m carsModel) visible() []domain.Car {
	q := strings.ToLower(strings.TrimSpace(m.filter))
	if q == "" {
		return m.cars
	}
	var out []domain.Car
	for _, c := range m.cars {
		hay := strings.ToLower(strings.Join([]string{c.StockNo, c.CarNumber, c.Maker, c.Model, c.Grade, c.Status}, " "))
		if strings.Contains(hay, q) {
			out = append(out, c)
		}
	}
	return out
}

func (m carsModel) Update(msg tea.Msg) (carsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case carsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.cars = msg.cars
		}
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}
		return m, nil

	case carCreatedMsg:
		if msg.err != nil {
			m.statusMsg = errText(msg.err)
			return m, nil
		}
		m.mode = carsBrowse
		m.form = [numNewCarFields]string{}
		return m, navigate(routes.CarPath(msg.car.ID))

	case tea.KeyMsg:
		switch m.mode {
		case carsFilter:
			return m.updateFilter(msg)
		case carsCreate:
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m carsModel) updateBrowse(msg tea.KeyMsg) (carsModel, tea.Cmd) {
	m.statusMsg = ""
	rows := m.visible()
	switch msg.String() {
	case "enter":
		if m.cursor < len(rows) {
			return m, navigate(routes.CarPath(rows[m.cursor].ID))
		}
	case "/":
		m.mode = carsFilter
	case "n":
		m.mode = carsCreate
		m.focus = 0
	case "r":
		m.loading = true
		return m, m.load()
	case "esc":
		m.filter = ""
		m.cursor = 0
	default:
		m.cursor = moveCursor(m.cursor, len(rows), msg.String())
	}
	return m, nil
}

func (m carsModel) updateFilter(msg tea.KeyMsg) (carsModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = carsBrowse
	case "esc":
		m.mode = carsBrowse
		m.filter = ""
	default:
		m.filter = editRune(m.filter, msg.String())
	}
	m.cursor = 0
	return m, nil
}

func (m carsModel) updateForm(msg tea.KeyMsg) (carsModel, tea.Cmd) {
	m.statusMsg = ""
	switch msg.String() {
	case "esc":
		m.mode = carsBrowse
		return m, nil
	case "tab", "down", "enter":
		m.focus = (m.focus + 1) % numNewCarFields
	case "shift+tab", "up":
		m.focus = (m.focus + numNewCarFields - 1) % numNewCarFields
	case "ctrl+s":
		return m.submit()
	default:
		m.form[m.focus] = editRune(m.form[m.focus], msg.String())
	}
	return m, nil
}

func (m carsModel) submit() (carsModel, tea.Cmd) {
	in, err := carInputFromForm(m.form)
	if err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}
	c, ctx := m.deps.Client, m.deps.Ctx
	m.statusMsg = "saving..."
	return m, func() tea.Msg {
		car, err := c.CreateCar(ctx, in)
		return carCreatedMsg{result: result{err}, car: car}
	}
}

// carInputFromForm builds the create payload. Blank fields are omitted.
func carInputFromForm(form [numNewCarFields]string) (domain.CarInput, error) {
	var in domain.CarInput
	stock := strings.TrimSpace(form[newCarStockNo])
	if stock == "" {
		return in, fmt.Errorf("stock no is required")
	}
	in.StockNo = &stock
	set := func(dst **string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = &v
		}
	}
	set(&in.Maker, form[newCarMaker])
	set(&in.Model, form[newCarModelName])
	set(&in.CarNumber, form[newCarNumber])
	if y := strings.TrimSpace(form[newCarYear]); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil || n < 1900 || n > 2100 {
			return in, fmt.Errorf("year must be a number like 2019")
		}
		in.Year = &n
	}
	return in, nil
}

func (m carsModel) helpKeys() string {
	switch m.mode {
	case carsFilter:
		return helpBar("enter", "apply", "esc", "clear")
	case carsCreate:
		return helpBar("tab", "next", "ctrl+s", "save", "esc", "cancel")
	}
	return helpBar("1-7", "pages", "j/k", "nav", "enter", "open", "/", "filter", "n", "new", "r", "reload", "q", "quit")
}

func (m carsModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Cars"))
	if m.filter != "" || m.mode == carsFilter {
		b.WriteString("  " + inputPromptStyle.Render("/") + normalStyle.Render(m.filter))
		if m.mode == carsFilter {
			b.WriteString(accentStyle.Render("█"))
		}
	}
	b.WriteString("\n\n")

	if m.mode == carsCreate {
		b.WriteString("  " + sectionHeaderStyle.Render("New car") + "\n")
		for i := 0; i < numNewCarFields; i++ {
			b.WriteString(renderField(newCarLabels[i], m.form[i], m.focus == i, false) + "\n")
		}
		if m.statusMsg != "" {
			b.WriteString("\n  " + noticeStyle.Render(m.statusMsg) + "\n")
		}
		return b.String()
	}

	rows := m.visible()
	switch {
	case m.loading && len(m.cars) == 0:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(errText(m.err)) + "\n")
		return b.String()
	case len(rows) == 0:
		b.WriteString("  " + dimStyle.Render("no cars") + "\n")
		return b.String()
	}

	start, end := visibleRange(m.cursor, len(rows), m.height-4)
	for i := start; i < end; i++ {
		c := rows[i]
		line := fmt.Sprintf("%-10s %-8s %-28s %-12s %s",
			truncStr(c.StockNo, 10),
			truncStr(c.Status, 8),
			truncStr(c.Title(), 28),
			truncStr(orDash(c.CarNumber), 12),
			intOrDash(c.Year))
		if i == m.cursor {
			b.WriteString(selectedRowBg.Render(" > "+selectedStyle.Render(line)) + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(line) + "\n")
		}
	}
	b.WriteString("\n  " + metaStyle.Render(fmt.Sprintf("%d of %d", len(rows), len(m.cars))) + "\n")
	if m.statusMsg != "" {
		b.WriteString("  " + noticeStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
