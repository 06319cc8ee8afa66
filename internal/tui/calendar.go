package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlpworks/vlp/internal/calendar"
)

var weekdayLabels = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

type calendarModel struct {
	deps      Deps
	day       time.Time
	marked    map[string]bool
	memo      string
	draft     string
	editing   bool
	err       error
	statusMsg string
}

func newCalendarModel(d Deps) calendarModel {
	now := d.Now()
	m := calendarModel{deps: d, day: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
	m.refresh()
	return m
}

func (m calendarModel) Init() tea.Cmd {
	return nil
}

// refresh reloads the selected memo and the marked days of the month.
func (m *calendarModel) refresh() {
	m.err = nil
	if m.deps.Memos == nil {
		return
	}
	memo, err := m.deps.Memos.Get(calendar.Key(m.day))
	if err != nil {
		m.err = err
		return
	}
	m.memo = memo

	dates, err := m.deps.Memos.Dates(calendar.MonthKey(m.day))
	if err != nil {
		m.err = err
		return
	}
	m.marked = make(map[string]bool, len(dates))
	for _, d := range dates {
		m.marked[d] = true
	}
}

func (m calendarModel) move(days, months int) calendarModel {
	m.day = m.day.AddDate(0, months, days)
	m.statusMsg = ""
	m.refresh()
	return m
}

func (m calendarModel) save(text string) calendarModel {
	key := calendar.Key(m.day)
	if err := m.deps.Memos.Set(key, text); err != nil {
		m.statusMsg = "save failed: " + err.Error()
		return m
	}
	m.editing = false
	if strings.TrimSpace(text) == "" {
		m.statusMsg = "memo removed"
	} else {
		m.statusMsg = "saved"
	}
	m.refresh()
	return m
}

func (m calendarModel) Update(msg tea.Msg) (calendarModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch key.String() {
		case "ctrl+s":
			return m.save(m.draft), nil
		case "esc":
			m.editing = false
			m.statusMsg = ""
		default:
			m.draft = editMultiline(m.draft, key.String())
		}
		return m, nil
	}

	switch key.String() {
	case "h", "left":
		return m.move(-1, 0), nil
	case "l", "right":
		return m.move(1, 0), nil
	case "k", "up":
		return m.move(-7, 0), nil
	case "j", "down":
		return m.move(7, 0), nil
	case "[":
		return m.move(0, -1), nil
	case "]":
		return m.move(0, 1), nil
	case "t":
		now := m.deps.Now()
		m.day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		m.refresh()
	case "e", "enter":
		if m.deps.Memos != nil {
			m.editing = true
			m.draft = m.memo
			m.statusMsg = ""
		}
	case "x":
		if m.memo != "" {
			return m.save(""), nil
		}
	}
	return m, nil
}

func (m calendarModel) helpKeys() string {
	if m.editing {
		return helpBar("enter", "newline", "ctrl+s", "save", "esc", "cancel")
	}
	return helpBar("1-7", "pages", "h/j/k/l", "day", "[/]", "month", "t", "today", "e", "edit", "x", "clear", "q", "quit")
}

func (m calendarModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", titleStyle.Render(m.day.Format("January 2006")))

	b.WriteString("  ")
	for i, w := range weekdayLabels {
		label := fmt.Sprintf("%3s ", w)
		switch i {
		case 0:
			b.WriteString(sundayStyle.Render(label))
		case 6:
			b.WriteString(saturdayStyle.Render(label))
		default:
			b.WriteString(dimStyle.Render(label))
		}
	}
	b.WriteString("\n")

	today := calendar.Key(m.deps.Now())
	selected := calendar.Key(m.day)
	for _, week := range calendar.MonthGrid(m.day.Year(), m.day.Month()) {
		b.WriteString("  ")
		for i, d := range week {
			if d.IsZero() {
				b.WriteString("    ")
				continue
			}
			key := calendar.Key(d)
			mark := " "
			if m.marked[key] {
				mark = "*"
			}
			cell := fmt.Sprintf("%3d", d.Day())
			switch {
			case key == selected:
				cell = cursorDayStyle.Render(cell)
			case key == today:
				cell = todayStyle.Render(cell)
			case m.marked[key]:
				cell = memoDayStyle.Render(cell)
			case i == 0:
				cell = sundayStyle.Render(cell)
			case i == 6:
				cell = saturdayStyle.Render(cell)
			default:
				cell = normalStyle.Render(cell)
			}
			b.WriteString(cell + memoDayStyle.Render(mark))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionHeaderStyle.Render(m.day.Format("2006-01-02 (Mon)")))
	text := m.memo
	if m.editing {
		text = m.draft + accentStyle.Render("█")
	}
	if text == "" {
		b.WriteString("  " + metaStyle.Render("no memo  (e: edit)") + "\n")
	} else {
		for _, line := range strings.Split(text, "\n") {
			b.WriteString("  " + normalStyle.Render(line) + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n  " + errorStyle.Render(m.err.Error()) + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n  " + noticeStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
