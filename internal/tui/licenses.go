package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlpworks/vlp/pkg/domain"
)

// New invites are single-use staff codes valid for a week.
const (
	inviteRole    = domain.RoleStaff
	inviteMaxUses = 1
	inviteTTL     = 7 * 24 * time.Hour
)

// licensesModel shows seats to everyone. Invites are listed and issued only
// for roles that may manage them; the API answers 403 to the rest.
type licensesModel struct {
	deps       Deps
	me         *domain.Me
	seats      *domain.Seats
	stores     []domain.Store
	invites    []domain.Invite
	invitesErr error
	cursor     int
	loading    bool
	err        error
	statusMsg  string
	height     int
}

type seatsLoadedMsg struct {
	result
	seats  *domain.Seats
	stores []domain.Store
}

type invitesLoadedMsg struct {
	result
	invites []domain.Invite
}

type inviteCreatedMsg struct {
	result
	invite *domain.Invite
}

func newLicensesModel(d Deps, me *domain.Me, height int) licensesModel {
	return licensesModel{deps: d, me: me, loading: true, height: height}
}

func (m licensesModel) canManage() bool {
	return m.me != nil && m.me.CanManage()
}

func (m licensesModel) Init() tea.Cmd {
	if m.canManage() {
		return tea.Batch(m.loadSeats(), m.loadInvites())
	}
	return m.loadSeats()
}

func (m licensesModel) loadSeats() tea.Cmd {
	c, ctx, log := m.deps.Client, m.deps.Ctx, m.deps.log()
	return func() tea.Msg {
		seats, err := c.Seats(ctx)
		if err != nil {
			return seatsLoadedMsg{result: result{err}}
		}
		stores, err := c.ListStores(ctx)
		if err != nil {
			log.Warn("stores_load_failed", slog.String("err", err.Error()))
		}
		return seatsLoadedMsg{seats: seats, stores: stores}
	}
}

func (m licensesModel) loadInvites() tea.Cmd {
	c, ctx := m.deps.Client, m.deps.Ctx
	return func() tea.Msg {
		invites, err := c.ListInvites(ctx)
		return invitesLoadedMsg{result: result{err}, invites: invites}
	}
}

func (m licensesModel) Update(msg tea.Msg) (licensesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case meLoadedMsg:
		if msg.err != nil || msg.me == nil {
			return m, nil
		}
		could := m.canManage()
		m.me = msg.me
		if !could && m.canManage() {
			return m, m.loadInvites()
		}
		return m, nil

	case seatsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.seats = msg.seats
			m.stores = msg.stores
		}
		return m, nil

	case invitesLoadedMsg:
		m.invitesErr = msg.err
		if msg.err == nil {
			m.invites = msg.invites
		}
		if m.cursor >= len(m.invites) {
			m.cursor = 0
		}
		return m, nil

	case inviteCreatedMsg:
		if msg.err != nil {
			m.statusMsg = "invite failed: " + errText(msg.err)
			return m, nil
		}
		m.statusMsg = "invite " + msg.invite.Code + " created"
		return m, m.loadInvites()

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed: " + msg.err.Error()
		} else {
			m.statusMsg = msg.what + " copied"
		}
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.Init()
		case "n":
			if !m.canManage() {
				m.statusMsg = "only admins and managers can issue invites"
				return m, nil
			}
			exp := m.deps.Now().Add(inviteTTL).UTC()
			req := domain.InviteRequest{Role: inviteRole, MaxUses: inviteMaxUses, ExpiresAt: &exp}
			c, ctx := m.deps.Client, m.deps.Ctx
			m.statusMsg = "creating invite..."
			return m, func() tea.Msg {
				inv, err := c.CreateInvite(ctx, req)
				return inviteCreatedMsg{result: result{err}, invite: inv}
			}
		case "c":
			if m.canManage() && m.cursor < len(m.invites) {
				return m, copyCmd(m.deps.Copy, "invite code", m.invites[m.cursor].Code)
			}
		default:
			m.cursor = moveCursor(m.cursor, len(m.invites), msg.String())
		}
	}
	return m, nil
}

func (m licensesModel) helpKeys() string {
	if m.canManage() {
		return helpBar("1-7", "pages", "j/k", "nav", "n", "new invite", "c", "copy code", "r", "reload", "q", "quit")
	}
	return helpBar("1-7", "pages", "r", "reload", "q", "quit")
}

func (m licensesModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Licenses") + "\n\n")

	switch {
	case m.loading && m.seats == nil:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(errText(m.err)) + "\n")
	case m.seats != nil:
		for _, s := range m.stores {
			if s.ID == m.seats.StoreID {
				fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("Store", 12)), normalStyle.Render(s.Name))
			}
		}
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("Plan", 12)), normalStyle.Render(orDash(m.seats.PlanCode)))
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("Seats", 12)),
			normalStyle.Render(fmt.Sprintf("%d / %d used, %d available", m.seats.ActiveUsers, m.seats.SeatLimit, m.seats.Available())))
	}

	b.WriteString("\n  " + sectionHeaderStyle.Render("Invites") + "\n")
	b.WriteString(m.invitesView())

	if m.statusMsg != "" {
		b.WriteString("\n  " + noticeStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m licensesModel) invitesView() string {
	switch {
	case m.me == nil:
		return "  " + dimStyle.Render("loading...") + "\n"
	case !m.canManage():
		return "  " + metaStyle.Render("invites are managed by admins and managers") + "\n"
	case m.invitesErr != nil:
		return "  " + errorStyle.Render(errText(m.invitesErr)) + "\n"
	case len(m.invites) == 0:
		return "  " + metaStyle.Render("none  (n: new invite)") + "\n"
	}

	var b strings.Builder
	now := m.deps.Now()
	start, end := visibleRange(m.cursor, len(m.invites), m.height-10)
	for i := start; i < end; i++ {
		inv := m.invites[i]
		state := okStyle.Render("active")
		if !inv.Usable(now) {
			state = metaStyle.Render("inactive")
		}
		line := fmt.Sprintf("%-12s %-8s %d/%d  expires %s", inv.Code, inv.Role, inv.UsedCount, inv.MaxUses, formatDate(inv.ExpiresAt))
		if i == m.cursor {
			b.WriteString(selectedRowBg.Render(" > "+selectedStyle.Render(line)) + " " + state + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(line) + " " + state + "\n")
		}
	}
	return b.String()
}
