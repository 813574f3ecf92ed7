package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateConfirmDelete
)

type ListModel struct {
	CommonModel
	txService *transaction.Service

	state listState
	table table.Model
	txs   []*transaction.Transaction

	// Filter cycling
	yearFilterIdx     int
	categoryFilterIdx int

	filter  transaction.ListFilter
	loading bool
	err     error
	status  string
}

func NewListModel(txSvc *transaction.Service) ListModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 30},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		txService: txSvc,
		table:     t,
		filter:    transaction.ListFilter{},
	}
}

func (m ListModel) Title() string { return "Transactions List" }
func (m ListModel) ShortHelp() string {
	if m.state == listStateConfirmDelete {
		return "y: confirm delete | n: cancel"
	}
	return "Esc: back | x: delete | y: year filter | c: category filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.txs = msg.txs
		m.refreshTable()
		return m, nil

	case listDeleteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Deleted."
		}
		m.state = listStateBrowse
		m.table.Focus()
		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""
			return m, m.loadTxsCmd()
		case "x":
			if idx := m.table.Cursor(); idx >= 0 && idx < len(m.txs) {
				m.state = listStateConfirmDelete
				m.table.Blur()
			}
			return m, nil
		case "y":
			m.yearFilterIdx = (m.yearFilterIdx + 1) % 3
			m.applyFilter()
			return m, m.loadTxsCmd()
		case "c":
			m.categoryFilterIdx = (m.categoryFilterIdx + 1) % (len(transaction.Categories) + 1)
			m.applyFilter()
			return m, m.loadTxsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ListModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		return m, m.deleteCmd()
	case "n", "esc":
		m.state = listStateBrowse
		m.table.Focus()
	}

	return m, nil
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	yearLabels := []string{"All Years", "This Year", "Last Year"}
	categoryLabel := "All"
	if m.categoryFilterIdx > 0 {
		categoryLabel = string(transaction.Categories[m.categoryFilterIdx-1])
	}

	header := fmt.Sprintf(
		"Filter: [y] Year: %s | [c] Category: %s",
		activeStyle(yearLabels[m.yearFilterIdx]),
		activeStyle(categoryLabel),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == listStateConfirmDelete {
		idx := m.table.Cursor()
		label := ""
		if idx >= 0 && idx < len(m.txs) {
			label = fmt.Sprintf("#%d %s %s", m.txs[idx].ID, m.txs[idx].Type, FormatAmount(m.txs[idx].Amount))
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(fmt.Sprintf("Delete %s?\n\n[y] yes  [n] no", label))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ListModel) applyFilter() {
	now := time.Now()
	switch m.yearFilterIdx {
	case 1:
		year := now.Year()
		m.filter.Year = &year
	case 2:
		year := now.Year() - 1
		m.filter.Year = &year
	default:
		m.filter.Year = nil
	}

	if m.categoryFilterIdx > 0 {
		category := transaction.Categories[m.categoryFilterIdx-1]
		m.filter.Category = &category
	} else {
		m.filter.Category = nil
	}
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", tx.ID),
			FormatDate(tx.Date),
			tx.Type,
			FormatAmount(tx.Amount),
			string(tx.Category),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, m.filter)
		return loadListMsg{txs: txs, err: err}
	}
}

type listDeleteMsg struct {
	err error
}

func (m ListModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	id := m.txs[idx].ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return listDeleteMsg{err: m.txService.Delete(ctx, id)}
	}
}
