package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/report"
)

var (
	dashboardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dashboardBoxStyle   = lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type DashboardModel struct {
	CommonModel
	reportService *report.Service

	year      int
	dashboard *report.Dashboard
	loading   bool
	err       error
}

func NewDashboardModel(reportSvc *report.Service) DashboardModel {
	return DashboardModel{
		reportService: reportSvc,
		year:          reportSvc.CurrentYear(),
		loading:       true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | left/right: year | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDashboardMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.dashboard = msg.dashboard
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "left":
			m.year--
			m.loading = true
			return m, m.loadCmd()
		case "right":
			m.year++
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	d := m.dashboard

	summary := dashboardBoxStyle.Render(fmt.Sprintf(
		"%s\n\nIncome:         %s\nExpenses:       %s\nNet flow:       %s\nWeekly average: %s",
		dashboardTitleStyle.Render(fmt.Sprintf("Summary %d", d.Year)),
		incomeStyle.Render(FormatAmount(d.Summary.TotalIncome)),
		expenseStyle.Render(FormatAmount(d.Summary.TotalExpenses)),
		FormatAmount(d.Summary.NetFlow),
		FormatAmount(d.Summary.WeeklyAverage),
	))

	var months strings.Builder
	months.WriteString(dashboardTitleStyle.Render("Monthly") + "\n\n")
	for _, mt := range d.Monthly {
		months.WriteString(fmt.Sprintf(
			"%-4s %12s %12s %12s\n",
			mt.Month.String()[:3],
			incomeStyle.Render(FormatAmount(mt.Income)),
			expenseStyle.Render(FormatAmount(mt.Expenses)),
			FormatAmount(mt.Net),
		))
	}
	monthly := dashboardBoxStyle.Render(strings.TrimRight(months.String(), "\n"))

	content := lipgloss.JoinHorizontal(lipgloss.Top, summary, monthly)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type loadDashboardMsg struct {
	dashboard *report.Dashboard
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	year := m.year

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		d, err := m.reportService.Dashboard(ctx, year)
		return loadDashboardMsg{dashboard: d, err: err}
	}
}
