package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

type model struct {
	txService     *transaction.Service
	reportService *report.Service

	currentView View

	listView      view.ListModel
	addView       view.AddModel
	dashboardView view.DashboardModel
}

type View int

const (
	ViewMenu      View = 0
	ViewList      View = 1
	ViewAdd       View = 2
	ViewDashboard View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New(cfg.Data.File))
	reportSvc := report.NewService(txSvc)

	return model{
		txService:     txSvc,
		reportService: reportSvc,
		currentView:   ViewMenu,
		listView:      view.NewListModel(txSvc),
		addView:       view.NewAddModel(txSvc),
		dashboardView: view.NewDashboardModel(reportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.txService)

				return m, m.listView.Init()
			case "2":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.txService)

				return m, m.addView.Init()
			case "3":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.reportService)

				return m, m.dashboardView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Tally TUI\n\n" +
				"1. List Transactions\n" +
				"2. Add Transaction\n" +
				"3. Dashboard\n\n" +
				"q. Quit",
		)
	case ViewList:
		return m.listView.View()
	case ViewAdd:
		return m.addView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
