package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// AddModel is a single huh form that records one transaction. The amount is
// entered positive; the service flips the sign for expense categories.
type AddModel struct {
	CommonModel
	txService *transaction.Service

	form   *huh.Form
	status string

	// Form bindings
	formType     string
	formAmount   string
	formDate     string
	formCategory string
}

func NewAddModel(txSvc *transaction.Service) AddModel {
	m := AddModel{
		txService: txSvc,
		formDate:  FormatDate(time.Now()),
	}
	m.form = m.newForm()

	return m
}

func (m AddModel) newForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(transaction.Categories))
	for _, c := range transaction.Categories {
		options = append(options, huh.NewOption(string(c), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("type").
				Title("Description").
				Value(&m.formType).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.34").
				Value(&m.formAmount).
				Validate(func(s string) error {
					cents, err := money.Parse(s)
					if err != nil {
						return err
					}
					if cents <= 0 {
						return fmt.Errorf("amount must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					_, err := time.Parse(time.DateOnly, s)
					return err
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.formCategory),
		),
	).WithWidth(50).WithShowHelp(true)
}

func (m AddModel) Title() string     { return "Add Transaction" }
func (m AddModel) ShortHelp() string { return "Navigate form | Esc: back" }

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case addSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Saved #%d.", msg.id)
		}

		// Reset for the next entry.
		m.formType = ""
		m.formAmount = ""
		m.formDate = FormatDate(time.Now())
		m.form = m.newForm()

		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m AddModel) View() string {
	content := m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

type addSaveMsg struct {
	id  int64
	err error
}

func (m AddModel) saveCmd() tea.Cmd {
	params := transaction.CreateParams{
		Type:     m.form.GetString("type"),
		Category: transaction.Category(m.form.GetString("category")),
	}

	amount, err := money.Parse(m.form.GetString("amount"))
	if err != nil {
		return func() tea.Msg { return addSaveMsg{err: err} }
	}
	params.Amount = amount

	date, err := time.Parse(time.DateOnly, m.form.GetString("date"))
	if err != nil {
		return func() tea.Msg { return addSaveMsg{err: err} }
	}
	params.Date = date

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		tx, err := m.txService.Create(ctx, params)
		if err != nil {
			return addSaveMsg{err: err}
		}

		return addSaveMsg{id: tx.ID}
	}
}
