package transaction

import (
	"context"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams carries a user-submitted transaction. Amount is the positive
// cents the user typed; the sign convention of the category decides how it
// is stored.
type CreateParams struct {
	Type     string
	Amount   int64
	Date     time.Time
	Category Category
}

// ImportParams carries a row from an imported bank statement. Amount is
// already signed; no sign convention is applied.
type ImportParams struct {
	Type     string
	Amount   int64
	Date     time.Time
	Category Category
}

type ListFilter struct {
	Year     *int
	Month    *time.Month
	Category *Category
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := validateCommon(params.Type, params.Date, params.Category); err != nil {
		return nil, err
	}

	if params.Amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be positive"}
	}

	amount := params.Amount
	if params.Category.IsExpense() {
		amount = -amount
	}

	tx := &Transaction{
		Date:     params.Date,
		Type:     params.Type,
		Amount:   amount,
		Category: params.Category,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateBatch persists imported statement rows in one rewrite of the store.
func (s *Service) CreateBatch(ctx context.Context, params []ImportParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		if err := validateCommon(p.Type, p.Date, p.Category); err != nil {
			return nil, err
		}

		if p.Amount == 0 {
			return nil, &ValidationError{Field: "amount", Reason: "must be nonzero"}
		}

		txs[i] = &Transaction{
			Date:     p.Date,
			Type:     p.Type,
			Amount:   p.Amount,
			Category: p.Category,
		}
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, err
	}

	return txs, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// Update overwrites the stored record with tx. The amount is taken as
// signed and must stay nonzero.
func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	if err := validateCommon(tx.Type, tx.Date, tx.Category); err != nil {
		return err
	}

	if tx.Amount == 0 {
		return &ValidationError{Field: "amount", Reason: "must be nonzero"}
	}

	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func validateCommon(txType string, date time.Time, category Category) error {
	if txType == "" {
		return &ValidationError{Field: "type", Reason: "must not be empty"}
	}

	if date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be set"}
	}

	if !category.Valid() {
		return &ValidationError{Field: "category", Reason: "unknown category " + string(category)}
	}

	return nil
}
