package transaction

// Category is one of the fixed labels transactions are grouped under.
// The same enumeration drives validation, reporting and both UIs.
type Category string

const (
	CategoryTax              Category = "Tax"
	CategoryTravel           Category = "Hotel/Vacation/Travel"
	CategoryWithdraw         Category = "Withdraw"
	CategoryRegalo           Category = "Regalo"
	CategoryMoneyTransfer    Category = "Money Transfer"
	CategoryExpenseInvest    Category = "Expense/Investment"
	CategoryBabySitter       Category = "Baby Sitter"
	CategoryGrocery          Category = "Grocery"
	CategoryMembership       Category = "Membership"
	CategoryGeneral          Category = "General"
	CategoryRestaurant       Category = "Restaurant"
	CategoryPetrol           Category = "Petrol"
	CategorySportLeisure     Category = "Sport/Leisure"
	CategoryRefund           Category = "Refund"
	CategoryBenefit          Category = "Benefit"
	CategorySalary           Category = "Monthly Salary/General"
	CategoryInvestmentIncome Category = "Investment Income"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryTax,
	CategoryTravel,
	CategoryWithdraw,
	CategoryRegalo,
	CategoryMoneyTransfer,
	CategoryExpenseInvest,
	CategoryBabySitter,
	CategoryGrocery,
	CategoryMembership,
	CategoryGeneral,
	CategoryRestaurant,
	CategoryPetrol,
	CategorySportLeisure,
	CategoryRefund,
	CategoryBenefit,
	CategorySalary,
	CategoryInvestmentIncome,
}

// expenseCategories are stored with a negated amount on create. Refund,
// Benefit and the income categories keep the submitted positive amount.
var expenseCategories = map[Category]struct{}{
	CategoryTax:           {},
	CategoryTravel:        {},
	CategoryWithdraw:      {},
	CategoryRegalo:        {},
	CategoryMoneyTransfer: {},
	CategoryExpenseInvest: {},
	CategoryBabySitter:    {},
	CategoryGrocery:       {},
	CategoryMembership:    {},
	CategoryGeneral:       {},
	CategoryRestaurant:    {},
	CategoryPetrol:        {},
	CategorySportLeisure:  {},
}

// Valid reports whether c is part of the fixed enumeration.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

// IsExpense reports whether amounts in this category are negated on create.
// This is a data-entry convention only; the aggregator trusts the sign.
func (c Category) IsExpense() bool {
	_, ok := expenseCategories[c]
	return ok
}

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", &ValidationError{Field: "category", Reason: "unknown category " + s}
	}

	return c, nil
}
