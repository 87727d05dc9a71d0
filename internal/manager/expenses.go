package manager

import (
	"strings"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/models"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/util"

	"gorm.io/gorm"
)

// ExpensesManager handles per-user spending records.
type ExpensesManager struct {
	db         *gorm.DB
	categories *CategoriesManager
}

func NewExpensesManager(db *gorm.DB, categories *CategoriesManager) *ExpensesManager {
	return &ExpensesManager{db: db, categories: categories}
}

// CreateExpenseInput is the typed request for Add. CategoryID, when set,
// must resolve to a category owned by the same user.
type CreateExpenseInput struct {
	UserID     uint
	Title      string
	Price      float64
	Date       string
	Category   string // legacy free-text category
	CategoryID *uint
}

// ListOptions controls listing: deterministic ordering (latest first by
// default), optional pagination, inclusive date range and case-insensitive
// substring search over the text fields.
type ListOptions struct {
	Order    string // "date_desc" (default) or "date_asc"
	Limit    int
	Offset   int
	DateFrom string
	DateTo   string
	Search   string
}

func (o ListOptions) orderClause() string {
	if o.Order == "date_asc" {
		return "date ASC, id ASC"
	}
	return "date DESC, id DESC"
}

func validateExpense(in CreateExpenseInput) error {
	if err := util.ValidateRequired("title", in.Title); err != nil {
		return err
	}
	if err := util.ValidateRequired("category", in.Category); err != nil {
		return err
	}
	if err := util.ValidateAmount("price", in.Price); err != nil {
		return err
	}
	return util.ValidateDate(in.Date)
}

// Add validates and inserts a new expense. Nothing is persisted when any
// field is rejected.
func (m *ExpensesManager) Add(in CreateExpenseInput) util.Result {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	if err := validateExpense(in); err != nil {
		return util.FailErr(err)
	}
	if in.UserID == 0 {
		return util.Fail("missing user_id")
	}
	if in.CategoryID != nil && !m.categories.ExistsForUser(*in.CategoryID, in.UserID) {
		return util.Fail("invalid category for this user")
	}

	expense := models.Expense{
		UserID:     in.UserID,
		Title:      in.Title,
		Price:      in.Price,
		Date:       in.Date,
		Category:   in.Category,
		CategoryID: in.CategoryID,
	}
	if err := m.db.Create(&expense).Error; err != nil {
		return util.FailErr(err)
	}
	return util.OK(map[string]interface{}{"expense_id": expense.ID})
}

// List returns the user's expenses filtered and ordered per opts.
func (m *ExpensesManager) List(userID uint, opts ListOptions) util.Result {
	q := m.db.Where("user_id = ?", userID)
	if opts.DateFrom != "" {
		q = q.Where("date >= ?", opts.DateFrom)
	}
	if opts.DateTo != "" {
		q = q.Where("date <= ?", opts.DateTo)
	}
	if opts.Search != "" {
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
	}
	q = q.Order(opts.orderClause())
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
		if opts.Offset > 0 {
			q = q.Offset(opts.Offset)
		}
	}

	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		return util.FailErr(err)
	}
	return util.OK(expenses)
}

// Search is a convenience wrapper over List for substring search on
// title and the legacy category text.
func (m *ExpensesManager) Search(userID uint, query string) util.Result {
	return m.List(userID, ListOptions{Search: query})
}

// Delete removes an expense if it belongs to the user and reports the
// deleted count. 0 means not found or not owned.
func (m *ExpensesManager) Delete(expenseID, userID uint) util.Result {
	res := m.db.Where("id = ? AND user_id = ?", expenseID, userID).
		Delete(&models.Expense{})
	if res.Error != nil {
		return util.FailErr(res.Error)
	}
	return util.OK(map[string]interface{}{"deleted": res.RowsAffected})
}

// Clear removes every expense owned by the user.
func (m *ExpensesManager) Clear(userID uint) util.Result {
	res := m.db.Where("user_id = ?", userID).Delete(&models.Expense{})
	if res.Error != nil {
		return util.FailErr(res.Error)
	}
	return util.OK(map[string]interface{}{"deleted": res.RowsAffected})
}
