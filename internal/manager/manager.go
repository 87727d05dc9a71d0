package manager

import (
	"errors"
	"fmt"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/auth"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/config"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/database"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/models"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/util"

	"gorm.io/gorm"
)

// DefaultUsername is the account legacy callers fall back to when they
// do not thread a user id explicitly.
const DefaultUsername = "default"

// DatabaseManager composes the per-entity managers and the auth service
// behind one handle, and normalizes every return value into the
// {success, error, data} envelope. The handle is explicit: callers
// construct one (or more, for tests) instead of rebinding global state.
type DatabaseManager struct {
	DB           *gorm.DB
	Auth         *auth.Service
	Users        *UsersManager
	Expenses     *ExpensesManager
	Contacts     *ContactsManager
	Transactions *TransactionsManager
	Categories   *CategoriesManager
	Export       *Exporter

	cfg           *config.Config
	defaultUserID uint
}

// Open initializes (and migrates) the database at path and wires all
// managers. An empty path falls back to the configured default.
func Open(path string, cfg *config.Config) (*DatabaseManager, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	dbCfg := cfg.Database
	if path != "" {
		dbCfg.Path = path
	}
	db, err := database.Init(dbCfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return New(db, cfg), nil
}

// New wires the managers around an already-open handle. The schema is
// assumed migrated.
func New(db *gorm.DB, cfg *config.Config) *DatabaseManager {
	if cfg == nil {
		cfg = config.Default()
	}
	authSvc := auth.New(db, cfg.Auth)
	categories := NewCategoriesManager(db)
	contacts := NewContactsManager(db)
	return &DatabaseManager{
		DB:           db,
		Auth:         authSvc,
		Users:        NewUsersManager(db, authSvc),
		Expenses:     NewExpensesManager(db, categories),
		Contacts:     contacts,
		Transactions: NewTransactionsManager(db, contacts),
		Categories:   categories,
		Export:       NewExporter(db),
		cfg:          cfg,
	}
}

// Close releases the underlying connection.
func (dm *DatabaseManager) Close() error {
	sqlDB, err := dm.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnsureDefaultUser creates (once) and returns the fallback account used
// by callers that do not pass a user id. The account gets a random
// password: it is a data owner, not a login target.
func (dm *DatabaseManager) EnsureDefaultUser() (uint, error) {
	if dm.defaultUserID != 0 {
		return dm.defaultUserID, nil
	}

	var user models.User
	err := dm.DB.Where("username = ?", DefaultUsername).First(&user).Error
	if err == nil {
		dm.defaultUserID = user.ID
		return user.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	token, err := util.NewSessionToken()
	if err != nil {
		return 0, err
	}
	hash, err := util.HashPassword(token, dm.cfg.Auth.Pepper, dm.cfg.Auth.PBKDF2Iterations)
	if err != nil {
		return 0, err
	}
	user = models.User{Username: DefaultUsername, PasswordHash: hash, Role: models.RoleUser, IsActive: true}
	if err := dm.DB.Create(&user).Error; err != nil {
		return 0, fmt.Errorf("create default user: %w", err)
	}
	dm.defaultUserID = user.ID
	return user.ID, nil
}

// userOr substitutes the default user for a zero id.
func (dm *DatabaseManager) userOr(userID uint) (uint, error) {
	if userID != 0 {
		return userID, nil
	}
	return dm.EnsureDefaultUser()
}

// ---------- diagnostics ----------

// ListTables lists the user-defined tables, for tests and health checks.
func (dm *DatabaseManager) ListTables() util.Result {
	tables, err := database.ListTables(dm.DB)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("list_tables", tables)
}

// ---------- expenses ----------

func (dm *DatabaseManager) AddExpense(in CreateExpenseInput) util.Result {
	uid, err := dm.userOr(in.UserID)
	if err != nil {
		return util.FailErr(err)
	}
	in.UserID = uid
	return util.Normalize("add_expense", dm.Expenses.Add(in))
}

func (dm *DatabaseManager) GetExpenses(userID uint, opts ListOptions) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("get_expenses", dm.Expenses.List(uid, opts))
}

func (dm *DatabaseManager) SearchExpenses(userID uint, query string) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("search_expenses", dm.Expenses.Search(uid, query))
}

func (dm *DatabaseManager) DeleteExpense(expenseID, userID uint) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("delete_expense", dm.Expenses.Delete(expenseID, uid))
}

func (dm *DatabaseManager) ClearExpenses(userID uint) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("clear_expenses", dm.Expenses.Clear(uid))
}

// ---------- contacts ----------

func (dm *DatabaseManager) AddContact(userID uint, name string) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("add_contact", dm.Contacts.Add(uid, name), "name")
}

func (dm *DatabaseManager) GetContacts(userID uint) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("get_contacts", dm.Contacts.List(uid))
}

func (dm *DatabaseManager) DeleteContact(contactID, userID uint) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("delete_contact", dm.Contacts.Delete(contactID, uid))
}

// ---------- transactions ----------

func (dm *DatabaseManager) AddTransaction(in CreateTransactionInput) util.Result {
	return util.Normalize("add_transaction", dm.Transactions.Add(in))
}

func (dm *DatabaseManager) GetTransactions(userID uint, opts ListOptions) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("get_transactions", dm.Transactions.List(uid, opts))
}

func (dm *DatabaseManager) DeleteTransaction(transactionID, userID uint) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("delete_transaction", dm.Transactions.Delete(transactionID, uid))
}

func (dm *DatabaseManager) GetNetBalance(userID uint) util.Result {
	return util.Normalize("net_balance", dm.Transactions.NetBalance(userID))
}

func (dm *DatabaseManager) GetBalanceBreakdown(userID uint) util.Result {
	return util.Normalize("balance_breakdown", dm.Transactions.Breakdown(userID))
}

// GetContactBalance keeps the older call shape: it returns the bare net
// figure for the contact rather than the full breakdown.
func (dm *DatabaseManager) GetContactBalance(userID, contactID uint) util.Result {
	res := dm.Transactions.ContactBalanceFor(userID, contactID)
	if !res.Success {
		return res
	}
	balance, ok := res.Data.(ContactBalance)
	if !ok {
		return util.Fail("get_contact_balance returned no result")
	}
	return util.OK(balance.Net)
}

// ---------- categories ----------

func (dm *DatabaseManager) AddCategory(in CreateCategoryInput) util.Result {
	uid, err := dm.userOr(in.UserID)
	if err != nil {
		return util.FailErr(err)
	}
	in.UserID = uid
	return util.Normalize("add_category", dm.Categories.Add(in), "name")
}

func (dm *DatabaseManager) GetCategories(userID uint, order string, limit, offset int) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("get_categories", dm.Categories.List(uid, order, limit, offset))
}

func (dm *DatabaseManager) DeleteCategory(categoryID, userID uint) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("delete_category", dm.Categories.Delete(categoryID, uid))
}

// ---------- auth envelopes ----------

func (dm *DatabaseManager) RegisterUser(username, email, password string) util.Result {
	return dm.Users.Register(username, email, password)
}

// Login authenticates and returns {user_id, token} in the envelope.
func (dm *DatabaseManager) Login(ref, password string) util.Result {
	login, err := dm.Auth.Authenticate(ref, password)
	if err != nil {
		return util.FailErr(err)
	}
	return util.OK(map[string]interface{}{
		"user_id": login.UserID,
		"token":   login.Token,
	})
}

func (dm *DatabaseManager) Logout(token string) util.Result {
	if err := dm.Auth.Logout(token); err != nil {
		return util.FailErr(err)
	}
	return util.OK(nil)
}

func (dm *DatabaseManager) VerifySession(token string) util.Result {
	identity, err := dm.Auth.VerifySession(token)
	if err != nil {
		return util.FailErr(err)
	}
	return util.OK(map[string]interface{}{
		"user_id":  identity.UserID,
		"username": identity.Username,
		"email":    identity.Email,
		"role":     identity.Role,
	})
}

func (dm *DatabaseManager) ChangePassword(userID uint, oldPassword, newPassword string) util.Result {
	if err := dm.Auth.ChangePassword(userID, oldPassword, newPassword); err != nil {
		return util.FailErr(err)
	}
	return util.OK(nil)
}

func (dm *DatabaseManager) DeactivateUser(userID uint) util.Result {
	return dm.Users.Deactivate(userID)
}

// ---------- export ----------

func (dm *DatabaseManager) ExportExpensesXLSX(userID uint, path string) util.Result {
	uid, err := dm.userOr(userID)
	if err != nil {
		return util.FailErr(err)
	}
	return util.Normalize("export_expenses_xlsx", dm.Export.ExpensesXLSX(uid, path))
}
