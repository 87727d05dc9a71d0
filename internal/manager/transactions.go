package manager

import (
	"fmt"
	"strings"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/models"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/util"

	"gorm.io/gorm"
)

// TransactionsManager handles peer-to-peer credits/debits and the
// balance aggregations over them. ContactsManager is injected for
// cross-entity validation of the weak contact reference.
type TransactionsManager struct {
	db       *gorm.DB
	contacts *ContactsManager
}

func NewTransactionsManager(db *gorm.DB, contacts *ContactsManager) *TransactionsManager {
	return &TransactionsManager{db: db, contacts: contacts}
}

// CreateTransactionInput is the typed request for Add.
type CreateTransactionInput struct {
	FromUserID  uint
	ToUserID    uint
	Type        string // "debit" or "credit"
	Amount      float64
	Date        string
	Description string
	ContactID   *uint // must belong to FromUserID when set
}

// BalanceBreakdown exposes the four directional sums plus the two
// aggregate views. Net and Legacy are intentionally different formulas;
// Legacy is retained for backward compatibility only.
type BalanceBreakdown struct {
	CreditsReceived float64 `json:"credits_received"`
	DebitsSent      float64 `json:"debits_sent"`
	CreditsSent     float64 `json:"credits_sent"`
	DebitsReceived  float64 `json:"debits_received"`
	Net             float64 `json:"net"`
	Legacy          float64 `json:"legacy"`
}

// ContactBalance is the sender-perspective balance against one contact.
// A contact is not a user, so only outgoing rows count.
type ContactBalance struct {
	CreditsSent float64 `json:"credits_sent"`
	DebitsSent  float64 `json:"debits_sent"`
	Net         float64 `json:"net"`
}

func validateTransaction(in CreateTransactionInput) error {
	if in.Type != models.TypeDebit && in.Type != models.TypeCredit {
		return fmt.Errorf("invalid type (debit/credit)")
	}
	if err := util.ValidateAmount("amount", in.Amount); err != nil {
		return err
	}
	return util.ValidateDate(in.Date)
}

func (m *TransactionsManager) userExists(userID uint) bool {
	var count int64
	if err := m.db.Model(&models.User{}).Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// Add validates and inserts a transaction. Sender and receiver must both
// exist and be distinct; the optional contact must belong to the sender.
func (m *TransactionsManager) Add(in CreateTransactionInput) util.Result {
	if err := validateTransaction(in); err != nil {
		return util.FailErr(err)
	}
	if in.FromUserID == in.ToUserID {
		return util.Fail("sender and receiver must be distinct users")
	}
	if !m.userExists(in.FromUserID) || !m.userExists(in.ToUserID) {
		return util.Fail("unknown user")
	}
	if in.ContactID != nil && !m.contacts.ExistsForUser(*in.ContactID, in.FromUserID) {
		return util.Fail("invalid contact for this user")
	}

	tx := models.Transaction{
		FromUserID:  in.FromUserID,
		ToUserID:    in.ToUserID,
		Type:        in.Type,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
		ContactID:   in.ContactID,
	}
	if err := m.db.Create(&tx).Error; err != nil {
		return util.FailErr(err)
	}
	return util.OK(map[string]interface{}{"transaction_id": tx.ID})
}

// List returns transactions where the user is sender or receiver,
// filtered and ordered per opts.
func (m *TransactionsManager) List(userID uint, opts ListOptions) util.Result {
	q := m.db.Where("from_user_id = ? OR to_user_id = ?", userID, userID)
	if opts.DateFrom != "" {
		q = q.Where("date >= ?", opts.DateFrom)
	}
	if opts.DateTo != "" {
		q = q.Where("date <= ?", opts.DateTo)
	}
	if opts.Search != "" {
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		q = q.Where("LOWER(description) LIKE ?", pattern)
	}
	q = q.Order(opts.orderClause())
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
		if opts.Offset > 0 {
			q = q.Offset(opts.Offset)
		}
	}

	var txs []models.Transaction
	if err := q.Find(&txs).Error; err != nil {
		return util.FailErr(err)
	}
	return util.OK(txs)
}

// Delete removes a transaction if the user is its sender and reports the
// deleted count.
func (m *TransactionsManager) Delete(transactionID, userID uint) util.Result {
	res := m.db.Where("id = ? AND from_user_id = ?", transactionID, userID).
		Delete(&models.Transaction{})
	if res.Error != nil {
		return util.FailErr(res.Error)
	}
	return util.OK(map[string]interface{}{"deleted": res.RowsAffected})
}

func (m *TransactionsManager) sumAmount(cond string, args ...interface{}) (float64, error) {
	var total float64
	err := m.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where(cond, args...).
		Scan(&total).Error
	return total, err
}

// NetBalance is money actually received minus money actually paid out:
// sum(credits received) - sum(debits sent).
func (m *TransactionsManager) NetBalance(userID uint) util.Result {
	creditsReceived, err := m.sumAmount("to_user_id = ? AND type = ?", userID, models.TypeCredit)
	if err != nil {
		return util.FailErr(err)
	}
	debitsSent, err := m.sumAmount("from_user_id = ? AND type = ?", userID, models.TypeDebit)
	if err != nil {
		return util.FailErr(err)
	}
	return util.OK(creditsReceived - debitsSent)
}

// Breakdown returns the four directional sums plus net and the legacy
// aggregate. The legacy formula mixes both directions' credit/debit
// labels and is preserved verbatim for older callers.
func (m *TransactionsManager) Breakdown(userID uint) util.Result {
	var (
		b   BalanceBreakdown
		err error
	)
	if b.CreditsReceived, err = m.sumAmount("to_user_id = ? AND type = ?", userID, models.TypeCredit); err != nil {
		return util.FailErr(err)
	}
	if b.DebitsSent, err = m.sumAmount("from_user_id = ? AND type = ?", userID, models.TypeDebit); err != nil {
		return util.FailErr(err)
	}
	if b.CreditsSent, err = m.sumAmount("from_user_id = ? AND type = ?", userID, models.TypeCredit); err != nil {
		return util.FailErr(err)
	}
	if b.DebitsReceived, err = m.sumAmount("to_user_id = ? AND type = ?", userID, models.TypeDebit); err != nil {
		return util.FailErr(err)
	}
	b.Net = b.CreditsReceived - b.DebitsSent
	b.Legacy = (b.CreditsReceived + b.CreditsSent) - (b.DebitsSent + b.DebitsReceived)
	return util.OK(b)
}

// ContactBalanceFor restricts the aggregation to rows the user sent to
// the given contact: net = credits sent - debits sent.
func (m *TransactionsManager) ContactBalanceFor(userID, contactID uint) util.Result {
	var (
		b   ContactBalance
		err error
	)
	if b.CreditsSent, err = m.sumAmount(
		"from_user_id = ? AND contact_id = ? AND type = ?", userID, contactID, models.TypeCredit); err != nil {
		return util.FailErr(err)
	}
	if b.DebitsSent, err = m.sumAmount(
		"from_user_id = ? AND contact_id = ? AND type = ?", userID, contactID, models.TypeDebit); err != nil {
		return util.FailErr(err)
	}
	b.Net = b.CreditsSent - b.DebitsSent
	return util.OK(b)
}
