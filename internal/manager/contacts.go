package manager

import (
	"strings"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/models"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/util"

	"gorm.io/gorm"
)

// ContactsManager handles the per-user address book.
type ContactsManager struct {
	db *gorm.DB
}

func NewContactsManager(db *gorm.DB) *ContactsManager {
	return &ContactsManager{db: db}
}

// Add creates a contact for the user. Name must be non-empty and
// unique within the user's address book.
func (m *ContactsManager) Add(userID uint, name string) util.Result {
	name = strings.TrimSpace(name)
	if err := util.ValidateRequired("name", name); err != nil {
		return util.FailErr(err)
	}
	if userID == 0 {
		return util.Fail("missing user_id")
	}

	contact := models.Contact{UserID: userID, Name: name}
	if err := m.db.Create(&contact).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return util.Fail("contact already exists for this user")
		}
		return util.FailErr(err)
	}
	return util.OK(map[string]interface{}{"contact_id": contact.ID})
}

// List returns the user's contacts ordered by name.
func (m *ContactsManager) List(userID uint) util.Result {
	var contacts []models.Contact
	if err := m.db.Where("user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&contacts).Error; err != nil {
		return util.FailErr(err)
	}
	return util.OK(contacts)
}

// Delete removes a contact if it belongs to the user. The deleted count
// is reported; 0 means not found or not owned, never an error.
func (m *ContactsManager) Delete(contactID, userID uint) util.Result {
	res := m.db.Where("id = ? AND user_id = ?", contactID, userID).
		Delete(&models.Contact{})
	if res.Error != nil {
		return util.FailErr(res.Error)
	}
	return util.OK(map[string]interface{}{"deleted": res.RowsAffected})
}

// ExistsForUser reports whether the contact belongs to the user.
// Used for cross-entity validation by the transactions manager.
func (m *ContactsManager) ExistsForUser(contactID, userID uint) bool {
	var count int64
	if err := m.db.Model(&models.Contact{}).
		Where("id = ? AND user_id = ?", contactID, userID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
