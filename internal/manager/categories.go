package manager

import (
	"strings"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/models"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/util"

	"gorm.io/gorm"
)

// CategoriesManager handles per-user expense categories.
type CategoriesManager struct {
	db *gorm.DB
}

func NewCategoriesManager(db *gorm.DB) *CategoriesManager {
	return &CategoriesManager{db: db}
}

// CreateCategoryInput is the typed request for Add.
type CreateCategoryInput struct {
	UserID      uint
	Name        string
	Description string
	Color       string
	Icon        string
}

func categoryOrderClause(order string) string {
	switch order {
	case "name_desc":
		return "name DESC, id DESC"
	case "created_asc":
		return "created_at ASC, id ASC"
	case "created_desc":
		return "created_at DESC, id DESC"
	default: // name_asc
		return "name ASC, id ASC"
	}
}

// Add creates a category for the user. Name is unique per user.
func (m *CategoriesManager) Add(in CreateCategoryInput) util.Result {
	in.Name = strings.TrimSpace(in.Name)
	if err := util.ValidateRequired("name", in.Name); err != nil {
		return util.FailErr(err)
	}
	if in.UserID == 0 {
		return util.Fail("missing user_id")
	}

	cat := models.Category{
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
	}
	if err := m.db.Create(&cat).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return util.Fail("category already exists for this user")
		}
		return util.FailErr(err)
	}
	return util.OK(map[string]interface{}{"category_id": cat.ID})
}

// List returns the user's categories with optional ordering and pagination.
func (m *CategoriesManager) List(userID uint, order string, limit, offset int) util.Result {
	q := m.db.Where("user_id = ?", userID).Order(categoryOrderClause(order))
	if limit > 0 {
		q = q.Limit(limit)
		if offset > 0 {
			q = q.Offset(offset)
		}
	}
	var cats []models.Category
	if err := q.Find(&cats).Error; err != nil {
		return util.FailErr(err)
	}
	return util.OK(cats)
}

// Delete removes a category if it belongs to the user and reports the
// deleted count. Expenses referencing the category keep their stale
// category_id: deletes never cascade.
func (m *CategoriesManager) Delete(categoryID, userID uint) util.Result {
	res := m.db.Where("id = ? AND user_id = ?", categoryID, userID).
		Delete(&models.Category{})
	if res.Error != nil {
		return util.FailErr(res.Error)
	}
	return util.OK(map[string]interface{}{"deleted": res.RowsAffected})
}

// ExistsForUser reports whether the category belongs to the user.
// Used for cross-entity validation by the expenses manager.
func (m *CategoriesManager) ExistsForUser(categoryID, userID uint) bool {
	var count int64
	if err := m.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
