package manager

import (
	"errors"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/auth"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/models"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/util"

	"gorm.io/gorm"
)

// UsersManager exposes account administration on top of the auth service:
// listing, role changes and deactivation. Registration and credential
// checks live in the auth service itself.
type UsersManager struct {
	db   *gorm.DB
	auth *auth.Service
}

func NewUsersManager(db *gorm.DB, authSvc *auth.Service) *UsersManager {
	return &UsersManager{db: db, auth: authSvc}
}

// userInfo is the projection returned by listing operations; the
// password hash never leaves this package.
type userInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// Register creates a regular user account through the auth service.
func (m *UsersManager) Register(username, email, password string) util.Result {
	id, err := m.auth.Register(username, email, password)
	if err != nil {
		return util.FailErr(err)
	}
	return util.OK(map[string]interface{}{"user_id": id})
}

// RegisterAdmin creates an admin account; requires the bootstrap password.
func (m *UsersManager) RegisterAdmin(username, email, password, bootstrap string) util.Result {
	id, err := m.auth.RegisterAdmin(username, email, password, bootstrap)
	if err != nil {
		return util.FailErr(err)
	}
	return util.OK(map[string]interface{}{"user_id": id})
}

// GetByUsername resolves a username to public account info.
func (m *UsersManager) GetByUsername(username string) util.Result {
	var user models.User
	err := m.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.Fail("user not found")
		}
		return util.FailErr(err)
	}
	return util.OK(userInfo{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		IsActive: user.IsActive,
	})
}

// List returns all accounts without credential material.
func (m *UsersManager) List() util.Result {
	var users []models.User
	if err := m.db.Order("id ASC").Find(&users).Error; err != nil {
		return util.FailErr(err)
	}
	infos := make([]userInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, userInfo{
			ID:       u.ID,
			Username: u.Username,
			Role:     u.Role,
			IsActive: u.IsActive,
		})
	}
	return util.OK(infos)
}

// SetRole changes an account's role.
func (m *UsersManager) SetRole(userID uint, role string) util.Result {
	if role != models.RoleUser && role != models.RoleAdmin {
		return util.Fail("invalid role (user/admin)")
	}
	res := m.db.Model(&models.User{}).Where("id = ?", userID).Update("role", role)
	if res.Error != nil {
		return util.FailErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return util.Fail("user not found")
	}
	return util.OK(nil)
}

// Deactivate marks an account inactive. Accounts are never hard-deleted.
func (m *UsersManager) Deactivate(userID uint) util.Result {
	if err := m.auth.Deactivate(userID); err != nil {
		return util.FailErr(err)
	}
	return util.OK(nil)
}
