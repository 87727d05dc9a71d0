package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/config"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/models"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service implements registration, login, logout, password change and
// session verification against the users/sessions/access_logs tables.
type Service struct {
	db  *gorm.DB
	cfg config.AuthConfig
}

func New(db *gorm.DB, cfg config.AuthConfig) *Service {
	if cfg.PasswordMinLen <= 0 {
		cfg.PasswordMinLen = 10
	}
	if cfg.SessionTTLMinutes <= 0 {
		cfg.SessionTTLMinutes = 120
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = 5
	}
	if cfg.LockoutSeconds <= 0 {
		cfg.LockoutSeconds = 900
	}
	return &Service{db: db, cfg: cfg}
}

// LoginResult carries the outcome of a successful authentication.
// Token is the raw opaque token, returned to the caller exactly once.
type LoginResult struct {
	UserID uint
	Token  string
}

// Identity describes the user owning a verified session.
type Identity struct {
	UserID   uint
	Username string
	Email    string
	Role     string
}

func (s *Service) passwordOK(password string) error {
	if len(password) < s.cfg.PasswordMinLen {
		return fmt.Errorf("%w: minimum %d characters", ErrWeakPassword, s.cfg.PasswordMinLen)
	}
	return nil
}

// audit appends one access_logs row. Best effort: a logging failure must
// never abort the primary operation.
func (s *Service) audit(userID *uint, ref, action string, success bool, reason string) {
	row := models.AccessLog{
		UserID:  userID,
		UserRef: ref,
		Action:  action,
		Success: success,
		Reason:  reason,
	}
	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("audit write failed (action=%s ref=%s): %v", action, ref, err)
	}
}

// Register creates an active user with role "user". Email is optional;
// when given it must be unique like the username.
func (s *Service) Register(username, email, password string) (uint, error) {
	return s.register(username, email, password, models.RoleUser, "")
}

// RegisterAdmin creates an admin account. It additionally requires the
// bootstrap admin password from configuration.
func (s *Service) RegisterAdmin(username, email, password, bootstrap string) (uint, error) {
	return s.register(username, email, password, models.RoleAdmin, bootstrap)
}

func (s *Service) register(username, email, password, role, bootstrap string) (uint, error) {
	if username == "" {
		return 0, fmt.Errorf("missing username")
	}
	if err := s.passwordOK(password); err != nil {
		return 0, err
	}
	if role == models.RoleAdmin && bootstrap != s.cfg.AdminPassword {
		return 0, ErrAdminPasswordWrong
	}

	var count int64
	q := s.db.Model(&models.User{}).Where("username = ?", username)
	if email != "" {
		q = s.db.Model(&models.User{}).Where("username = ? OR email = ?", username, email)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("check duplicates: %w", err)
	}
	if count > 0 {
		return 0, ErrDuplicateUser
	}

	hash, err := util.HashPassword(password, s.cfg.Pepper, s.cfg.PBKDF2Iterations)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if email != "" {
		user.Email = &email
	}
	if err := s.db.Create(&user).Error; err != nil {
		// unique index race: report as duplicate, not as a storage fault
		return 0, ErrDuplicateUser
	}
	log.Printf("created user id=%d username=%s role=%s", user.ID, username, role)
	return user.ID, nil
}

func (s *Service) userByRef(ref string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ? OR email = ?", ref, ref).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate checks credentials for a username or email, applies the
// lockout policy and, on success, opens a new session. Every attempt,
// success or failure, appends one audit row.
func (s *Service) Authenticate(ref, password string) (*LoginResult, error) {
	user, err := s.userByRef(ref)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.audit(nil, ref, models.ActionFailedLogin, false, "unknown user")
		}
		return nil, err
	}

	if !user.IsActive {
		s.audit(&user.ID, ref, models.ActionFailedLogin, false, "account deactivated")
		return nil, ErrAccountInactive
	}

	now := time.Now()
	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		seconds := int64(time.Until(*user.LockedUntil).Seconds()) + 1
		s.audit(&user.ID, ref, models.ActionFailedLogin, false,
			fmt.Sprintf("account locked for %ds", seconds))
		return nil, &LockedError{Seconds: seconds}
	}

	if !util.CheckPassword(password, s.cfg.Pepper, user.PasswordHash) {
		user.FailedAttempts++
		if user.FailedAttempts >= s.cfg.MaxFailedAttempts {
			lockUntil := now.Add(time.Duration(s.cfg.LockoutSeconds) * time.Second)
			user.LockedUntil = &lockUntil
			log.Printf("locking account username=%s for %ds (attempts=%d)",
				user.Username, s.cfg.LockoutSeconds, user.FailedAttempts)
		}
		if err := s.db.Model(user).Updates(map[string]interface{}{
			"failed_attempts": user.FailedAttempts,
			"locked_until":    user.LockedUntil,
		}).Error; err != nil {
			return nil, fmt.Errorf("record failed attempt: %w", err)
		}
		s.audit(&user.ID, ref, models.ActionFailedLogin, false, "wrong password")
		return nil, ErrUserNotFound
	}

	// success: reset the lockout bookkeeping and open a session
	if err := s.db.Model(user).Updates(map[string]interface{}{
		"failed_attempts": 0,
		"locked_until":    nil,
	}).Error; err != nil {
		return nil, fmt.Errorf("reset failed attempts: %w", err)
	}

	token, err := util.NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	session := models.Session{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		TokenSHA256: util.HashToken(token),
		ExpiresAt:   now.Add(time.Duration(s.cfg.SessionTTLMinutes) * time.Minute),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.audit(&user.ID, ref, models.ActionLogin, true, "")
	return &LoginResult{UserID: user.ID, Token: token}, nil
}

// VerifySession resolves a raw token to the owning user. Expired sessions
// are deleted lazily here; there is no background sweep.
func (s *Service) VerifySession(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}
	tokenSHA := util.HashToken(token)

	var session models.Session
	err := s.db.Where("token_sha256 = ?", tokenSHA).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if !time.Now().Before(session.ExpiresAt) {
		// best effort: a failed delete must not mask the expiry
		if derr := s.db.Where("token_sha256 = ?", tokenSHA).
			Delete(&models.Session{}).Error; derr != nil {
			log.Printf("delete expired session: %v", derr)
		}
		return nil, ErrSessionExpired
	}

	var user models.User
	if err := s.db.First(&user, session.UserID).Error; err != nil {
		return nil, ErrSessionNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return &Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    email,
		Role:     user.Role,
	}, nil
}

// Logout deletes the session matching the token. Idempotent: an absent
// session is not an error.
func (s *Service) Logout(token string) error {
	if token == "" {
		return nil
	}
	res := s.db.Where("token_sha256 = ?", util.HashToken(token)).Delete(&models.Session{})
	if res.Error != nil {
		return fmt.Errorf("delete session: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.audit(nil, "", models.ActionLogout, true, "")
	}
	return nil
}

// ChangePassword verifies the old password and the policy on the new one,
// then re-hashes and updates.
func (s *Service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !util.CheckPassword(oldPassword, s.cfg.Pepper, user.PasswordHash) {
		return ErrOldPasswordIncorrect
	}
	if err := s.passwordOK(newPassword); err != nil {
		return err
	}

	hash, err := util.HashPassword(newPassword, s.cfg.Pepper, s.cfg.PBKDF2Iterations)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.db.Model(&user).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.audit(&user.ID, user.Username, models.ActionPasswordChange, true, "")
	return nil
}

// Deactivate marks the account inactive. Existing sessions are not
// revoked here; VerifySession rejects them once the flag is set.
func (s *Service) Deactivate(userID uint) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("deactivate user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
