package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/towerledger/backend/internal/models"
	"gorm.io/gorm"
)

var ErrCredentials = errors.New("the username or password is wrong")

// Login checks the credentials of an admin or, if no admin has the
// username, of the manager with that email. It returns a new token and
// the role it was issued for.
func Login(ctx context.Context, db *gorm.DB, issuer *Issuer, username, password string) (string, Role, error) {
	db = db.WithContext(ctx)

	var admin models.Admin
	err := db.First(&admin, "username = ?", username).Error
	if err == nil {
		if !CheckPassword(password, admin.PasswordHash) {
			return "", "", ErrCredentials
		}

		token, err := issuer.Issue(admin.ID, admin.Username, RoleAdmin)
		return token, RoleAdmin, err
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return "", "", err
	}

	var manager models.Manager
	err = db.First(&manager, "email = ?", models.NormalizeEmail(username)).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return "", "", ErrCredentials
	}
	if err != nil {
		return "", "", err
	}

	if !CheckPassword(password, manager.PasswordHash) {
		return "", "", ErrCredentials
	}

	token, err := issuer.Issue(manager.ID, manager.Email, RoleManager)
	return token, RoleManager, err
}

// EnsureAdmin creates the admin if no admin with the username exists.
// Existing admins are not modified.
func EnsureAdmin(ctx context.Context, db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	err := db.WithContext(ctx).Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	err = db.WithContext(ctx).Create(&models.Admin{Username: username, PasswordHash: hash}).Error
	if err != nil {
		return fmt.Errorf("creating admin %s: %w", username, err)
	}

	log.Info().Str("username", username).Msg("created admin")
	return nil
}
