package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/repository"
)

// EnsureAdmin creates the bootstrap admin account when email is set and no
// user holds it yet. An existing account is left untouched.
func EnsureAdmin(ctx context.Context, users *repository.UserRepo, email, password string, cost int, log *zap.Logger) error {
	if email == "" {
		log.Debug("bootstrap admin skipped: ADMIN_EMAIL unset")
		return nil
	}
	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}
	if password == "" {
		return errors.New("ADMIN_PASSWORD is required to create the bootstrap admin")
	}
	u, err := users.Create(ctx, repository.NewUser{
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     model.RoleAdmin,
		Verified: true,
	}, cost)
	if err != nil {
		return err
	}
	log.Info("bootstrap admin created", zap.String("user_id", u.ID), zap.String("email", u.Email))
	return nil
}
