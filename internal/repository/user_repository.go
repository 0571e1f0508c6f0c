package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/rlaig/ezorder/internal/access"
	"github.com/rlaig/ezorder/internal/filter"
	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/transform"
	"github.com/rlaig/ezorder/internal/utils"
)

// UserRepo reads and writes the users collection in persisted shape, which
// is the only shape that carries password_hash.
type UserRepo struct{ w *access.Wrapper }

func NewUserRepo(w *access.Wrapper) *UserRepo { return &UserRepo{w: w} }

// NewUser is the input of Create. Password is hashed before storage.
type NewUser struct {
	ID       string
	Email    string
	Name     string
	Password string
	Role     model.UserRole
	Verified bool
}

// Create inserts a user. A taken e-mail address yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, in NewUser, cost int) (model.User, error) {
	hash, err := utils.HashPassword(in.Password, cost)
	if err != nil {
		return model.User{}, err
	}
	data := map[string]any{
		"email":         normalizeEmail(in.Email),
		"name":          strings.TrimSpace(in.Name),
		"role":          in.Role,
		"verified":      in.Verified,
		"password_hash": hash,
	}
	if in.ID != "" {
		data["id"] = in.ID
	}
	raw, err := r.w.Collection(model.CollectionUsers).Create(ctx, data, model.KindNone)
	if err != nil {
		var ae *access.Error
		if errors.As(err, &ae) && ae.Kind == access.Conflict {
			if _, ok := ae.Fields["email"]; ok {
				return model.User{}, ErrEmailExists
			}
		}
		return model.User{}, err
	}
	return transform.Users.Decode(raw)
}

// GetByEmail fetches a user by normalized e-mail.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	users, err := access.ListRecords(ctx, r.w, transform.Users, access.Options{
		Filter: filter.Eq("email", normalizeEmail(email)),
	})
	if err != nil {
		return model.User{}, err
	}
	if len(users) == 0 {
		return model.User{}, ErrUserNotFound
	}
	return users[0], nil
}

// GetByID fetches a user by record id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	u, err := access.GetRecord(ctx, r.w, transform.Users, id)
	if errors.Is(err, access.ErrNotFound) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// SetVerified marks the account verified or not.
func (r *UserRepo) SetVerified(ctx context.Context, id string, verified bool) error {
	_, err := r.w.Collection(model.CollectionUsers).Update(ctx, id, map[string]any{"verified": verified}, model.KindNone)
	if errors.Is(err, access.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// Delete removes a user. It is used to undo a partially created account.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	err := access.Delete(ctx, r.w, transform.Users, id)
	if errors.Is(err, access.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
