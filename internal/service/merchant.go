package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rlaig/ezorder/internal/access"
	"github.com/rlaig/ezorder/internal/filter"
	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/repository"
	"github.com/rlaig/ezorder/internal/transform"
	"github.com/rlaig/ezorder/internal/utils"
	"github.com/rlaig/ezorder/internal/view"
)

// DefaultMerchantPassword is set when an admin creates a merchant without one.
const DefaultMerchantPassword = "TempPassword123!"

type MerchantService struct {
	W          *access.Wrapper
	Users      *repository.UserRepo
	BcryptCost int
	Log        *zap.Logger
}

func NewMerchantService(w *access.Wrapper, users *repository.UserRepo, cost int, log *zap.Logger) *MerchantService {
	return &MerchantService{W: w, Users: users, BcryptCost: cost, Log: log}
}

// NewMerchant is the admin onboarding form.
type NewMerchant struct {
	BusinessName      string `json:"businessName"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	GcashNumber       string `json:"gcashNumber"`
	VerifyImmediately bool   `json:"verifyImmediately"`
}

// List returns merchants newest first. status and search are optional; search
// matches the business name case-insensitively.
func (s *MerchantService) List(ctx context.Context, page, perPage int, status, search string) (access.Page[view.Merchant], error) {
	var conds []string
	if status != "" {
		if !slices.Contains(model.MerchantStatuses, model.MerchantStatus(status)) {
			return access.Page[view.Merchant]{}, invalid("status", "unknown merchant status")
		}
		conds = append(conds, filter.Eq("status", status))
	}
	if q := strings.TrimSpace(search); q != "" {
		conds = append(conds, "business_name ~ "+filter.Quote(q))
	}
	return access.GetList(ctx, s.W, transform.Merchants, page, perPage, access.Options{
		Filter: filter.And(conds...),
		Sort:   "-created",
	})
}

func (s *MerchantService) Get(ctx context.Context, id string) (view.Merchant, error) {
	return access.GetOne(ctx, s.W, transform.Merchants, id)
}

// Create opens a merchant account: a user with the merchant role, then a
// pending merchant record linked to it. The user is removed again when the
// merchant record cannot be written.
func (s *MerchantService) Create(ctx context.Context, in NewMerchant) (view.Merchant, error) {
	name := strings.TrimSpace(in.BusinessName)
	email := strings.TrimSpace(in.Email)
	switch {
	case name == "":
		return view.Merchant{}, invalid("businessName", "required")
	case email == "" || !strings.Contains(email, "@"):
		return view.Merchant{}, invalid("email", "a valid e-mail address is required")
	}
	password := lo.Ternary(in.Password != "", in.Password, DefaultMerchantPassword)
	if len(password) < utils.MinPasswordLength {
		return view.Merchant{}, invalid("password", "must be at least 8 characters")
	}

	user, err := s.Users.Create(ctx, repository.NewUser{
		Email:    email,
		Name:     name,
		Password: password,
		Role:     model.RoleMerchant,
	}, s.BcryptCost)
	if errors.Is(err, repository.ErrEmailExists) {
		return view.Merchant{}, ErrEmailInUse
	}
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return view.Merchant{}, invalid("password", err.Error())
	}
	if err != nil {
		return view.Merchant{}, err
	}

	if in.VerifyImmediately {
		if err := s.Users.SetVerified(ctx, user.ID, true); err != nil {
			s.Log.Warn("verify merchant user failed, continuing", zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	m, err := access.Create(ctx, s.W, transform.Merchants, view.MerchantInput{
		UserID:       &user.ID,
		BusinessName: &name,
		Address:      optional(in.Address),
		Phone:        optional(in.Phone),
		GcashNumber:  optional(in.GcashNumber),
		Status:       lo.ToPtr(model.MerchantPending),
		Settings:     map[string]any{},
	})
	if err != nil {
		if derr := s.Users.Delete(ctx, user.ID); derr != nil {
			s.Log.Error("rollback merchant user failed", zap.String("user_id", user.ID), zap.Error(derr))
		}
		return view.Merchant{}, err
	}
	s.Log.Info("merchant created", zap.String("merchant_id", m.ID), zap.String("user_id", user.ID))
	return m, nil
}

// Update applies an admin edit. The owning user cannot be reassigned.
func (s *MerchantService) Update(ctx context.Context, id string, in view.MerchantInput) (view.Merchant, error) {
	in.UserID = nil
	if in.Status != nil && !slices.Contains(model.MerchantStatuses, *in.Status) {
		return view.Merchant{}, invalid("status", "unknown merchant status")
	}
	if in.BusinessName != nil && strings.TrimSpace(*in.BusinessName) == "" {
		return view.Merchant{}, invalid("businessName", "must not be empty")
	}
	return access.Update(ctx, s.W, transform.Merchants, id, in)
}

func (s *MerchantService) UpdateStatus(ctx context.Context, id string, status model.MerchantStatus) (view.Merchant, error) {
	return s.Update(ctx, id, view.MerchantInput{Status: &status})
}

// ForUser returns the merchant record owned by userID.
func (s *MerchantService) ForUser(ctx context.Context, userID string) (model.Merchant, error) {
	ms, err := access.ListRecords(ctx, s.W, transform.Merchants, access.Options{
		Filter: filter.Eq("user_id", userID),
		Sort:   "created",
	})
	if err != nil {
		return model.Merchant{}, err
	}
	if len(ms) == 0 {
		return model.Merchant{}, ErrNoMerchantProfile
	}
	return ms[0], nil
}

func (s *MerchantService) Profile(ctx context.Context, userID string) (view.Merchant, error) {
	m, err := s.ForUser(ctx, userID)
	if err != nil {
		return view.Merchant{}, err
	}
	return transform.MerchantToFrontend(m, s.W.Env()), nil
}

// UpdateProfile is the merchant's own edit. Status and ownership stay with admins.
func (s *MerchantService) UpdateProfile(ctx context.Context, userID string, in view.MerchantInput) (view.Merchant, error) {
	m, err := s.ForUser(ctx, userID)
	if err != nil {
		return view.Merchant{}, err
	}
	in.Status = nil
	return s.Update(ctx, m.ID, in)
}

// DashboardStats summarises the platform for the admin dashboard. Revenue
// counts completed orders only.
type DashboardStats struct {
	TotalMerchants    int                          `json:"totalMerchants"`
	MerchantsByStatus map[model.MerchantStatus]int `json:"merchantsByStatus"`
	TotalOrders       int                          `json:"totalOrders"`
	TotalRevenue      float64                      `json:"totalRevenue"`
	FormattedRevenue  string                       `json:"formattedRevenue"`
}

func (s *MerchantService) Stats(ctx context.Context) (DashboardStats, error) {
	merchants, err := access.ListRecords(ctx, s.W, transform.Merchants, access.Options{})
	if err != nil {
		return DashboardStats{}, err
	}
	orders, err := access.ListRecords(ctx, s.W, transform.Orders, access.Options{})
	if err != nil {
		return DashboardStats{}, err
	}
	byStatus := make(map[model.MerchantStatus]int, len(model.MerchantStatuses))
	for _, st := range model.MerchantStatuses {
		byStatus[st] = 0
	}
	for _, m := range merchants {
		byStatus[m.Status]++
	}
	completed := lo.Filter(orders, func(o model.Order, _ int) bool { return o.Status == model.OrderCompleted })
	revenue := lo.Reduce(completed, func(sum decimal.Decimal, o model.Order, _ int) decimal.Decimal {
		return sum.Add(decimal.NewFromFloat(o.TotalAmount))
	}, decimal.Zero).Round(2)
	return DashboardStats{
		TotalMerchants:    len(merchants),
		MerchantsByStatus: byStatus,
		TotalOrders:       len(orders),
		TotalRevenue:      revenue.InexactFloat64(),
		FormattedRevenue:  transform.FormatDecimal(revenue),
	}, nil
}

// optional maps a blank form value to absent.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
