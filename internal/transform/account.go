package transform

import (
	"maps"
	"strings"

	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/view"
)

func entity(b model.Base) view.Entity {
	return view.Entity{ID: b.ID, CreatedAt: b.Created, UpdatedAt: b.Updated}
}

// UserToFrontend never exposes the password hash.
func UserToFrontend(u model.User, _ Env) view.User {
	display := u.Name
	if display == "" {
		display, _, _ = strings.Cut(u.Email, "@")
	}
	return view.User{
		Entity:      entity(u.Base),
		Email:       u.Email,
		Name:        u.Name,
		Avatar:      clone(u.Avatar),
		Role:        u.Role,
		IsVerified:  u.Verified,
		DisplayName: display,
	}
}

func UserToDatabase(in view.UserInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "email", in.Email)
	model.Put(p, "name", in.Name)
	model.Put(p, "avatar", in.Avatar)
	model.Put(p, "role", in.Role)
	model.Put(p, "verified", in.IsVerified)
	return p
}

func MerchantToFrontend(m model.Merchant, _ Env) view.Merchant {
	return view.Merchant{
		Entity:       entity(m.Base),
		UserID:       m.UserID,
		BusinessName: m.BusinessName,
		Address:      clone(m.Address),
		Phone:        clone(m.Phone),
		GcashNumber:  clone(m.GcashNumber),
		Status:       m.Status,
		Settings:     maps.Clone(m.Settings),
		DisplayName:  m.BusinessName,
		StatusColor:  MerchantStatusColor(m.Status),
		IsActive:     m.Status == model.MerchantActive,
	}
}

func MerchantToDatabase(in view.MerchantInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "user_id", in.UserID)
	model.Put(p, "business_name", in.BusinessName)
	model.Put(p, "address", in.Address)
	model.Put(p, "phone", in.Phone)
	model.Put(p, "gcash_number", in.GcashNumber)
	model.Put(p, "status", in.Status)
	model.PutMap(p, "settings", in.Settings)
	return p
}

func CustomerToFrontend(c model.Customer, _ Env) view.Customer {
	display := c.Name
	if display == "" {
		display = "Guest"
	}
	return view.Customer{
		Entity:        entity(c.Base),
		CustomerName:  c.Name,
		CustomerPhone: clone(c.Phone),
		Preferences:   maps.Clone(c.Preferences),
		DisplayName:   display,
	}
}

func CustomerToDatabase(in view.CustomerInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "name", in.CustomerName)
	model.Put(p, "phone", in.CustomerPhone)
	model.PutMap(p, "preferences", in.Preferences)
	return p
}
