// Package view holds the display shapes served to the dashboard: camelCase
// field names plus computed fields, and the *Input partials accepted from
// forms. Computed fields have no Input counterpart, so decoding a display
// object into an Input drops them.
package view

import "github.com/rlaig/ezorder/internal/model"

// Entity carries the identifier and renamed timestamps shared by every display shape.
type Entity struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type User struct {
	Entity
	Email      string         `json:"email"`
	Name       string         `json:"name"`
	Avatar     *string        `json:"avatar,omitempty"`
	Role       model.UserRole `json:"role"`
	IsVerified bool           `json:"isVerified"`

	DisplayName string `json:"displayName"`
}

type UserInput struct {
	Email      *string         `json:"email,omitempty"`
	Name       *string         `json:"name,omitempty"`
	Avatar     *string         `json:"avatar,omitempty"`
	Role       *model.UserRole `json:"role,omitempty"`
	IsVerified *bool           `json:"isVerified,omitempty"`
}

type Merchant struct {
	Entity
	UserID       string               `json:"userId"`
	BusinessName string               `json:"businessName"`
	Address      *string              `json:"address,omitempty"`
	Phone        *string              `json:"phone,omitempty"`
	GcashNumber  *string              `json:"gcashNumber,omitempty"`
	Status       model.MerchantStatus `json:"status"`
	Settings     map[string]any       `json:"settings,omitempty"`

	DisplayName string `json:"displayName"`
	StatusColor string `json:"statusColor"`
	IsActive    bool   `json:"isActive"`
}

type MerchantInput struct {
	UserID       *string               `json:"userId,omitempty"`
	BusinessName *string               `json:"businessName,omitempty"`
	Address      *string               `json:"address,omitempty"`
	Phone        *string               `json:"phone,omitempty"`
	GcashNumber  *string               `json:"gcashNumber,omitempty"`
	Status       *model.MerchantStatus `json:"status,omitempty"`
	Settings     map[string]any        `json:"settings,omitempty"`
}

type QRCode struct {
	Entity
	MerchantID   string  `json:"merchantId"`
	TableName    *string `json:"tableName,omitempty"`
	LocationName *string `json:"locationName,omitempty"`
	QRCode       string  `json:"qrCode"`
	IsActive     bool    `json:"isActive"`
	UsageCount   int     `json:"usageCount"`
	LastUsed     *string `json:"lastUsed,omitempty"`

	DisplayName       string  `json:"displayName"`
	QRCodeURL         string  `json:"qrCodeUrl"`
	StatusColor       string  `json:"statusColor"`
	FormattedLastUsed *string `json:"formattedLastUsed,omitempty"`
}

type QRCodeInput struct {
	MerchantID   *string `json:"merchantId,omitempty"`
	TableName    *string `json:"tableName,omitempty"`
	LocationName *string `json:"locationName,omitempty"`
	QRCode       *string `json:"qrCode,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
	UsageCount   *int    `json:"usageCount,omitempty"`
	LastUsed     *string `json:"lastUsed,omitempty"`
}
