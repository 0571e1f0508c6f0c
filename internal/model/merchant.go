package model

// MerchantStatus is the lifecycle state of a merchant account.
type MerchantStatus string

const (
	MerchantPending   MerchantStatus = "pending"
	MerchantActive    MerchantStatus = "active"
	MerchantInactive  MerchantStatus = "inactive"
	MerchantSuspended MerchantStatus = "suspended"
)

var MerchantStatuses = []MerchantStatus{MerchantPending, MerchantActive, MerchantInactive, MerchantSuspended}

// Merchant is a record of the `merchants` collection. Each merchant belongs
// to exactly one user with the merchant role.
type Merchant struct {
	Base
	UserID       string         `json:"user_id"`
	BusinessName string         `json:"business_name"`
	Address      *string        `json:"address,omitempty"`
	Phone        *string        `json:"phone,omitempty"`
	GcashNumber  *string        `json:"gcash_number,omitempty"`
	Status       MerchantStatus `json:"status"`
	Settings     map[string]any `json:"settings,omitempty"`
}
