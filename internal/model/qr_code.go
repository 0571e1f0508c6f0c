package model

// QrCode is a printed table or location code that opens a merchant's menu.
type QrCode struct {
	Base
	MerchantID         string  `json:"merchant_id"`
	TableIdentifier    *string `json:"table_identifier,omitempty"`
	LocationIdentifier *string `json:"location_identifier,omitempty"`
	Code               string  `json:"code"`
	Active             bool    `json:"active"`
	UsageCount         int     `json:"usage_count"`
	LastUsed           *string `json:"last_used,omitempty"`
}
