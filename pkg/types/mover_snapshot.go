package types

import "github.com/shopspring/decimal"

// MoverSnapshot is the denormalized mover display data frozen into a
// comparison entry at generation time.
type MoverSnapshot struct {
	CompanyNameHe       string          `json:"companyNameHe"`
	CompanyNameEn       string          `json:"companyNameEn,omitempty"`
	LogoURL             string          `json:"logoUrl,omitempty"`
	Rating              decimal.Decimal `json:"rating"`
	ReviewCount         int             `json:"reviewCount"`
	CompletedOrderCount int             `json:"completedOrderCount"`
	IsVerified          bool            `json:"isVerified"`
}
