package enums

import (
	"fmt"
	"strings"
)

// SalePlatform identifies the channel a sale was made through.
type SalePlatform string

const (
	SalePlatformAmazon  SalePlatform = "amazon"
	SalePlatformWalmart SalePlatform = "walmart"
	SalePlatformDirect  SalePlatform = "direct"
	SalePlatformOther   SalePlatform = "other"
)

var validSalePlatforms = []SalePlatform{
	SalePlatformAmazon,
	SalePlatformWalmart,
	SalePlatformDirect,
	SalePlatformOther,
}

// String implements fmt.Stringer.
func (p SalePlatform) String() string {
	return string(p)
}

// IsValid reports whether the value is a known SalePlatform.
func (p SalePlatform) IsValid() bool {
	for _, candidate := range validSalePlatforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseSalePlatform converts raw input into a SalePlatform. Matching ignores case.
func ParseSalePlatform(value string) (SalePlatform, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validSalePlatforms {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sale platform %q", value)
}

// SaleStatus tracks whether a sale counts towards revenue.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
	SaleStatusRefunded  SaleStatus = "refunded"
)

var validSaleStatuses = []SaleStatus{
	SaleStatusPending,
	SaleStatusCompleted,
	SaleStatusCancelled,
	SaleStatusRefunded,
}

// String implements fmt.Stringer.
func (s SaleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SaleStatus.
func (s SaleStatus) IsValid() bool {
	for _, candidate := range validSaleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CountsTowardsRevenue reports whether sales in this status are final.
func (s SaleStatus) CountsTowardsRevenue() bool {
	return s == SaleStatusCompleted
}

// ParseSaleStatus converts raw input into a SaleStatus. Matching ignores case.
func ParseSaleStatus(value string) (SaleStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validSaleStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sale status %q", value)
}
