package enums

import "fmt"

// CacheDomain partitions the expiring cache so invalidation never relies on key
// pattern matching.
type CacheDomain string

const (
	CacheDomainProducts   CacheDomain = "products"
	CacheDomainCategories CacheDomain = "categories"
	CacheDomainSettings   CacheDomain = "settings"
)

var validCacheDomains = []CacheDomain{
	CacheDomainProducts,
	CacheDomainCategories,
	CacheDomainSettings,
}

// CacheDomains returns every known domain.
func CacheDomains() []CacheDomain {
	out := make([]CacheDomain, len(validCacheDomains))
	copy(out, validCacheDomains)
	return out
}

// String implements fmt.Stringer.
func (d CacheDomain) String() string {
	return string(d)
}

// IsValid reports whether the value is a known CacheDomain.
func (d CacheDomain) IsValid() bool {
	for _, candidate := range validCacheDomains {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseCacheDomain converts raw input into a CacheDomain.
func ParseCacheDomain(value string) (CacheDomain, error) {
	for _, candidate := range validCacheDomains {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cache domain %q", value)
}

// SyncAction is the admin-side mutation that triggers cache synchronization.
type SyncAction string

const (
	SyncActionCreate  SyncAction = "create"
	SyncActionUpdate  SyncAction = "update"
	SyncActionDelete  SyncAction = "delete"
	SyncActionRefresh SyncAction = "refresh"
)

var validSyncActions = []SyncAction{
	SyncActionCreate,
	SyncActionUpdate,
	SyncActionDelete,
	SyncActionRefresh,
}

// String implements fmt.Stringer.
func (a SyncAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known SyncAction.
func (a SyncAction) IsValid() bool {
	for _, candidate := range validSyncActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseSyncAction converts raw input into a SyncAction.
func ParseSyncAction(value string) (SyncAction, error) {
	for _, candidate := range validSyncActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sync action %q", value)
}
