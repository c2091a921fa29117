package enums

import (
	"fmt"
	"strings"
)

// FriendshipStatus is the state of one directed user-to-user edge.
// FriendshipStatusNone is never persisted; it stands for a missing row.
type FriendshipStatus string

const (
	FriendshipStatusNone      FriendshipStatus = "NONE"
	FriendshipStatusPending   FriendshipStatus = "PENDING"
	FriendshipStatusConfirmed FriendshipStatus = "CONFIRMED"
)

var validFriendshipStatuses = []FriendshipStatus{
	FriendshipStatusNone,
	FriendshipStatusPending,
	FriendshipStatusConfirmed,
}

// String implements fmt.Stringer.
func (s FriendshipStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known FriendshipStatus.
func (s FriendshipStatus) IsValid() bool {
	for _, candidate := range validFriendshipStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Stored reports whether the status is one that lives in a friendships row.
func (s FriendshipStatus) Stored() bool {
	return s == FriendshipStatusPending || s == FriendshipStatusConfirmed
}

// ParseFriendshipStatus converts raw input into a FriendshipStatus. Matching
// ignores case; an empty value reads as NONE.
func ParseFriendshipStatus(value string) (FriendshipStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return FriendshipStatusNone, nil
	}
	for _, candidate := range validFriendshipStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid friendship status %q", value)
}
