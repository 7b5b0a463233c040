package model

import "strings"

// ReferralCode is one owner's referral code together with everyone who has
// redeemed it. The JSON tags match the on-disk format of the legacy
// codigos.json file, so existing data files load unchanged.
type ReferralCode struct {
	OwnerName   string   `json:"nome"`
	OwnerHandle string   `json:"insta"`
	Code        string   `json:"codigo"`
	Redeemers   []string `json:"reivindicadores_usados"`
}

// NewReferralCode creates a code with an empty redeemer set.
func NewReferralCode(ownerName, ownerHandle, code string) ReferralCode {
	return ReferralCode{
		OwnerName:   ownerName,
		OwnerHandle: ownerHandle,
		Code:        code,
		Redeemers:   []string{},
	}
}

// IsOwner reports whether handle identifies the code's owner.
// Owner handles are stored lower-cased but compared case-insensitively.
func (c ReferralCode) IsOwner(handle string) bool {
	return strings.EqualFold(c.OwnerHandle, handle)
}

// HasRedeemer reports whether handle already redeemed this code.
func (c ReferralCode) HasRedeemer(handle string) bool {
	for _, r := range c.Redeemers {
		if strings.EqualFold(r, handle) {
			return true
		}
	}
	return false
}
