package domain

import "errors"

var (
	// Common domain errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOwnerExists     = errors.New("owner already has a referral code")
	ErrCodeNotFound    = errors.New("referral code not found")
	ErrSelfRedemption  = errors.New("owner cannot redeem their own code")
	ErrAlreadyRedeemed = errors.New("code already redeemed by this user")
	ErrEmailExists     = errors.New("lead email already registered")
	ErrLockNotHeld     = errors.New("collection lock not held")
)
