package domain

import (
	"github.com/kycflow/kycflow-backend/pkg/errors"
)

// VerificationStatus is the tag of a KYC verification state.
type VerificationStatus string

const (
	StatusUnverified VerificationStatus = "unverified"
	StatusVerified   VerificationStatus = "verified"
	StatusRejected   VerificationStatus = "rejected"
)

// VerificationState is the KYC state of a user. Reason is non-empty
// iff Status is StatusRejected; the transition functions are the only
// way to produce a new state, so the invariant holds structurally.
type VerificationState struct {
	Status VerificationStatus
	Reason string
}

// StateFromColumns reconstructs a tagged state from the two persisted
// columns.
func StateFromColumns(verified bool, reason string) VerificationState {
	switch {
	case verified:
		return VerificationState{Status: StatusVerified}
	case reason != "":
		return VerificationState{Status: StatusRejected, Reason: reason}
	default:
		return VerificationState{Status: StatusUnverified}
	}
}

// Columns flattens the state to the (is_kyc_verified,
// kyc_rejection_reason) column pair.
func (s VerificationState) Columns() (verified bool, reason string) {
	return s.Status == StatusVerified, s.Reason
}

// Approve unconditionally moves the state to Verified and clears any
// rejection reason. Idempotent.
func (s VerificationState) Approve() VerificationState {
	return VerificationState{Status: StatusVerified}
}

// Reject moves the state to Rejected with the given reason. The reason
// must be non-empty. Idempotent for a fixed reason.
func (s VerificationState) Reject(reason string) (VerificationState, error) {
	if reason == "" {
		return s, errors.Validation(map[string]string{
			"reason": "this field is required",
		})
	}
	return VerificationState{Status: StatusRejected, Reason: reason}, nil
}

// Verified reports whether the state is Verified.
func (s VerificationState) Verified() bool {
	return s.Status == StatusVerified
}
