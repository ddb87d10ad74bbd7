package constants

// Sanitization warning tags. Advisory only, never a reason to block use of
// the cleaned value.
const (
	WarnAccountMissing       = "AccountMissing"
	WarnAccountLengthSuspect = "AccountLengthSuspect"
	WarnAccountNormalized    = "AccountNormalized"
	WarnSwiftLengthSuspect   = "SwiftLengthSuspect"
	WarnSwiftNormalized      = "SwiftNormalized"
	WarnGenericNormalized    = "GenericNormalized"
)
