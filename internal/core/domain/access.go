package domain

// Capability is what a route declares it needs from the caller. The access
// gate and the minimum-role check both read it.
type Capability int

const (
	// CapabilityPublic routes accept anonymous callers.
	CapabilityPublic Capability = iota
	// CapabilityAuthenticated routes need any valid token.
	CapabilityAuthenticated
	// CapabilitySelf routes need a valid token and act only on the caller's
	// own account. Non-admins may write through them.
	CapabilitySelf
	// CapabilityAdmin routes need the Admin role.
	CapabilityAdmin
)

func (c Capability) String() string {
	switch c {
	case CapabilityPublic:
		return "public"
	case CapabilityAuthenticated:
		return "authenticated"
	case CapabilitySelf:
		return "self"
	case CapabilityAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// RequiresAuthentication reports whether anonymous callers must be rejected.
func (c Capability) RequiresAuthentication() bool {
	return c != CapabilityPublic
}

// Decision is the outcome of an access gate check. Reason is one of
// ErrAccessInactive or ErrAdminRequired when Allowed is false.
type Decision struct {
	Allowed bool
	Reason  error
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason error) Decision { return Decision{Reason: reason} }
