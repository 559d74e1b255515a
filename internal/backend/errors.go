package backend

import "errors"

// Backend failure taxonomy. All are recoverable; the presentation layer
// maps each to its own affordance (retry, remediation hint, inline error).
var (
	// ErrConnectivity marks a network or backend failure. An
	// already-loaded catalog must not be cleared because of it.
	ErrConnectivity = errors.New("backend unreachable")

	// ErrPermission marks a write rejected by the backend's access
	// policy, distinguished from generic failure so the operator is
	// told specifically that write access is disabled.
	ErrPermission = errors.New("write access disabled by backend policy")
)
