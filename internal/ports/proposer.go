package ports

import (
	"context"
	"errors"
	"fmt"

	"fleet-route-service/internal/domain"
)

// ErrMissingCredential reports that the collaborator credential is not
// configured. Unlike CollaboratorError it is never repaired by the fallback
// assignment; it propagates to the caller as a request failure.
var ErrMissingCredential = errors.New("assignment collaborator: credential not configured")

// RouteExample is one historical route handed to the assignment collaborator
// as a worked example.
type RouteExample struct {
	Date    string
	BusName string
	Stops   []string
}

// Port: the external assignment collaborator. Given historical examples and
// the current request it proposes a bus -> addresses assignment. The
// proposal is untrusted; callers must validate it.
type AssignmentProposer interface {
	Propose(ctx context.Context, examples []RouteExample, req domain.AssignmentRequest) (domain.AssignmentResult, error)
}

// CollaboratorError reports that the external assignment call failed or
// returned unparsable content. Callers recover by substituting the
// deterministic fallback assignment; it is never surfaced as a hard failure.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("assignment collaborator: %s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }
