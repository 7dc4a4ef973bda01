// Package access decides whether a principal may perform an operation. The
// roles allowed for an operation are declared where the operation is wired.
package access

import (
	"slices"

	"github.com/eventhub/platform/internal/core/domain"
)

// Authorize rejects anonymous principals with domain.ErrPrincipalMissing, even
// when allowed is empty. A non-empty allowed list additionally requires the
// principal's role to be in it, else domain.ErrRoleNotAllowed.
func Authorize(p domain.Principal, allowed ...domain.Role) error {
	if !p.Authenticated() {
		return domain.ErrPrincipalMissing
	}
	if len(allowed) > 0 && !slices.Contains(allowed, p.Role) {
		return domain.ErrRoleNotAllowed
	}
	return nil
}
