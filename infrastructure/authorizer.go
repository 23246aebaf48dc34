package infrastructure

import (
	"context"

	"beatledger/domain/interfaces"

	"github.com/google/uuid"
)

// roleAuthorizer implements the Authorizer capability check against a
// configured set of administrator actor IDs. Identities live in deployment
// configuration, never in compensation logic.
type roleAuthorizer struct {
	admins map[uuid.UUID]struct{}
}

// NewRoleAuthorizer creates an authorizer granting the compensation
// management capability to the given actors
func NewRoleAuthorizer(adminIDs []uuid.UUID) interfaces.Authorizer {
	admins := make(map[uuid.UUID]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &roleAuthorizer{admins: admins}
}

// CanManageCompensation reports whether the actor holds the capability
func (a *roleAuthorizer) CanManageCompensation(_ context.Context, actorID uuid.UUID) (bool, error) {
	_, ok := a.admins[actorID]
	return ok, nil
}
