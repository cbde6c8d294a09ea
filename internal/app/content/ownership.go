package content

import (
	"fmt"

	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
	"github.com/google/uuid"
)

// requireOwner gates every mutation of an owned resource. The actor id always
// comes from the authenticated principal, never from request input, and the
// owner id from a fresh load of the resource.
func requireOwner(ownerID, actor uuid.UUID, action, resource string) error {
	if ownerID != actor {
		return customErrors.NewForbidden(
			fmt.Sprintf("You do not have permission to %s this %s", action, resource))
	}
	return nil
}
