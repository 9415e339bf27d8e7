package mbean

import (
	"context"
	"errors"

	"github.com/vk/mgrid/internal/errdefs"
	"github.com/vk/mgrid/internal/objectname"
)

// Validate confirms that desc is a legitimate managed-interface contract,
// that name is registered on conn, and that the registered object is an
// instance of the contract.
//
// Argument-shape checks run before any registry access, so malformed calls
// fail fast without touching the connection. Registry lookups that cannot be
// completed surface as ErrOperationFailed wrapping the transport cause; a
// name that disappears between the registration check and the instance
// check is normalized to the same "not registered" outcome as a name that
// was never there.
func Validate(ctx context.Context, desc Descriptor, name objectname.Name, conn Connection) error {
	if desc.IsZero() {
		return errdefs.InvalidArgumentf("managed interface descriptor is required")
	}
	if !desc.ManagedContract() {
		return errdefs.InvalidArgumentf("type %s is not a managed interface contract", desc.TypeName())
	}

	registered, err := conn.IsRegistered(ctx, name)
	if err != nil {
		return errdefs.OperationFailedf("cannot validate the managed object for %s under %s: %w", desc.TypeName(), name, err)
	}
	if !registered {
		return errdefs.InvalidArgumentf("the object name %s is not registered", name)
	}

	instance, err := conn.IsInstanceOf(ctx, name, desc.TypeName())
	switch {
	case errors.Is(err, ErrNameNotFound):
		// Unregistered between the two checks. Same outcome as never
		// registered.
		return errdefs.InvalidArgumentf("the object name %s is not registered", name)
	case err != nil:
		return errdefs.OperationFailedf("cannot validate the managed object for %s under %s: %w", desc.TypeName(), name, err)
	case !instance:
		return errdefs.InvalidArgumentf("the object name %s is not an instance of %s", name, desc.TypeName())
	}
	return nil
}
