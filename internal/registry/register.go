package registry

import (
	"context"

	"github.com/vk/mgrid/internal/ctxlog"
	"github.com/vk/mgrid/internal/errdefs"
	"github.com/vk/mgrid/internal/mbean"
	"github.com/vk/mgrid/internal/objectname"
)

// Register registers the managed object for desc under its derived object
// name and returns that name. Registering an already-registered contract is
// a no-op that returns the existing name.
func (r *Registry) Register(ctx context.Context, desc mbean.Descriptor) (objectname.Name, error) {
	name, err := mbean.ObjectNameFor(desc, nil)
	if err != nil {
		return objectname.Name{}, err
	}
	return r.RegisterNamed(ctx, desc, name)
}

// RegisterNamed registers the managed object for desc under name.
//
// Exactly one implementation of the contract must be discoverable in the
// factory mapping; zero or several is an argument error. Underlying registry
// failures surface as ErrOperationFailed.
func (r *Registry) RegisterNamed(ctx context.Context, desc mbean.Descriptor, name objectname.Name) (objectname.Name, error) {
	if desc.IsZero() {
		return objectname.Name{}, errdefs.InvalidArgumentf("managed interface descriptor is required")
	}
	logger := ctxlog.FromContext(ctx)

	existed, err := r.bindNew(desc, name)
	if err != nil {
		return objectname.Name{}, errdefs.InvalidArgumentf("cannot instantiate %s: %w", desc.TypeName(), err)
	}
	if existed {
		logger.Debug("Object already registered, keeping the existing binding.", "name", name.String())
		return name, nil
	}
	logger.Debug("Managed object registered.", "type", desc.TypeName(), "name", name.String())
	return name, nil
}

// Unregister removes the binding under name. Unregistering a name with no
// binding is a no-op.
func (r *Registry) Unregister(ctx context.Context, name objectname.Name) error {
	registered, _ := r.IsRegistered(ctx, name)
	if !registered {
		return nil
	}
	if err := r.UnregisterObject(name); err != nil {
		return errdefs.OperationFailedf("cannot unregister the managed object under %s: %w", name, err)
	}
	ctxlog.FromContext(ctx).Debug("Managed object unregistered.", "name", name.String())
	return nil
}
