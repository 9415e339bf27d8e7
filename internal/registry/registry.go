package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/vk/mgrid/internal/mbean"
	"github.com/vk/mgrid/internal/objectname"
)

// Module is the interface a compiled-in bean package implements to register
// its contract factories with the application registry.
type Module interface {
	Register(r *Registry)
}

// Factory produces one implementation instance of a managed contract.
type Factory func() mbean.Caller

// binding is one live name -> object registration.
type binding struct {
	desc mbean.Descriptor
	obj  mbean.Caller
}

// Registry is the in-process registry. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string][]Factory        // contract type name -> discoverable implementations
	descs     map[string]mbean.Descriptor // contract type name -> descriptor
	bindings  map[string]*binding         // canonical object name -> live object
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string][]Factory),
		descs:     make(map[string]mbean.Descriptor),
		bindings:  make(map[string]*binding),
	}
}

// RegisterFactory adds a discoverable implementation for a contract. Called
// during startup module registration. Registering more than one factory for
// the same contract is allowed here and rejected later, when Register
// asserts that exactly one implementation is discoverable.
func (r *Registry) RegisterFactory(desc mbean.Descriptor, fn Factory) {
	if desc.IsZero() || fn == nil {
		panic(fmt.Sprintf("registry: factory registration for %q needs a descriptor and a function", desc.TypeName()))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	slog.Debug("Registering contract factory.", "type", desc.TypeName())
	r.factories[desc.TypeName()] = append(r.factories[desc.TypeName()], fn)
	r.descs[desc.TypeName()] = desc
}

// DescriptorFor returns the descriptor registered for a contract type name.
func (r *Registry) DescriptorFor(typeName string) (mbean.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descs[typeName]
	return d, ok
}

// Descriptors lists every contract a factory was registered for, in a
// stable order.
func (r *Registry) Descriptors() []mbean.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]mbean.Descriptor, 0, len(r.descs))
	for _, d := range r.descs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TypeName() < out[j].TypeName() })
	return out
}

// instantiate asserts the single-implementation rule and builds the object.
// Callers must hold r.mu.
func (r *Registry) instantiate(desc mbean.Descriptor) (mbean.Caller, error) {
	factories := r.factories[desc.TypeName()]
	switch len(factories) {
	case 0:
		return nil, fmt.Errorf("no implementation registered for %s", desc.TypeName())
	case 1:
		obj := factories[0]()
		if obj == nil {
			return nil, fmt.Errorf("the implementation factory for %s produced no object", desc.TypeName())
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("more than one implementation registered for %s", desc.TypeName())
	}
}

// bindNew instantiates desc's implementation and binds it under name in one
// critical section, so concurrent registrations of the same name construct at
// most one instance. An existing binding wins and reports existed without
// building anything.
func (r *Registry) bindNew(desc mbean.Descriptor, name objectname.Name) (existed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[name.String()]; ok {
		return true, nil
	}
	obj, err := r.instantiate(desc)
	if err != nil {
		return false, err
	}
	r.bindings[name.String()] = &binding{desc: desc, obj: obj}
	return false, nil
}

// RegisterObject binds obj under name. Registering a name that already has a
// binding is a no-op that returns the existing name.
func (r *Registry) RegisterObject(obj mbean.Caller, desc mbean.Descriptor, name objectname.Name) (objectname.Name, error) {
	if obj == nil {
		return objectname.Name{}, fmt.Errorf("cannot register a nil object under %s", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bindings[name.String()]; exists {
		return name, nil
	}
	r.bindings[name.String()] = &binding{desc: desc, obj: obj}
	return name, nil
}

// UnregisterObject removes the binding under name, if any.
func (r *Registry) UnregisterObject(name objectname.Name) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bindings, name.String())
	return nil
}

// IsRegistered implements mbean.Connection.
func (r *Registry) IsRegistered(ctx context.Context, name objectname.Name) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bindings[name.String()]
	return ok, nil
}

// IsInstanceOf implements mbean.Connection. The bound object is an instance
// of typeName when its contract matches by qualified or simple name.
func (r *Registry) IsInstanceOf(ctx context.Context, name objectname.Name, typeName string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[name.String()]
	if !ok {
		return false, fmt.Errorf("%w: %s", mbean.ErrNameNotFound, name)
	}
	return b.desc.TypeName() == typeName || b.desc.Name == typeName, nil
}

// Invoke implements mbean.Connection. Errors returned by the object itself
// pass through unwrapped so the caller sees their original identity.
func (r *Registry) Invoke(ctx context.Context, name objectname.Name, method string, args []any) (any, error) {
	r.mu.RLock()
	b, ok := r.bindings[name.String()]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", mbean.ErrNameNotFound, name)
	}
	if !b.desc.HasOperation(method) {
		return nil, fmt.Errorf("contract %s declares no operation %q", b.desc.TypeName(), method)
	}
	return b.obj.Call(ctx, method, args)
}

// QueryAll implements mbean.Connection, listing bindings in a stable order.
func (r *Registry) QueryAll(ctx context.Context) ([]mbean.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]mbean.Entry, 0, len(r.bindings))
	for key, b := range r.bindings {
		name, err := objectname.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("registry holds an unparsable binding key %q: %w", key, err)
		}
		entries = append(entries, mbean.Entry{TypeName: b.desc.TypeName(), Name: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name.String() < entries[j].Name.String() })
	return entries, nil
}

// Close implements mbean.Connection. The in-process registry is process-wide
// and externally owned, so closing is a no-op.
func (r *Registry) Close() {}
