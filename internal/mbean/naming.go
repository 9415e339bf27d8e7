package mbean

import (
	"github.com/vk/mgrid/internal/errdefs"
	"github.com/vk/mgrid/internal/objectname"
)

// ObjectNameFor derives the canonical object name for a managed-interface
// contract. Caller-supplied attributes are copied in (last write wins), the
// "type" property is always set to the contract's simple name, and the
// namespace is the contract's namespace. attrs may be nil.
func ObjectNameFor(desc Descriptor, attrs map[string]string) (objectname.Name, error) {
	if desc.IsZero() {
		return objectname.Name{}, errdefs.InvalidArgumentf("managed interface descriptor is required")
	}

	props := make(map[string]string, len(attrs)+1)
	for k, v := range attrs {
		props[k] = v
	}
	props[objectname.TypeProperty] = desc.Name

	name, err := objectname.New(desc.Namespace, props)
	if err != nil {
		return objectname.Name{}, errdefs.InvalidArgumentf("cannot build the object name for %s: %w", desc.TypeName(), err)
	}
	return name, nil
}
