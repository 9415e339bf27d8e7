package app

import (
	"github.com/vk/mgrid/beans/runtimeinfo"
	"github.com/vk/mgrid/internal/registry"
)

// coreModules is the definitive list of bean modules compiled into the
// binary.
var coreModules = []registry.Module{
	&runtimeinfo.Module{},
}
