package node

import (
	"path"
	"reflect"
	"runtime"
	"slices"
	"strings"
)

var errorType = reflect.TypeFor[error]()

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(errorType)
}

// partition splits fields into scalars and composites, keeping declaration order within
// each group. Scalars come first at every level so the output order is reproducible.
func partition(fields []Field) (scalars, composites []Field) {
	for _, f := range fields {
		if f.Dispatch == DispatcherScalar {
			scalars = append(scalars, f)
		} else {
			composites = append(composites, f)
		}
	}

	return slices.Clip(scalars), slices.Clip(composites)
}

// funcName splits the runtime name of a function, such as "net/netip.Addr.String" or
// "example.com/pkg.Parse", into the package alias and the name within the package.
func funcName(fn reflect.Value) (alias, name string) {
	_, file := path.Split(runtime.FuncForPC(fn.Pointer()).Name())
	alias, name, _ = strings.Cut(file, ".")

	return alias, name
}
