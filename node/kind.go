package node

//go:generate go tool stringer -type=DispatcherEnum -output=kind_string.go

type DispatcherEnum int

const (
	DispatcherUnknown     DispatcherEnum = iota
	DispatcherScalar                     // converted to a single string
	DispatcherStruct                     // struct value, walked field by field and owned by its parent
	DispatcherPointer                    // pointer to struct, walked field by field and shared with its parent
	DispatcherUnsupported                // slices, maps, interfaces and other shapes that have no flat form

	// DispatcherTotal is a constant that represents the total number of kinds defined
	DispatcherTotal = int(iota)
)
