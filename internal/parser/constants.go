package parser

const (
	// method set of the predeclared error interface
	errorInterfaceName = "error"
	errorMethodName    = "Error"
	errorMethodReturns = "string"
)

// predeclared types that can only appear in a type set, never in a method set
var typeSetIdents = map[string]bool{
	"comparable": true,
	"bool":       true, "string": true, "byte": true, "rune": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
}
