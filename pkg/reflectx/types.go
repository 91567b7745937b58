package reflectx

import "reflect"

// IsType reports whether t is exactly the type T. Unlike comparing against
// reflect.TypeOf of a zero value, this also works when T is an interface
// such as context.Context.
func IsType[T any](t reflect.Type) bool {
	return t == reflect.TypeFor[T]()
}
