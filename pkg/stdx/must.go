package stdx

// Must1 returns v, or panics when err is not nil.
//
// It keeps constructor calls on one line where an error can only come from a
// programming mistake, e.g. building a tool definition from a function literal:
//
//	def := stdx.Must1(tool.New(fn, tool.Name("get_info")))
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
