package ptr

// Ref returns a pointer to v. It is mostly useful for taking the address of
// literals when filling optional struct fields.
func Ref[T any](v T) *T {
	return &v
}
