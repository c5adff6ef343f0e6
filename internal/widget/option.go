package widget

// Option sets one construction-time property value.
type Option func(map[string]any)

// With sets name to v at construction.
func With(name string, v any) Option {
	return func(values map[string]any) {
		values[name] = v
	}
}

// Collect applies opts over base and returns the merged values. base is
// not modified.
func Collect(base map[string]any, opts ...Option) map[string]any {
	values := make(map[string]any, len(base)+len(opts))
	for k, v := range base {
		values[k] = v
	}
	for _, opt := range opts {
		opt(values)
	}
	return values
}
