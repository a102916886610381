package output

// T renders user-facing strings (panel labels, outcome messages) from a
// message catalogue.
type T interface {
	// T returns the message for key in locale, falling back to the default
	// locale and then to the key. data fills template placeholders; may be nil.
	T(locale, key string, data map[string]any) string
}
