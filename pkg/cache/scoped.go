package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving callers such as
// separate service tenants their own namespace in a shared backend.
//
//	tenant := NewScopedKeyer(NewDefaultKeyer(), "tenant:acme:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, falling back to the DefaultKeyer when nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey returns the prefixed inner layout key.
func (k *ScopedKeyer) LayoutKey(cityHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(cityHash, opts)
}
