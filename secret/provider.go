package secret

import "sync"

// Source yields the signing secret for one configuration scope.
// Implementations must be deterministic for a fixed underlying state:
// resolving twice without an administrative change returns the same key.
type Source interface {
	Resolve() (string, error)
}

// Static is an explicitly configured secret, returned unchanged.
type Static string

// Resolve implements [Source].
func (s Static) Resolve() (string, error) {
	return string(s), nil
}

// Cached wraps a Source so the underlying resolution runs at most once.
// Safe for concurrent use; every caller observes the same key (or the same
// resolution error).
func Cached(src Source) Source {
	return &cachedSource{src: src}
}

type cachedSource struct {
	src  Source
	once sync.Once

	value string
	err   error
}

func (c *cachedSource) Resolve() (string, error) {
	c.once.Do(func() {
		c.value, c.err = c.src.Resolve()
	})
	return c.value, c.err
}
