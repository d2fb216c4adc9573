package parser

// Interner hands out a single shared string for each distinct account name
// and currency seen during one parse. Ledgers repeat the same few hundred
// accounts and handful of currencies thousands of times, so directives end up
// sharing backing storage instead of each holding a copy.
//
// An Interner belongs to one Parser and is not safe for concurrent use.
type Interner struct {
	pool map[string]string
}

// NewInterner creates an interner with room for capacity strings.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical copy of s.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// InternBytes is Intern for a token's bytes. The lookup does not allocate;
// only the first occurrence is copied into a string.
func (i *Interner) InternBytes(b []byte) string {
	if interned, ok := i.pool[string(b)]; ok {
		return interned
	}
	s := string(b)
	i.pool[s] = s
	return s
}

// Size returns the number of distinct strings held.
func (i *Interner) Size() int {
	return len(i.pool)
}
