package langmap

// Resolver maps bare file names to extension mappings. Lookup is an
// open-addressing hash table with linear probing, built once over a static
// table. Keys fold ASCII case; on a key collision the first-inserted
// mapping wins. If construction cannot place every entry the resolver keeps
// a linear-scan fallback so no mapping is ever unreachable.
type Resolver struct {
	entries  []Mapping
	buckets  []*Mapping
	mask     uint32
	overflow bool
}

// maxProbe bounds the linear probe distance during construction and lookup.
const maxProbe = 64

// NewResolver builds a resolver over the given mappings. The slice is
// copied; each mapping is assigned its table index.
func NewResolver(mappings []Mapping) *Resolver {
	entries := make([]Mapping, len(mappings))
	copy(entries, mappings)
	for i := range entries {
		entries[i].Index = i
	}

	size := uint32(16)
	for size < uint32(len(entries))*2 {
		size *= 2
	}

	r := &Resolver{
		entries: entries,
		buckets: make([]*Mapping, size),
		mask:    size - 1,
	}

	for i := range r.entries {
		m := &r.entries[i]
		if !r.insert(m) {
			r.overflow = true
		}
	}
	return r
}

// NewBuiltinResolver builds a resolver over the static builtin table.
func NewBuiltinResolver() *Resolver {
	return NewResolver(builtins)
}

// insert places m unless its key is already taken (first wins) or the probe
// budget is exhausted.
func (r *Resolver) insert(m *Mapping) bool {
	h := foldHash(m.Ext) & r.mask
	for i := uint32(0); i < maxProbe; i++ {
		slot := (h + i) & r.mask
		cur := r.buckets[slot]
		if cur == nil {
			r.buckets[slot] = m
			return true
		}
		if foldEqual(cur.Ext, m.Ext) {
			// Duplicate key: keep the first-inserted mapping.
			return true
		}
	}
	return false
}

// lookup finds the mapping for a pre-folded key, or nil.
func (r *Resolver) lookup(key string) *Mapping {
	h := foldHash(key) & r.mask
	for i := uint32(0); i < maxProbe; i++ {
		slot := (h + i) & r.mask
		cur := r.buckets[slot]
		if cur == nil {
			break
		}
		if foldEqual(cur.Ext, key) {
			return cur
		}
	}
	if r.overflow {
		for i := range r.entries {
			if foldEqual(r.entries[i].Ext, key) {
				return &r.entries[i]
			}
		}
	}
	return nil
}

// Resolve maps a bare file name (no directory part) to its extension
// mapping. The whole name is tried first as a dot-prefixed key, then every
// suffix starting at each dot from the leftmost occurrence onward, so a
// multi-segment extension beats its shorter tail. A false result means the
// file has no known mapping and should be skipped; it is not an error.
func (r *Resolver) Resolve(name string) (*Mapping, bool) {
	if name == "" {
		return nil, false
	}

	if m := r.lookup("." + name); m != nil {
		return m, true
	}

	for i := 0; i < len(name); i++ {
		if name[i] != '.' {
			continue
		}
		if m := r.lookup(name[i:]); m != nil {
			return m, true
		}
	}
	return nil, false
}

// Mappings returns the resolver's table in insertion order.
func (r *Resolver) Mappings() []Mapping {
	return r.entries
}

// Len returns the number of mappings.
func (r *Resolver) Len() int {
	return len(r.entries)
}

// foldHash is an FNV-1a hash over the ASCII-lowercased key.
func foldHash(key string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(key); i++ {
		h ^= uint32(foldByte(key[i]))
		h *= 16777619
	}
	return h
}

func foldEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if foldByte(a[i]) != foldByte(b[i]) {
			return false
		}
	}
	return true
}

func foldByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
