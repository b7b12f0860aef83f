package schedule

// KeyValueBlock is an ordered mapping of normalized key to first-seen
// value, parsed from one free-text cell. Later duplicates of a key are
// dropped, never overwritten, and insertion order is preserved so that
// leftover entries serialize deterministically.
type KeyValueBlock struct {
	keys   []string
	values map[string]string
}

// NewKeyValueBlock returns an empty block.
func NewKeyValueBlock() *KeyValueBlock {
	return &KeyValueBlock{values: make(map[string]string)}
}

// Set records value under key unless the key is already present.
func (b *KeyValueBlock) Set(key, value string) {
	if _, ok := b.values[key]; ok {
		return
	}
	b.keys = append(b.keys, key)
	b.values[key] = value
}

// Get returns the value for key and whether it is present.
func (b *KeyValueBlock) Get(key string) (string, bool) {
	v, ok := b.values[key]
	return v, ok
}

// First returns the value of the first present key among the given keys.
func (b *KeyValueBlock) First(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := b.values[k]; ok {
			return v, true
		}
	}
	return "", false
}

// Keys returns the keys in insertion order.
func (b *KeyValueBlock) Keys() []string {
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Len returns the number of entries.
func (b *KeyValueBlock) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Merge returns a new block combining the given blocks in order, keeping
// the first occurrence of each key.
func Merge(blocks ...*KeyValueBlock) *KeyValueBlock {
	out := NewKeyValueBlock()
	for _, b := range blocks {
		if b == nil {
			continue
		}
		for _, k := range b.keys {
			out.Set(k, b.values[k])
		}
	}
	return out
}
