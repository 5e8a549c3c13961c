package value

// Object is a mapping from string keys to values that preserves insertion
// order, the container behind every Gura object.
type Object struct {
	keys []string
	vals map[string]*Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{vals: make(map[string]*Value)}
}

// Put inserts a key. It returns false and leaves the object untouched when
// the key is already present; duplicate detection is the caller's concern.
func (o *Object) Put(key string, v *Value) bool {
	if _, exists := o.vals[key]; exists {
		return false
	}
	o.keys = append(o.keys, key)
	o.vals[key] = v
	return true
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (*Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

// Len returns the number of pairs.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (o *Object) Keys() []string {
	return o.keys
}

// At returns the i-th pair in insertion order.
func (o *Object) At(i int) (string, *Value) {
	k := o.keys[i]
	return k, o.vals[k]
}

// Equal reports order-sensitive deep equality.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for i, k := range o.keys {
		if other.keys[i] != k {
			return false
		}
		if !Equal(o.vals[k], other.vals[k]) {
			return false
		}
	}
	return true
}
