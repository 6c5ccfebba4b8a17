package meta

import (
    "bytes"
    "encoding/json"
    "sort"
)

// Attributes holds the uninterpreted fields of an account. Values are the
// JSON-compatible set: nil, bool, float64, string, []any and map[string]any.
type Attributes map[string]any

func New(m map[string]any) Attributes {
    if m == nil { return Attributes{} }
    out := make(Attributes, len(m))
    for k, v := range m { out[k] = cloneValue(v) }
    return out
}

// Clone returns a deep copy so that nested maps and slices are not shared.
func (a Attributes) Clone() Attributes { return New(a) }

func (a Attributes) Get(k string) (any, bool) { v, ok := a[k]; return v, ok }

func (a Attributes) Set(k string, v any) {
    if k == "" { return }
    a[k] = v
}

func (a Attributes) Del(k string) { delete(a, k) }

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
    keys := make([]string, 0, len(a))
    for k := range a { keys = append(keys, k) }
    sort.Strings(keys)
    return keys
}

// Equal reports whether both sets hold the same keys with equal values.
func (a Attributes) Equal(other Attributes) bool {
    if len(a) != len(other) { return false }
    x, err := a.MarshalStableJSON()
    if err != nil { return false }
    y, err := other.MarshalStableJSON()
    if err != nil { return false }
    return bytes.Equal(x, y)
}

// MarshalStableJSON returns a deterministic JSON representation with keys sorted.
// encoding/json sorts map keys at every nesting level.
func (a Attributes) MarshalStableJSON() ([]byte, error) {
    if len(a) == 0 { return []byte("{}"), nil }
    return json.Marshal(map[string]any(a))
}

// JSON marshal/unmarshal use stable encoding
func (a Attributes) MarshalJSON() ([]byte, error) { return a.MarshalStableJSON() }

func (a *Attributes) UnmarshalJSON(b []byte) error {
    var tmp map[string]any
    if len(b) == 0 || bytes.Equal(b, []byte("null")) { *a = Attributes{}; return nil }
    if err := json.Unmarshal(b, &tmp); err != nil { return err }
    *a = New(tmp)
    return nil
}

func cloneValue(v any) any {
    switch t := v.(type) {
    case map[string]any:
        out := make(map[string]any, len(t))
        for k, vv := range t { out[k] = cloneValue(vv) }
        return out
    case []any:
        out := make([]any, len(t))
        for i, vv := range t { out[i] = cloneValue(vv) }
        return out
    default:
        return v
    }
}
