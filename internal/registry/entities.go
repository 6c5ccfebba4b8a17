// Package registry holds the domain types of the account registry.
package registry

import (
    "fmt"
    "math"
    "strconv"
    "strings"

    "github.com/tinoosan/accounts/internal/errs"
    "github.com/tinoosan/accounts/internal/meta"
)

// IDField is the name of the identifier field in the wire representation of an account.
const IDField = "id"

// Account is a record identified by ID. Every other field is carried in
// Attributes and is never interpreted by the registry.
type Account struct {
    ID         string
    Attributes meta.Attributes
}

// Clone returns a deep copy of the account.
func (a Account) Clone() Account {
    return Account{ID: a.ID, Attributes: a.Attributes.Clone()}
}

// Equal reports whether both accounts have the same id and attributes.
func (a Account) Equal(other Account) bool {
    return a.ID == other.ID && a.Attributes.Equal(other.Attributes)
}

// FromMap builds an Account from its flat wire form. The id field is required;
// strings are used verbatim and integral numbers become their decimal form.
func FromMap(m map[string]any) (Account, error) {
    raw, ok := m[IDField]
    if !ok || raw == nil {
        return Account{}, fmt.Errorf("%w: account id is required", errs.ErrInvalid)
    }
    id, err := NormalizeID(raw)
    if err != nil { return Account{}, err }
    attrs := meta.New(m)
    attrs.Del(IDField)
    return Account{ID: id, Attributes: attrs}, nil
}

// ToMap returns the flat wire form of the account with id as a string field.
func (a Account) ToMap() map[string]any {
    out := make(map[string]any, len(a.Attributes)+1)
    for k, v := range a.Attributes.Clone() { out[k] = v }
    out[IDField] = a.ID
    return out
}

// NormalizeID converts an identifier token into its canonical string form.
func NormalizeID(v any) (string, error) {
    switch t := v.(type) {
    case string:
        id := strings.TrimSpace(t)
        if id == "" { return "", fmt.Errorf("%w: account id is empty", errs.ErrInvalid) }
        return id, nil
    case float64:
        if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
            return "", fmt.Errorf("%w: numeric account id must be integral", errs.ErrInvalid)
        }
        return strconv.FormatFloat(t, 'f', -1, 64), nil
    case int:
        return strconv.Itoa(t), nil
    case int64:
        return strconv.FormatInt(t, 10), nil
    case int32:
        return strconv.FormatInt(int64(t), 10), nil
    case uint64:
        return strconv.FormatUint(t, 10), nil
    default:
        return "", fmt.Errorf("%w: unsupported account id type %T", errs.ErrInvalid, v)
    }
}
