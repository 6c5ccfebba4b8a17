package httpapi

import "github.com/tinoosan/accounts/internal/registry"

// accountResponse is the flat JSON form of an account: its attributes plus "id".
type accountResponse map[string]any

func toAccountResponse(a registry.Account) accountResponse { return accountResponse(a.ToMap()) }

func toAccountResponses(in []registry.Account) []accountResponse {
    out := make([]accountResponse, 0, len(in))
    for _, a := range in { out = append(out, toAccountResponse(a)) }
    return out
}
