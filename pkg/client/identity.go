// Package client is the embeddable core of the eChallan dashboard: a durable
// session store, an HTTP API client with bearer injection, an auth service,
// and a route guard. The terminal dashboard in cmd/echallan consumes it; any
// other frontend could too.
package client

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Identity is an authenticated session. All four fields are always present
// together; a record missing any of them is treated as no identity at all.
// The token is an opaque bearer credential — the client never inspects it.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

func (i *Identity) complete() bool {
	return i != nil && i.ID != "" && i.Name != "" && i.Role != "" && i.Token != ""
}
