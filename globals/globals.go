package globals

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const IdentityKey ContextKey = "identity"

const (
	APIVersion = "1.0.0"
	APIName    = "Alpaca Farm LL API"
)
