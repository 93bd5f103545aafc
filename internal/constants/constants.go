package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"

	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
