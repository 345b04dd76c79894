package constants

const (
	// ContextKeyUserID holds the authenticated user's id in the gin context.
	ContextKeyUserID = "user_id"
	// ContextKeyRole holds the authenticated user's role in the gin context.
	ContextKeyRole = "role"
	// SessionKeyToken is where login stores the issued token for cookie-based clients.
	SessionKeyToken = "token"

	SessionCookieName = "canvass_session"

	MinPasswordLength = 6

	// Contact log history pages. A canvasser's day rarely exceeds a few
	// hundred doors, so one capped page covers it.
	DefaultLogPageSize = 100
	MaxLogPageSize     = 500
)
