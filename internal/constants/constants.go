package constants

// Session and context keys
const (
	SessionCookieName = "notes_session"

	// SessionKeyUsername holds the authenticated username in the session store.
	SessionKeyUsername = "username"
	// SessionKeyForgeryToken holds the per-session forgery-protection token.
	SessionKeyForgeryToken = "csrf_token"

	ContextKeyUsername  = "username"
	ContextKeyNote      = "note"
	ContextKeyRequestID = "request_id"
)

// Forgery token transport
const (
	ForgeryTokenField  = "csrf_token"
	ForgeryTokenHeader = "X-CSRF-Token"
	ForgeryTokenBytes  = 32
)

// Validation limits
const (
	MinUsernameLength  = 4
	MaxUsernameLength  = 20
	MinPasswordLength  = 8
	MaxPasswordLength  = 20
	MinNameLength      = 2
	MaxNameLength      = 30
	MaxNoteTitleLength = 100
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 100000
)

// Flash messages
const (
	FlashLoginRequired = "You must be logged in to view!"
	FlashLoggedOut     = "Logged out"
	FlashBadLogin      = "Bad name/password"
)
