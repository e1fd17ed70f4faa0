package common

// SessionCookieName is the name of the signed cookie that carries the
// server-side session token and flash messages.
const SessionCookieName = "gophblog"

// AuthorizationHeaderName carries "Bearer <jwt>" on JSON API requests.
const AuthorizationHeaderName = "Authorization"

// DateLayout is the human-readable publish date format stored with each post.
const DateLayout = "January 02, 2006"
