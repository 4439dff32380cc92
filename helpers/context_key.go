package helpers

// ContextKey is a type for creating context keys
type ContextKey string

// ContextKeyTokenizationSession is a specific key for identifying "tokenization_session" contexts added to the http request
var ContextKeyTokenizationSession = ContextKey("tokenization_session")

// ContextKeyUserID is a specific key for identifying "user_id" contexts added to the http request
var ContextKeyUserID = ContextKey("user_id")
