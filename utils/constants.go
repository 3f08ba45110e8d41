// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// SuggestionTimeout bounds the external generation call for meeting-time
// suggestions. A slow model must never hold up the booking flow.
const SuggestionTimeout = 15 * time.Second

// CalendarTimeout bounds calls to the external calendar provider.
const CalendarTimeout = 10 * time.Second
