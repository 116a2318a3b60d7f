// Package client contains the client side of the Talksy auth API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login, Logout and Check.
//  2. A concrete HTTP implementation (see HTTPClient) that keeps the session
//     cookie in a cookie jar, so Check after Login sends it automatically,
//     and maps responses to errors.
//
// # Error Handling
//
// Non-2xx responses become *APIError carrying the status and the server's
// "errors" list. 401 and 403 also match ErrUnauthorized, and requests that
// got no response match ErrUnavailable; use errors.Is. ErrorMessages turns
// any error into the messages shown to the user.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
