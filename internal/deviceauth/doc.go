// Package deviceauth implements the OAuth 2.0 Device Authorization Grant
// (RFC 8628) against the vendors that support it.
//
// A flow is two calls. RequestCode asks the vendor for a device code and
// returns a Session holding the user code and verification URL to show the
// user. PollForToken then polls the token endpoint until the user approves,
// denies, or the code expires:
//
//	sess, err := c.RequestCode(ctx, "copilot", clientID, "")
//	if err != nil { ... }
//	fmt.Println(deviceauth.Instructions(sess))
//	tok, err := c.PollForToken(ctx, sess)
//
// Polling is bounded by a wall-clock ceiling measured on the Client's Clock,
// so tests can drive a full flow without sleeping.
package deviceauth
