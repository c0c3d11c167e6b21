package deviceauth

import (
	"fmt"
	"strings"
)

// Instructions renders what the user must do to approve s.
func Instructions(s *Session) string {
	var b strings.Builder
	b.WriteString("To authorize, open this URL in a browser:\n\n")
	if s.VerificationURIComplete != "" {
		fmt.Fprintf(&b, "  %s\n\n", s.VerificationURIComplete)
		fmt.Fprintf(&b, "If asked for a code, enter: %s\n", s.UserCode)
	} else {
		fmt.Fprintf(&b, "  %s\n\n", s.VerificationURI)
		fmt.Fprintf(&b, "and enter the code: %s\n", s.UserCode)
	}
	if !s.ExpiresAt.IsZero() {
		fmt.Fprintf(&b, "\nThe code expires at %s.\n", s.ExpiresAt.Local().Format("15:04:05"))
	}
	return b.String()
}
