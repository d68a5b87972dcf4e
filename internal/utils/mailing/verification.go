package mailing

import (
	"fmt"
	"html"
	"strings"
)

const VerificationSubject = "Verify your SlimMom account"

func VerificationLink(appURL string, token string) string {
	return fmt.Sprintf("%s/api/users/verify/%s", strings.TrimRight(appURL, "/"), token)
}

func VerificationBody(link string) string {
	escaped := html.EscapeString(link)
	return fmt.Sprintf(
		`Hello from <strong>SlimMom</strong>!<br>Open <a href="%s">%s</a> to validate your account.<br>`,
		escaped, escaped,
	)
}
