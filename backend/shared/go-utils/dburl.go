package utils

import (
	"net/url"
)

// RedactDBURL strips the password from a connection URL so it can be logged.
func RedactDBURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, has := u.User.Password(); has {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
