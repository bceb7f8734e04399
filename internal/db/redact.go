package db

import "net/url"

// redactURI hides the password of a connection URI for logging.
func redactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid uri"
	}
	return u.Redacted()
}
