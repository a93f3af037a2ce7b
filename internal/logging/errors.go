package logging

// ErrorKind labels an upstream attempt for logs. Status 0 with an error is a
// transport failure; invalid marks a rejected API key.
func ErrorKind(status int, hasErr, invalid bool) string {
	if invalid {
		return "invalid_credential"
	}
	if hasErr && status == 0 {
		return "network_error"
	}
	switch {
	case status == 429:
		return "upstream_429"
	case status == 401:
		return "upstream_401"
	case status == 403:
		return "upstream_403"
	case status >= 500 && status < 600:
		return "upstream_5xx"
	case status >= 400 && status < 500:
		return "upstream_4xx"
	}
	if hasErr {
		return "malformed_response"
	}
	return "ok"
}
