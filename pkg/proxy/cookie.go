package proxy

import "regexp"

type cookieRule struct {
	pattern *regexp.Regexp
	replace string
}

// Applied in order. Cross-site attributes are dropped because the browser
// now receives the cookie from its own origin.
var cookieRules = []cookieRule{
	{regexp.MustCompile(`(?i);\s*SameSite=None`), "; SameSite=Lax"},
	{regexp.MustCompile(`(?i);\s*Secure;`), ";"},
	{regexp.MustCompile(`(?i);\s*Secure$`), ""},
	{regexp.MustCompile(`(?i);\s*Partitioned;`), ";"},
	{regexp.MustCompile(`(?i);\s*Partitioned$`), ""},
	{regexp.MustCompile(`(?i)__Secure-`), ""},
}

// RewriteSetCookie turns a backend Set-Cookie value into one a same-origin
// browser will accept over plain HTTP.
func RewriteSetCookie(value string) string {
	for _, rule := range cookieRules {
		value = rule.pattern.ReplaceAllString(value, rule.replace)
	}
	return value
}

// RewriteSetCookies rewrites every value.
func RewriteSetCookies(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = RewriteSetCookie(v)
	}
	return out
}
