package token

import "strings"

// statement keywords; every other word may be used as an identifier
var keywords = map[string]struct{}{
	"if": {}, "else": {}, "while": {}, "do": {}, "for": {}, "in": {},
	"switch": {}, "case": {}, "default": {}, "try": {}, "catch": {},
	"finally": {}, "throw": {}, "rethrow": {}, "assert": {}, "break": {},
	"continue": {}, "return": {}, "function": {}, "import": {}, "include": {},
	"property": {}, "component": {}, "interface": {}, "var": {}, "new": {},
}

// scope names lowered to scope references
var scopes = map[string]struct{}{
	"application": {}, "arguments": {}, "cgi": {}, "client": {}, "cookie": {},
	"form": {}, "local": {}, "request": {}, "server": {}, "session": {},
	"this": {}, "thread": {}, "url": {}, "variables": {}, "super": {},
}

// IsKeyword reports whether ident is a statement keyword, ignoring case.
func IsKeyword(ident string) bool {
	_, ok := keywords[strings.ToLower(ident)]
	return ok
}

// IsScope reports whether ident names a variable scope, ignoring case.
func IsScope(ident string) bool {
	_, ok := scopes[strings.ToLower(ident)]
	return ok
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
