package session

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrBadPattern indicates a filter rule that could not be normalized or
// compiled. Rules are checked eagerly, before any file is opened.
var ErrBadPattern = errors.New("bad filter pattern")

// ipToken is replaced in rule text with a numeric IPv4-shaped pattern, so
// users can write "$ip$ timeout" instead of spelling out the octets.
const (
	ipToken   = "$ip$"
	ipPattern = `\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`
)

// Rule is a single compiled line-rejection pattern.
type Rule struct {
	// Text is the raw rule as the user supplied it, used for logging and
	// for the saved-filters side file.
	Text string

	// Source is the normalized delimited form the matcher was compiled from.
	Source string

	re *regexp.Regexp
}

// Match reports whether the rule matches anywhere in line (unanchored).
func (r *Rule) Match(line []byte) bool {
	return r.re.Match(line)
}

// FormatFilter normalizes raw rule text into its delimited source form.
//
// Text that does not already carry slash delimiters (and is longer than one
// character) is wrapped in them, then the $ip$ token is substituted. The
// same normalization applies whether the rule came from the command line or
// from the saved-filters file.
func FormatFilter(text string) string {
	if len(text) > 1 && !isDelimited(text) {
		text = "/" + text + "/"
	}
	return strings.ReplaceAll(text, ipToken, ipPattern)
}

// isDelimited reports whether text is already in /pattern/ form, allowing
// trailing flags after the closing slash (e.g. "/error/i").
func isDelimited(text string) bool {
	return strings.HasPrefix(text, "/") && strings.Contains(text[1:], "/")
}

// Compile normalizes and compiles a single rule. A rule that fails to
// compile is a configuration error.
func Compile(text string) (*Rule, error) {
	source := FormatFilter(text)

	pattern, flags := splitDelimited(source)
	expr := pattern
	if flags != "" {
		inline, err := inlineFlags(flags)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadPattern, text, err)
		}
		expr = inline + pattern
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadPattern, text, err)
	}

	return &Rule{Text: text, Source: source, re: re}, nil
}

// CompileAll compiles rules in order, failing fast on the first bad one.
func CompileAll(texts []string) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(texts))
	for _, text := range texts {
		rule, err := Compile(text)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// splitDelimited separates "/pattern/flags" into its pattern and flags.
// Undelimited text is returned as the pattern with no flags.
func splitDelimited(source string) (pattern, flags string) {
	if !strings.HasPrefix(source, "/") {
		return source, ""
	}
	close := strings.LastIndex(source[1:], "/")
	if close < 0 {
		return source, ""
	}
	close++ // index into source
	return source[1:close], source[close+1:]
}

// inlineFlags converts trailing regex flags to Go's inline flag syntax.
func inlineFlags(flags string) (string, error) {
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's', 'U':
		default:
			return "", fmt.Errorf("unsupported flag %q", string(f))
		}
	}
	return "(?" + flags + ")", nil
}
