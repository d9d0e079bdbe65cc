package vcard

import (
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RevisionLayout is the canonical REV timestamp layout (always UTC).
const RevisionLayout = "2006-01-02T15:04:05Z"

// base64LineWidth is the wrap width for inline PHOTO data.
const base64LineWidth = 72

// revisionLayouts are tried in order when a revision is not a unix timestamp.
var revisionLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.UnixDate,
	time.ANSIC,
	"January 2, 2006",
	"January 2, 2006 15:04:05",
	"Jan 2, 2006",
	"2 January 2006",
	"01/02/2006",
	"01/02/2006 15:04:05",
}

// ExtractDigits returns only the ASCII digit characters from a string.
func ExtractDigits(s string) string {
	var digits strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			digits.WriteByte(c)
		}
	}
	return digits.String()
}

// FormatPhoneNumber reformats a phone number by digit count:
//
//	7 digits:  555-1234
//	10 digits: (555) 123-4567
//	11 digits: 1 (555) 123-4567
//
// Any other length is an error in strict mode and the bare digits otherwise.
func FormatPhoneNumber(number string, strict bool) (string, error) {
	d := ExtractDigits(number)
	switch len(d) {
	case 7:
		return d[:3] + "-" + d[3:], nil
	case 10:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:], nil
	case 11:
		return d[:1] + " (" + d[1:4] + ") " + d[4:7] + "-" + d[7:], nil
	default:
		if strict {
			return "", newFormatError(ErrInvalidPhoneLength, "phone", number)
		}
		return d, nil
	}
}

// SplitFullName derives first, middle and last names from a full name.
//
// The first token is the first name. One remaining token is the last name;
// two are middle and last; with three or more the second token is the middle
// name and the rest, joined by single spaces, is the last name.
func SplitFullName(full string) (first, middle, last string) {
	tokens := strings.Fields(full)
	if len(tokens) == 0 {
		return "", "", ""
	}
	first, rest := tokens[0], tokens[1:]
	switch len(rest) {
	case 0:
	case 1:
		last = rest[0]
	default:
		middle = rest[0]
		last = strings.Join(rest[1:], " ")
	}
	return first, middle, last
}

// JoinName builds the display name from parts. The separators are always
// written, so an empty middle name leaves a double space.
func JoinName(first, middle, last string) string {
	return first + " " + middle + " " + last
}

// FormatAddress restructures a raw multi-line address into the
// street;city;state;postal form used by ADR.
//
// Line 0 is the street. Line 1 is split on commas and whitespace: the last
// token is the postal code, the one before it the state, and the remainder
// the city. Further lines are appended as extra components.
func FormatAddress(raw string) string {
	lines := splitAddressLines(raw)

	var second string
	if len(lines) > 1 {
		second = lines[1]
	}
	tokens := strings.Fields(strings.ReplaceAll(second, ",", " "))

	var state, postal string
	if n := len(tokens); n > 0 {
		postal, tokens = tokens[n-1], tokens[:n-1]
	}
	if n := len(tokens); n > 0 {
		state, tokens = tokens[n-1], tokens[:n-1]
	}
	city := strings.Join(tokens, " ")

	parts := []string{lines[0], city, state, postal}
	if len(lines) > 2 {
		parts = append(parts, lines[2:]...)
	}
	return strings.Join(parts, ";")
}

// splitAddressLines splits on real line feeds and on the two-character
// escape sequence \n. It always returns at least one line.
func splitAddressLines(raw string) []string {
	lines := strings.Split(strings.TrimSpace(unfoldLines(raw)), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

// unfoldLines turns CRLF, lone CR and the two-character sequence \n into
// plain line feeds.
func unfoldLines(raw string) string {
	return lineFeeds.Replace(raw)
}

var lineFeeds = strings.NewReplacer("\r\n", "\n", "\r", "\n", `\n`, "\n")

// FormatLabel escapes a raw address for the LABEL field: line breaks become
// the two-character sequence \n and trailing breaks are dropped.
func FormatLabel(raw string) string {
	s := strings.TrimRight(unfoldLines(raw), "\n")
	return strings.ReplaceAll(s, "\n", `\n`)
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\r\n", `\n`,
	"\r", `\n`,
	"\n", `\n`,
)

var breakEscaper = strings.NewReplacer(
	"\r\n", `\n`,
	"\r", `\n`,
	"\n", `\n`,
)

// EscapeText escapes a TEXT value (N components, FN, ORG, TITLE): backslash,
// comma and semicolon are backslash-escaped and line breaks become \n.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeBreaks replaces line breaks with \n so a value stays on one line.
// Used for values whose commas and semicolons are structural.
func escapeBreaks(s string) string {
	return breakEscaper.Replace(s)
}

// hasLineBreak reports whether any of values contains CR or LF.
func hasLineBreak(values ...string) bool {
	for _, v := range values {
		if strings.ContainsAny(v, "\r\n") {
			return true
		}
	}
	return false
}

// IsValidEmail performs a pragmatic shape check: a bare addr-spec whose
// domain contains a dot.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	domain := s[strings.LastIndex(s, "@")+1:]
	return strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") &&
		!strings.HasSuffix(domain, ".")
}

// IsValidURL performs a pragmatic shape check: a scheme is required, and a
// host is required unless the URL is opaque (mailto:, tel:, urn:).
func IsValidURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	if u.Opaque != "" {
		return true
	}
	return u.Hostname() != ""
}

// FormatRevision canonicalizes a revision timestamp. An empty input uses now.
// Integers are unix seconds; anything else is tried against a fixed set of
// layouts. The result is always UTC.
func FormatRevision(raw string, now time.Time) (string, error) {
	t, err := parseRevision(raw, now)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(RevisionLayout), nil
}

func parseRevision(raw string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return now, nil
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0), nil
	}
	for _, layout := range revisionLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, newFormatError(ErrInvalidRevision, "revision", raw)
}

// wrapBase64 breaks s into width-sized chunks joined by a CRLF and a single
// space of folding whitespace.
func wrapBase64(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteString("\r\n ")
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}

// upper uppercases a TYPE tag.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
