package format

import (
	"net/mail"
	"net/netip"
	"strings"
	"unicode/utf8"
)

// IsHostname checks an RFC 1123 host name.
func IsHostname(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if s == "" || len(s) > 253 {
		return false
	}
	for label := range strings.SplitSeq(s, ".") {
		if !isLabel(label) {
			return false
		}
	}
	return true
}

func isLabel(label string) bool {
	if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		if !(c == '-' || isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'z')) {
			return false
		}
	}
	return true
}

// IsIPv4 checks a dotted-quad IPv4 address without leading zeros.
func IsIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

// IsIPv6 checks an RFC 4291 IPv6 address without a zone.
func IsIPv6(s string) bool {
	if strings.Contains(s, "%") {
		return false
	}
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is6()
}

// IsEmail checks an RFC 5321 mailbox with an ASCII local part.
func IsEmail(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return IsIDNEmail(s)
}

// IsIDNEmail checks a mailbox that may contain UTF-8 characters.
func IsIDNEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at > 64 {
		return false
	}
	domain := s[at+1:]
	if strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		literal := domain[1 : len(domain)-1]
		if rest, ok := strings.CutPrefix(literal, "IPv6:"); ok {
			return IsIPv6(rest)
		}
		return IsIPv4(literal)
	}
	if !utf8.ValidString(domain) {
		return false
	}
	for _, r := range domain {
		if r >= utf8.RuneSelf {
			return true
		}
	}
	return IsHostname(domain)
}
