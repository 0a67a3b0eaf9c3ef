package resolver

import (
	"fmt"
	"net/url"
)

// DefaultBaseURI is the retrieval URI given to schemas supplied without one.
const DefaultBaseURI = "mem:///schema.json"

// ResolveURI resolves ref against base per RFC 3986.
func ResolveURI(base, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse reference %q: %w", ref, err)
	}
	if base == "" {
		return r.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base uri %q: %w", base, err)
	}
	return b.ResolveReference(r).String(), nil
}

// splitFragment resolves ref against base and returns the absolute resource
// URI and the decoded fragment.
func splitFragment(base, ref string) (string, string, error) {
	abs, err := ResolveURI(base, ref)
	if err != nil {
		return "", "", err
	}
	u, err := url.Parse(abs)
	if err != nil {
		return "", "", fmt.Errorf("parse uri %q: %w", abs, err)
	}
	frag := u.Fragment
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), frag, nil
}

// Absolute returns uri resolved against DefaultBaseURI without its fragment.
func Absolute(uri string) (string, error) {
	resource, _, err := splitFragment(DefaultBaseURI, uri)
	return resource, err
}

// Key builds the canonical location key of the schema at ptr inside the
// document retrieved from docURI.
func Key(docURI, ptr string) string {
	return docURI + "#" + ptr
}
