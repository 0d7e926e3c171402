// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"net/url"
	"strings"
)

// Canonical key parts. A resolved key always has the shape
// Namespace/<number>/<language>.
const (
	Namespace       = "patent"
	DefaultLanguage = "en"
)

// IdentifierType classifies a free-form patent reference.
type IdentifierType int

const (
	TypeNumber IdentifierType = iota
	TypeURL
	TypeKey
	TypePartialKey
)

func (t IdentifierType) String() string {
	switch t {
	case TypeURL:
		return "url"
	case TypeKey:
		return "key"
	case TypePartialKey:
		return "partial-key"
	default:
		return "number"
	}
}

// Classify determines how a reference is written.
func Classify(ref string) IdentifierType {
	ref = strings.TrimSpace(ref)

	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return TypeURL
	}

	if strings.HasPrefix(ref, Namespace+"/") {
		parts := strings.Split(ref, "/")
		if len(parts) == 3 && parts[1] != "" && parts[2] != "" {
			return TypeKey
		}
		return TypePartialKey
	}
	return TypeNumber
}

// Resolve normalizes a document URL, bare number, or namespaced string into
// the canonical key. It never fails; malformed input yields a well-formed
// key around whatever could be salvaged.
//
//	Resolve("https://patents.google.com/patent/US1234567A/en") // "patent/US1234567A/en"
//	Resolve("US1234567A")                                       // "patent/US1234567A/en"
func Resolve(ref string) string {
	ref = strings.TrimSpace(ref)

	switch Classify(ref) {
	case TypeURL:
		return key(numberFromURL(ref))
	case TypeKey:
		return ref
	case TypePartialKey:
		number := strings.Trim(strings.TrimPrefix(ref, Namespace+"/"), "/")
		if i := strings.Index(number, "/"); i >= 0 {
			number = number[:i]
		}
		return key(number)
	default:
		return key(ref)
	}
}

// numberFromURL returns the path segment that follows the namespace anchor,
// or the final path segment when the anchor is absent.
func numberFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return ""
	}

	for i, s := range segments {
		if s == Namespace && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	return segments[len(segments)-1]
}

func key(number string) string {
	return Namespace + "/" + number + "/" + DefaultLanguage
}

// DocumentURL joins the documents host with a canonical key.
func DocumentURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
