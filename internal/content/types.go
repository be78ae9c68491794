// Package content defines the marketing asset kinds the pipeline can
// produce, the request that drives generation, and the capability
// interfaces content generators implement.
package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContentType is one kind of generated marketing asset.
type ContentType string

const (
	TypeAdCopy         ContentType = "ad_copy"
	TypeSocialCaptions ContentType = "social_captions"
	TypeStaticImages   ContentType = "static_images"
	TypeUgcScripts     ContentType = "ugc_scripts"
	TypeEmailCreative  ContentType = "email_creative"
)

// AllContentTypes returns every known content type in canonical order.
func AllContentTypes() []ContentType {
	return []ContentType{
		TypeAdCopy,
		TypeSocialCaptions,
		TypeStaticImages,
		TypeUgcScripts,
		TypeEmailCreative,
	}
}

// ParseContentType resolves a user-supplied name to a known content type.
func ParseContentType(s string) (ContentType, error) {
	ct := ContentType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllContentTypes() {
		if ct == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown content type %q (known: %s)", s, joinTypes(AllContentTypes()))
}

// ParseContentTypes resolves a comma-separated list of names, with "all"
// expanding to every known type.
func ParseContentTypes(list string) ([]ContentType, error) {
	if strings.EqualFold(strings.TrimSpace(list), "all") {
		return AllContentTypes(), nil
	}
	var types []ContentType
	seen := make(map[ContentType]bool)
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		ct, err := ParseContentType(part)
		if err != nil {
			return nil, err
		}
		if !seen[ct] {
			seen[ct] = true
			types = append(types, ct)
		}
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("no content types requested")
	}
	return types, nil
}

func joinTypes(types []ContentType) string {
	names := make([]string, len(types))
	for i, ct := range types {
		names[i] = string(ct)
	}
	return strings.Join(names, ", ")
}

// Manifest is the set of content types requested for one run.
type Manifest map[ContentType]bool

// NewManifest builds a manifest from the given types.
func NewManifest(types ...ContentType) Manifest {
	m := make(Manifest, len(types))
	for _, ct := range types {
		m[ct] = true
	}
	return m
}

// Contains reports whether the manifest requests ct.
func (m Manifest) Contains(ct ContentType) bool {
	return m[ct]
}

// Types returns the requested types in canonical order.
func (m Manifest) Types() []ContentType {
	var types []ContentType
	for _, ct := range AllContentTypes() {
		if m[ct] {
			types = append(types, ct)
		}
	}
	return types
}

// MarshalJSON renders the manifest as a canonically ordered list so that
// exported run records stay stable across runs.
func (m Manifest) MarshalJSON() ([]byte, error) {
	types := m.Types()
	if types == nil {
		types = []ContentType{}
	}
	return json.Marshal(types)
}

// UnmarshalJSON accepts the list form produced by MarshalJSON.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var types []ContentType
	if err := json.Unmarshal(data, &types); err != nil {
		return err
	}
	*m = NewManifest(types...)
	return nil
}
