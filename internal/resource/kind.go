package resource

import (
	"fmt"
	"strings"

	apperrors "calmicasa-api/pkg/errors"
)

// Document is one record from a store collection. Field sets vary per kind;
// the repository stamps "createdAt" on insert and renders "_id" as a hex
// string on reads.
type Document map[string]interface{}

type SortOrder int

const (
	SortNone SortOrder = iota
	SortAsc
	SortDesc
)

// Kind describes one resource category: where it lives, what an insert must
// carry, which fields hold object-store addresses, and how lists are ordered.
// CRUD handlers and asset reconciliation are written once against this
// descriptor instead of per collection.
type Kind struct {
	Name       string
	Collection string

	// Required fields checked on insert.
	Required []string

	// ImageField names a single-address field, ImagesField a list-of-addresses
	// field. Either or both may be empty.
	ImageField  string
	ImagesField string

	SortField string
	SortOrder SortOrder

	// PublicRead exposes unauthenticated list/get routes.
	PublicRead bool

	// Defaults are applied on insert for fields the caller left unset.
	Defaults Document
}

// Registry of every kind the service serves, in route-registration order.
var Kinds = []Kind{
	{
		Name:        "tiny-homes",
		Collection:  "tiny_homes",
		Required:    []string{"name", "price"},
		ImagesField: "images",
		PublicRead:  true,
		Defaults:    Document{"status": "Active"},
	},
	{
		Name:       "blogs",
		Collection: "blogs",
		Required:   []string{"title", "content"},
		ImageField: "image",
		SortField:  "date",
		SortOrder:  SortDesc,
		PublicRead: true,
		Defaults:   Document{"category": "General", "summary": "", "image": ""},
	},
	{
		Name:       "gallery",
		Collection: "gallery",
		Required:   []string{"src", "category"},
		ImageField: "src",
		SortField:  "createdAt",
		SortOrder:  SortDesc,
		PublicRead: true,
	},
	{
		Name:       "events",
		Collection: "events",
		Required:   []string{"title", "date"},
		ImageField: "image",
		SortField:  "date",
		SortOrder:  SortAsc,
		PublicRead: true,
	},
	{
		Name:       "orders",
		Collection: "orders",
		SortField:  "createdAt",
		SortOrder:  SortDesc,
		Defaults:   Document{"status": "Pending"},
	},
	{
		Name:       "contacts",
		Collection: "contacts",
		SortField:  "createdAt",
		SortOrder:  SortDesc,
		Defaults:   Document{"read": false},
	},
}

// ByName returns the kind registered under the given route name.
func ByName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// ValidateRequired rejects inserts missing any required field. A field
// counts as missing when absent, nil, or an empty string.
func (k Kind) ValidateRequired(doc Document) error {
	var missing []string
	for _, field := range k.Required {
		v, ok := doc[field]
		if !ok || v == nil {
			missing = append(missing, field)
			continue
		}
		if s, isString := v.(string); isString && s == "" {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return apperrors.Validation(fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// ApplyDefaults fills kind defaults for fields the document does not carry.
func (k Kind) ApplyDefaults(doc Document) {
	for field, value := range k.Defaults {
		if _, ok := doc[field]; !ok {
			doc[field] = value
		}
	}
}

// HasImages reports whether documents of this kind can reference stored assets.
func (k Kind) HasImages() bool {
	return k.ImageField != "" || k.ImagesField != ""
}

// ImageRefs collects every object-store address referenced by the document,
// reading both the single field and the list field where configured.
func (k Kind) ImageRefs(doc Document) []string {
	var refs []string

	if k.ImageField != "" {
		if s, ok := doc[k.ImageField].(string); ok && s != "" {
			refs = append(refs, s)
		}
	}

	if k.ImagesField != "" {
		switch list := doc[k.ImagesField].(type) {
		case []string:
			for _, s := range list {
				if s != "" {
					refs = append(refs, s)
				}
			}
		case []interface{}:
			for _, v := range list {
				if s, ok := v.(string); ok && s != "" {
					refs = append(refs, s)
				}
			}
		}
	}

	return refs
}

// TouchesImages reports whether a partial update carries any image field,
// which is what decides if reconciliation runs at all.
func (k Kind) TouchesImages(fields Document) bool {
	if k.ImageField != "" {
		if _, ok := fields[k.ImageField]; ok {
			return true
		}
	}
	if k.ImagesField != "" {
		if _, ok := fields[k.ImagesField]; ok {
			return true
		}
	}
	return false
}
