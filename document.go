package jtoken

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reserved property names of a stored document.
const (
	MetadataKey   = "@metadata"
	IDKey         = "@id"
	EtagKey       = "@etag"
	EntityNameKey = "Raven-Entity-Name"
)

// Metadata returns the object stored under MetadataKey, if any.
func (o *Object) Metadata() (*Object, bool) {
	tok, ok := o.Get(MetadataKey)
	if !ok {
		return nil, false
	}
	meta, ok := tok.(*Object)
	return meta, ok
}

// Document is a stored document split into its user data and metadata.
type Document struct {
	ID       string
	Data     *Object
	Metadata *Object
}

// SplitDocument separates the metadata of obj from its data. Both halves are
// deep copies; ID is taken from the metadata's @id string when present. A
// MetadataKey property that is not an object fails with *GrammarError.
func SplitDocument(obj *Object) (Document, error) {
	doc := Document{Data: NewObject(), Metadata: NewObject()}
	for name, tok := range obj.All() {
		if name != MetadataKey {
			doc.Data.Set(name, tok.Clone())
			continue
		}
		meta, ok := tok.(*Object)
		if !ok {
			return Document{}, grammarf("SplitDocument", "%s is %s, not an object", MetadataKey, tok.Kind())
		}
		doc.Metadata = meta.Clone().(*Object)
	}
	if tok, ok := doc.Metadata.Get(IDKey); ok {
		if v, ok := tok.(*Value); ok {
			doc.ID, _ = v.AsString()
		}
	}
	return doc, nil
}

// Object joins the document back into one object with the metadata as the
// last property. A non-empty ID overrides @id in the metadata.
func (d Document) Object() *Object {
	out := NewObject()
	if d.Data != nil {
		for name, tok := range d.Data.All() {
			out.Set(name, tok.Clone())
		}
	}
	meta := NewObject()
	if d.Metadata != nil {
		meta = d.Metadata.Clone().(*Object)
	}
	if d.ID != "" {
		meta.Set(IDKey, String(d.ID))
	}
	out.Set(MetadataKey, meta)
	return out
}

// AttachReservedMetadata sets the properties a new document needs before it
// is first stored: @id, @etag "0" and, unless already present, the entity
// name derived from id.
func AttachReservedMetadata(meta *Object, id string) {
	meta.Set(EtagKey, String("0"))
	if !meta.Contains(EntityNameKey) {
		if name := EntityNameFromID(id); name != "" {
			meta.Set(EntityNameKey, String(name))
		}
	}
	meta.Set(IDKey, String(id))
}

// EntityNameFromID returns the collection prefix of a document id with its
// first letter upper-cased: "users/1" gives "Users". Ids without a slash have
// no entity name.
func EntityNameFromID(id string) string {
	prefix, _, ok := strings.Cut(id, "/")
	if !ok || prefix == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(prefix)
	return string(unicode.ToUpper(r)) + prefix[size:]
}
