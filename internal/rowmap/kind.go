package rowmap

import (
	"context"
	"fmt"

	"github.com/roach88/contactlens/internal/accounts"
	"github.com/roach88/contactlens/internal/provider"
)

// Kind is a sealed interface over the data kinds a row can carry.
type Kind interface {
	kindNode() // Sealed - only types in this package implement it
	Tag() string
}

// StandardKind is one of the built-in data kinds.
type StandardKind int

const (
	KindStructuredName StandardKind = iota + 1
	KindNickname
	KindPhone
	KindEmail
	KindWebsite
	KindPostal
	KindEvent
	KindOrganization
	KindNote
	KindPhoto
	KindGroupMembership
)

var standardTags = map[StandardKind]string{
	KindStructuredName:  provider.MimetypeStructuredName,
	KindNickname:        provider.MimetypeNickname,
	KindPhone:           provider.MimetypePhone,
	KindEmail:           provider.MimetypeEmail,
	KindWebsite:         provider.MimetypeWebsite,
	KindPostal:          provider.MimetypePostal,
	KindEvent:           provider.MimetypeEvent,
	KindOrganization:    provider.MimetypeOrganization,
	KindNote:            provider.MimetypeNote,
	KindPhoto:           provider.MimetypePhoto,
	KindGroupMembership: provider.MimetypeGroupMembership,
}

var byTag = func() map[string]StandardKind {
	m := make(map[string]StandardKind, len(standardTags))
	for k, tag := range standardTags {
		m[tag] = k
	}
	return m
}()

func (StandardKind) kindNode() {}

// Tag returns the mimetype stored for this kind.
func (k StandardKind) Tag() string {
	return standardTags[k]
}

func (k StandardKind) String() string {
	if tag, ok := standardTags[k]; ok {
		return tag
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Linked is a kind contributed by a linked account, resolved at runtime.
type Linked struct {
	Descriptor accounts.MimeType
}

func (Linked) kindNode() {}

// Tag returns the descriptor's mimetype.
func (l Linked) Tag() string {
	return l.Descriptor.Mimetype
}

// MimeTypeLookup finds a linked-account descriptor. *accounts.Registry
// implements it.
type MimeTypeLookup interface {
	Lookup(ctx context.Context, mimetype, accountType string) (accounts.MimeType, bool)
}

// ResolveKind maps a row's kind tag to a Kind. Standard tags win over
// registry entries. ok is false when neither knows the tag.
func ResolveKind(ctx context.Context, tag, accountType string, registry MimeTypeLookup) (Kind, bool) {
	if k, ok := byTag[tag]; ok {
		return k, true
	}
	if registry == nil {
		return nil, false
	}
	if desc, ok := registry.Lookup(ctx, tag, accountType); ok {
		return Linked{Descriptor: desc}, true
	}
	return nil, false
}
