package domain

import (
	"path"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// EntityKind distinguishes the two kinds of dependency graph nodes.
type EntityKind uint8

const (
	// KindInvalid is the zero EntityKind.
	KindInvalid EntityKind = iota
	// KindPackage identifies a content package by its long package name.
	KindPackage
	// KindPrimary identifies a logical primary asset by type and name.
	KindPrimary
)

const (
	// ScriptPrefix marks packages that hold code rather than content.
	ScriptPrefix = "/Script/"

	// PrimaryTypeChunk is the primary asset type used for chunk identifiers.
	PrimaryTypeChunk = "PackageChunk"
)

// EntityID is a comparable identifier of a dependency graph node.
// It is safe to use as a map key.
type EntityID struct {
	kind  EntityKind
	ptype InternedString
	name  InternedString
}

// PackageID returns the identifier of a content package.
func PackageID(name string) EntityID {
	return EntityID{kind: KindPackage, name: NewInternedString(name)}
}

// PrimaryID returns the identifier of a primary asset.
func PrimaryID(primaryType, name string) EntityID {
	return EntityID{kind: KindPrimary, ptype: NewInternedString(primaryType), name: NewInternedString(name)}
}

// ChunkEntityID returns the primary identifier of the chunk with the given number.
func ChunkEntityID(chunk int) EntityID {
	return PrimaryID(PrimaryTypeChunk, strconv.Itoa(chunk))
}

// ParseEntityID parses "/Game/Path/Asset" as a package and "Type:Name" as a primary asset.
func ParseEntityID(s string) (EntityID, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "/") {
		if len(s) == 1 || strings.HasSuffix(s, "/") {
			return EntityID{}, zerr.With(ErrInvalidEntityID, "id", s)
		}
		return PackageID(s), nil
	}

	primaryType, name, ok := strings.Cut(s, ":")
	if !ok || primaryType == "" || name == "" {
		return EntityID{}, zerr.With(ErrInvalidEntityID, "id", s)
	}
	return PrimaryID(primaryType, name), nil
}

// MustParseEntityID is like ParseEntityID but panics on malformed input.
func MustParseEntityID(s string) EntityID {
	id, err := ParseEntityID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Kind returns the kind of the identifier.
func (id EntityID) Kind() EntityKind {
	return id.kind
}

// IsValid reports whether the identifier refers to a package or a primary asset.
func (id EntityID) IsValid() bool {
	return id.kind != KindInvalid && !id.name.IsZero()
}

// IsPackage reports whether the identifier names a content package.
func (id EntityID) IsPackage() bool {
	return id.kind == KindPackage
}

// IsPrimary reports whether the identifier names a primary asset.
func (id EntityID) IsPrimary() bool {
	return id.kind == KindPrimary
}

// IsScript reports whether the identifier is a code package.
func (id EntityID) IsScript() bool {
	return id.kind == KindPackage && strings.HasPrefix(id.name.String(), ScriptPrefix)
}

// PackageName returns the long package name, or "" for primary ids.
func (id EntityID) PackageName() string {
	if id.kind != KindPackage {
		return ""
	}
	return id.name.String()
}

// PrimaryType returns the primary asset type, or "" for package ids.
func (id EntityID) PrimaryType() string {
	return id.ptype.String()
}

// Name returns the package name or the primary asset name.
func (id EntityID) Name() string {
	return id.name.String()
}

// AssetName returns the short asset name of a package: the last path element.
func (id EntityID) AssetName() string {
	if id.kind != KindPackage {
		return id.name.String()
	}
	return path.Base(id.name.String())
}

// ChunkID returns the chunk number for PackageChunk primary ids.
func (id EntityID) ChunkID() (int, bool) {
	if id.kind != KindPrimary || id.ptype.String() != PrimaryTypeChunk {
		return 0, false
	}
	n, err := strconv.Atoi(id.name.String())
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// String returns the package name or "Type:Name" for primary assets.
func (id EntityID) String() string {
	switch id.kind {
	case KindPackage:
		return id.name.String()
	case KindPrimary:
		return id.ptype.String() + ":" + id.name.String()
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (id EntityID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *EntityID) UnmarshalText(text []byte) error {
	parsed, err := ParseEntityID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
