package domain

const (
	// MissingClass is the class of a package that failed to resolve.
	MissingClass = "MISSING!"

	// PrimaryAssetClass is the class given to synthesized primary asset records.
	PrimaryAssetClass = "PrimaryAssetId"
)

// AssetRecord is the resolved, loadable description of an entity.
type AssetRecord struct {
	ID          EntityID
	PackageName string
	AssetName   string
	Class       string
}

// PlaceholderRecord returns the record a package carries until it resolves.
func PlaceholderRecord(id EntityID) AssetRecord {
	return AssetRecord{
		ID:          id,
		PackageName: id.PackageName(),
		AssetName:   id.PackageName(),
		Class:       MissingClass,
	}
}

// Valid reports whether the record was resolved or synthesized for a primary asset.
func (r AssetRecord) Valid() bool {
	return r.ID.IsValid() && r.Class != MissingClass
}

// IsPrimary reports whether the record stands in for a primary asset.
func (r AssetRecord) IsPrimary() bool {
	return r.ID.IsPrimary()
}

// LogicalName is the stable identity of the record outside the display layer.
func (r AssetRecord) LogicalName() string {
	if r.ID.IsPrimary() {
		return r.ID.String()
	}
	return r.PackageName
}

// NodePayload is the per-node data captured while building a tree.
type NodePayload struct {
	Record    AssetRecord
	Size      int64
	KnownSize bool
}
