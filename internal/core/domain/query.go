package domain

// DependencyCategory selects which edges of the dependency graph to follow.
type DependencyCategory uint8

const (
	// CategoryPackage follows package-to-package references.
	CategoryPackage DependencyCategory = iota + 1
	// CategoryManage follows primary asset management edges.
	CategoryManage
)

// DependencyFlags narrow a dependency query.
type DependencyFlags uint8

const (
	// FlagHard restricts package references to hard references.
	FlagHard DependencyFlags = 1 << iota
	// FlagDirect restricts management edges to direct ones.
	FlagDirect
	// FlagGame restricts references to those used in game.
	FlagGame
	// FlagEditorOnly includes references used only in the editor.
	FlagEditorOnly
)

// Has reports whether all bits of other are set.
func (f DependencyFlags) Has(other DependencyFlags) bool {
	return f&other == other
}

// DependencyQuery is passed to the dependency oracle.
type DependencyQuery struct {
	Category DependencyCategory
	Flags    DependencyFlags
}

// QueryFor returns the query used to expand the given entity.
// Packages follow hard in-game package references, primary assets their direct managed assets.
func QueryFor(id EntityID) DependencyQuery {
	if id.IsPackage() {
		return DependencyQuery{Category: CategoryPackage, Flags: FlagHard | FlagGame}
	}
	return DependencyQuery{Category: CategoryManage, Flags: FlagDirect | FlagGame}
}

// ChunkMembership lists the assets assigned to a chunk.
type ChunkMembership struct {
	// Explicit holds the assets explicitly assigned to the chunk, in manifest order.
	Explicit []EntityID
	// All holds every package that ends up in the chunk.
	All map[EntityID]struct{}
}

// Contains reports whether the package is part of the chunk.
func (m ChunkMembership) Contains(id EntityID) bool {
	_, ok := m.All[id]
	return ok
}
