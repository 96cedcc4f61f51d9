package sizemap_test

import (
	"testing"

	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/core/ports/mocks"
	"go.trai.ch/sizemap/internal/engine/sizemap"
	"go.uber.org/mock/gomock"
)

// fakeAsset is one package of the in-memory registry.
type fakeAsset struct {
	class   string
	size    int64
	unknown bool
	deps    []domain.EntityID
}

// fakeRegistry implements the four oracles over plain maps.
type fakeRegistry struct {
	assets   map[domain.EntityID]fakeAsset
	manages  map[domain.EntityID][]domain.EntityID
	chunks   map[int]domain.ChunkMembership
	depCalls map[domain.EntityID]int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		assets:   make(map[domain.EntityID]fakeAsset),
		manages:  make(map[domain.EntityID][]domain.EntityID),
		chunks:   make(map[int]domain.ChunkMembership),
		depCalls: make(map[domain.EntityID]int),
	}
}

func (f *fakeRegistry) add(name, class string, size int64, deps ...string) domain.EntityID {
	id := domain.PackageID(name)
	f.assets[id] = fakeAsset{class: class, size: size, deps: ids(deps...)}
	return id
}

func (f *fakeRegistry) addUnknown(name, class string, deps ...string) domain.EntityID {
	id := domain.PackageID(name)
	f.assets[id] = fakeAsset{class: class, unknown: true, deps: ids(deps...)}
	return id
}

func (f *fakeRegistry) GetDependencies(id domain.EntityID, _ domain.DependencyQuery) ([]domain.EntityID, error) {
	f.depCalls[id]++
	if id.IsPrimary() {
		return f.manages[id], nil
	}
	return f.assets[id].deps, nil
}

func (f *fakeRegistry) GetReferencers(id domain.EntityID, _ domain.DependencyCategory) ([]domain.EntityID, error) {
	var managers []domain.EntityID
	for primary, managed := range f.manages {
		for _, m := range managed {
			if m == id {
				managers = append(managers, primary)
			}
		}
	}
	return managers, nil
}

func (f *fakeRegistry) Resolve(id domain.EntityID) (domain.AssetRecord, error) {
	asset, ok := f.assets[id]
	if !ok {
		return domain.AssetRecord{}, domain.ErrEntityNotFound
	}
	return domain.AssetRecord{
		ID:          id,
		PackageName: id.PackageName(),
		AssetName:   id.AssetName(),
		Class:       asset.class,
	}, nil
}

func (f *fakeRegistry) SynthesizePlaceholder(id domain.EntityID) domain.AssetRecord {
	return domain.AssetRecord{ID: id, AssetName: id.Name(), Class: domain.PrimaryAssetClass}
}

func (f *fakeRegistry) GetSize(record domain.AssetRecord, _ domain.SizeKind) (int64, error) {
	asset := f.assets[record.ID]
	if asset.unknown {
		return 0, domain.ErrSizeUnavailable
	}
	return asset.size, nil
}

func (f *fakeRegistry) GetChunkMembership(chunkID int) (domain.ChunkMembership, error) {
	m, ok := f.chunks[chunkID]
	if !ok {
		return domain.ChunkMembership{}, domain.ErrChunkNotFound
	}
	return m, nil
}

func ids(names ...string) []domain.EntityID {
	out := make([]domain.EntityID, len(names))
	for i, n := range names {
		out[i] = domain.MustParseEntityID(n)
	}
	return out
}

func newEngine(t *testing.T, reg *fakeRegistry) *sizemap.Engine {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return sizemap.New(reg, reg, reg, reg, log)
}

// child returns the child of parent whose logical name matches, or fails.
func child(t *testing.T, tree *domain.Tree, parent domain.NodeID, logical string) domain.NodeID {
	t.Helper()
	for _, c := range tree.Children(parent) {
		if !tree.IsSelf(c) && tree.Node(c).LogicalName == logical {
			return c
		}
	}
	t.Fatalf("node %q not found below %q", logical, tree.Node(parent).Name)
	return domain.NoNode
}

// names returns the display names of the children of id in order.
func names(tree *domain.Tree, id domain.NodeID) []string {
	var out []string
	for _, c := range tree.Children(id) {
		out = append(out, tree.Node(c).Name)
	}
	return out
}
