package sizemap

import (
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/core/ports"
)

// builder holds the working state of one Build pass.
// It is never shared between passes.
type builder struct {
	deps     ports.DependencyOracle
	resolver ports.EntityResolver
	sizes    ports.SizeOracle
	chunks   ports.ChunkRegistry
	logger   ports.Logger
	span     trace.Span
	kind     domain.SizeKind

	tree    *domain.Tree
	visited map[domain.EntityID]domain.NodeID
	roots   map[domain.EntityID]struct{}
	shared  domain.NodeID
	failed  int
}

// gather attaches ids below parent. filter is the chunk or primary asset
// whose membership restricts package references, or the zero EntityID.
func (b *builder) gather(ids []domain.EntityID, filter domain.EntityID, parent domain.NodeID) {
	for _, id := range ids {
		if !id.IsValid() || id.IsScript() {
			continue
		}

		if existing, ok := b.visited[id]; ok {
			b.reconcile(id, existing, parent)
			continue
		}

		b.expand(id, filter, parent)
	}
}

// reconcile handles a reference to an entity that already has a node.
// The node moves to the shared bucket when the new reference comes from a
// different root-level subtree than the one holding it.
func (b *builder) reconcile(id domain.EntityID, existing, referrer domain.NodeID) {
	existingParent := b.tree.Parent(existing)
	if b.shared != domain.NoNode && existingParent == b.shared {
		return
	}

	// Root-level selections may be referenced anywhere without counting as shared.
	if existingParent == b.tree.Root() {
		return
	}
	if _, isRoot := b.roots[id]; isRoot {
		return
	}

	mine := b.tree.RootLevelAncestor(referrer)
	theirs := b.tree.RootLevelAncestor(existingParent)
	if mine == theirs {
		return
	}

	if b.shared == domain.NoNode {
		b.shared = b.tree.AddChild(b.tree.Root())
		b.span.AddEvent("shared root created", trace.WithAttributes(
			attribute.String("sizemap.entity", id.String()),
		))
	}
	b.tree.Reparent(existing, b.shared)
}

// expand creates the node of a newly discovered entity and descends into its references.
func (b *builder) expand(id, filter domain.EntityID, parent domain.NodeID) {
	node := b.tree.AddChild(parent)
	b.visited[id] = node

	payload := domain.NodePayload{}
	if id.IsPackage() {
		payload.Record = domain.PlaceholderRecord(id)
		if record, err := b.resolver.Resolve(id); err == nil && record.Valid() {
			payload.Record = record
		}
	} else {
		payload.Record = b.resolver.SynthesizePlaceholder(id)
	}

	if !payload.Record.Valid() {
		b.failed++
		b.tree.SetPayload(node, payload)
		b.logger.Warn(fmt.Sprintf("could not resolve %s", id))
		return
	}

	references := b.filter(b.references(id), filter)

	if id.IsPackage() {
		if size, err := b.sizes.GetSize(payload.Record, b.kind); err == nil {
			payload.Size = size
			payload.KnownSize = true
		}
	} else {
		// Primary assets are virtual and occupy no space of their own.
		payload.KnownSize = true
	}
	b.tree.SetPayload(node, payload)

	next := filter
	if _, isChunk := id.ChunkID(); isChunk {
		next = id
	}
	b.gather(references, next, node)
}

// references returns the direct references of id: the explicit assets of a
// chunk, or whatever the dependency oracle reports for the entity kind.
func (b *builder) references(id domain.EntityID) []domain.EntityID {
	if chunk, isChunk := id.ChunkID(); isChunk {
		membership, err := b.chunks.GetChunkMembership(chunk)
		if err != nil {
			return nil
		}
		return membership.Explicit
	}

	deps, err := b.deps.GetDependencies(id, domain.QueryFor(id))
	if err != nil {
		b.logger.Warn(fmt.Sprintf("could not list dependencies of %s: %v", id, err))
		return nil
	}
	return deps
}

// filter drops package references outside the active chunk or not managed by
// the active primary asset. Primary asset references always pass.
func (b *builder) filter(refs []domain.EntityID, filter domain.EntityID) []domain.EntityID {
	if !filter.IsValid() {
		return refs
	}

	chunk, isChunk := filter.ChunkID()
	var membership domain.ChunkMembership
	if isChunk {
		// An unknown chunk has no members, so every package reference is dropped.
		membership, _ = b.chunks.GetChunkMembership(chunk)
	}

	kept := make([]domain.EntityID, 0, len(refs))
	for _, ref := range refs {
		if ref.IsPackage() {
			if isChunk {
				if !membership.Contains(ref) {
					continue
				}
			} else {
				managers, err := b.deps.GetReferencers(ref, domain.CategoryManage)
				if err != nil || !slices.Contains(managers, filter) {
					continue
				}
			}
		}
		kept = append(kept, ref)
	}
	return kept
}
