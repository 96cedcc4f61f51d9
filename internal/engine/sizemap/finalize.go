package sizemap

import (
	"fmt"

	"go.trai.ch/sizemap/internal/core/domain"
)

const (
	// SharedLabel names the bucket of entities referenced from several root-level subtrees.
	SharedLabel = "*SHARED*"
	// SelfLabel names the node holding a container's own footprint.
	SelfLabel = "*SELF*"
)

// Finalize rolls sizes up the tree, writes display labels and injects self nodes.
// Running it again on the same tree yields the same labels and ordering.
func Finalize(tree *domain.Tree, shared domain.NodeID) domain.SizeTotals {
	f := finalizer{tree: tree, shared: shared}

	var totals domain.SizeTotals
	f.visit(tree.Root(), &totals)
	return totals
}

type finalizer struct {
	tree   *domain.Tree
	shared domain.NodeID
}

func (f *finalizer) visit(id domain.NodeID, totals *domain.SizeTotals) {
	var sub domain.SizeTotals
	for _, child := range f.tree.Children(id) {
		if f.tree.IsSelf(child) {
			continue
		}
		f.visit(child, &sub)
	}

	totals.AssetCount += sub.AssetCount
	totals.Size += sub.Size
	totals.AnyUnknown = totals.AnyUnknown || sub.AnyUnknown

	switch {
	case id == f.shared:
		n := f.tree.Node(id)
		n.Name = fmt.Sprintf("%s  (%s)", SharedLabel, domain.FormatSize(sub.Size, !sub.AnyUnknown))
		n.Size = domain.AutoSize
	case f.tree.Parent(id) == domain.NoNode:
		f.tree.Node(id).Size = domain.AutoSize
	default:
		f.asset(id, sub, totals)
	}

	f.tree.SortChildren(id)
}

func (f *finalizer) asset(id domain.NodeID, sub domain.SizeTotals, totals *domain.SizeTotals) {
	p, _ := f.tree.Payload(id)
	record := p.Record

	totals.AssetCount++
	totals.Size += p.Size
	if !p.KnownSize {
		totals.AnyUnknown = true
	}

	n := f.tree.Node(id)
	n.LogicalName = record.LogicalName()

	if f.tree.IsLeaf(id) {
		n.CenterText = domain.FormatSize(p.Size, p.KnownSize)
		n.Size = float64(p.Size)
		if n.Size == 0 {
			n.Size = domain.MinLeafSize
		}
		if record.IsPrimary() {
			n.Name = record.ID.String()
		} else {
			n.Name = record.AssetName
			n.Name2 = record.Class
		}
		return
	}

	n.Size = domain.AutoSize
	total := domain.FormatSize(sub.Size+p.Size, !sub.AnyUnknown && p.KnownSize)
	if record.IsPrimary() {
		n.Name = fmt.Sprintf("%s  (%s)", record.ID, total)
	} else {
		n.Name = fmt.Sprintf("%s  (%s, %s)", record.AssetName, record.Class, total)
	}

	if p.Size <= 0 {
		return
	}

	self := f.tree.SelfNode(id)
	if self == domain.NoNode {
		self = f.tree.AddSelf(id)
	}
	s := f.tree.Node(self)
	s.Name = SelfLabel
	s.Name2 = record.Class
	s.CenterText = domain.FormatSize(p.Size, p.KnownSize)
	s.Size = float64(p.Size)
}
