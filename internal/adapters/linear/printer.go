// Package linear prints size trees and cached sizes as plain, line-oriented text.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/ui/output"
	"go.trai.ch/sizemap/internal/ui/style"
)

// Printer writes finalized trees and size lines to a writer.
// It is safe for concurrent use; every call writes whole lines.
type Printer struct {
	mu  sync.Mutex
	w   io.Writer
	out *termenv.Output
}

// NewPrinter creates a Printer writing to w, or to stdout when w is nil.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w, out: output.New(w)}
}

// PrintTree writes every node below the overall root as an indented listing.
func (p *Printer) PrintTree(tree *domain.Tree) {
	var b strings.Builder
	p.writeChildren(&b, tree, tree.Root(), "")

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.w, b.String())
}

func (p *Printer) writeChildren(b *strings.Builder, tree *domain.Tree, id domain.NodeID, prefix string) {
	children := tree.Children(id)
	for i, c := range children {
		glyph, indent := style.Branch, style.Pipe
		if i == len(children)-1 {
			glyph, indent = style.Last, style.Space
		}
		p.writeNode(b, prefix+glyph, tree.Node(c))
		p.writeChildren(b, tree, c, prefix+indent)
	}
}

func (p *Printer) writeNode(b *strings.Builder, prefix string, n *domain.Node) {
	b.WriteString(p.out.String(prefix).Faint().String())
	b.WriteString(n.Name)
	if n.Name2 != "" {
		b.WriteString(" " + p.out.String("["+n.Name2+"]").Faint().String())
	}
	if n.CenterText != "" {
		b.WriteString("  " + p.out.String(n.CenterText).Foreground(termenv.RGBColor(string(style.Slate))).String())
	}
	b.WriteString("\n")
}

// PrintSummary writes the overall size and the number of unresolved entities.
func (p *Printer) PrintSummary(totals domain.SizeTotals, failed int) {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %s across %d assets\n",
		domain.FormatSize(totals.Size, !totals.AnyUnknown), totals.AssetCount)
	if failed > 0 {
		warning := p.out.String(style.Warning).Foreground(termenv.RGBColor(string(style.Yellow))).String()
		fmt.Fprintf(&b, "%s Failed to resolve: %d\n", warning, failed)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.w, b.String())
}

// PrintSize writes one "<root>: <size>" line.
func (p *Printer) PrintSize(root domain.EntityID, text string) {
	name := p.out.String(root.String()).Foreground(termenv.RGBColor(string(style.Iris))).Bold().String()

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.w, "%s: %s\n", name, text)
}
