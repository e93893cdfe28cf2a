// ABOUTME: Serializes the full heap state into one graph-description frame
// ABOUTME: Stack cluster, heap cluster, root edges and object edges, then advance

package heap

import (
	"fmt"
	"strings"

	"github.com/prateek/rootlens/graph"
)

// frameWriter collects the first sink error and drops writes after it
type frameWriter struct {
	sink Sink
	err  error
}

func (w *frameWriter) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	w.err = w.sink.WriteLine(fmt.Sprintf(format, args...))
}

func (w *frameWriter) print(line string) {
	if w.err != nil {
		return
	}
	w.err = w.sink.WriteLine(line)
}

func (h *Heap) render(label string) error {
	w := &frameWriter{sink: h.sink}

	w.print("digraph {")
	w.print("compound = true;")
	w.print(`labeljust = "l";`)
	w.print(`labelloc = "t";`)
	w.printf("label = %s;", quote(label))
	w.print("node [shape=record];")
	w.print(`fontname="monospace";`)

	w.print("subgraph cluster_stack {")
	w.print("label = stack; style=rounded; color=grey90")
	for i, s := range h.scopes {
		w.print(recordNode(scopeNode(s), "scope:"+s.name, slotFields(len(s.slots)), ""))
		if i > 0 {
			w.printf("%s -> %s;", scopeNode(h.scopes[i-1]), scopeNode(s))
		}
	}
	w.print("}")

	var unreachable map[graph.ObjID]bool
	if h.reachability {
		marked := graph.Reachable(h.Graph())
		unreachable = make(map[graph.ObjID]bool)
		for addr := range h.objects {
			if !marked[graph.ObjID(addr)] {
				unreachable[graph.ObjID(addr)] = true
			}
		}
	}

	addrs := h.Addrs()
	w.print("subgraph cluster_heap {")
	w.print("label = heap; style=rounded; color=grey90; ")
	w.print("_ [style=invisible];")
	for _, addr := range addrs {
		obj := h.objects[addr]
		style := ""
		if unreachable[graph.ObjID(addr)] {
			style = "style=dashed fontcolor=grey50"
		}
		w.print(recordNode(objectNode(addr), obj.Kind(), obj.Fields(), style))
	}
	w.print("}")

	dangling := make(map[Addr]bool)
	target := func(addr Addr) string {
		if _, ok := h.objects[addr]; !ok {
			if !dangling[addr] {
				dangling[addr] = true
				w.printf(`%s [id=%s label="dangling" style=dashed];`, danglingNode(addr), danglingNode(addr))
			}
			return danglingNode(addr)
		}
		return objectNode(addr)
	}

	for _, s := range h.scopes {
		for i, addr := range s.slots {
			if !addr.IsNil() {
				dst := target(addr)
				w.printf("%s:%d -> %s;", scopeNode(s), i, dst)
			}
		}
	}
	for _, addr := range addrs {
		for _, e := range h.objects[addr].Edges() {
			dst := target(e.Target)
			w.printf("%s:%d -> %s;", objectNode(addr), e.Index, dst)
		}
	}

	w.print("}")
	// Advance exactly once per frame, even after a failed line
	err := h.sink.Advance()
	if w.err != nil {
		return w.err
	}
	return err
}

func scopeNode(s *Scope) string { return fmt.Sprintf("s%d", s.id) }

func objectNode(a Addr) string { return fmt.Sprintf("o%d", uint64(a)) }

func danglingNode(a Addr) string { return fmt.Sprintf("d%d", uint64(a)) }

func slotFields(n int) []Field {
	fields := make([]Field, n)
	for i := range fields {
		idx := fmt.Sprint(i)
		fields[i] = Field{Port: idx, Text: idx}
	}
	return fields
}

// recordNode formats `id [id=id label="title | <port> text | ..."];`. Field
// text is record-escaped already, so only quotes are escaped on top.
func recordNode(id, title string, fields []Field, style string) string {
	parts := make([]string, 0, len(fields)+1)
	parts = append(parts, escapeRecord(title))
	for _, f := range fields {
		parts = append(parts, "<"+f.Port+"> "+escapeRecord(f.Text))
	}
	attrs := fmt.Sprintf("id=%s label=\"%s\"", id, strings.ReplaceAll(strings.Join(parts, " | "), `"`, `\"`))
	if style != "" {
		attrs += " " + style
	}
	return id + " [" + attrs + "];"
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	"{", `\{`,
	"}", `\}`,
	"|", `\|`,
	"<", `\<`,
	">", `\>`,
	"\n", `\n`,
)

// escapeRecord protects characters that structure record labels
func escapeRecord(s string) string {
	return recordEscaper.Replace(s)
}

var quoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
)

// quote wraps s in double quotes as a DOT string
func quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}
