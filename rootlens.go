// ABOUTME: Root rootlens package providing version information and package documentation
// ABOUTME: The tool itself lives in heap, frame, script and cmd

// Package rootlens animates how garbage-collection roots evolve. A toy heap
// with a stack of scopes emits one graph description per mutation; the
// frames can be laid out by Graphviz and played back in order.
//
// The heap package holds the model, frame the sinks, script a small program
// format driving the heap, and graph the reachability analyses run over a
// snapshot.
package rootlens

// Version is the semantic version of the rootlens tool
const Version = "0.1.0-dev"
