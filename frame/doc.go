// ABOUTME: Package documentation for frame sinks
// ABOUTME: Sinks receive rendered frames line by line from the heap model

// Package frame provides destinations for the frames a heap.Heap emits.
// Every sink accepts any number of WriteLine calls per frame followed by
// exactly one Advance. Frames are append-only: once a sink has advanced past
// a frame it never touches it again.
package frame
