// Package common keeps enums shared between document model, comment store
// and margin box layout so none of them has to import the others for it.
package common

//go:generate go tool go-enum --names --marshal

// Kind of tracked change carried by a node, either explicitly or via marks.
// ENUM(insertion, deletion, format_change, block_change)
type TrackKind int

// IsTextual reports whether change came from insertion or deletion marks.
func (t TrackKind) IsTextual() bool {
	return t == TrackKindInsertion || t == TrackKindDeletion
}

// Kind of margin box.
// ENUM(track, comment)
type BoxKind int
