// Package clause is the syntactic IR (C3): a tagged tree mirroring SQL
// grammar productions. It carries only what the serializer needs — no
// reference back to the semantic nodes (node.Node) that produced it.
// The translator (internal/translate) is the sole producer of this
// tree; the serializer (internal/render) is its sole consumer.
package clause
