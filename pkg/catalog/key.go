package catalog

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/go-sequel/sequel/pkg/node"
)

// structuralKey computes a content hash of root, stable across process
// runs for structurally equal trees regardless of pointer identity
//. No pack dependency does closed-sum-type tree
// hashing; crypto/sha256 plus a type-tagged recursive walk is the
// straightforward stdlib tool for it (see DESIGN.md).
func structuralKey(root node.Node, dialectName string) string {
	h := sha256.New()
	h.Write([]byte(dialectName))
	h.Write([]byte{0})
	writeNode(h, root)
	return hex.EncodeToString(h.Sum(nil))
}

func writeStr(h hash.Hash, s string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
	h.Write(n[:])
	h.Write([]byte(s))
}

func writeTag(h hash.Hash, tag string) { writeStr(h, tag) }

func writeBool(h hash.Hash, b bool) {
	if b {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
}

func writeItems(h hash.Hash, items []node.Item) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(items)))
	h.Write(n[:])
	for _, it := range items {
		writeStr(h, it.Label)
		writeNode(h, it.Value)
	}
}

func writeNodes(h hash.Hash, nodes []node.Node) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(nodes)))
	h.Write(n[:])
	for _, v := range nodes {
		writeNode(h, v)
	}
}

func writeSorts(h hash.Hash, sorts []*node.SortNode) {
	for _, s := range sorts {
		writeNode(h, s)
	}
}

// writeNode recursively feeds n's type tag and fields into h. A shared
// subtree (the Semantic IR is a DAG, spec.md §3) is hashed once per
// reference path rather than once per identity; this costs nothing
// beyond the extra hash.Write calls, since sha256 has no need for a
// visited-set to stay correct, only potentially to stay fast on
// pathologically wide sharing, which query trees of this size never
// approach.
func writeNode(h hash.Hash, n node.Node) {
	if n == nil {
		writeTag(h, "nil")
		return
	}
	switch v := n.(type) {
	case *node.FromNode:
		writeTag(h, "From")
		writeStr(h, v.Table)
	case *node.WhereNode:
		writeTag(h, "Where")
		writeNode(h, v.Tail())
		writeNode(h, v.Cond)
	case *node.SelectNode:
		writeTag(h, "Select")
		writeNode(h, v.Tail())
		writeItems(h, v.Items)
	case *node.DefineNode:
		writeTag(h, "Define")
		writeNode(h, v.Tail())
		writeItems(h, v.Items)
	case *node.JoinNode:
		writeTag(h, "Join")
		writeNode(h, v.Tail())
		writeNode(h, v.Joinee)
		writeNode(h, v.On)
		writeBool(h, v.Left)
		writeBool(h, v.Optional)
		writeBool(h, v.Lateral)
	case *node.AppendNode:
		writeTag(h, "Append")
		writeNode(h, v.Tail())
		writeNodes(h, v.Others)
	case *node.IterateNode:
		writeTag(h, "Iterate")
		writeNode(h, v.Tail())
		writeNode(h, v.Iterator)
	case *node.WithNode:
		writeTag(h, "With")
		writeNode(h, v.Tail())
		writeCTEs(h, v.CTEs)
	case *node.WithExternalNode:
		writeTag(h, "WithExternal")
		writeNode(h, v.Tail())
		writeCTEs(h, v.CTEs)
	case *node.BindNode:
		writeTag(h, "Bind")
		writeNode(h, v.Tail())
		writeItems(h, v.Args)
	case *node.GroupNode:
		writeTag(h, "Group")
		writeNode(h, v.Tail())
		writeItems(h, v.Keys)
	case *node.PartitionNode:
		writeTag(h, "Partition")
		writeNode(h, v.Tail())
		writeItems(h, v.Keys)
		writeSorts(h, v.OrderBy)
		writeFrame(h, v.Frame)
	case *node.OrderNode:
		writeTag(h, "Order")
		writeNode(h, v.Tail())
		writeSorts(h, v.By)
	case *node.LimitNode:
		writeTag(h, "Limit")
		writeNode(h, v.Tail())
		writeNode(h, v.Offset)
		writeNode(h, v.Count)
		writeBool(h, v.WithTies)
	case *node.AsNode:
		writeTag(h, "As")
		writeStr(h, v.Name)
		writeNode(h, v.Input)
	case *node.GetNode:
		writeTag(h, "Get")
		writeStr(h, v.Name)
		writeNode(h, v.Inner)
	case *node.VarNode:
		writeTag(h, "Var")
		writeStr(h, v.Name)
	case *node.LitNode:
		writeTag(h, "Lit")
		writeStr(h, fmt.Sprintf("%#v", v.Value))
	case *node.FunNode:
		writeTag(h, "Fun")
		writeStr(h, v.Name)
		writeNodes(h, v.Args)
	case *node.AggNode:
		writeTag(h, "Agg")
		writeStr(h, v.Name)
		writeNodes(h, v.Args)
		writeNode(h, v.Filter)
	case *node.SortNode:
		writeTag(h, "Sort")
		writeNode(h, v.Value)
		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(v.By))
		h.Write(n[:])
		binary.LittleEndian.PutUint64(n[:], uint64(v.Nulls))
		h.Write(n[:])
	default:
		writeTag(h, fmt.Sprintf("unknown:%T", n))
	}
}

func writeCTEs(h hash.Hash, ctes []node.CTEItem) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(ctes)))
	h.Write(n[:])
	for _, c := range ctes {
		writeStr(h, c.Label)
		writeNode(h, c.Query)
		writeBool(h, c.Materialized)
	}
}

func writeFrame(h hash.Hash, f *node.Frame) {
	if f == nil {
		h.Write([]byte{0})
		return
	}
	h.Write([]byte{1})
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(f.Mode))
	h.Write(n[:])
	writeBound(h, f.Start)
	writeBound(h, f.End)
	binary.LittleEndian.PutUint64(n[:], uint64(f.Exclude))
	h.Write(n[:])
}

func writeBound(h hash.Hash, b node.FrameBound) {
	writeBool(h, b.Preceding)
	writeBool(h, b.Unbounded)
	writeBool(h, b.CurrentRow)
	writeNode(h, b.Offset)
}
