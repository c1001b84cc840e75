// Package link implements the linker (C5): starting from the root, it
// pushes the set of externally-needed output references inward and
// records them on each node. This drives dead-column
// elimination at intermediate SELECTs, optional-join pruning, and
// unreferenced-CTE dropping; internal/translate consumes its Result
// when deciding a subquery's exact projection list.
package link
