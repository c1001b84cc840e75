// Package render is the serializer (C7): it walks a *clause.Program and
// emits dialect-specific SQL text plus the ordered parameter-name list
// that pack() later zips against a caller-supplied value mapping
//.
//
// The walk is two-layered, mirroring the teacher's pkg/format split
// between statement-level and expression-level formatting: Printer
// owns clause-boundary whitespace decisions (newlines and indentation,
// toggled by Pretty), while expressions render through a plain
// recursive string builder, since a single projection item or WHERE
// condition is always emitted on one logical line in both modes —
// only the surrounding clause skeleton's whitespace differs.
package render
