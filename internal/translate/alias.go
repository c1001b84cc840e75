package translate

import "fmt"

// aliasGen hands out deterministic name_N aliases, one counter per
// base name, in traversal order.
type aliasGen struct {
	counts map[string]int
}

func newAliasGen() *aliasGen {
	return &aliasGen{counts: map[string]int{}}
}

func (a *aliasGen) next(base string) string {
	a.counts[base]++
	return fmt.Sprintf("%s_%d", base, a.counts[base])
}
