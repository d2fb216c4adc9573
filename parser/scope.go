package parser

import (
	"strings"

	"github.com/robinvdvleuten/beanparse/ast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// tagScope tracks tags pushed with pushtag. The same tag may be pushed more
// than once; it stays active until popped as many times.
type tagScope struct {
	counts map[string]int
}

func newTagScope() *tagScope {
	return &tagScope{counts: make(map[string]int)}
}

func (s *tagScope) push(tag string) {
	s.counts[tag]++
}

// pop reports false when tag is not currently pushed.
func (s *tagScope) pop(tag string) bool {
	n, ok := s.counts[tag]
	if !ok {
		return false
	}
	if n <= 1 {
		delete(s.counts, tag)
	} else {
		s.counts[tag] = n - 1
	}
	return true
}

func (s *tagScope) count(tag string) int {
	return s.counts[tag]
}

// apply adds every active tag to tags.
func (s *tagScope) apply(tags ast.Set) {
	for tag := range s.counts {
		tags.Add(tag)
	}
}

// unbalanced returns the tags still pushed, sorted.
func (s *tagScope) unbalanced() []string {
	tags := maps.Keys(s.counts)
	slices.Sort(tags)
	return tags
}

// metaScope tracks metadata pushed with pushmeta. Each key keeps a stack of
// values and the most recent one applies.
type metaScope struct {
	stacks map[string][]string
}

func newMetaScope() *metaScope {
	return &metaScope{stacks: make(map[string][]string)}
}

func (s *metaScope) push(key, value string) {
	s.stacks[key] = append(s.stacks[key], value)
}

// pop reports false when key is not currently pushed.
func (s *metaScope) pop(key string) bool {
	stack, ok := s.stacks[key]
	if !ok {
		return false
	}
	if len(stack) <= 1 {
		delete(s.stacks, key)
	} else {
		s.stacks[key] = stack[:len(stack)-1]
	}
	return true
}

// apply copies the active values into meta without overwriting existing keys.
func (s *metaScope) apply(meta ast.Metadata) {
	for key, stack := range s.stacks {
		if _, ok := meta[key]; !ok {
			meta[key] = stack[len(stack)-1]
		}
	}
}

func (s *metaScope) unbalanced() []string {
	keys := maps.Keys(s.stacks)
	slices.Sort(keys)
	return keys
}

// quoteList renders names as 'a', 'b'.
func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	return strings.Join(quoted, ", ")
}
