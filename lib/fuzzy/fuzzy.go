// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fuzzy ranks listing results against a short pattern using
// fzf's matching algorithm, the same scoring an agent gets when piping
// a listing through fzf by hand. It backs the --match flag of the
// listing commands.
package fuzzy

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Slab sizes fzf itself uses for interactive matching.
const (
	slab16Size = 100 * 1024
	slab32Size = 2048
)

// Result is one match. Score is 0 when the text does not match.
// Positions are rune offsets of the matched characters, ascending.
type Result struct {
	Score     int
	Positions []int
}

// Matcher holds the scratch memory fzf reuses across matches. It is
// not safe for concurrent use.
type Matcher struct {
	slab *util.Slab
}

// algo.Init selects fzf's scoring scheme. Until it runs, every
// match scores zero.
var initScheme sync.Once

// NewMatcher allocates a Matcher.
func NewMatcher() *Matcher {
	initScheme.Do(func() { algo.Init("default") })
	return &Matcher{slab: util.MakeSlab(slab16Size, slab32Size)}
}

// Match scores text against pattern, case-insensitively. An empty
// pattern matches nothing.
func (matcher *Matcher) Match(text, pattern string) Result {
	// fzf's case-insensitive mode expects a lowercase pattern and
	// folds the input itself.
	runes := []rune(strings.ToLower(strings.TrimSpace(pattern)))
	if len(runes) == 0 {
		return Result{}
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, runes, true, matcher.slab)
	if result.Score <= 0 {
		return Result{}
	}

	match := Result{Score: result.Score}
	if positions != nil {
		match.Positions = append([]int(nil), (*positions)...)
		sort.Ints(match.Positions)
	}
	return match
}

// Rank returns the items whose key matches pattern, best match first.
// Items with equal scores keep their original order. An empty pattern
// returns items unchanged.
func Rank[T any](items []T, pattern string, key func(T) string) []T {
	if strings.TrimSpace(pattern) == "" {
		return items
	}

	type scored struct {
		item  T
		score int
	}
	matcher := NewMatcher()
	matched := make([]scored, 0, len(items))
	for _, item := range items {
		if result := matcher.Match(key(item), pattern); result.Score > 0 {
			matched = append(matched, scored{item: item, score: result.Score})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	ranked := make([]T, len(matched))
	for index, entry := range matched {
		ranked[index] = entry.item
	}
	return ranked
}
