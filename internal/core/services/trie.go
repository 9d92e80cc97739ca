package services

import (
	"cmp"
	"slices"
)

// tokenTrie indexes the vocabulary for prefix suggestions. Each word
// remembers when it was inserted so completions come back in vocabulary
// order rather than trie order.
type tokenTrie struct {
	root *trieNode
	next uint64
}

type trieNode struct {
	children map[rune]*trieNode
	isEnd    bool
	seq      uint64
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

func newTokenTrie() *tokenTrie {
	return &tokenTrie{root: newTrieNode()}
}

// insert adds token. A token already present keeps its position.
func (t *tokenTrie) insert(token string) {
	node := t.root
	for _, ch := range token {
		child, ok := node.children[ch]
		if !ok {
			child = newTrieNode()
			node.children[ch] = child
		}
		node = child
	}
	if node.isEnd {
		return
	}
	node.isEnd = true
	node.seq = t.next
	t.next++
}

// remove unmarks token and prunes branches left without words.
func (t *tokenTrie) remove(token string) {
	t.removeAt(t.root, []rune(token), 0)
}

func (t *tokenTrie) removeAt(node *trieNode, runes []rune, depth int) bool {
	if depth == len(runes) {
		node.isEnd = false
		return len(node.children) == 0
	}
	ch := runes[depth]
	child, ok := node.children[ch]
	if !ok {
		return false
	}
	if t.removeAt(child, runes, depth+1) {
		delete(node.children, ch)
	}
	return !node.isEnd && len(node.children) == 0
}

// withPrefix returns up to limit words starting with prefix, excluding
// prefix itself, in the order they were inserted.
func (t *tokenTrie) withPrefix(prefix string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	node := t.root
	for _, ch := range prefix {
		child, ok := node.children[ch]
		if !ok {
			return nil
		}
		node = child
	}

	type match struct {
		word string
		seq  uint64
	}
	var matches []match
	var walk func(n *trieNode, word []rune)
	walk = func(n *trieNode, word []rune) {
		if n.isEnd && n != node {
			matches = append(matches, match{string(word), n.seq})
		}
		for ch, child := range n.children {
			walk(child, append(word, ch))
		}
	}
	walk(node, []rune(prefix))
	if len(matches) == 0 {
		return nil
	}

	slices.SortFunc(matches, func(a, b match) int {
		return cmp.Compare(a.seq, b.seq)
	})
	results := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches[:min(limit, len(matches))] {
		results = append(results, m.word)
	}
	return results
}

func (t *tokenTrie) reset() {
	t.root = newTrieNode()
	t.next = 0
}
