package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenTrie_WithPrefix(t *testing.T) {
	trie := newTokenTrie()
	for _, w := range []string{"deployment", "deploy", "design", "depot"} {
		trie.insert(w)
	}

	assert.Equal(t, []string{"deployment", "deploy", "depot"}, trie.withPrefix("dep", 10))
	assert.Equal(t, []string{"deployment"}, trie.withPrefix("deploy", 10), "excludes the prefix itself")
	assert.Equal(t, []string{"deployment"}, trie.withPrefix("dep", 1), "limit keeps the earliest words")
	assert.Nil(t, trie.withPrefix("xyz", 10))
	assert.Nil(t, trie.withPrefix("dep", 0))
}

func TestTokenTrie_InsertionOrder(t *testing.T) {
	trie := newTokenTrie()
	trie.insert("apiz")
	trie.insert("apia")

	assert.Equal(t, []string{"apiz", "apia"}, trie.withPrefix("api", 10))
}

func TestTokenTrie_ReinsertKeepsPosition(t *testing.T) {
	trie := newTokenTrie()
	trie.insert("deployment")
	trie.insert("deploy")
	trie.insert("deployment")

	assert.Equal(t, []string{"deployment", "deploy"}, trie.withPrefix("de", 10))
}

func TestTokenTrie_RemovedWordReturnsAtEnd(t *testing.T) {
	trie := newTokenTrie()
	trie.insert("deployment")
	trie.insert("deploy")
	trie.remove("deployment")
	trie.insert("deployment")

	assert.Equal(t, []string{"deploy", "deployment"}, trie.withPrefix("de", 10))
}

func TestTokenTrie_Remove(t *testing.T) {
	trie := newTokenTrie()
	trie.insert("deploy")
	trie.insert("deployment")

	trie.remove("deployment")
	assert.Empty(t, trie.withPrefix("deploy", 10))
	assert.Equal(t, []string{"deploy"}, trie.withPrefix("dep", 10))

	trie.remove("deploy")
	assert.Nil(t, trie.withPrefix("dep", 10), "branch is pruned")

	// Removing an unknown word is a no-op
	trie.remove("missing")
}

func TestTokenTrie_Reset(t *testing.T) {
	trie := newTokenTrie()
	trie.insert("deploy")
	trie.reset()

	assert.Nil(t, trie.withPrefix("dep", 10))
}
