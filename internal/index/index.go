// Package index implements the in-memory inverted index and document store
// at the core of the discovery engine. A single Index owns both maps and
// guards them with one RWMutex; callers never touch the maps directly.
package index

import (
	"sync"

	"github.com/campuslabs/discovery/internal/document"
	"github.com/campuslabs/discovery/internal/index/tokenizer"
)

// Index maps normalised tokens to the set of document ids containing them,
// alongside a flat store of the documents themselves. Document ids are
// unique across all document types.
type Index struct {
	mu       sync.RWMutex
	docs     map[string]document.Document
	postings map[string]map[string]struct{}
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		docs:     make(map[string]document.Document),
		postings: make(map[string]map[string]struct{}),
	}
}

// Add stores doc keyed by its id, overwriting any prior document with the
// same id, and adds the id to the posting set of every token in the
// document's content and title. Callers that want clean retraction of a
// previous version must Remove first; Add alone does not retract old
// postings.
func (ix *Index) Add(doc document.Document) {
	tokens := tokenizer.Tokenize(doc.Content + " " + doc.Title)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.docs[doc.ID] = doc
	for _, token := range tokens {
		set, ok := ix.postings[token]
		if !ok {
			set = make(map[string]struct{})
			ix.postings[token] = set
		}
		set[doc.ID] = struct{}{}
	}
}

// Remove retracts the document with the given id. A missing id is a silent
// no-op. Retraction re-tokenizes the currently stored text, so a document
// mutated out-of-band before removal will retract the wrong postings; the
// supported update path is Remove followed by Add.
func (ix *Index) Remove(id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	doc, ok := ix.docs[id]
	if !ok {
		return
	}
	tokens := tokenizer.Tokenize(doc.Content + " " + doc.Title)
	for _, token := range tokens {
		set, ok := ix.postings[token]
		if !ok {
			continue
		}
		delete(set, id)
		if len(set) == 0 {
			delete(ix.postings, token)
		}
	}
	delete(ix.docs, id)
}

// Get returns the stored document for id.
func (ix *Index) Get(id string) (document.Document, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	doc, ok := ix.docs[id]
	return doc, ok
}

// Candidates returns the documents matching any of the given tokens, with a
// per-document count of how many query tokens each matched. An empty token
// list is a browse-all query: every document of the requested type (or every
// document when docType is empty) is a candidate. The type filter is applied
// after posting-list retrieval.
func (ix *Index) Candidates(tokens []string, docType document.DocType) []document.Document {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(tokens) == 0 {
		all := make([]document.Document, 0, len(ix.docs))
		for _, doc := range ix.docs {
			if docType == "" || doc.Type == docType {
				all = append(all, doc)
			}
		}
		return all
	}

	// OR semantics: any document under at least one queried token matches.
	// The match count is accumulated per document but ranking is entirely
	// TF-IDF driven downstream.
	matches := make(map[string]int)
	for _, token := range tokens {
		for id := range ix.postings[token] {
			matches[id]++
		}
	}

	candidates := make([]document.Document, 0, len(matches))
	for id := range matches {
		doc, ok := ix.docs[id]
		if !ok {
			continue
		}
		if docType != "" && doc.Type != docType {
			continue
		}
		candidates = append(candidates, doc)
	}
	return candidates
}

// DocCount returns the number of stored documents.
func (ix *Index) DocCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// TokenDocCount returns the number of documents whose text contains token.
func (ix *Index) TokenDocCount(token string) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.postings[token])
}

// TokenCount returns the number of distinct tokens in the inverted index.
func (ix *Index) TokenCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.postings)
}
