// Package recall keeps a per-session BM25 index over extracted page text
// so earlier extractions can be searched again within the session.
package recall

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
	snippetLen   = 300
)

type Doc struct {
	DocID      string    `json:"doc_id"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	ChunkIndex int       `json:"chunk_index"`
	IngestedAt time.Time `json:"ingested_at"`
}

type Hit struct {
	DocID   string  `json:"doc_id"`
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
	Rank    int     `json:"rank"`
}

// Index is an in-memory BM25 index. It is discarded with its session.
type Index struct {
	mu    sync.RWMutex
	bleve bleve.Index
	meta  map[string]Doc
}

func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}
	return &Index{bleve: idx, meta: make(map[string]Doc)}, nil
}

// Add chunks the text and indexes every chunk. It returns the number of
// chunks indexed; empty text indexes nothing.
func (ix *Index) Add(url, title, text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	hash := sha1Hex(text)
	now := time.Now()
	chunks := makeChunks(text, chunkSize, chunkOverlap)
	for i, part := range chunks {
		doc := Doc{
			DocID:      fmt.Sprintf("%s#%03d", hash, i),
			URL:        url,
			Title:      title,
			Text:       part,
			ChunkIndex: i,
			IngestedAt: now,
		}
		if err := ix.bleve.Index(doc.DocID, doc); err != nil {
			return i, fmt.Errorf("failed to index chunk: %w", err)
		}
		ix.meta[doc.DocID] = doc
	}
	return len(chunks), nil
}

// Search runs a BM25 query and returns up to k hits with short snippets.
func (ix *Index) Search(q string, k int) ([]Hit, error) {
	if k <= 0 || k > 50 {
		k = 10
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	query := bleve.NewQueryStringQuery(q)
	req := bleve.NewSearchRequestOptions(query, k*3, 0, false)
	res, err := ix.bleve.Search(req)
	if err != nil {
		return nil, err
	}

	var out []Hit
	for i, hit := range res.Hits {
		doc := ix.meta[hit.ID]
		out = append(out, Hit{
			DocID:   hit.ID,
			URL:     doc.URL,
			Title:   doc.Title,
			Snippet: snippet(doc.Text),
			Score:   hit.Score,
			Rank:    i + 1,
		})
		if len(out) >= k {
			break
		}
	}
	return out, nil
}

// Len reports how many chunks are indexed.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.meta)
}

func sha1Hex(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

func makeChunks(text string, approx, overlap int) []string {
	if len(text) <= approx {
		return []string{text}
	}
	var chunks []string
	for start := 0; start < len(text); {
		end := start + approx
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
		start = end - overlap
		if start < 0 {
			start = 0
		}
	}
	return chunks
}

func snippet(s string) string {
	if len(s) <= snippetLen {
		return s
	}
	return s[:snippetLen] + "…"
}
