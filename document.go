package atlascrape

import (
	"context"
	"time"
)

// SourceType identifies the origin system of a document.
type SourceType string

// Supported source systems.
const (
	SourceConfluence SourceType = "confluence"
	SourceJira       SourceType = "jira"
)

// DocumentType identifies the kind of record a document was built from.
type DocumentType string

// Supported document types.
const (
	DocTypeWikiPage DocumentType = "wiki_page"
	DocTypeIssue    DocumentType = "issue"
)

// Recognized metadata keys. The metadata mapping is open; these are the
// keys the normalizers populate.
const (
	MetaSpace     = "space"
	MetaURL       = "url"
	MetaCreated   = "created"
	MetaModified  = "modified"
	MetaKey       = "key"
	MetaProject   = "project"
	MetaStatus    = "status"
	MetaIssueType = "issue_type"
	MetaUpdated   = "updated"
)

// Artifact file names written to the output directory.
const (
	ArtifactConfluence = "connexin_documents_confluence.json"
	ArtifactJira       = "connexin_documents_jira.json"
	ArtifactMerged     = "connexin_documents_merged.json"
)

// Document is the normalized representation shared by both sources.
// A document is constructed by a normalizer from exactly one raw source
// record and is immutable within a run; a later run supersedes it by
// producing a document with the same key and a newer IndexedAt.
type Document struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Content      string            `json:"content"`
	Source       string            `json:"source"`
	SourceType   SourceType        `json:"source_type"`
	Metadata     map[string]string `json:"metadata"`
	DocumentType DocumentType      `json:"document_type"`
	IndexedAt    time.Time         `json:"indexed_at"`
}

// DocumentKey is the identity of a document. IDs are unique within a
// source type, never across source types.
type DocumentKey struct {
	SourceType SourceType
	ID         string
}

// Key returns the document's (source_type, id) identity.
func (d *Document) Key() DocumentKey {
	return DocumentKey{SourceType: d.SourceType, ID: d.ID}
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if d.SourceType == "" {
		return Errorf(EINVALID, "document source type required")
	}
	return nil
}

// Dedupe returns documents with exactly one entry per (source_type, id).
// The entry with the latest IndexedAt wins; on equal timestamps the one
// later in iteration order wins, so a fetcher re-encountering the same
// id keeps its most recently produced normalization. The relative order
// of first occurrence is preserved.
func Dedupe(docs []*Document) []*Document {
	index := make(map[DocumentKey]int, len(docs))
	out := make([]*Document, 0, len(docs))

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		i, ok := index[doc.Key()]
		if !ok {
			index[doc.Key()] = len(out)
			out = append(out, doc)
			continue
		}
		if !doc.IndexedAt.Before(out[i].IndexedAt) {
			out[i] = doc
		}
	}

	return out
}

// ArtifactWriter persists a named collection of documents.
// Writes are atomic: a failed write never replaces a previously valid
// artifact with a truncated one.
type ArtifactWriter interface {
	WriteDocuments(ctx context.Context, name string, docs []*Document) error
}
