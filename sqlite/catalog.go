package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/connexin/atlascrape"
)

// Compile-time interface verification.
var _ atlascrape.Catalog = (*Catalog)(nil)

// Catalog implements atlascrape.Catalog using SQLite.
type Catalog struct {
	db *DB
}

// NewCatalog creates a new Catalog.
func NewCatalog(db *DB) *Catalog {
	return &Catalog{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// UpsertDocuments inserts documents in a single transaction, replacing
// any existing document with the same (source_type, id).
func (c *Catalog) UpsertDocuments(ctx context.Context, docs []*atlascrape.Document) error {
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
	}

	tx, err := c.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, doc := range docs {
		metadata, err := json.Marshal(doc.Metadata)
		if err != nil {
			return atlascrape.Errorf(atlascrape.EINTERNAL, "failed to encode metadata for %s/%s: %v", doc.SourceType, doc.ID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO documents (source_type, id, title, content, source, metadata, document_type, content_hash, indexed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (source_type, id) DO UPDATE SET
				title = excluded.title,
				content = excluded.content,
				source = excluded.source,
				metadata = excluded.metadata,
				document_type = excluded.document_type,
				content_hash = excluded.content_hash,
				indexed_at = excluded.indexed_at
		`, doc.SourceType, doc.ID, doc.Title, doc.Content, doc.Source, string(metadata),
			doc.DocumentType, hashContent(doc.Content), doc.IndexedAt.Format(time.RFC3339Nano))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindDocuments retrieves documents matching the filter, newest
// indexed_at first.
func (c *Catalog) FindDocuments(ctx context.Context, filter atlascrape.DocumentFilter) ([]*atlascrape.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT source_type, id, title, content, source, metadata, document_type, indexed_at FROM documents WHERE 1=1")

	if filter.SourceType != nil {
		query.WriteString(" AND source_type = ?")
		args = append(args, *filter.SourceType)
	}
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY indexed_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := c.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*atlascrape.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func scanDocument(rows *sql.Rows) (*atlascrape.Document, error) {
	var doc atlascrape.Document
	var metadata, indexedAt string

	if err := rows.Scan(&doc.SourceType, &doc.ID, &doc.Title, &doc.Content, &doc.Source,
		&metadata, &doc.DocumentType, &indexedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(metadata), &doc.Metadata); err != nil {
		return nil, atlascrape.Errorf(atlascrape.EINTERNAL, "failed to decode metadata for %s/%s: %v", doc.SourceType, doc.ID, err)
	}

	var err error
	doc.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at")
	if err != nil {
		return nil, err
	}

	return &doc, nil
}
