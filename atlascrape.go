// Package atlascrape extracts wiki pages from Confluence and issues from
// Jira, normalizes both into a single document schema, and exports the
// result as JSON artifacts for downstream RAG ingestion.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or external service (e.g., http/, sqlite/,
// goquery/).
package atlascrape
