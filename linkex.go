// Package linkex provides a local, CLI-based extractor and analyzer for
// publicly visible professional-network pages. It fetches profile, company,
// post and article pages, extracts structured records from their HTML,
// stores them, indexes them for semantic search, and answers natural
// language questions grounded on the stored records.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, ollama/).
package linkex
