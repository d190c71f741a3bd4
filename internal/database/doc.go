// Package database provides SQLite-based storage for crawl metadata.
//
// This package implements the VideoDB, which stores:
//   - Video nodes discovered during crawl runs
//   - Subtitle records for accepted videos
//   - Crawl run summaries for historical analysis
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
//
// The mapping file remains the human-readable ledger, but it cannot
// answer queries like "which accepted videos still lack a Farsi
// subtitle". The database carries that state, which is what makes runs
// resumable and cross-run deduplication cheap.
package database
