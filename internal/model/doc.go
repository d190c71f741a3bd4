// Package model defines the core data structures used throughout vidharvest.
//
// This package contains the following main types:
//   - PageData: the normalized result of fetching a single watch page
//   - VideoNode: one discovered video and its accept/reject outcome
//   - SubtitleRecord: one subtitle artifact belonging to an accepted video
//   - CrawlRunSummary: aggregate counters for one crawl run
//   - StoreStats: row counts reported by the metadata store
//
// Design decision: models live in their own package to avoid circular
// dependencies. Multiple packages (crawler, download, database, report)
// consume these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
