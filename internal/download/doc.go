// Package download obtains video files and subtitles for accepted
// videos through third-party conversion services.
//
// YouTube serves media through signed, expiring URLs that a plain HTTP
// client cannot fetch directly. Instead of reimplementing stream
// resolution, this package drives the HTML forms of public conversion
// services (a ytdown-style service for MP4 files, a downsub-style
// service for subtitles) and scrapes the result pages for download
// links.
//
// Design decision: the Orchestrator reports absence instead of
// returning errors because:
// 1. A missing artifact must never stop a crawl run
// 2. The mapping ledger records absence explicitly, so failures stay visible
// 3. Retry policy is a download concern, not a crawler concern
//
// Scraped services change their markup without notice. Both providers
// are configuration-time bindings: pointing the base URLs at a
// different compatible service requires no code changes.
package download
