// Package crawler drives the discovery-and-harvesting engine: a
// breadth-first walk of the related-video graph from seed watch pages.
//
// # Architecture
//
// The Crawler type coordinates a pool of workers draining a shared
// frontier. Each popped URL runs the same sequence: fetch the page,
// enqueue its related URLs, claim the video id, score title and
// description, and on acceptance persist the node, fetch artifacts,
// and write the mapping ledger row.
//
// Design decision: breadth-first order is required, not a preference,
// because:
//  1. Related videos near a seed are more topically relevant than
//     distant ones
//  2. Depth-first would descend one channel's full catalog before
//     touching the second seed
//  3. The accept budget should be spent close to the seeds
//
// # Concurrency
//
// Workers run under an errgroup sharing one context. The frontier's
// pop-and-mark-visited is the single serialization point, so no URL is
// ever fetched twice. The video-id claim set gives each id exactly one
// owner; that worker runs the id's whole persist/download/record
// sequence, which keeps per-id writes serialized without extra locks.
//
// # Failure policy
//
// Page failures are counted and skipped. Download failures surface as
// absent artifacts in the ledger. Only the store can end a run early:
// after repeated consecutive write failures the crawl aborts rather
// than keep discovering videos it cannot record.
//
// # Usage
//
//	c := crawler.New(fetcher, classifier, store, ledger,
//		crawler.WithWorkers(4),
//		crawler.WithDownloader(orchestrator),
//	)
//	summary, err := c.Run(ctx, seeds, 50, true)
package crawler
