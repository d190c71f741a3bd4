// Package frontier implements the traversal work-list for one crawl run:
// the pending queue, the visited set, and the accept budget.
//
// The frontier is the single serialization point of a run. Dequeueing an
// entry marks its URL visited under the same lock, so no two workers can
// ever fetch the same URL, even when two pages discover it concurrently.
//
// Design decision: Pop blocks on a condition variable instead of
// returning "empty" the moment the queue drains because:
//  1. Workers push new URLs while others wait; a momentarily empty
//     queue does not mean the run is over
//  2. The run is only over when the queue is empty AND no popped entry
//     is still being processed, which the frontier can decide because
//     Done reports completions back to it
//  3. Polling loops in every worker would replace one clear invariant
//     with sleep tuning
//
// The budget counts accepted videos, not visits. Rejected and duplicate
// URLs never consume it; Accept is the only operation that does.
// One Frontier belongs to exactly one run and is not reused.
package frontier
