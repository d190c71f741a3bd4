// Package mapping maintains the ledger file that correlates each accepted
// watch URL with the artifacts actually produced for it: the local video
// file and per-language subtitle files, with a literal "N/A" for anything
// absent. The ledger is append-only and each row is written in full, so a
// crash mid-run never leaves a partial row visible to readers.
package mapping
