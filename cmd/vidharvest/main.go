// Package main provides the entry point for the vidharvest CLI.
//
// vidharvest discovers Farsi-language YouTube videos by crawling the
// related-video graph from seed URLs, classifies candidates by their
// Perso-Arabic text content, and downloads videos and subtitles for
// the ones that match.
//
// Usage:
//
//	vidharvest crawl <watch-url>
//	vidharvest crawl --download-videos <watch-url>
//
// See --help for all available options.
package main

// main is the entry point for vidharvest.
func main() {
	Execute()
}
