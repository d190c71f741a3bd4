// Package config provides configuration structures and utilities for
// vidharvest. It defines the crawl, classification, download, and storage
// options, loads optional overrides from a YAML file and VIDHARVEST_*
// environment variables, and validates the result before a run starts.
package config
