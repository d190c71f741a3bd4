// Package youtube fetches and parses YouTube watch pages without the
// official API. It extracts the metadata the classifier needs (title,
// description, channel) along with the related video URLs that drive
// graph discovery, pacing all requests through a shared rate limiter.
package youtube
