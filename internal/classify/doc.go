// Package classify scores text for Farsi-language likelihood.
//
// The classifier blends two signals:
//   - the fraction of non-whitespace characters inside the Perso-Arabic
//     Unicode blocks (script ratio)
//   - a statistical language-identification confidence (trigram based)
//
// Design decision: two signals instead of one because:
//  1. Script ratio alone cannot tell Farsi from Arabic or Urdu, which
//     share the script
//  2. Statistical detection alone is unreliable on the short, noisy
//     titles the crawler mostly sees
//  3. Blending keeps mixed-script text (Farsi embedded in a Latin
//     description) scoring proportionally instead of being rejected
//
// Scoring is pure and stateless: a Classifier can be shared freely
// across goroutines, and scoring never fails. Unclassifiable input is
// a zero score, never an error, so one strange title cannot abort a
// crawl run.
package classify
