// Package extractors provides implementations of the Extractor interface
// for the document formats students upload. Each extractor knows how to
// turn the bytes of one family of MIME types into plain text.
//
// Extractors are registered with the Registry at startup.
package extractors
