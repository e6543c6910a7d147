// Package event defines the data model shared across the ETL pipeline.
//
// A Record is a transient candidate produced by the scraper; a Stored event
// is a Record that survived deduplication and was committed to the store,
// gaining an id and creation timestamp. The package also holds the
// normalization rules applied before persistence: title-cased categories and
// bounded description length.
package event
