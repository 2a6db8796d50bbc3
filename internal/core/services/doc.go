// Package services contains the core business logic of the incident
// advisor: the TF-IDF text index, the similarity search engine, the
// keyword intent classifier, recommendation aggregation, statistics,
// and ingestion.
//
// Services depend only on domain types and driven ports. All query-path
// operations read an immutable corpus/index snapshot captured at the
// start of the request; ingestion and rebuild are the only mutators.
package services
