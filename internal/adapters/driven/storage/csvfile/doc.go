// Package csvfile implements the incident store over a pair of
// append-only CSV files: reports.csv (one row per incident) and
// actions.csv (one row per corrective action, keyed by case_id).
//
// The column layout is taken from the header row of the existing files,
// so externally maintained exports with reordered columns keep working;
// fresh files are created with the canonical layout. Appends write one
// complete row at a time: a failed append leaves no partial record.
package csvfile
