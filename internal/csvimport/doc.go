// Package csvimport implements the course roster import pipeline and the
// project-assignment import pipeline.
//
// A roster CSV is streamed row by row: every row is validated, valid rows are
// folded into per-user and per-team aggregate records, and once the whole
// file has been scanned with zero errors the aggregates are committed in a
// single database transaction. A file with any invalid row commits nothing;
// all row problems are reported together in one combined message.
package csvimport
