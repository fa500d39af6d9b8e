// Package source provides tabular data sources for the table pipeline.
//
// A [Source] gives read-only access to a row collection and its column
// descriptors. The pipeline never writes through a source; loading is a
// one-shot read and the resulting rows are owned by the caller.
//
// # Implementations
//
//   - [Memory]: caller-supplied rows, the source every loader produces
//   - CSV: [ReadCSV] / [LoadCSV] parse a header row into columns and
//     infer int, float, and bool cell types
//   - JSON: [ReadJSON] / [WriteJSON] round-trip a dataset (columns plus
//     rows) for storage and the HTTP API
//   - [Mongo]: reads a MongoDB collection, discovering columns from a
//     sample of documents
package source
