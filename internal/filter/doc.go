// Package filter narrows a dataset to the rows matching the viewer's per-column
// widget state.
//
// Filtering is a pure function of a dataset and an immutable Config. When the
// config is enabled the dataset is copied and normalized (text columns holding
// timestamps become time columns, zones are dropped), each selected column is
// classified into a dataset.Kind and the matching Spec is applied. All specs
// combine with AND and surviving rows keep their input order.
//
// A range or pattern given for a column classified as categorical selects the
// observed values it matches, so small result sets can still be narrowed.
//
// Nothing in this package returns an error to the caller: a pattern that does
// not compile or a spec that does not fit its column degrades to a more
// permissive filter and is reported through Result.Notes.
package filter
