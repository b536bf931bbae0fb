package model

// ClassificationResult is the sanitized output of the classifier adapter.
// Every entry in Files is guaranteed to be one of the filenames presented to the
// classifier, without duplicates, in the order the capability returned them.
type ClassificationResult struct {
	Files []string
	// Anomalies counts names the capability returned that were not in the input.
	Anomalies int
	// Warnings holds operator-facing messages for degraded classifications.
	Warnings []string
	// Err is set when the capability failed; it wraps common.ErrClassificationFailed.
	Err error
}

// Empty reports whether nothing was classified into the target category.
func (r ClassificationResult) Empty() bool {
	return len(r.Files) == 0
}
