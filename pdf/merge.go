package pdf

// Merge concatenates docs in the given order.
func Merge(docs ...*Document) ([]byte, error) {
	if len(docs) < 2 {
		return nil, invalidOption("merging needs at least two PDF files, got %d", len(docs))
	}

	parts := make([][]byte, len(docs))
	for i, d := range docs {
		parts[i] = d.Bytes()
	}
	return mergeRaw(parts)
}
