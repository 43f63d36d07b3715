package augur

// OutputIsIterable reports whether the version's declared output schema is
// array-typed, meaning a job's output grows incrementally and should be
// consumed through an OutputIterator rather than awaited as a single value.
//
// A missing or malformed schema selects the atomic mode: dev builds often
// ship without a usable schema, and failing open to the simpler mode is
// always safe.
func (v *Version) OutputIsIterable() bool {
	if v == nil {
		return false
	}

	components, ok := v.OpenAPISchema["components"].(map[string]any)
	if !ok {
		return false
	}
	schemas, ok := components["schemas"].(map[string]any)
	if !ok {
		return false
	}
	output, ok := schemas["Output"].(map[string]any)
	if !ok {
		return false
	}
	return output["type"] == "array"
}
