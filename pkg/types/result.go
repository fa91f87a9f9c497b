// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResultRow is one row of the session results table. The extracted value
// is either a pattern match or free LLM text and is not guaranteed to parse
// as a single address.
type ResultRow struct {
	Entity         string `json:"entity" yaml:"entity"`
	ExtractedEmail string `json:"extracted_email" yaml:"extracted_email"`
}
