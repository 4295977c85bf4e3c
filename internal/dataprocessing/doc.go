// Package dataprocessing implements the loader/normalizer stage of the
// complaints pipeline: it parses raw spreadsheet bytes (xlsx with a delimited
// text fallback) into a canonical record set with fixed column names, a typed
// date column and cleaned text fields. Data quality problems degrade to
// warnings on the result instead of failing the load.
package dataprocessing
