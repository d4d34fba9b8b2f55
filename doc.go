// Package tabular is an in-memory tabular data engine: given collections of
// open-map rows it derives column metadata, and supports relational joins,
// grouped aggregation with alignment, set operations, and schema-aware row
// mutation. It backs UI components needing spreadsheet- or pivot-like
// behavior without a database. This root package holds the whole engine;
// datasource subpackages turn external formats into row collections.
package tabular
