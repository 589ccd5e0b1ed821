// Package source reads merge records and writes failed ones back.
//
// Records come from a CSV file with a header row, a YAML list of mappings, or a
// PostgreSQL query. Column order is preserved in every case, so a failure file
// written by CSVFailureStore or YAMLFailureStore has the same shape as the input
// and can be fed straight into the next run.
//
//	records, err := source.Load(ctx, "data.csv")
//	records, err := source.Load(ctx, "postgres://localhost/crm",
//		source.WithQuery("select email as address, first_name as name from customers"))
package source
