// Package output persists dry-run documents for inspection.
//
// Every recipient gets its own directory (or key prefix) named after the address,
// holding the rendered document and copies of its attachments:
//
//	.output/
//	  alice@example.com/
//	    Welcome Alice.html
//	    invoice.pdf
//
// Disk writes to the local file system; Bucket writes to S3-compatible storage.
// Both clear previous output in Prepare, so rendering the same input twice yields
// identical artifacts.
package output
