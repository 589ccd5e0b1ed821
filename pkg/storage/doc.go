// Package storage provides S3-compatible object storage for merge artifacts.
//
// It is used by the bucket writer to publish dry-run output (rendered documents and
// copied attachments) where reviewers can reach them, instead of the local disk.
//
// # Usage
//
//	store, err := storage.New(storage.Config{
//		Bucket:    "mail-previews",
//		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
//		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
//		Endpoint:  "http://localhost:9000", // MinIO
//		PathStyle: true,
//	})
//	if err != nil {
//		return err
//	}
//
//	err = store.Put(ctx, "run/alice@example.com/Welcome.html", body, int64(body.Len()), "text/html")
//
// DeletePrefix clears a previous run before a new one is written.
//
// # Errors
//
// S3 errors are mapped onto ErrNotFound, ErrAccessDenied, ErrUploadFailed,
// ErrDeleteFailed and ErrListFailed; compare with errors.Is.
package storage
