// Package storage defines the object store that holds onboarding documents
// and the rules an upload must satisfy before it is stored.
//
// Implementations live under integration/storage. The upload policy
// accepts PDF, Word, Excel, PowerPoint, JPEG and PNG files up to 5 MB, and
// requires the declared MIME type to match the extension:
//
//	if err := storage.ValidateUpload("plan.pdf", "application/pdf", size); err != nil {
//		return err
//	}
//	file, err := store.Save(ctx, storage.Object{
//		Key:         key,
//		Body:        r,
//		Size:        size,
//		ContentType: "application/pdf",
//	})
package storage
