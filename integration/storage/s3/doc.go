// Package s3 stores onboarding documents in Amazon S3 or an S3-compatible
// service such as MinIO.
//
//	var cfg s3.Config
//	config.MustLoad(&cfg)
//
//	store, err := s3.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	lib := documents.New(store, logger)
//
// Credentials fall back to the default AWS chain when no static keys are
// configured. Object metadata carries the document category, uploader and
// expiry date, and List walks every page of a prefix.
//
// S3 failures are mapped onto the core/storage sentinels, so callers check
// errors.Is(err, storage.ErrFileNotFound) instead of SDK types.
package s3
