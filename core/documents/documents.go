package documents

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/onboarding/core/apperror"
	"github.com/dmitrymomot/onboarding/core/logger"
	"github.com/dmitrymomot/onboarding/core/pathway"
	"github.com/dmitrymomot/onboarding/core/sanitizer"
	"github.com/dmitrymomot/onboarding/core/storage"
	"github.com/dmitrymomot/onboarding/core/validator"
)

// Metadata keys stored with each object.
const (
	metaID           = "id"
	metaAccountID    = "accountid"
	metaCategory     = "category"
	metaDescription  = "description"
	metaExpiryDate   = "expirydate"
	metaTags         = "tags"
	metaConfidential = "isconfidential"
	metaUploadedAt   = "uploadedat"
	metaOriginalName = "originalname"
	metaVersion      = "versionnumber"
)

// ExpiryWarning is how far ahead an expiry date marks a document as expiring.
const ExpiryWarning = 30 * 24 * time.Hour

// Status is derived from a document's expiry date.
type Status string

const (
	StatusActive   Status = "Active"
	StatusExpiring Status = "Expiring"
	StatusExpired  Status = "Expired"
)

// Document is a stored file as shown in an account's library.
type Document struct {
	ID           string
	Key          string
	Name         string
	Category     string
	Description  string
	FileType     storage.FileType
	Size         int64
	ContentType  string
	UploadedBy   string
	UploadedAt   time.Time
	ExpiryDate   time.Time
	Status       Status
	URL          string
	Tags         []string
	Confidential bool
	Version      int
}

// Upload is a file submitted to an account's library.
// Text fields are cleaned by their sanitize tags before validation.
type Upload struct {
	AccountID    string    `json:"accountId" label:"Account" sanitize:"trim" validate:"required;max:128;nohtml"`
	Category     string    `json:"category" label:"Category" sanitize:"trim" validate:"max:64;nohtml"`
	Filename     string    `json:"filename" label:"File name" sanitize:"trim,no_control" validate:"required;max:255"`
	ContentType  string    `json:"contentType" label:"Content type" sanitize:"trim_lower" validate:"max:128"`
	Description  string    `json:"description" label:"Description" sanitize:"text,max:500" validate:"nohtml"`
	Body         io.Reader `json:"-" validate:"-"`
	Size         int64     `json:"size"`
	ExpiryDate   time.Time `json:"expiryDate"`
	Tags         []string  `json:"tags" label:"Tags" sanitize:"trim_lower" validate:"max:20;nohtml"`
	Confidential bool      `json:"isConfidential"`
}

// Library manages the documents of onboarding accounts.
type Library struct {
	store  storage.Storage
	policy storage.Policy
	log    *slog.Logger
	now    func() time.Time
}

// Option configures a Library.
type Option func(*Library)

// WithPolicy overrides the default upload policy.
func WithPolicy(p storage.Policy) Option {
	return func(l *Library) {
		l.policy = p
	}
}

// WithClock sets the time source used for keys and expiry status.
func WithClock(now func() time.Time) Option {
	return func(l *Library) {
		l.now = now
	}
}

// New creates a library over a store.
func New(store storage.Storage, log *slog.Logger, opts ...Option) *Library {
	if log == nil {
		log = logger.Nop()
	}
	l := &Library{
		store:  store,
		policy: storage.DefaultPolicy(),
		log:    log.With(logger.Component("documents")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Upload validates and stores a file.
func (l *Library) Upload(ctx context.Context, in Upload) (*Document, error) {
	in.Tags = slices.Clone(in.Tags)
	if err := sanitizer.SanitizeStruct(&in); err != nil {
		return nil, apperror.System("Upload could not be prepared.", err)
	}
	if err := validator.ValidateStruct(&in); err != nil {
		return nil, apperror.Classify(err, string(apperror.OpUpload))
	}
	if err := l.policy.Validate(in.Filename, in.ContentType, in.Size); err != nil {
		return nil, storageError(apperror.OpUpload, err, in.Filename, in.Size)
	}
	if in.Body == nil {
		return nil, storageError(apperror.OpUpload, storage.ErrNilBody, in.Filename, in.Size)
	}

	now := l.now().UTC()
	name := sanitizer.SanitizeFilename(in.Filename)
	category := in.Category
	if category == "" {
		category = DefaultCategory
	}

	meta := map[string]string{
		metaID:         uuid.NewString(),
		metaAccountID:  in.AccountID,
		metaCategory:   category,
		metaUploadedAt: now.Format(time.RFC3339),
		metaVersion:    "1",
	}
	if in.Description != "" {
		meta[metaDescription] = in.Description
	}
	if !in.ExpiryDate.IsZero() {
		meta[metaExpiryDate] = in.ExpiryDate.Format(validator.DateLayout)
	}
	if len(in.Tags) > 0 {
		meta[metaTags] = strings.Join(in.Tags, ",")
	}
	if in.Confidential {
		meta[metaConfidential] = "true"
	}
	if name != in.Filename {
		meta[metaOriginalName] = in.Filename
	}

	file, err := l.store.Save(ctx, storage.Object{
		Key:         Key(in.AccountID, category, name, now),
		Body:        in.Body,
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata:    meta,
	})
	if err != nil {
		l.log.ErrorContext(ctx, "upload failed",
			logger.Error(err), logger.ID("account_id", in.AccountID), logger.Key("category", category))
		return nil, storageError(apperror.OpUpload, err, in.Filename, in.Size)
	}

	l.log.InfoContext(ctx, "document uploaded",
		logger.ID("account_id", in.AccountID), logger.Key("key", file.Key), logger.Key("category", category))
	return l.document(file), nil
}

// List returns an account's documents. When uploadedBy is set, only that
// uploader's documents are returned.
func (l *Library) List(ctx context.Context, accountID, uploadedBy string) ([]Document, error) {
	entries, err := l.store.List(ctx, AccountPrefix(accountID))
	if err != nil {
		return nil, storageError(apperror.OpDownload, err, "", 0)
	}

	docs := make([]Document, 0, len(entries))
	for _, e := range entries {
		file, err := l.store.Stat(ctx, e.Key)
		if err != nil {
			if errors.Is(err, storage.ErrFileNotFound) {
				continue
			}
			return nil, storageError(apperror.OpDownload, err, e.Key, e.Size)
		}
		if file.LastModified.IsZero() {
			file.LastModified = e.LastModified
		}
		doc := l.document(file)
		if uploadedBy != "" && doc.UploadedBy != uploadedBy {
			continue
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// Open streams a document's content. The key must belong to the account.
func (l *Library) Open(ctx context.Context, accountID, key string) (io.ReadCloser, error) {
	if err := owns(accountID, key); err != nil {
		return nil, err
	}
	rc, err := l.store.Open(ctx, key)
	if err != nil {
		return nil, storageError(apperror.OpDownload, err, key, 0)
	}
	return rc, nil
}

// Delete removes a document. The key must belong to the account.
func (l *Library) Delete(ctx context.Context, accountID, key string) error {
	if err := owns(accountID, key); err != nil {
		return err
	}
	if err := l.store.Delete(ctx, key); err != nil {
		return storageError(apperror.OpDelete, err, key, 0)
	}
	l.log.InfoContext(ctx, "document deleted", logger.ID("account_id", accountID), logger.Key("key", key))
	return nil
}

// Missing lists the documents an activity requires that the account has
// not uploaded yet, in requirement order. A requirement is met by any
// document whose category equals the requirement key.
func (l *Library) Missing(ctx context.Context, accountID string, activity pathway.ActivityType) ([]string, error) {
	required, err := pathway.RequiredDocuments(activity)
	if err != nil {
		return nil, err
	}
	docs, err := l.List(ctx, accountID, "")
	if err != nil {
		return nil, err
	}

	have := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		have[d.Category] = struct{}{}
	}
	missing := make([]string, 0, len(required))
	for _, key := range required {
		if _, ok := have[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

// Record maps the latest document of each category to its URL, in the shape
// the "documents" section of an application expects.
func Record(docs []Document) map[string]any {
	latest := make(map[string]Document)
	for _, d := range docs {
		if cur, ok := latest[d.Category]; !ok || d.UploadedAt.After(cur.UploadedAt) {
			latest[d.Category] = d
		}
	}
	out := make(map[string]any, len(latest))
	for category, d := range latest {
		out[category] = d.URL
	}
	return out
}

// StatusOf derives a document's status from its expiry date. Documents
// without an expiry date are active.
func StatusOf(expiry, now time.Time) Status {
	if expiry.IsZero() {
		return StatusActive
	}
	days := int(math.Ceil(expiry.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return StatusExpired
	case time.Duration(days)*24*time.Hour <= ExpiryWarning:
		return StatusExpiring
	}
	return StatusActive
}

func (l *Library) document(file *storage.File) *Document {
	meta := lower(file.Metadata)
	d := &Document{
		ID:           meta[metaID],
		Key:          file.Key,
		Size:         file.Size,
		ContentType:  file.ContentType,
		Description:  meta[metaDescription],
		UploadedBy:   meta[metaAccountID],
		UploadedAt:   file.LastModified,
		URL:          l.store.URL(file.Key),
		Confidential: meta[metaConfidential] == "true",
		Version:      1,
	}

	if kp, err := ParseKey(file.Key); err == nil {
		d.Name = kp.Filename
		d.Category = kp.Category
		if !kp.UploadedAt.IsZero() {
			d.UploadedAt = kp.UploadedAt
		}
		if d.UploadedBy == "" {
			d.UploadedBy = kp.AccountID
		}
	} else {
		d.Name = file.Key[strings.LastIndex(file.Key, "/")+1:]
	}
	if c := meta[metaCategory]; c != "" {
		d.Category = c
	}
	if d.ID == "" {
		d.ID = file.Key
	}
	if t, err := time.Parse(time.RFC3339, meta[metaUploadedAt]); err == nil {
		d.UploadedAt = t
	}
	if v, err := strconv.Atoi(meta[metaVersion]); err == nil && v > 0 {
		d.Version = v
	}
	if tags := meta[metaTags]; tags != "" {
		d.Tags = strings.Split(tags, ",")
	}
	if t, ok := validator.ParseDate(meta[metaExpiryDate]); ok {
		d.ExpiryDate = t
	}

	d.FileType = storage.FileTypeOf(d.Name)
	d.Status = StatusOf(d.ExpiryDate, l.now())
	return d
}

// lower normalizes metadata keys, which S3 returns in lower case.
func lower(meta map[string]string) map[string]string {
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[strings.ToLower(k)] = v
	}
	return out
}

func owns(accountID, key string) error {
	kp, err := ParseKey(key)
	if err != nil {
		return storageError(apperror.OpDownload, err, key, 0)
	}
	if kp.AccountID != accountID {
		return apperror.Permission("document belongs to another account")
	}
	return nil
}

func storageError(op apperror.Operation, err error, file string, size int64) *apperror.Error {
	e := apperror.Storage(op, err.Error(), file, size).WithCause(err)
	if errors.Is(err, storage.ErrAccessDenied) {
		e = apperror.Permission(err.Error()).WithCause(err)
	}
	return e
}

// Categories returns the distinct categories of docs in sorted order.
func Categories(docs []Document) []string {
	seen := make(map[string]struct{}, len(docs))
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		if _, ok := seen[d.Category]; ok {
			continue
		}
		seen[d.Category] = struct{}{}
		out = append(out, d.Category)
	}
	slices.Sort(out)
	return out
}

