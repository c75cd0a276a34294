// Package documents keeps the supporting files of onboarding accounts on top
// of a storage.Storage backend.
//
// Objects are stored under accounts/{accountID}/{category}/{unixmillis}-{filename}.
// The category is the document requirement key (for example "businessPlan"),
// so Missing can report which of an activity's required documents are still
// outstanding. Descriptive fields travel as object metadata.
//
// Status is derived from the expiry date: Expired once it has passed,
// Expiring within 30 days, Active otherwise.
package documents
