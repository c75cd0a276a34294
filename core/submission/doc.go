// Package submission runs the application wizard against persistence.
//
// Drafts are saved per account together with their progress, which is
// derived from the completion score of each section. Submit is the
// submission gate: the record is validated against the activity's pathway
// schema and only a valid record is stored, under a reference of the form
// DFSA-YYYYMM-NNNNN where NNNNN counts submissions within the month.
//
//	svc := submission.NewService(applications, drafts, log)
//	app, err := svc.Submit(ctx, accountID, pathway.DNFBP, record)
//	var rejected *submission.RejectedError
//	if errors.As(err, &rejected) {
//		return rejected.Result.Errors
//	}
package submission
