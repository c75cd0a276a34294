// Package logger builds slog loggers and provides attribute helpers with
// consistent keys.
//
//	log := logger.New(logger.WithProduction("dfsa"))
//	log.Info("application submitted",
//		logger.Activity("FINANCIAL_SERVICES"),
//		logger.Pathway("A"),
//		logger.ApplicationID(id),
//		logger.Score(100),
//	)
//
// Helpers that take an error, an ID or a name return an empty attribute
// for nil or blank input, which slog drops.
//
// Pure packages such as validator, form and completion never log. Services
// that touch storage or databases accept a *slog.Logger and use these
// helpers.
package logger
