package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/onboarding/core/completion"
	"github.com/dmitrymomot/onboarding/core/form"
	"github.com/dmitrymomot/onboarding/core/logger"
	"github.com/dmitrymomot/onboarding/core/pathway"
	"github.com/dmitrymomot/onboarding/core/schema"
)

// Service saves drafts and submits applications.
type Service struct {
	store  Store
	drafts DraftStore
	log    *slog.Logger
	now    func() time.Time
	stage  string
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source for timestamps, references and date rules.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithStage validates and scores against a company stage.
func WithStage(stage string) Option {
	return func(s *Service) {
		s.stage = stage
	}
}

// NewService creates a service. drafts may be nil when drafts are not kept.
func NewService(store Store, drafts DraftStore, log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		store:  store,
		drafts: drafts,
		log:    log.With(logger.Component("submission")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DraftInput is the wizard state to save.
type DraftInput struct {
	AccountID   string `json:"accountId" label:"Account" sanitize:"trim" validate:"required;max:128;nohtml"`
	Activity    pathway.ActivityType
	Record      schema.Record
	CurrentStep string `json:"currentStep" label:"Current step" sanitize:"trim" validate:"max:64;nohtml"`
}

// SaveDraft stores the record with its progress. Completed steps are the
// sections whose mandatory fields are all filled; the current step defaults
// to the first incomplete one. The version is read then bumped without a
// compare-and-set, see DraftStore.
func (s *Service) SaveDraft(ctx context.Context, in DraftInput) (*Draft, error) {
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	if s.drafts == nil {
		return nil, ErrNoDraftStore
	}
	sc, err := pathway.Select(in.Activity)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	d := &Draft{
		ID:        uuid.New(),
		AccountID: in.AccountID,
		Activity:  in.Activity,
		Record:    maps.Clone(in.Record),
		Progress:  s.progress(sc, in.Record, in.CurrentStep),
		Version:   1,
		CreatedAt: now,
		SavedAt:   now,
	}
	if d.Record == nil {
		d.Record = schema.Record{}
	}

	prev, err := s.drafts.LoadDraft(ctx, in.AccountID)
	switch {
	case err == nil:
		d.ID = prev.ID
		d.CreatedAt = prev.CreatedAt
		d.Version = prev.Version + 1
	case !errors.Is(err, ErrDraftNotFound):
		return nil, fmt.Errorf("load draft: %w", err)
	}

	if err := s.drafts.SaveDraft(ctx, d); err != nil {
		s.log.ErrorContext(ctx, "save draft failed", logger.Error(err), logger.ID("account_id", in.AccountID))
		return nil, fmt.Errorf("save draft: %w", err)
	}

	s.log.DebugContext(ctx, "draft saved",
		logger.ID("account_id", in.AccountID),
		logger.Activity(string(in.Activity)),
		logger.Score(d.Progress.Percent),
		logger.Count("version", d.Version))
	return d, nil
}

// LoadDraft returns the account's draft or ErrDraftNotFound.
func (s *Service) LoadDraft(ctx context.Context, accountID string) (*Draft, error) {
	accountID, err := checkAccount(accountID)
	if err != nil {
		return nil, err
	}
	if s.drafts == nil {
		return nil, ErrNoDraftStore
	}
	return s.drafts.LoadDraft(ctx, accountID)
}

// DiscardDraft removes the account's draft.
func (s *Service) DiscardDraft(ctx context.Context, accountID string) error {
	accountID, err := checkAccount(accountID)
	if err != nil {
		return err
	}
	if s.drafts == nil {
		return ErrNoDraftStore
	}
	return s.drafts.DeleteDraft(ctx, accountID)
}

// Submit validates the record against the activity's schema and persists it
// under a new reference. An invalid record is rejected with a *RejectedError
// carrying every failure. The account's draft is removed after a successful
// submission.
func (s *Service) Submit(ctx context.Context, accountID string, activity pathway.ActivityType, record schema.Record) (*Application, error) {
	accountID, err := checkAccount(accountID)
	if err != nil {
		return nil, err
	}
	sc, err := pathway.Select(activity)
	if err != nil {
		return nil, err
	}
	p, _ := activity.Pathway()
	start := s.now()

	res, err := form.Validate(sc, record, s.formOptions(start)...)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		s.log.InfoContext(ctx, "submission rejected",
			logger.ID("account_id", accountID),
			logger.Activity(string(activity)),
			logger.ErrorCount(len(res.Errors)))
		return nil, &RejectedError{Result: res}
	}

	app := &Application{
		ID:        uuid.New(),
		AccountID: accountID,
		Activity:  activity,
		Pathway:   p,
		Status:    StatusSubmitted,
		Record:    maps.Clone(record),
		Score:     completion.ScoreAt(sc, record, s.stage),
	}

	create := func(ctx context.Context) error {
		now := s.now().UTC()
		seq, err := s.store.NextSequence(ctx, Period(now))
		if err != nil {
			return fmt.Errorf("allocate reference: %w", err)
		}
		app.Reference = Reference(now, seq)
		app.CreatedAt = now
		app.SubmittedAt = now
		return s.store.Create(ctx, app)
	}
	if tx, ok := s.store.(Transactor); ok {
		err = tx.InTx(ctx, create)
	} else {
		err = create(ctx)
	}
	if err != nil {
		s.log.ErrorContext(ctx, "submission failed", logger.Error(err), logger.ID("account_id", accountID))
		return nil, fmt.Errorf("submit application: %w", err)
	}

	if s.drafts != nil {
		if err := s.drafts.DeleteDraft(ctx, accountID); err != nil && !errors.Is(err, ErrDraftNotFound) {
			s.log.WarnContext(ctx, "draft cleanup failed", logger.Error(err), logger.ID("account_id", accountID))
		}
	}

	s.log.InfoContext(ctx, "application submitted",
		logger.ApplicationID(app.Reference),
		logger.Activity(string(activity)),
		logger.Pathway(string(p)),
		logger.Elapsed(start))
	return app, nil
}

// Get loads a submitted application by id or reference.
func (s *Service) Get(ctx context.Context, idOrRef string) (*Application, error) {
	return s.store.Get(ctx, idOrRef)
}

func (s *Service) progress(sc *schema.Schema, record schema.Record, current string) Progress {
	var opts []completion.Option
	if s.stage != "" {
		opts = append(opts, completion.WithStage(s.stage))
	}
	r := completion.Evaluate(sc, record, opts...)

	p := Progress{Percent: r.Score, CompletedSteps: []string{}, CurrentStepIndex: -1}
	firstOpen := -1
	for i, sec := range r.Sections {
		if sec.Score == 100 {
			p.CompletedSteps = append(p.CompletedSteps, sec.Name)
		} else if firstOpen < 0 {
			firstOpen = i
		}
		if current != "" && sec.Name == current {
			p.CurrentStepIndex = i
		}
	}
	if p.CurrentStepIndex < 0 {
		p.CurrentStepIndex = firstOpen
	}
	if p.CurrentStepIndex < 0 {
		p.CurrentStepIndex = len(r.Sections) - 1
	}
	if p.CurrentStepIndex >= 0 {
		p.CurrentStep = r.Sections[p.CurrentStepIndex].Name
	}
	return p
}

func (s *Service) formOptions(today time.Time) []form.Option {
	opts := []form.Option{form.WithToday(today)}
	if s.stage != "" {
		opts = append(opts, form.WithStage(s.stage))
	}
	return opts
}
