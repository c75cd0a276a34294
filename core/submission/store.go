package submission

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/onboarding/core/pathway"
	"github.com/dmitrymomot/onboarding/core/schema"
)

// Status of a persisted application.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
)

// Progress is the wizard position saved with a draft.
type Progress struct {
	CurrentStep      string   `json:"currentStep"`
	CurrentStepIndex int      `json:"currentStepIndex"`
	CompletedSteps   []string `json:"completedSteps"`
	Percent          int      `json:"progressPercent"`
}

// Draft is an unfinished application of one account.
type Draft struct {
	ID        uuid.UUID            `json:"id"`
	AccountID string               `json:"accountId"`
	Activity  pathway.ActivityType `json:"activityType"`
	Record    schema.Record        `json:"formData"`
	Progress  Progress             `json:"progress"`
	Version   int                  `json:"version"`
	CreatedAt time.Time            `json:"createdAt"`
	SavedAt   time.Time            `json:"lastSaved"`
}

// Application is a submitted application.
type Application struct {
	ID          uuid.UUID
	Reference   string
	AccountID   string
	Activity    pathway.ActivityType
	Pathway     pathway.Pathway
	Status      Status
	Record      schema.Record
	Score       int
	CreatedAt   time.Time
	SubmittedAt time.Time
}

// DraftStore keeps one draft per account.
// Implementations must handle concurrent access safely. SaveDraft overwrites
// unconditionally: the last write for an account wins and versions are not
// compared. Drafts are edited by a single wizard per account, so two saves
// racing from the same version both store version N+1.
type DraftStore interface {
	SaveDraft(ctx context.Context, d *Draft) error
	// LoadDraft returns ErrDraftNotFound when the account has no draft.
	LoadDraft(ctx context.Context, accountID string) (*Draft, error)
	DeleteDraft(ctx context.Context, accountID string) error
}

// Store persists submitted applications.
type Store interface {
	// NextSequence returns the next reference number of a YYYYMM period,
	// starting at 1.
	NextSequence(ctx context.Context, period string) (int64, error)
	Create(ctx context.Context, app *Application) error
	// Get finds an application by id or reference and returns ErrNotFound
	// when there is none.
	Get(ctx context.Context, idOrRef string) (*Application, error)
}

// Transactor is implemented by stores that can run the sequence allocation
// and the insert atomically.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
