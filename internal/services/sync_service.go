package services

import (
	"errors"
	"fmt"

	"github.com/political-canvas/canvass-api/internal/authz"
	"github.com/political-canvas/canvass-api/internal/metrics"
	"github.com/political-canvas/canvass-api/internal/models"
)

var ErrInvalidSyncEntry = errors.New("each log entry requires voter_id and user_id")

// SyncEntry is one offline-recorded contact. ContactStatus is optional: when
// set, the entry also moves the voter's status; otherwise it is log-only.
type SyncEntry struct {
	VoterID       uint64
	UserID        uint64
	ContactStatus *string
	Sentiment     *string
	Issues        *string
	Notes         *string
}

// SyncResult reports how far a batch got.
type SyncResult struct {
	Applied int
	Total   int
	Logs    []models.ContactLog
}

// EntryError identifies the batch entry that stopped a sync.
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("log entry %d: %v", e.Index, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// SyncService reconciles batches of contact logs under the same rules as live
// requests. Entries apply one at a time in submitted order; the first failing
// entry stops the batch and earlier entries stay applied.
type SyncService struct {
	contacts *ContactService
	metrics  *metrics.Metrics
}

// NewSyncService creates a new SyncService
func NewSyncService(contacts *ContactService, m *metrics.Metrics) *SyncService {
	return &SyncService{
		contacts: contacts,
		metrics:  m,
	}
}

// Sync applies entries in order. On failure the returned result still counts
// the entries applied before the failing one.
func (s *SyncService) Sync(actor authz.Identity, entries []SyncEntry) (SyncResult, error) {
	result := SyncResult{Total: len(entries), Logs: make([]models.ContactLog, 0, len(entries))}

	for i, entry := range entries {
		log, err := s.apply(actor, entry)
		if err != nil {
			s.metrics.IncSyncEntry(syncOutcome(err))
			return result, &EntryError{Index: i, Err: err}
		}
		s.metrics.IncSyncEntry("applied")
		result.Applied++
		result.Logs = append(result.Logs, *log)
	}

	return result, nil
}

// SubmitLog is the single-entry form used by POST /logs.
func (s *SyncService) SubmitLog(actor authz.Identity, entry SyncEntry) (*models.ContactLog, error) {
	result, err := s.Sync(actor, []SyncEntry{entry})
	if err != nil {
		var entryErr *EntryError
		if errors.As(err, &entryErr) {
			return nil, entryErr.Err
		}
		return nil, err
	}
	return &result.Logs[0], nil
}

func (s *SyncService) apply(actor authz.Identity, entry SyncEntry) (*models.ContactLog, error) {
	if entry.VoterID == 0 || entry.UserID == 0 {
		return nil, ErrInvalidSyncEntry
	}

	if err := authz.RequireSelfOr(actor, authz.SubmitLogForOthers, entry.UserID); err != nil {
		return nil, err
	}

	details, err := parseContactDetails(entry.Sentiment, entry.Issues, entry.Notes)
	if err != nil {
		return nil, err
	}

	if status := blankToNil(entry.ContactStatus); status != nil {
		return s.contacts.transition(entry.VoterID, entry.UserID, *status, details, true)
	}
	return s.contacts.appendHistorical(entry.VoterID, entry.UserID, details)
}

func syncOutcome(err error) string {
	switch {
	case errors.Is(err, authz.ErrForbidden), errors.Is(err, authz.ErrUnauthenticated):
		return "forbidden"
	case errors.Is(err, ErrInvalidSyncEntry),
		errors.Is(err, ErrInvalidSentiment),
		errors.Is(err, ErrInvalidContactStatus),
		errors.Is(err, ErrVoterNotFound):
		return "invalid"
	default:
		return "failed"
	}
}
