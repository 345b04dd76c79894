package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/political-canvas/canvass-api/internal/authz"
	"github.com/political-canvas/canvass-api/internal/metrics"
	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/political-canvas/canvass-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidContactStatus = errors.New("contact_status must be one of contacted, supporter, undecided, opposed, not_home, do_not_contact")
	ErrInvalidSentiment     = errors.New("sentiment must be one of very_positive, positive, neutral, negative, very_negative")
	ErrNoContactLog         = errors.New("no contact log for voter")
)

// ContactService is the contact state machine. Every status change goes
// through here, whether it comes from a live visit or a sync batch.
type ContactService struct {
	contactRepo repository.ContactRepository
	voterRepo   repository.VoterRepository
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo repository.ContactRepository, voterRepo repository.VoterRepository, m *metrics.Metrics) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		voterRepo:   voterRepo,
		metrics:     m,
		now:         time.Now,
	}
}

// ContactInput is one recorded visit
type ContactInput struct {
	ContactStatus string
	Sentiment     *string
	Issues        *string
	Notes         *string
}

// contactDetails are the optional free-form parts of a visit, normalised so
// that blank strings are nil.
type contactDetails struct {
	sentiment *models.Sentiment
	issues    *string
	notes     *string
}

func (d contactDetails) empty() bool {
	return d.sentiment == nil && d.issues == nil && d.notes == nil
}

func parseContactDetails(sentiment, issues, notes *string) (contactDetails, error) {
	details := contactDetails{
		issues: blankToNil(issues),
		notes:  blankToNil(notes),
	}
	if raw := blankToNil(sentiment); raw != nil {
		parsed, err := models.ParseSentiment(*raw)
		if err != nil {
			return contactDetails{}, ErrInvalidSentiment
		}
		details.sentiment = &parsed
	}
	return details, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NextStatus validates a requested transition target. Any status may move to
// any visited status, including the one it already holds; not_contacted is
// only ever the initial state.
func NextStatus(from models.ContactStatus, raw string) (models.ContactStatus, error) {
	if _, err := models.ParseContactStatus(string(from)); err != nil {
		return "", fmt.Errorf("voter holds unknown status %q", from)
	}

	to, err := models.ParseContactStatus(raw)
	if err != nil || !to.Visited() {
		return "", ErrInvalidContactStatus
	}
	return to, nil
}

// RecordContact applies a live visit: the voter's status and last_contacted
// change, and a log row attributed to the caller is appended when any of
// sentiment, issues or notes is non-empty. Any authenticated caller may record.
func (s *ContactService) RecordContact(actor authz.Identity, voterID uint64, input ContactInput) (*models.ContactLog, error) {
	if err := authz.Require(actor, authz.RecordContact); err != nil {
		return nil, err
	}

	details, err := parseContactDetails(input.Sentiment, input.Issues, input.Notes)
	if err != nil {
		return nil, err
	}

	return s.transition(voterID, actor.UserID, input.ContactStatus, details, false)
}

// transition runs the state machine for one voter. forceLog appends a log row
// even when details are empty, which sync entries rely on.
func (s *ContactService) transition(voterID, userID uint64, rawStatus string, details contactDetails, forceLog bool) (*models.ContactLog, error) {
	voter, err := s.voterRepo.FindByID(voterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoterNotFound
		}
		return nil, fmt.Errorf("failed to find voter: %w", err)
	}

	status, err := NextStatus(voter.ContactStatus, rawStatus)
	if err != nil {
		return nil, err
	}

	var entry *models.ContactLog
	if forceLog || !details.empty() {
		entry = &models.ContactLog{
			UserID:        userID,
			ContactStatus: &status,
			Sentiment:     details.sentiment,
			Issues:        details.issues,
			Notes:         details.notes,
		}
	}

	if err := s.contactRepo.RecordTransition(voterID, status, s.now(), entry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoterNotFound
		}
		return nil, fmt.Errorf("failed to record contact: %w", err)
	}

	source := metrics.SourceLive
	if forceLog {
		source = metrics.SourceSync
	}
	s.metrics.IncContactRecorded(source, string(status))
	return entry, nil
}

// appendHistorical appends a log row without touching the voter's status.
// The voter must exist.
func (s *ContactService) appendHistorical(voterID, userID uint64, details contactDetails) (*models.ContactLog, error) {
	if _, err := s.voterRepo.FindByID(voterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoterNotFound
		}
		return nil, fmt.Errorf("failed to find voter: %w", err)
	}

	entry := &models.ContactLog{
		VoterID:   voterID,
		UserID:    userID,
		Sentiment: details.sentiment,
		Issues:    details.issues,
		Notes:     details.notes,
		CreatedAt: s.now(),
	}
	if err := s.contactRepo.AppendLog(entry); err != nil {
		return nil, fmt.Errorf("failed to append log: %w", err)
	}
	return entry, nil
}

// LastContact returns the voter's most recent log row, recomputed on every call.
func (s *ContactService) LastContact(voterID uint64) (*models.ContactLog, error) {
	entry, err := s.contactRepo.LatestForVoter(voterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoContactLog
		}
		return nil, fmt.Errorf("failed to load last contact: %w", err)
	}
	return entry, nil
}

// ListLogs returns contact logs newest first
func (s *ContactService) ListLogs(filter repository.ContactLogFilter) ([]models.ContactLog, int64, error) {
	entries, total, err := s.contactRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list logs: %w", err)
	}
	return entries, total, nil
}

// Progress derives total and contacted voter counts per territory from the
// voters' current contact state.
func (s *ContactService) Progress(territoryIDs []uint64) (map[uint64]repository.TerritoryProgress, error) {
	progress, err := s.voterRepo.ProgressByTerritory(territoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute territory progress: %w", err)
	}
	return progress, nil
}
