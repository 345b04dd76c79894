package models

import "fmt"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleVolunteer Role = "volunteer"
)

// ParseRole converts a raw string into a Role, rejecting anything outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleVolunteer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type ContactStatus string

const (
	ContactStatusNotContacted ContactStatus = "not_contacted"
	ContactStatusContacted    ContactStatus = "contacted"
	ContactStatusSupporter    ContactStatus = "supporter"
	ContactStatusUndecided    ContactStatus = "undecided"
	ContactStatusOpposed      ContactStatus = "opposed"
	ContactStatusNotHome      ContactStatus = "not_home"
	ContactStatusDoNotContact ContactStatus = "do_not_contact"
)

// ContactStatuses lists every status in declaration order.
var ContactStatuses = []ContactStatus{
	ContactStatusNotContacted,
	ContactStatusContacted,
	ContactStatusSupporter,
	ContactStatusUndecided,
	ContactStatusOpposed,
	ContactStatusNotHome,
	ContactStatusDoNotContact,
}

func ParseContactStatus(s string) (ContactStatus, error) {
	switch ContactStatus(s) {
	case ContactStatusNotContacted,
		ContactStatusContacted,
		ContactStatusSupporter,
		ContactStatusUndecided,
		ContactStatusOpposed,
		ContactStatusNotHome,
		ContactStatusDoNotContact:
		return ContactStatus(s), nil
	default:
		return "", fmt.Errorf("unknown contact status %q", s)
	}
}

// Visited reports whether the status is a post-visit outcome.
func (s ContactStatus) Visited() bool {
	switch s {
	case ContactStatusContacted,
		ContactStatusSupporter,
		ContactStatusUndecided,
		ContactStatusOpposed,
		ContactStatusNotHome,
		ContactStatusDoNotContact:
		return true
	case ContactStatusNotContacted:
		return false
	default:
		return false
	}
}

type Sentiment string

const (
	SentimentVeryPositive Sentiment = "very_positive"
	SentimentPositive     Sentiment = "positive"
	SentimentNeutral      Sentiment = "neutral"
	SentimentNegative     Sentiment = "negative"
	SentimentVeryNegative Sentiment = "very_negative"
)

func ParseSentiment(s string) (Sentiment, error) {
	switch Sentiment(s) {
	case SentimentVeryPositive, SentimentPositive, SentimentNeutral, SentimentNegative, SentimentVeryNegative:
		return Sentiment(s), nil
	default:
		return "", fmt.Errorf("unknown sentiment %q", s)
	}
}

type AreaType string

const (
	AreaTypeNeighborhood AreaType = "neighborhood"
	AreaTypeStreet       AreaType = "street"
	AreaTypeWard         AreaType = "ward"
	AreaTypeDistrict     AreaType = "district"
	AreaTypeCustom       AreaType = "custom"
)

// ParseAreaType maps an empty string to custom, matching the column default.
func ParseAreaType(s string) (AreaType, error) {
	if s == "" {
		return AreaTypeCustom, nil
	}
	switch AreaType(s) {
	case AreaTypeNeighborhood, AreaTypeStreet, AreaTypeWard, AreaTypeDistrict, AreaTypeCustom:
		return AreaType(s), nil
	default:
		return "", fmt.Errorf("unknown area type %q", s)
	}
}

type WalklistStatus string

const (
	WalklistStatusNotStarted WalklistStatus = "not_started"
	WalklistStatusInProgress WalklistStatus = "in_progress"
	WalklistStatusCompleted  WalklistStatus = "completed"
)

func ParseWalklistStatus(s string) (WalklistStatus, error) {
	switch WalklistStatus(s) {
	case WalklistStatusNotStarted, WalklistStatusInProgress, WalklistStatusCompleted:
		return WalklistStatus(s), nil
	default:
		return "", fmt.Errorf("unknown walklist status %q", s)
	}
}
