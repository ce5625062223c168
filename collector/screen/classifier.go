package screen

import (
	"strings"

	"github.com/robzale/sentcollect/collector/definitions"
	"github.com/robzale/sentcollect/constants"
)

// Classifier maps a UI snapshot to a screen state by keyword evidence.
// Classification never blocks and never errors; Unknown is the floor.
//
// Strict=false keeps the original behavior: a snapshot with no logged-in
// evidence but also no logged-out marker is treated as logged in. That
// optimistic default false-positives when UI text is simply unavailable
// (e.g. a dump failure); Strict=true returns Unknown in that case instead.
type Classifier struct {
	Strict bool

	vocab constants.Vocabulary
}

func NewClassifier(strict bool) (*Classifier, error) {
	vocab, err := constants.GetVocabulary()
	if err != nil {
		return nil, err
	}
	return &Classifier{Strict: strict, vocab: vocab}, nil
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func (c *Classifier) Classify(snap definitions.Snapshot) definitions.ScreenState {
	if snap.Empty() {
		return definitions.StateUnknown
	}

	content := strings.ToLower(snap.Content)

	// Logged-in evidence wins over any co-occurring login-funnel keyword.
	if containsAny(content, c.vocab.LoggedIn) {
		return definitions.StateLoggedIn
	}
	if !containsAny(content, c.vocab.LoggedOut) {
		if c.Strict {
			return definitions.StateUnknown
		}
		return definitions.StateLoggedIn
	}
	if containsAny(content, c.vocab.Credentials) {
		return definitions.StateCredentials
	}
	if containsAny(content, c.vocab.Welcome) {
		return definitions.StateWelcome
	}
	return definitions.StateUnknown
}

// HasCookieConsent reports whether a cookie-consent marker is on screen.
func (c *Classifier) HasCookieConsent(snap definitions.Snapshot) bool {
	return containsAny(strings.ToLower(snap.Content), c.vocab.CookieConsent)
}

// HasRatingPopup reports whether a rating/review dialog marker is on screen.
func (c *Classifier) HasRatingPopup(snap definitions.Snapshot) bool {
	return containsAny(strings.ToLower(snap.Content), c.vocab.RatingPopup)
}
