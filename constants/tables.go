package constants

import (
	_ "embed"
	"errors"
	"sync"

	json "github.com/bytedance/sonic"
)

// The vocabulary and coordinate tables encode knowledge about one specific
// app build (UI copy, layout at 1080x2400). They are data, not code, so a UI
// copy change is a table edit. Tap positions are absolute and do not survive
// a layout redesign of the app.

//go:embed vocabulary.json
var vocabularyJSON []byte

//go:embed coordinates.json
var coordinatesJSON []byte

// Vocabulary holds the per-state keyword evidence and popup markers used by
// screen classification. Matching is case-insensitive substring.
type Vocabulary struct {
	LoggedIn      []string `json:"logged_in"`
	LoggedOut     []string `json:"logged_out"`
	Credentials   []string `json:"credentials"`
	Welcome       []string `json:"welcome"`
	CookieConsent []string `json:"cookie_consent"`
	RatingPopup   []string `json:"rating_popup"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type SwipeVector struct {
	X1         int `json:"x1"`
	Y1         int `json:"y1"`
	X2         int `json:"x2"`
	Y2         int `json:"y2"`
	DurationMs int `json:"duration_ms"`
}

// Coordinates is the tap/swipe table for the app layout.
type Coordinates struct {
	ScreenWidth        int                    `json:"screen_width"`
	ScreenHeight       int                    `json:"screen_height"`
	Taps               map[string]Point       `json:"taps"`
	Swipes             map[string]SwipeVector `json:"swipes"`
	ScrollToTopRepeats int                    `json:"scroll_to_top_repeats"`
}

var (
	vocabulary  Vocabulary
	coordinates Coordinates
	errLoad     error
	once        = new(sync.Once)
)

func load() error {
	once.Do(func() {
		if err := json.Unmarshal(vocabularyJSON, &vocabulary); err != nil {
			errLoad = errors.Join(err, errors.New("failed to unmarshal embedded vocabulary.json"))
			return
		}
		if err := json.Unmarshal(coordinatesJSON, &coordinates); err != nil {
			errLoad = errors.Join(err, errors.New("failed to unmarshal embedded coordinates.json"))
			return
		}
	})
	return errLoad
}

// GetVocabulary returns the embedded keyword table.
func GetVocabulary() (Vocabulary, error) {
	err := load()
	return vocabulary, err
}

// GetCoordinates returns the embedded tap/swipe table.
func GetCoordinates() (Coordinates, error) {
	err := load()
	return coordinates, err
}

// Tap returns a named tap point from the coordinate table.
func Tap(name string) (Point, bool) {
	if load() != nil {
		return Point{}, false
	}
	p, ok := coordinates.Taps[name]
	return p, ok
}

// Swipe returns a named swipe vector from the coordinate table.
func Swipe(name string) (SwipeVector, bool) {
	if load() != nil {
		return SwipeVector{}, false
	}
	s, ok := coordinates.Swipes[name]
	return s, ok
}
