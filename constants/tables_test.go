package constants

import "testing"

func TestVocabularyLoads(t *testing.T) {
	vocab, err := GetVocabulary()
	if err != nil {
		t.Fatalf("failed to load vocabulary: %v", err)
	}
	if len(vocab.LoggedIn) == 0 {
		t.Error("expected logged-in keywords")
	}
	if len(vocab.LoggedOut) == 0 {
		t.Error("expected logged-out markers")
	}
	if len(vocab.Credentials) == 0 || len(vocab.Welcome) == 0 {
		t.Error("expected credentials and welcome keywords")
	}
}

func TestCoordinateTableHasRequiredEntries(t *testing.T) {
	required := []string{
		"welcome_login",
		"cookie_accept",
		"rating_dismiss",
		"menu",
		"feature_tile",
		"subsection_tile",
		"all_tab",
	}
	for _, name := range required {
		if _, ok := Tap(name); !ok {
			t.Errorf("coordinate table missing tap point %q", name)
		}
	}

	for _, name := range []string{"scroll_down", "scroll_to_top"} {
		sv, ok := Swipe(name)
		if !ok {
			t.Errorf("coordinate table missing swipe %q", name)
			continue
		}
		if sv.DurationMs <= 0 {
			t.Errorf("swipe %q has no duration", name)
		}
	}

	coords, err := GetCoordinates()
	if err != nil {
		t.Fatalf("failed to load coordinates: %v", err)
	}
	if coords.ScrollToTopRepeats <= 0 {
		t.Error("expected a positive scroll-to-top repeat count")
	}
}
