package navigation

import (
	"errors"
	"testing"

	"pet-qr-tags/internal/domain/tags"
	"pet-qr-tags/internal/platform/apperr"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name    string
		in      Inputs
		screen  Screen
		prefill string
		message string
	}{
		{
			name:   "lost tag goes straight to finder",
			in:     Inputs{TagCode: "MTRX01", Classification: tags.ClassLost},
			screen: ScreenFinderView,
		},
		{
			name:   "lost tag ignores a matching session",
			in:     Inputs{TagCode: "MTRX01", Classification: tags.ClassLost, SessionUser: "MTRX01", HasPet: true},
			screen: ScreenFinderView,
		},
		{
			name:    "new tag without session",
			in:      Inputs{TagCode: "MTRX02", Classification: tags.ClassNew},
			screen:  ScreenLogin,
			prefill: "MTRX02",
			message: tags.MessageNew,
		},
		{
			name:    "registered tag with another session",
			in:      Inputs{TagCode: "MTRX01", Classification: tags.ClassRegistered, SessionUser: "OTHER1", HasPet: true},
			screen:  ScreenLogin,
			prefill: "MTRX01",
			message: tags.MessageRegistered,
		},
		{
			name:   "registered tag with matching session and pet",
			in:     Inputs{TagCode: "MTRX01", Classification: tags.ClassRegistered, SessionUser: "MTRX01", HasPet: true},
			screen: ScreenOwnerDashboard,
		},
		{
			name:   "session without tag and without pet",
			in:     Inputs{SessionUser: "MTRX01"},
			screen: ScreenRegistration,
		},
		{
			name:   "nothing at all",
			in:     Inputs{},
			screen: ScreenLogin,
		},
		{
			name:    "invalid tag shows the message",
			in:      Inputs{TagCode: "NOPE99", Classification: tags.ClassInvalid},
			screen:  ScreenLogin,
			message: tags.MessageInvalid,
		},
		{
			name:    "invalid tag with another session",
			in:      Inputs{TagCode: "NOPE99", Classification: tags.ClassInvalid, SessionUser: "MTRX01"},
			screen:  ScreenLogin,
			message: tags.MessageInvalid,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Derive(c.in)
			if got.Screen != c.screen {
				t.Fatalf("screen: got %s, want %s", got.Screen, c.screen)
			}
			if got.Prefill != c.prefill || got.Message != c.message {
				t.Fatalf("login data: got %q/%q, want %q/%q", got.Prefill, got.Message, c.prefill, c.message)
			}
		})
	}
}

func TestDerive_LostRoutesToFinderWithConsent(t *testing.T) {
	s := Derive(Inputs{TagCode: "MTRX01", Classification: tags.ClassLost})
	if !s.ConsentPending() {
		t.Fatalf("finder view must start behind the consent overlay")
	}
	if s.Username != "" {
		t.Fatalf("finder view is unauthenticated")
	}
}

func TestReduce_GuardedNavigation(t *testing.T) {
	s := State{Screen: ScreenLostModeEditor, Username: "MTRX01", HasPet: true, TagCode: "MTRX01"}
	s, _, _ = Reduce(s, MarkUnsaved{Dirty: true}, false)
	if !s.Unsaved {
		t.Fatalf("expected unsaved flag")
	}

	// Declinado: nada cambia, el flag sigue.
	got, eff, err := Reduce(s, Navigate{To: ScreenSettings}, false)
	if !errors.Is(err, apperr.ErrCancelled) {
		t.Fatalf("expected CANCELLED, got %v", err)
	}
	if eff.Prompt != PromptNavigate {
		t.Fatalf("expected navigate prompt, got %q", eff.Prompt)
	}
	if got != s {
		t.Fatalf("declined transition must leave the state untouched")
	}

	// Confirmado.
	got, eff, err = Reduce(s, Navigate{To: ScreenSettings}, true)
	if err != nil {
		t.Fatalf("confirmed navigate: %v", err)
	}
	if got.Screen != ScreenSettings || got.Unsaved || !eff.DiscardEdits {
		t.Fatalf("unexpected result %+v %+v", got, eff)
	}
}

func TestReduce_NavigateWithoutEditsNeedsNoConfirm(t *testing.T) {
	s := State{Screen: ScreenOwnerDashboard, Username: "MTRX01", HasPet: true}
	got, eff, err := Reduce(s, Navigate{To: ScreenAbout}, false)
	if err != nil || got.Screen != ScreenAbout || eff.Prompt != "" {
		t.Fatalf("got %+v %+v %v", got, eff, err)
	}
}

func TestReduce_HomeFollowsPet(t *testing.T) {
	s := State{Screen: ScreenSettings, Username: "MTRX01"}

	got, _, err := Reduce(s, Navigate{To: ScreenOwnerDashboard}, false)
	if err != nil || got.Screen != ScreenRegistration {
		t.Fatalf("without pet home is registration, got %s %v", got.Screen, err)
	}
	if _, _, err := Reduce(s, Navigate{To: ScreenLostModeEditor}, false); !errors.Is(err, ErrNeedsPet) {
		t.Fatalf("lost mode without pet must fail, got %v", err)
	}
}

func TestReduce_NavigateNotFromPublicScreens(t *testing.T) {
	for _, from := range []Screen{ScreenLogin, ScreenFinderView} {
		if _, _, err := Reduce(State{Screen: from}, Navigate{To: ScreenSettings}, true); !errors.Is(err, ErrNotHere) {
			t.Fatalf("navigate from %s: expected NOT_ALLOWED, got %v", from, err)
		}
	}
	s := State{Screen: ScreenOwnerDashboard, Username: "MTRX01", HasPet: true}
	if _, _, err := Reduce(s, Navigate{To: ScreenLogin}, true); !errors.Is(err, ErrNotHere) {
		t.Fatalf("login is reached through logout, got %v", err)
	}
}

func TestReduce_Logout(t *testing.T) {
	s := State{Screen: ScreenLostModeEditor, Username: "MTRX01", HasPet: true, TagCode: "MTRX01", Unsaved: true}

	_, eff, err := Reduce(s, Logout{}, false)
	if !errors.Is(err, apperr.ErrCancelled) || eff.Prompt != PromptLogout {
		t.Fatalf("logout with edits must prompt, got %+v %v", eff, err)
	}

	got, eff, err := Reduce(s, Logout{}, true)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if got.Screen != ScreenLogin || got.Username != "" {
		t.Fatalf("unexpected state %+v", got)
	}
	if !eff.ClearSession || !eff.Reload || !eff.DiscardEdits {
		t.Fatalf("entered via tag: expected clear+reload, got %+v", eff)
	}

	plain := State{Screen: ScreenOwnerDashboard, Username: "MTRX01", HasPet: true}
	_, eff, err = Reduce(plain, Logout{}, false)
	if err != nil || eff.Reload || !eff.ClearSession {
		t.Fatalf("plain logout: %+v %v", eff, err)
	}
}

func TestReduce_LoginAndRegistration(t *testing.T) {
	s := Derive(Inputs{TagCode: "MTRX02", Classification: tags.ClassNew})

	s, _, err := Reduce(s, LoggedIn{Username: "MTRX02"}, false)
	if err != nil || s.Screen != ScreenRegistration || s.Prefill != "" || s.Message != "" {
		t.Fatalf("login: %+v %v", s, err)
	}

	s, _, err = Reduce(s, Registered{}, false)
	if err != nil || s.Screen != ScreenOwnerDashboard || !s.HasPet {
		t.Fatalf("registered: %+v %v", s, err)
	}

	if _, _, err := Reduce(s, LoggedIn{Username: "MTRX02"}, false); !errors.Is(err, ErrNotHere) {
		t.Fatalf("login twice must fail, got %v", err)
	}
}

func TestReduce_FinderConsentAndExit(t *testing.T) {
	s := Derive(Inputs{TagCode: "MTRX01", Classification: tags.ClassLost})

	s, eff, err := Reduce(s, ConsentGiven{}, false)
	if err != nil || !eff.LogScan || s.ConsentPending() {
		t.Fatalf("first tap must log, got %+v %+v %v", s, eff, err)
	}

	_, eff, err = Reduce(s, ConsentGiven{}, false)
	if err != nil || eff.LogScan {
		t.Fatalf("repeated tap must not log again, got %+v %v", eff, err)
	}

	s, _, err = Reduce(s, ExitFinder{}, false)
	if err != nil || s.Screen != ScreenLogin || s.Prefill != "MTRX01" {
		t.Fatalf("exit finder: %+v %v", s, err)
	}
}
