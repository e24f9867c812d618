// Package navigation tracks which page is showing and which club is selected.
// File: navigation/router.go
package navigation

import (
	"errors"
	"fmt"
	"sync"

	"english-hub/models"
	"english-hub/session"
)

// Page is one of the three top-level screens.
type Page string

const (
	PageLogin Page = "login"
	PageHome  Page = "home"
	PageClub  Page = "club"
)

// ErrInvalidTransition is returned when an action does not apply to the current page.
var ErrInvalidTransition = errors.New("invalid navigation transition")

// ViewState is the router's whole state. SelectedClubID is set only on PageClub.
type ViewState struct {
	Page           Page
	SelectedClubID string
}

// View is what a surface needs to render the current page.
type View struct {
	State    ViewState
	Club     models.Club
	NotFound bool
}

// Router owns the view state.
type Router struct {
	gate *session.Gate

	mu    sync.Mutex
	state ViewState
}

// New starts on the home page when the gate reports a stored login, otherwise on login.
func New(gate *session.Gate) *Router {
	r := &Router{gate: gate, state: ViewState{Page: PageLogin}}
	if loggedIn, _ := gate.Start(); loggedIn {
		r.state.Page = PageHome
	}
	return r
}

// Login moves from the login page to home.
func (r *Router) Login() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Page != PageLogin {
		return fmt.Errorf("%w: login from %s", ErrInvalidTransition, r.state.Page)
	}
	if err := r.gate.Login(); err != nil {
		return err
	}
	r.state = ViewState{Page: PageHome}
	return nil
}

// Logout returns to the login page from anywhere.
func (r *Router) Logout() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.gate.Logout()
	r.state = ViewState{Page: PageLogin}
	return err
}

// SelectClub opens a club page. Unknown ids are accepted and render as not found.
func (r *Router) SelectClub(clubID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Page != PageHome {
		return fmt.Errorf("%w: select club from %s", ErrInvalidTransition, r.state.Page)
	}
	if clubID == "" {
		return fmt.Errorf("%w: empty club id", ErrInvalidTransition)
	}
	r.state = ViewState{Page: PageClub, SelectedClubID: clubID}
	return nil
}

// Back leaves a club page for home.
func (r *Router) Back() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Page != PageClub {
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, r.state.Page)
	}
	r.state = ViewState{Page: PageHome}
	return nil
}

// State returns a copy of the view state.
func (r *Router) State() ViewState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Current resolves the selected club against the static table.
func (r *Router) Current() View {
	state := r.State()
	v := View{State: state}
	if state.Page != PageClub {
		return v
	}
	club, ok := models.LookupClub(state.SelectedClubID)
	if !ok {
		v.NotFound = true
		return v
	}
	v.Club = club
	return v
}
