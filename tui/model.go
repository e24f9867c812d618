// Package tui is the terminal surface: the same router, stores and upload workflow
// as the web surface, driven by bubbletea.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"english-hub/gateway"
	"english-hub/logger"
	"english-hub/models"
	"english-hub/navigation"
	"english-hub/services"
	"english-hub/session"
)

// editTarget is the field the text input is currently editing.
type editTarget int

const (
	editNone editTarget = iota
	editFilePath
	editTitle
	editDescription
	editComment
)

// Deps wires the model to its stores.
type Deps struct {
	Gate    *session.Gate
	Gateway gateway.Gateway
	Upload  services.UploadOptions
}

// Model is the root bubbletea model.
type Model struct {
	router  *navigation.Router
	feed    *services.FeedStore
	threads *services.CommentThreads
	uploads map[string]*services.UploadWorkflow
	opts    services.UploadOptions

	readImage func(path string) (services.ImageFile, error)

	cursor    int
	editing   editTarget
	input     textinput.Model
	loading   bool
	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the model. The router starts on home when the gate has a stored login.
func New(d Deps) Model {
	ti := textinput.New()
	ti.CharLimit = 4096

	return Model{
		router:    navigation.New(d.Gate),
		feed:      services.NewFeedStore(d.Gateway, nil),
		threads:   services.NewCommentThreads(d.Gateway),
		uploads:   make(map[string]*services.UploadWorkflow),
		opts:      d.Upload,
		readImage: readImageFile,
		input:     ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) upload(clubID string) *services.UploadWorkflow {
	u, ok := m.uploads[clubID]
	if !ok {
		u = services.NewUploadWorkflow(clubID, m.feed, m.opts)
		m.uploads[clubID] = u
	}
	return u
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case feedLoadedMsg:
		if v := m.router.Current(); v.State.SelectedClubID == msg.clubID {
			m.loading = false
			if m.cursor >= len(msg.activities) {
				m.cursor = 0
			}
		}
		return m, nil

	case threadMsg:
		switch {
		case msg.err == nil, errors.Is(msg.err, services.ErrEmptyComment):
			m.setStatus("", false)
		case services.IsValidation(msg.err):
			m.setStatus(services.UserMessage(msg.err), true)
		default:
			m.setStatus("Could not update comments. Please try again.", true)
		}
		return m, nil

	case fileReadMsg:
		u := m.upload(msg.clubID)
		if msg.err != nil {
			u.RejectFile(msg.err)
			return m, nil
		}
		_ = u.SelectFile(msg.img)
		return m, nil

	case submitDoneMsg:
		if msg.err == nil {
			m.setStatus("Activity posted.", false)
			m.cursor = 0
		} else {
			m.setStatus("", false)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.editing != editNone {
			return m.updateEditing(msg)
		}
		switch m.router.State().Page {
		case navigation.PageLogin:
			return m.updateLogin(msg)
		case navigation.PageHome:
			return m.updateHome(msg)
		case navigation.PageClub:
			return m.updateClub(msg)
		}
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		if err := m.router.Login(); err != nil {
			logger.Error.Printf("tui: login failed: %v", err)
			m.setStatus("Could not save the session; you will need to log in again next time.", true)
		}
		m.cursor = 0
	}
	return m, nil
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	clubs := models.Clubs()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(clubs)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "L":
		_ = m.router.Logout()
		m.setStatus("", false)
	case "enter":
		club := clubs[m.cursor]
		if err := m.router.SelectClub(club.ID); err != nil {
			return m, nil
		}
		m.cursor = 0
		m.loading = true
		m.setStatus("", false)
		return m, m.loadFeed(club.ID)
	}
	return m, nil
}

func (m Model) updateClub(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.router.Current()
	if view.NotFound {
		if msg.String() == "esc" || msg.String() == "b" {
			_ = m.router.Back()
		}
		return m, nil
	}

	u := m.upload(view.Club.ID)
	if u.Snapshot().State != services.UploadClosed {
		return m.updateUpload(msg, u)
	}

	activities := m.feed.Activities(view.Club.ID)
	switch msg.String() {
	case "esc", "b":
		_ = m.router.Back()
		m.cursor = 0
		m.setStatus("", false)
	case "L":
		_ = m.router.Logout()
		m.cursor = 0
	case "j", "down":
		if m.cursor < len(activities)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		m.loading = true
		return m, m.loadFeed(view.Club.ID)
	case "p":
		u.Open()
	case "c", "enter":
		if len(activities) > 0 {
			return m, m.toggleThread(activities[m.cursor].ID)
		}
	case "a":
		if len(activities) > 0 {
			return m.startEditing(editComment, "Add a comment...", models.MaxCommentLength, "")
		}
	}
	return m, nil
}

func (m Model) updateUpload(msg tea.KeyMsg, u *services.UploadWorkflow) (tea.Model, tea.Cmd) {
	snap := u.Snapshot()
	switch msg.String() {
	case "esc":
		u.Close()
	case "f":
		return m.startEditing(editFilePath, "/path/to/picture.png", 4096, "")
	case "x":
		u.ChangeImage()
	case "t":
		if snap.State == services.UploadComposing {
			return m.startEditing(editTitle, "Enter post title", models.MaxTitleLength, snap.Title)
		}
	case "d":
		if snap.State == services.UploadComposing {
			return m.startEditing(editDescription, "Add a description (optional)", models.MaxDescriptionLength, snap.Description)
		}
	case "s":
		if snap.State == services.UploadComposing {
			m.setStatus("Posting...", false)
			return m, m.submitUpload(u)
		}
	}
	return m, nil
}

func (m Model) startEditing(target editTarget, placeholder string, limit int, value string) (tea.Model, tea.Cmd) {
	m.editing = target
	m.input.Placeholder = placeholder
	m.input.CharLimit = limit
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = editNone
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		target := m.editing
		m.editing = editNone
		m.input.Blur()
		m.input.SetValue("")
		return m.commitEdit(target, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) commitEdit(target editTarget, value string) (tea.Model, tea.Cmd) {
	view := m.router.Current()
	if view.State.Page != navigation.PageClub || view.NotFound {
		return m, nil
	}
	u := m.upload(view.Club.ID)

	switch target {
	case editFilePath:
		return m, m.readFile(view.Club.ID, value)
	case editTitle:
		u.SetTitle(value)
	case editDescription:
		u.SetDescription(value)
	case editComment:
		activities := m.feed.Activities(view.Club.ID)
		if m.cursor >= len(activities) {
			return m, nil
		}
		return m, m.postComment(activities[m.cursor].ID, value)
	}
	return m, nil
}
