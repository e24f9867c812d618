package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"english-hub/models"
	"english-hub/services"
)

const requestTimeout = 30 * time.Second

// feedLoadedMsg carries the result of a feed reload.
type feedLoadedMsg struct {
	clubID     string
	activities []models.Activity
	err        error
}

// threadMsg carries a thread after a toggle or a post.
type threadMsg struct {
	activityID string
	err        error
}

// fileReadMsg carries a file picked by path.
type fileReadMsg struct {
	clubID string
	img    services.ImageFile
	err    error
}

// submitDoneMsg reports the end of an upload submit.
type submitDoneMsg struct {
	clubID string
	err    error
}

// readImageFile loads an image from disk with the same limits as the web picker.
func readImageFile(path string) (services.ImageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return services.ImageFile{}, services.ErrNoImage
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return services.ImageFile{}, services.ErrNoImage
	}
	return services.ReadImage(f, filepath.Base(path), "", info.Size())
}

func (m Model) loadFeed(clubID string) tea.Cmd {
	feed := m.feed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		list, err := feed.Load(ctx, clubID)
		return feedLoadedMsg{clubID: clubID, activities: list, err: err}
	}
}

func (m Model) toggleThread(activityID string) tea.Cmd {
	threads := m.threads
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := threads.Toggle(ctx, activityID)
		return threadMsg{activityID: activityID, err: err}
	}
}

func (m Model) postComment(activityID, text string) tea.Cmd {
	threads := m.threads
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := threads.Post(ctx, activityID, text)
		return threadMsg{activityID: activityID, err: err}
	}
}

func (m Model) readFile(clubID, path string) tea.Cmd {
	read := m.readImage
	return func() tea.Msg {
		img, err := read(path)
		return fileReadMsg{clubID: clubID, img: img, err: err}
	}
}

// submitUpload posts the draft; the workflow reloads the feed after the insert.
func (m Model) submitUpload(u *services.UploadWorkflow) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := u.Submit(ctx)
		return submitDoneMsg{clubID: u.ClubID(), err: err}
	}
}
