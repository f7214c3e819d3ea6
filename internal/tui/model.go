// Package tui is the collection manager: it owns the list view and the
// single in-flight add/edit/delete workflow, drives the gateway through
// the typed client, and re-fetches the full list after every successful
// mutation. The rendered list is always exactly the last successful
// fetch; nothing is patched locally.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bookshelf/internal/client"
	"bookshelf/internal/entity"
)

// Gateway is what the manager needs from the remote API. *client.Client
// satisfies it; tests substitute a fake.
type Gateway interface {
	Session(ctx context.Context) (client.Session, error)
	List(ctx context.Context) ([]entity.Book, error)
	Create(ctx context.Context, d client.Draft) (entity.Book, error)
	Update(ctx context.Context, id string, d client.Draft) (entity.Book, error)
	Delete(ctx context.Context, id string) (entity.Book, error)
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// mode is the tagged state of the editing session. Exactly one modal
// can be open at a time by construction.
type mode int

const (
	// modeLoading is the initial session probe; nothing renders for
	// an unauthenticated user.
	modeLoading mode = iota
	// modeIdle shows the list with no modal open.
	modeIdle
	// modeComposing has the add/edit form open and editable.
	modeComposing
	// modeSubmitting has a create, update or delete call in flight.
	modeSubmitting
	// modeConfirmingDelete holds a target id awaiting confirmation.
	modeConfirmingDelete
)

const callTimeout = 10 * time.Second

// noticeFadeDelay is how long a status-bar notice stays visible.
const noticeFadeDelay = 4 * time.Second

type sessionMsg struct {
	err error
}

type booksLoadedMsg struct {
	books []entity.Book
	err   error
}

// mutationDoneMsg is sent when an asynchronous create/update/delete
// completes. On error the notice is shown in the status bar; a failed
// form submit keeps the modal open so input is not lost.
type mutationDoneMsg struct {
	book entity.Book
	err  error
}

type uploadDoneMsg struct {
	url string
	err error
}

// noticeFadeMsg clears a stale status-bar notice. seq guards against
// clearing a newer notice than the one that scheduled the fade.
type noticeFadeMsg struct {
	seq int
}

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Refresh   key.Binding
	Quit      key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Upload    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Confirm   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k")),
		Down:      key.NewBinding(key.WithKeys("down", "j")),
		Add:       key.NewBinding(key.WithKeys("a")),
		Edit:      key.NewBinding(key.WithKeys("e")),
		Delete:    key.NewBinding(key.WithKeys("d")),
		Refresh:   key.NewBinding(key.WithKeys("r")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
		Submit:    key.NewBinding(key.WithKeys("enter")),
		Cancel:    key.NewBinding(key.WithKeys("esc")),
		Upload:    key.NewBinding(key.WithKeys("ctrl+u")),
		NextField: key.NewBinding(key.WithKeys("tab", "down")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up")),
		Confirm:   key.NewBinding(key.WithKeys("y", "enter")),
	}
}

// Model is the bubbletea model for the collection manager.
type Model struct {
	gateway Gateway
	theme   Theme
	keys    keyMap
	menu    []MenuEntry

	mode   mode
	books  []entity.Book
	cursor int

	form      form
	editing   *entity.Book // non-nil while editing ⇒ submit is an update
	uploading bool

	deleteID    string
	deleteTitle string

	// returnMode is where a failed in-flight mutation lands: back in
	// the compose modal for a form submit, idle for a delete.
	returnMode mode

	notice    string
	noticeErr bool
	noticeSeq int

	authErr error
	width   int
	height  int
}

func NewModel(gateway Gateway) Model {
	return Model{
		gateway: gateway,
		theme:   DefaultTheme(),
		keys:    defaultKeyMap(),
		menu:    defaultMenu(),
		mode:    modeLoading,
		width:   80,
		height:  24,
	}
}

// AuthErr reports why the session probe failed, if it did. The program
// exits without rendering in that case; main prints the hint.
func (m Model) AuthErr() error { return m.authErr }

func (m Model) Init() tea.Cmd {
	return m.probeSession()
}

func (m Model) probeSession() tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		_, err := gw.Session(ctx)
		return sessionMsg{err: err}
	}
}

func (m Model) fetchBooks() tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		books, err := gw.List(ctx)
		return booksLoadedMsg{books: books, err: err}
	}
}

func (m Model) submitForm() tea.Cmd {
	gw := m.gateway
	draft := m.form.draft()
	var id string
	if m.editing != nil {
		id = m.editing.ID
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		var (
			b   entity.Book
			err error
		)
		if id != "" {
			b, err = gw.Update(ctx, id, draft)
		} else {
			b, err = gw.Create(ctx, draft)
		}
		return mutationDoneMsg{book: b, err: err}
	}
}

func (m Model) submitDelete() tea.Cmd {
	gw := m.gateway
	id := m.deleteID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		b, err := gw.Delete(ctx, id)
		return mutationDoneMsg{book: b, err: err}
	}
}

func (m Model) uploadCover() tea.Cmd {
	gw := m.gateway
	path := m.form.filePath()
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return uploadDoneMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		url, err := gw.Upload(ctx, filepath.Base(path), data)
		return uploadDoneMsg{url: url, err: err}
	}
}

func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.notice = text
	m.noticeErr = isErr
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{seq: seq}
	})
}

func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		return m, nil

	case sessionMsg:
		if message.err != nil {
			m.authErr = message.err
			return m, tea.Quit
		}
		return m, m.fetchBooks()

	case booksLoadedMsg:
		if message.err != nil {
			if m.mode == modeLoading {
				m.mode = modeIdle
			}
			return m, m.setNotice("load failed: "+message.err.Error(), true)
		}
		m.books = message.books
		if m.cursor >= len(m.books) {
			m.cursor = len(m.books) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		if m.mode == modeLoading {
			m.mode = modeIdle
		}
		return m, nil

	case mutationDoneMsg:
		if m.mode != modeSubmitting {
			// Response to a call whose UI is gone; absorb it but
			// still re-sync the list with server state.
			if message.err == nil {
				return m, m.fetchBooks()
			}
			return m, nil
		}
		if message.err != nil {
			m.mode = m.returnMode
			if m.mode != modeConfirmingDelete {
				m.deleteID = ""
				m.deleteTitle = ""
			}
			return m, m.setNotice(message.err.Error(), true)
		}
		m.mode = modeIdle
		m.editing = nil
		m.deleteID = ""
		m.deleteTitle = ""
		m.form = form{}
		return m, tea.Batch(m.fetchBooks(), m.setNotice("saved", false))

	case uploadDoneMsg:
		m.uploading = false
		if message.err != nil {
			return m, m.setNotice("upload failed: "+message.err.Error(), true)
		}
		m.form.setImageURL(message.url)
		return m, m.setNotice("cover uploaded", false)

	case noticeFadeMsg:
		if message.seq == m.noticeSeq {
			m.notice = ""
			m.noticeErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)
	}

	return m, nil
}

func (m Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeIdle:
		return m.handleIdleKeys(message)
	case modeComposing:
		return m.handleComposeKeys(message)
	case modeConfirmingDelete:
		return m.handleConfirmKeys(message)
	case modeSubmitting:
		// A mutation is in flight; only quit is honored. There is no
		// cancellation of the call itself.
		if key.Matches(message, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleIdleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(message, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(message, m.keys.Down):
		if m.cursor < len(m.books)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(message, m.keys.Refresh):
		return m, m.fetchBooks()

	case key.Matches(message, m.keys.Add):
		m.mode = modeComposing
		m.editing = nil
		m.form = newForm(nil)
		return m, nil

	case key.Matches(message, m.keys.Edit):
		if len(m.books) == 0 {
			return m, nil
		}
		selected := m.books[m.cursor]
		m.mode = modeComposing
		m.editing = &selected
		m.form = newForm(&selected)
		return m, nil

	case key.Matches(message, m.keys.Delete):
		if len(m.books) == 0 {
			return m, nil
		}
		selected := m.books[m.cursor]
		m.mode = modeConfirmingDelete
		m.deleteID = selected.ID
		m.deleteTitle = selected.Title
		return m, nil
	}
	return m, nil
}

func (m Model) handleComposeKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Cancel):
		// Discard the draft. An in-flight upload is not cancelled,
		// its eventual result just has no field to land in.
		m.mode = modeIdle
		m.editing = nil
		m.form = form{}
		m.uploading = false
		return m, nil

	case key.Matches(message, m.keys.Submit):
		if m.uploading && m.editing == nil {
			// A new record waits for its cover URL; an edit may be
			// submitted without changing the image.
			return m, m.setNotice("upload in progress", true)
		}
		m.mode = modeSubmitting
		m.returnMode = modeComposing
		return m, m.submitForm()

	case key.Matches(message, m.keys.Upload):
		if m.uploading {
			return m, nil
		}
		if m.form.filePath() == "" {
			return m, m.setNotice("enter a cover file path first", true)
		}
		m.uploading = true
		return m, m.uploadCover()

	case key.Matches(message, m.keys.NextField):
		m.form.focusNext()
		return m, nil

	case key.Matches(message, m.keys.PrevField):
		m.form.focusPrev()
		return m, nil
	}

	cmd := m.form.update(message)
	return m, cmd
}

func (m Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Cancel):
		m.mode = modeIdle
		m.deleteID = ""
		m.deleteTitle = ""
		return m, nil

	case key.Matches(message, m.keys.Confirm):
		m.mode = modeSubmitting
		m.returnMode = modeIdle
		return m, m.submitDelete()

	case key.Matches(message, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.authErr != nil {
		return ""
	}

	switch m.mode {
	case modeLoading:
		return m.theme.Help.Render("checking session...")
	case modeComposing:
		return m.composeView()
	case modeSubmitting:
		if m.deleteID != "" {
			return m.confirmView()
		}
		return m.composeView()
	case modeConfirmingDelete:
		return m.confirmView()
	default:
		return m.listView()
	}
}

func (m Model) listView() string {
	var b strings.Builder

	header := fmt.Sprintf("%-28s %-20s %-30s %s", "Title", "Author", "Description", "Link")
	b.WriteString(m.theme.Header.Render(header))
	b.WriteString("\n")

	if len(m.books) == 0 {
		b.WriteString(m.theme.Help.Render("no books yet — press a to add one"))
		b.WriteString("\n")
	}

	for i, bk := range m.books {
		line := fmt.Sprintf("%-28s %-20s %-30s %s",
			truncate(bk.Title, 28),
			truncate(bk.Author, 20),
			truncate(bk.Description, 30),
			truncate(bk.Link, 24),
		)
		if i == m.cursor {
			line = m.theme.SelectedRow.Render(line)
		} else {
			line = m.theme.Row.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("a add · e edit · d delete · r refresh · q quit"))
	b.WriteString("\n")
	b.WriteString(m.statusBar())

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		renderSidebar(m.theme, m.menu, 1),
		"  ",
		b.String(),
	)
	return body
}

func (m Model) composeView() string {
	title := "Add book"
	if m.editing != nil {
		title = "Edit book"
	}

	var b strings.Builder
	b.WriteString(m.theme.ModalTitle.Render(title))
	b.WriteString("\n\n")
	for i := 0; i < fieldCount; i++ {
		b.WriteString(m.theme.Label.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	switch {
	case m.mode == modeSubmitting:
		b.WriteString(m.theme.Help.Render("saving..."))
	case m.uploading:
		b.WriteString(m.theme.Help.Render("uploading cover..."))
	default:
		b.WriteString(m.theme.Help.Render("enter save · esc cancel · tab next field"))
	}

	return m.theme.Modal.Render(b.String()) + "\n" + m.statusBar()
}

func (m Model) confirmView() string {
	var b strings.Builder
	b.WriteString(m.theme.ModalTitle.Render("Delete book"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Delete %q? This cannot be undone.", m.deleteTitle))
	b.WriteString("\n\n")
	if m.mode == modeSubmitting {
		b.WriteString(m.theme.Help.Render("deleting..."))
	} else {
		b.WriteString(m.theme.Help.Render("y/enter confirm · esc cancel"))
	}
	return m.theme.Modal.Render(b.String()) + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return m.theme.StatusErr.Render(m.notice)
	}
	return m.theme.StatusOK.Render(m.notice)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
