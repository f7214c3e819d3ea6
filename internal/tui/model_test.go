package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/client"
	"bookshelf/internal/entity"
)

type fakeGateway struct {
	books []entity.Book

	sessionErr error
	listErr    error
	createErr  error
	updateErr  error
	deleteErr  error
	uploadErr  error

	listCalls int
	created   []client.Draft
	updatedID string
	deletedID string
	uploadURL string
}

func (f *fakeGateway) Session(ctx context.Context) (client.Session, error) {
	if f.sessionErr != nil {
		return client.Session{}, f.sessionErr
	}
	return client.Session{Authenticated: true, Subject: "owner"}, nil
}

func (f *fakeGateway) List(ctx context.Context) ([]entity.Book, error) {
	f.listCalls++
	return f.books, f.listErr
}

func (f *fakeGateway) Create(ctx context.Context, d client.Draft) (entity.Book, error) {
	if f.createErr != nil {
		return entity.Book{}, f.createErr
	}
	f.created = append(f.created, d)
	return entity.Book{ID: "new-id", Title: d.Title}, nil
}

func (f *fakeGateway) Update(ctx context.Context, id string, d client.Draft) (entity.Book, error) {
	if f.updateErr != nil {
		return entity.Book{}, f.updateErr
	}
	f.updatedID = id
	return entity.Book{ID: id, Title: d.Title}, nil
}

func (f *fakeGateway) Delete(ctx context.Context, id string) (entity.Book, error) {
	if f.deleteErr != nil {
		return entity.Book{}, f.deleteErr
	}
	f.deletedID = id
	return entity.Book{ID: id}, nil
}

func (f *fakeGateway) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.uploadURL, nil
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step applies a message and returns the updated model plus the command.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model, cmd
}

func idleModel(gw *fakeGateway) Model {
	m := NewModel(gw)
	m.mode = modeIdle
	m.books = gw.books
	return m
}

func TestStartupSessionThenFetch(t *testing.T) {
	gw := &fakeGateway{books: []entity.Book{{ID: "1", Title: "Dune"}}}
	m := NewModel(gw)
	assert.Equal(t, modeLoading, m.mode)

	m, cmd := step(t, m, sessionMsg{})
	require.NotNil(t, cmd, "a successful probe schedules the list fetch")
	assert.Equal(t, modeLoading, m.mode)

	loaded := cmd()
	m, _ = step(t, m, loaded)
	assert.Equal(t, modeIdle, m.mode)
	require.Len(t, m.books, 1)
	assert.Equal(t, "Dune", m.books[0].Title)
}

func TestStartupUnauthenticatedQuitsSilently(t *testing.T) {
	gw := &fakeGateway{sessionErr: client.ErrUnauthorized}
	m := NewModel(gw)

	m, cmd := step(t, m, sessionMsg{err: gw.sessionErr})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.ErrorIs(t, m.AuthErr(), client.ErrUnauthorized)
	assert.Empty(t, m.View(), "renders nothing when unauthenticated")
}

func TestAddFlow(t *testing.T) {
	gw := &fakeGateway{}
	m := idleModel(gw)

	m, _ = step(t, m, keyPress("a"))
	assert.Equal(t, modeComposing, m.mode)
	assert.Nil(t, m.editing, "nil current record means create on submit")

	m.form.inputs[fieldTitle].SetValue("Dune")
	m.form.inputs[fieldAuthor].SetValue("Herbert")
	m.form.inputs[fieldDescription].SetValue("Sci-fi")

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeSubmitting, m.mode)
	require.NotNil(t, cmd)

	done := cmd()
	m, _ = step(t, m, done)
	assert.Equal(t, modeIdle, m.mode)
	require.Len(t, gw.created, 1)
	assert.Equal(t, "Dune", gw.created[0].Title)
	assert.Equal(t, "Herbert", gw.created[0].Author)
}

func TestEditFlowSeedsDraftAndUpdates(t *testing.T) {
	gw := &fakeGateway{books: []entity.Book{
		{ID: "b-1", Title: "Dune", Author: "Herbert", Description: "Sci-fi", Image: "img", Link: "lnk"},
	}}
	m := idleModel(gw)

	m, _ = step(t, m, keyPress("e"))
	assert.Equal(t, modeComposing, m.mode)
	require.NotNil(t, m.editing)
	assert.Equal(t, "Dune", m.form.inputs[fieldTitle].Value())
	assert.Equal(t, "img", m.form.inputs[fieldImage].Value())

	m.form.inputs[fieldTitle].SetValue("Dune Messiah")
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeSubmitting, m.mode)

	m, _ = step(t, m, cmd())
	assert.Equal(t, modeIdle, m.mode)
	assert.Equal(t, "b-1", gw.updatedID, "non-nil current record means update")
	assert.Nil(t, m.editing, "draft discarded after successful submit")
}

func TestSubmitFailureKeepsModalOpen(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("boom")}
	m := idleModel(gw)

	m, _ = step(t, m, keyPress("a"))
	m.form.inputs[fieldTitle].SetValue("Dune")

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())

	assert.Equal(t, modeComposing, m.mode, "failed submit returns to the form")
	assert.Equal(t, "Dune", m.form.inputs[fieldTitle].Value(), "input is not lost")
	assert.Equal(t, "boom", m.notice)
	assert.True(t, m.noticeErr)
}

func TestDeleteConfirmFlow(t *testing.T) {
	gw := &fakeGateway{books: []entity.Book{{ID: "b-1", Title: "Dune"}}}
	m := idleModel(gw)

	m, _ = step(t, m, keyPress("d"))
	assert.Equal(t, modeConfirmingDelete, m.mode)
	assert.Equal(t, "b-1", m.deleteID)

	m, cmd := step(t, m, keyPress("y"))
	assert.Equal(t, modeSubmitting, m.mode)

	m, _ = step(t, m, cmd())
	assert.Equal(t, modeIdle, m.mode)
	assert.Equal(t, "b-1", gw.deletedID)
	assert.Empty(t, m.deleteID)
}

func TestDeleteCancelIssuesNoCall(t *testing.T) {
	gw := &fakeGateway{books: []entity.Book{{ID: "b-1", Title: "Dune"}}}
	m := idleModel(gw)

	m, _ = step(t, m, keyPress("d"))
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeIdle, m.mode)
	assert.Nil(t, cmd)
	assert.Empty(t, gw.deletedID)
}

func TestComposeBlocksOtherModals(t *testing.T) {
	gw := &fakeGateway{books: []entity.Book{{ID: "b-1", Title: "Dune"}}}
	m := idleModel(gw)

	m, _ = step(t, m, keyPress("a"))
	require.Equal(t, modeComposing, m.mode)

	// "d" is text for the focused field, not the delete shortcut.
	m, _ = step(t, m, keyPress("d"))
	assert.Equal(t, modeComposing, m.mode)
	assert.Empty(t, m.deleteID)
	assert.Equal(t, "d", m.form.inputs[fieldTitle].Value())
}

func TestNewRecordSubmitWaitsForUpload(t *testing.T) {
	gw := &fakeGateway{}
	m := idleModel(gw)

	m, _ = step(t, m, keyPress("a"))
	m.form.inputs[fieldTitle].SetValue("Dune")
	m.uploading = true

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeComposing, m.mode, "new record cannot be saved mid-upload")
	assert.Empty(t, gw.created)
}

func TestEditSubmitAllowedDuringUpload(t *testing.T) {
	gw := &fakeGateway{books: []entity.Book{{ID: "b-1", Title: "Dune", Author: "H", Description: "d"}}}
	m := idleModel(gw)

	m, _ = step(t, m, keyPress("e"))
	m.uploading = true

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeSubmitting, m.mode, "an edit may be submitted without a new image")
	require.NotNil(t, cmd)
}

func TestUploadResultFillsImageField(t *testing.T) {
	gw := &fakeGateway{uploadURL: "https://shelf-covers.s3.amazonaws.com/dune.jpg"}
	m := idleModel(gw)

	m, _ = step(t, m, keyPress("a"))
	m.uploading = true

	m, _ = step(t, m, uploadDoneMsg{url: gw.uploadURL})
	assert.False(t, m.uploading)
	assert.Equal(t, gw.uploadURL, m.form.inputs[fieldImage].Value())
}

func TestUploadFailureResetsUploadState(t *testing.T) {
	gw := &fakeGateway{}
	m := idleModel(gw)

	m, _ = step(t, m, keyPress("a"))
	m.uploading = true

	m, _ = step(t, m, uploadDoneMsg{err: errors.New("put failed")})
	assert.False(t, m.uploading)
	assert.True(t, m.noticeErr)
	assert.Equal(t, modeComposing, m.mode)
}

func TestLateMutationResultIsAbsorbed(t *testing.T) {
	gw := &fakeGateway{}
	m := idleModel(gw)

	// A success response arriving with no modal open has no UI to
	// apply to; the list is still re-synced with server state.
	m, cmd := step(t, m, mutationDoneMsg{book: entity.Book{ID: "x"}})
	assert.Equal(t, modeIdle, m.mode)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, 1, gw.listCalls)
}

func TestRefreshAfterSuccessfulMutation(t *testing.T) {
	gw := &fakeGateway{}
	m := idleModel(gw)

	m, _ = step(t, m, keyPress("a"))
	m.form.inputs[fieldTitle].SetValue("Dune")
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, batch := step(t, m, cmd())

	require.NotNil(t, batch, "a successful mutation schedules the re-fetch")
	gw.books = []entity.Book{{ID: "new-id", Title: "Dune"}}
	m, _ = step(t, m, booksLoadedMsg{books: gw.books})
	require.Len(t, m.books, 1)
	assert.Equal(t, "Dune", m.books[0].Title)
}
