package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bookshelf/internal/client"
	"bookshelf/internal/entity"
)

// Field indices into form.inputs. The file field is local only: it
// holds a path to read and upload, not a record field.
const (
	fieldTitle = iota
	fieldAuthor
	fieldDescription
	fieldImage
	fieldLink
	fieldFile
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Author",
	"Description",
	"Image URL",
	"Link",
	"Cover file (ctrl+u to upload)",
}

// form is the transient draft for the compose modal: either empty (add
// mode) or seeded from a selected record (edit mode). Discarded on
// close or successful submit.
type form struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newForm(seed *entity.Book) form {
	var f form
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 0
		f.inputs[i] = in
	}
	if seed != nil {
		f.inputs[fieldTitle].SetValue(seed.Title)
		f.inputs[fieldAuthor].SetValue(seed.Author)
		f.inputs[fieldDescription].SetValue(seed.Description)
		f.inputs[fieldImage].SetValue(seed.Image)
		f.inputs[fieldLink].SetValue(seed.Link)
	}
	f.inputs[fieldTitle].Focus()
	return f
}

func (f *form) draft() client.Draft {
	return client.Draft{
		Title:       f.inputs[fieldTitle].Value(),
		Author:      f.inputs[fieldAuthor].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Image:       f.inputs[fieldImage].Value(),
		Link:        f.inputs[fieldLink].Value(),
	}
}

func (f *form) filePath() string {
	return f.inputs[fieldFile].Value()
}

func (f *form) setImageURL(url string) {
	f.inputs[fieldImage].SetValue(url)
}

func (f *form) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *form) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + fieldCount - 1) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}
