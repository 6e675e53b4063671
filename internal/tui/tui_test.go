package tui

import (
	"context"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/roster/internal/api"
	"github.com/idilsaglam/roster/internal/apitest"
	"github.com/idilsaglam/roster/internal/model"
	"github.com/idilsaglam/roster/internal/roster"
)

var (
	ada   = model.Student{ID: "1", Name: "Ada Lovelace", Age: "36", ClassName: "CS", PhoneNumber: "1234567890"}
	grace = model.Student{ID: "2", Name: "Grace Hopper", Age: "85", ClassName: "Navy", PhoneNumber: "0987654321"}
)

// setup returns a model whose initial refresh has completed.
func setup(t *testing.T) (modelTUI, *apitest.Store) {
	t.Helper()
	fake := apitest.NewStore(ada, grace)
	srv, base := fake.Serve()
	t.Cleanup(srv.Close)

	ctx := context.Background()
	c := roster.New(api.NewClient(base))
	m := newModel(ctx, c, 0)
	require.NoError(t, c.Refresh(ctx))
	m, _ = update(t, m, doneMsg{})
	require.Zero(t, m.pending)
	return m, fake
}

func update(t *testing.T, m modelTUI, msg tea.Msg) (modelTUI, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(modelTUI)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

// finish runs the request behind cmd and feeds its doneMsg back in.
func finish(t *testing.T, m modelTUI, cmd tea.Cmd) modelTUI {
	t.Helper()
	done, ok := findDone(cmd)
	require.True(t, ok, "no request in command")
	m, _ = update(t, m, done)
	return m
}

func findDone(cmd tea.Cmd) (doneMsg, bool) {
	if cmd == nil {
		return doneMsg{}, false
	}
	switch msg := cmd().(type) {
	case doneMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if d, ok := findDone(c); ok {
				return d, true
			}
		}
	}
	return doneMsg{}, false
}

func visible(m modelTUI) []model.Student {
	var out []model.Student
	for _, it := range m.list.Items() {
		out = append(out, it.(listItem).s)
	}
	return out
}

func TestInitialList(t *testing.T) {
	m, _ := setup(t)
	assert.Equal(t, []model.Student{ada, grace}, visible(m))
	assert.Contains(t, m.View(), "Ada Lovelace")
	assert.Contains(t, m.View(), "Grace Hopper")
}

func TestSearch(t *testing.T) {
	m, _ := setup(t)

	m, _ = update(t, m, runes("/"))
	require.True(t, m.searching)
	m, _ = update(t, m, runes("HOP"))
	assert.Equal(t, "HOP", m.snap.Query)
	assert.Equal(t, []model.Student{grace}, visible(m))

	m, _ = update(t, m, enter)
	assert.False(t, m.searching)
	assert.Equal(t, []model.Student{grace}, visible(m))

	m, _ = update(t, m, runes("/"))
	m, _ = update(t, m, esc)
	assert.Empty(t, m.snap.Query)
	assert.Equal(t, []model.Student{ada, grace}, visible(m))
}

func TestAddStudent(t *testing.T) {
	m, fake := setup(t)

	m, _ = update(t, m, runes("a"))
	require.True(t, m.snap.Open)
	assert.Contains(t, m.View(), "Add New Student")

	for i, v := range []string{"Linus", "22", "OS", "5555555555"} {
		if i > 0 {
			m, _ = update(t, m, tab)
		}
		m, _ = update(t, m, runes(v))
	}
	assert.Equal(t, model.Fields{Name: "Linus", Age: "22", ClassName: "OS", PhoneNumber: "5555555555"}, m.snap.Draft.Fields)

	m, cmd := update(t, m, enter)
	assert.Equal(t, 1, m.pending)
	m = finish(t, m, cmd)

	assert.Zero(t, m.pending)
	assert.False(t, m.snap.Open)
	require.Len(t, fake.Students(), 3)
	assert.Len(t, visible(m), 3)
	assert.Equal(t, "Linus", visible(m)[2].Name)
}

func TestInvalidFormStaysOpen(t *testing.T) {
	m, fake := setup(t)

	m, _ = update(t, m, runes("a"))
	m, _ = update(t, m, runes("Linus"))
	m, _ = update(t, m, tab)
	m, _ = update(t, m, runes("old"))

	m, cmd := update(t, m, enter)
	m = finish(t, m, cmd)

	assert.True(t, m.snap.Open)
	assert.Contains(t, m.snap.Errors, model.FieldAge)
	assert.NotContains(t, m.snap.Errors, model.FieldName)
	assert.Len(t, fake.Students(), 2)
	assert.Equal(t, "Linus", m.inputs[0].Value())
	assert.Contains(t, m.View(), "Valid age is required")

	m, _ = update(t, m, esc)
	assert.False(t, m.snap.Open)
	assert.Empty(t, m.snap.Errors)
}

func TestEditStudent(t *testing.T) {
	m, fake := setup(t)

	m, _ = update(t, m, runes("e"))
	require.True(t, m.snap.Open)
	assert.Equal(t, roster.ModeEdit, m.snap.Mode())
	assert.Equal(t, "Ada Lovelace", m.inputs[0].Value())
	assert.Contains(t, m.View(), "Edit Student")

	m, _ = update(t, m, runes(" King"))
	m, cmd := update(t, m, enter)
	m = finish(t, m, cmd)

	assert.False(t, m.snap.Open)
	assert.Equal(t, "Ada Lovelace King", fake.Students()[0].Name)
	assert.Equal(t, "Ada Lovelace King", visible(m)[0].Name)
}

func TestDeleteStudent(t *testing.T) {
	m, fake := setup(t)

	m, cmd := update(t, m, runes("d"))
	m = finish(t, m, cmd)

	assert.Equal(t, []model.Student{grace}, fake.Students())
	assert.Equal(t, []model.Student{grace}, visible(m))
}

func TestDeleteFailureKeepsList(t *testing.T) {
	m, fake := setup(t)
	fake.FailWith("DELETE /{id}", http.StatusInternalServerError)

	m, cmd := update(t, m, runes("d"))
	m = finish(t, m, cmd)

	assert.Equal(t, []model.Student{ada, grace}, visible(m))
}

func TestNoticesAndStaleSnapshots(t *testing.T) {
	m, _ := setup(t)

	m, _ = update(t, m, noticeMsg{text: "Failed to delete student", failure: true})
	assert.Contains(t, m.View(), "Failed to delete student")

	stale := m.snap
	stale.Version = 0
	stale.Students = nil
	m, _ = update(t, m, snapshotMsg(stale))
	assert.Len(t, visible(m), 2)
}

func TestPhoneInputLimit(t *testing.T) {
	m, _ := setup(t)

	for i, name := range model.FieldOrder {
		want := 200
		if name == model.FieldPhoneNumber {
			want = 10
		}
		assert.Equal(t, want, m.inputs[i].CharLimit, name)
	}
	assert.Equal(t, -1, fieldIndex("email"))
}

func TestQuit(t *testing.T) {
	m, _ := setup(t)
	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
