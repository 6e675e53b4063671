package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/roster/internal/logger"
	"github.com/idilsaglam/roster/internal/model"
	"github.com/idilsaglam/roster/internal/roster"
	"github.com/idilsaglam/roster/internal/ui"
)

// Options tune the interactive session.
type Options struct {
	Timeout time.Duration // per request, 0 for none
	Logger  *slog.Logger
}

// Messages.
type (
	snapshotMsg roster.Snapshot
	noticeMsg   struct {
		text    string
		failure bool
	}
	doneMsg struct{ err error }
)

// listItem adapts model.Student to bubbles/list.Item
type listItem struct{ s model.Student }

func (i listItem) FilterValue() string { return i.s.Name }

// itemDelegate renders one student per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	prefix := "  "
	line := ui.StudentLine(it.s)
	if index == m.Index() {
		prefix = t.Select.Render(t.Cursor)
	}
	fmt.Fprint(w, prefix+line)
}

// notifier forwards controller outcomes into the running program.
type notifier struct{ p *tea.Program }

func (n *notifier) Success(msg string) { n.send(noticeMsg{text: msg}) }
func (n *notifier) Failure(msg string) { n.send(noticeMsg{text: msg, failure: true}) }

func (n *notifier) send(msg tea.Msg) {
	if n.p != nil {
		go n.p.Send(msg)
	}
}

// Run starts the interactive UI over store and blocks until the user quits.
func Run(ctx context.Context, store roster.Store, opt Options) error {
	log := opt.Logger
	if log == nil {
		log = logger.Discard()
	}
	n := &notifier{}
	c := roster.New(store, roster.WithNotifier(n), roster.WithLogger(log))

	p := tea.NewProgram(newModel(ctx, c, opt.Timeout), tea.WithAltScreen(), tea.WithContext(ctx))
	n.p = p
	// Send blocks until the loop reads it, and changes made inside Update
	// would otherwise wait on themselves.
	cancel := c.Subscribe(func(s roster.Snapshot) { go p.Send(snapshotMsg(s)) })
	defer cancel()

	_, err := p.Run()
	return err
}

type modelTUI struct {
	ctx     context.Context
	c       *roster.Controller
	timeout time.Duration
	snap    roster.Snapshot

	list      list.Model
	keys      listKeys
	search    textinput.Model
	searching bool

	inputs   []textinput.Model // one per model.FieldOrder entry
	focus    int
	formKeys formKeys
	help     help.Model

	spinner spinner.Model
	pending int // requests in flight

	status    string
	statusErr bool

	width, height int
}

var fieldLabels = map[string]string{
	model.FieldName:        "Student Name",
	model.FieldAge:         "Age",
	model.FieldClassName:   "Class",
	model.FieldPhoneNumber: "Phone Number",
}

// fieldIndex is the position of the named field in the form.
func fieldIndex(name string) int {
	for i, n := range model.FieldOrder {
		if n == name {
			return i
		}
	}
	return -1
}

func newModel(ctx context.Context, c *roster.Controller, timeout time.Duration) modelTUI {
	keys := newListKeys()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = "Students"
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.SetStatusBarItemName("student", "students")
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = keys.extra
	l.AdditionalFullHelpKeys = keys.extra

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search students by name..."
	search.CharLimit = 100

	inputs := make([]textinput.Model, len(model.FieldOrder))
	for i, name := range model.FieldOrder {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = fieldLabels[name]
		ti.CharLimit = 200
		inputs[i] = ti
	}
	inputs[fieldIndex(model.FieldPhoneNumber)].CharLimit = 10

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = ui.Current().Accent

	return modelTUI{
		ctx:      ctx,
		c:        c,
		timeout:  timeout,
		snap:     c.Snapshot(),
		list:     l,
		keys:     keys,
		search:   search,
		inputs:   inputs,
		formKeys: newFormKeys(),
		help:     help.New(),
		spinner:  sp,
		pending:  1, // initial refresh
		width:    80,
		height:   24,
	}
}

func (m modelTUI) Init() tea.Cmd {
	return tea.Batch(m.run(m.c.Refresh), m.spinner.Tick)
}

// run wraps a controller call as a command reporting doneMsg.
func (m modelTUI) run(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx, context.CancelFunc(func() {})
		if m.timeout > 0 {
			ctx, cancel = context.WithTimeout(m.ctx, m.timeout)
		}
		defer cancel()
		return doneMsg{err: fn(ctx)}
	}
}

// start counts a request in flight and kicks the spinner if it was idle.
func (m modelTUI) start(fn func(context.Context) error) (modelTUI, tea.Cmd) {
	m.pending++
	cmd := m.run(fn)
	if m.pending == 1 {
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	return m, cmd
}

// sync pulls the controller state in after a synchronous call.
func (m modelTUI) sync() (modelTUI, tea.Cmd) {
	return m.apply(m.c.Snapshot())
}

func (m modelTUI) apply(s roster.Snapshot) (modelTUI, tea.Cmd) {
	if s.Version < m.snap.Version {
		return m, nil
	}
	prev := m.snap
	m.snap = s

	if s.Open && (!prev.Open || prev.Draft.ID != s.Draft.ID) {
		m = m.loadForm(s.Draft)
	}
	if !s.Open && prev.Open {
		for i := range m.inputs {
			m.inputs[i].Blur()
			m.inputs[i].SetValue("")
		}
	}

	students := s.Filtered()
	items := make([]list.Item, 0, len(students))
	for _, st := range students {
		items = append(items, listItem{s: st})
	}
	m.list.Title = fmt.Sprintf("Students   %s %d", ui.Current().Accent.Render("Total"), len(s.Students))
	cmd := m.list.SetItems(items)
	return m, cmd
}

func (m modelTUI) loadForm(d model.Draft) modelTUI {
	for i, name := range model.FieldOrder {
		m.inputs[i].SetValue(d.Get(name))
		m.inputs[i].CursorEnd()
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
	return m
}

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case snapshotMsg:
		return m.apply(roster.Snapshot(msg))

	case noticeMsg:
		m.status, m.statusErr = msg.text, msg.failure
		return m, nil

	case doneMsg:
		if m.pending > 0 {
			m.pending--
		}
		return m.sync()

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.snap.Open:
			return m.updateForm(msg)
		case m.searching:
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Add):
		m.c.BeginCreate()
		return m.sync()
	case key.Matches(msg, m.keys.Edit):
		if it, ok := m.list.SelectedItem().(listItem); ok {
			m.c.BeginEdit(it.s)
			return m.sync()
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.list.SelectedItem().(listItem); ok {
			id := it.s.ID
			return m.start(func(ctx context.Context) error { return m.c.Remove(ctx, id) })
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m.start(m.c.Refresh)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.c.SetSearchQuery("")
		return m.sync()
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.snap.Query {
		m.c.SetSearchQuery(m.search.Value())
		var syncCmd tea.Cmd
		m, syncCmd = m.sync()
		return m, tea.Batch(cmd, syncCmd)
	}
	return m, cmd
}

func (m modelTUI) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.c.Cancel()
		return m.sync()
	case key.Matches(msg, m.formKeys.Submit):
		d := m.snap.Draft
		return m.start(func(ctx context.Context) error { return m.c.Submit(ctx, d) })
	case key.Matches(msg, m.formKeys.Next), key.Matches(msg, m.formKeys.Prev):
		step := 1
		if key.Matches(msg, m.formKeys.Prev) {
			step = len(m.inputs) - 1
		}
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + step) % len(m.inputs)
		cmd := m.inputs[m.focus].Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	name := model.FieldOrder[m.focus]
	if v := m.inputs[m.focus].Value(); v != m.snap.Draft.Get(name) {
		m.c.SetDraftField(name, v)
		var syncCmd tea.Cmd
		m, syncCmd = m.sync()
		return m, tea.Batch(cmd, syncCmd)
	}
	return m, cmd
}
