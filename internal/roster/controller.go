// Package roster keeps a local view of the student directory in step with the
// remote store. The cached list is only ever replaced wholesale by a
// successful fetch; writes never touch it directly.
package roster

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/idilsaglam/roster/internal/logger"
	"github.com/idilsaglam/roster/internal/model"
)

// User-facing outcome messages.
const (
	msgFetchFailed  = "Failed to fetch students"
	msgSaveFailed   = "Failed to save student"
	msgDeleteFailed = "Failed to delete student"
	msgAdded        = "Student added successfully"
	msgUpdated      = "Student updated successfully"
	msgDeleted      = "Student deleted successfully"
)

// Mode tells whether the form creates or edits a record.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Snapshot is a copy of the controller state. Version increases with every
// change, so observers can drop snapshots that arrive out of order.
type Snapshot struct {
	Version  uint64
	Students []model.Student
	Query    string
	Draft    model.Draft
	Errors   ValidationErrors
	Open     bool
}

// Mode derives the form mode from the draft.
func (s Snapshot) Mode() Mode {
	if s.Draft.Editing() {
		return ModeEdit
	}
	return ModeCreate
}

// Filtered applies the search query to the snapshot's list.
func (s Snapshot) Filtered() []model.Student {
	return filterByName(s.Students, s.Query)
}

// Controller owns the cached list, search query, form draft and field errors.
// Network calls run without holding the lock, so concurrent writes each
// complete and refresh independently; the last refresh applied wins.
type Controller struct {
	store  Store
	notify Notifier
	log    *slog.Logger

	mu       sync.Mutex
	version  uint64
	students []model.Student
	query    string
	draft    model.Draft
	errs     ValidationErrors
	open     bool
	subs     map[int]func(Snapshot)
	nextSub  int
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets where success and failure messages go.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notify = n
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// New creates a controller over store. The list starts empty; call Refresh.
func New(store Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		notify: nopNotifier{},
		log:    logger.Discard(),
		subs:   map[int]func(Snapshot){},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change, outside the lock.
func (c *Controller) Subscribe(fn func(Snapshot)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	var errs ValidationErrors
	if len(c.errs) > 0 {
		errs = make(ValidationErrors, len(c.errs))
		for k, v := range c.errs {
			errs[k] = v
		}
	}
	return Snapshot{
		Version:  c.version,
		Students: append([]model.Student(nil), c.students...),
		Query:    c.query,
		Draft:    c.draft,
		Errors:   errs,
		Open:     c.open,
	}
}

// update applies fn under the lock, then tells subscribers.
func (c *Controller) update(fn func()) {
	c.mu.Lock()
	fn()
	c.version++
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	for _, s := range subs {
		s(snap)
	}
}

// Refresh replaces the cached list with the store's. On failure the cache is
// left as it was and the failure is reported.
func (c *Controller) Refresh(ctx context.Context) error {
	students, err := c.store.List(ctx)
	if err != nil {
		c.log.WarnContext(ctx, "fetch students", "error", err)
		c.notify.Failure(msgFetchFailed)
		return Wrap(err, CodeRequestFailed, msgFetchFailed)
	}
	c.update(func() { c.students = students })
	c.log.DebugContext(ctx, "students refreshed", "count", len(students))
	return nil
}

// Validate checks d without changing any state.
func (c *Controller) Validate(d model.Draft) ValidationErrors {
	return Validate(d.Fields)
}

// Submit validates d and, if it passes, creates it (no id) or replaces the
// record with d.ID. A rejected draft is kept with its errors and never
// reaches the store. An accepted one leaves the form draft alone, so edits
// made while the write is in flight survive a failed write.
func (c *Controller) Submit(ctx context.Context, d model.Draft) error {
	errs := Validate(d.Fields)
	c.update(func() {
		if len(errs) > 0 {
			c.draft = d
		}
		c.errs = errs
	})
	if len(errs) > 0 {
		c.log.DebugContext(ctx, "draft rejected", "fields", errs.Fields())
		return &Error{Code: CodeValidation, Message: errs.Error(), Err: errs}
	}

	var err error
	msg := msgAdded
	if d.Editing() {
		msg = msgUpdated
		err = c.store.Update(ctx, d.ID, d.Fields)
	} else {
		err = c.store.Create(ctx, d.Fields)
	}
	if err != nil {
		c.log.WarnContext(ctx, "save student", "id", d.ID, "error", err)
		c.notify.Failure(msgSaveFailed)
		return Wrap(err, CodeRequestFailed, msgSaveFailed)
	}

	c.log.InfoContext(ctx, "student saved", "id", d.ID, "editing", d.Editing())
	c.notify.Success(msg)
	c.update(func() {
		c.open = false
		c.draft = model.Draft{}
		c.errs = nil
	})
	// the write stands even if this fetch fails; Refresh reports its own error
	_ = c.Refresh(ctx)
	return nil
}

// BeginEdit opens the form populated from s.
func (c *Controller) BeginEdit(s model.Student) {
	c.update(func() {
		c.draft = model.DraftFrom(s)
		c.errs = nil
		c.open = true
	})
}

// BeginCreate opens an empty form.
func (c *Controller) BeginCreate() {
	c.update(func() {
		c.draft = model.Draft{}
		c.errs = nil
		c.open = true
	})
}

// SetDraftField changes one field of the open draft. It reports false for an
// unknown field name.
func (c *Controller) SetDraftField(name, value string) bool {
	ok := true
	c.update(func() { ok = c.draft.Set(name, value) })
	return ok
}

// Cancel closes the form and drops the draft and errors. No request is made.
func (c *Controller) Cancel() {
	c.update(func() {
		c.open = false
		c.draft = model.Draft{}
		c.errs = nil
	})
}

// Remove deletes the record with id, then refreshes. The cache is not touched
// before the store confirms.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		c.log.WarnContext(ctx, "delete student", "id", id, "error", err)
		c.notify.Failure(msgDeleteFailed)
		return Wrap(err, CodeRequestFailed, msgDeleteFailed)
	}
	c.log.InfoContext(ctx, "student deleted", "id", id)
	c.notify.Success(msgDeleted)
	_ = c.Refresh(ctx)
	return nil
}

// SetSearchQuery sets the name filter used by FilteredView.
func (c *Controller) SetSearchQuery(q string) {
	c.update(func() { c.query = q })
}

// FilteredView returns, in store order, the cached students whose name
// contains the query, ignoring case. An empty query returns everything.
func (c *Controller) FilteredView() []model.Student {
	c.mu.Lock()
	defer c.mu.Unlock()
	return filterByName(c.students, c.query)
}

// Find returns the cached student with id.
func (c *Controller) Find(id string) (model.Student, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.students {
		if s.ID == id {
			return s, true
		}
	}
	return model.Student{}, false
}

func filterByName(students []model.Student, q string) []model.Student {
	out := make([]model.Student, 0, len(students))
	if q == "" {
		return append(out, students...)
	}
	q = strings.ToLower(q)
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
	}
	return out
}
