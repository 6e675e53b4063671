package cli

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/roster/internal/apitest"
	"github.com/idilsaglam/roster/internal/config"
	"github.com/idilsaglam/roster/internal/model"
	"github.com/idilsaglam/roster/internal/ui"
)

var (
	ada   = model.Student{ID: "1", Name: "Ada Lovelace", Age: "36", ClassName: "CS", PhoneNumber: "1234567890"}
	grace = model.Student{ID: "2", Name: "Grace Hopper", Age: "85", ClassName: "Navy", PhoneNumber: "0987654321"}
)

type harness struct {
	fake        *apitest.Store
	opt         Options
	out, errOut *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fake := apitest.NewStore(ada, grace)
	srv, base := fake.Serve()
	t.Cleanup(srv.Close)

	h := &harness{fake: fake, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	h.opt = Options{Config: config.Config{APIURL: base}}

	prevOut, prevErr := ui.Out, ui.Err
	ui.Out, ui.Err = h.out, h.errOut
	ui.SetTheme("mono")
	t.Cleanup(func() {
		ui.Out, ui.Err = prevOut, prevErr
		ui.SetTheme("classic")
	})
	return h
}

func (h *harness) run(args ...string) int {
	return Run(context.Background(), args, h.opt)
}

func TestList(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("ls"))
	assert.Contains(t, h.out.String(), "Ada Lovelace")
	assert.Contains(t, h.out.String(), "Grace Hopper")
	assert.Contains(t, h.out.String(), "Total 2")
}

func TestListWithQuery(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("ls", "grace"))
	assert.Contains(t, h.out.String(), "Grace Hopper")
	assert.NotContains(t, h.out.String(), "Ada Lovelace")
	assert.NotContains(t, h.out.String(), ada.PhoneNumber)
	assert.Contains(t, h.out.String(), `Matching "grace" 1`)
}

func TestListFetchFailure(t *testing.T) {
	h := newHarness(t)
	h.fake.FailWith("GET /fetch", http.StatusBadGateway)

	assert.Equal(t, 1, h.run("ls"))
	assert.Contains(t, h.errOut.String(), "Failed to fetch students")
}

func TestAdd(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("add", "Alan Turing", "41", "Math", "5555555555"))
	assert.Contains(t, h.out.String(), "Student added successfully")

	all := h.fake.Students()
	require.Len(t, all, 3)
	assert.Equal(t, model.Fields{Name: "Alan Turing", Age: "41", ClassName: "Math", PhoneNumber: "5555555555"}, all[2].Fields())
}

func TestAddInvalid(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 2, h.run("add", "Alan", "forty", "Math", "555"))
	assert.Contains(t, h.errOut.String(), "age: Valid age is required")
	assert.Contains(t, h.errOut.String(), "phoneNumber: Valid phone number is required")
	assert.Len(t, h.fake.Students(), 2)
	assert.Empty(t, h.fake.Calls())
}

func TestEdit(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("edit", "2", "Grace Hopper", "86", "Navy", "0987654321"))
	assert.Contains(t, h.out.String(), "Student updated successfully")
	assert.Equal(t, "86", h.fake.Students()[1].Age)
}

func TestEditUnknownID(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 2, h.run("edit", "99", "X", "1", "Y", "1234567890"))
	assert.Contains(t, h.errOut.String(), "no student with id 99")
	assert.Equal(t, []string{"GET /api/students/fetch"}, h.fake.Calls())
}

func TestRemove(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("rm", "1"))
	assert.Contains(t, h.out.String(), "Student deleted successfully")
	assert.Equal(t, []model.Student{grace}, h.fake.Students())
}

func TestRemoveMissing(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 1, h.run("rm", "42"))
	assert.Contains(t, h.errOut.String(), "Failed to delete student")
	assert.Len(t, h.fake.Students(), 2)
}

func TestUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{name: "help", args: []string{"help"}, code: 0},
		{name: "unknown", args: []string{"frobnicate"}, code: 2},
		{name: "add arity", args: []string{"add", "Ada"}, code: 2},
		{name: "edit arity", args: []string{"edit", "1"}, code: 2},
		{name: "rm arity", args: []string{"rm"}, code: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			assert.Equal(t, tt.code, h.run(tt.args...))
			assert.Empty(t, h.fake.Calls())
		})
	}
}
