package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/idilsaglam/roster/internal/api"
	"github.com/idilsaglam/roster/internal/config"
	"github.com/idilsaglam/roster/internal/logger"
	"github.com/idilsaglam/roster/internal/model"
	"github.com/idilsaglam/roster/internal/roster"
	"github.com/idilsaglam/roster/internal/tui"
	"github.com/idilsaglam/roster/internal/ui"
)

// Options carry what the root flags and environment resolved to.
type Options struct {
	Config config.Config
	Logger *slog.Logger
	// Store overrides the HTTP client built from Config.APIURL (tests).
	Store roster.Store
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Logger == nil {
		opt.Logger = logger.Discard()
	}
	if opt.Store == nil {
		opt.Store = api.NewClient(opt.Config.APIURL, api.WithLogger(opt.Logger))
	}
	if len(args) == 0 {
		args = []string{"tui"}
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "tui":
		if err := tui.Run(ctx, opt.Store, tui.Options{Timeout: opt.Config.Timeout, Logger: opt.Logger}); err != nil {
			ui.Fail("tui: " + err.Error())
			return 1
		}
		return 0

	case "ls":
		return doList(ctx, opt, strings.Join(a, " "))

	case "add":
		if len(a) != 4 {
			ui.Fail("usage: roster add <name> <age> <class> <phone>")
			return 2
		}
		return doAdd(ctx, opt, fieldsFrom(a))

	case "edit":
		if len(a) != 5 {
			ui.Fail("usage: roster edit <id> <name> <age> <class> <phone>")
			return 2
		}
		return doEdit(ctx, opt, a[0], fieldsFrom(a[1:]))

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: roster rm <id>")
			return 2
		}
		return doRemove(ctx, opt, a[0])
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Err)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprintf(ui.Out, `roster - manage the student directory

Usage:
  roster [flags] <subcommand> [args]

Subcommands:
  tui                                     Interactive list (default)
  ls [query...]                           List students whose name contains query
  add <name> <age> <class> <phone>        Add a new student
  edit <id> <name> <age> <class> <phone>  Replace the student with id
  rm <id>                                 Delete the student with id

Flags:
  -api <url>        API base URL (env ROSTER_API_URL)
  -theme <name>     classic | neon | mono (env ROSTER_THEME)
  -timeout <dur>    per-request timeout, e.g. 5s (env ROSTER_TIMEOUT)
  -log <path>       write JSON logs to path (env ROSTER_LOG)

Examples:
  roster add "Ada Lovelace" 36 CS 1234567890
  roster ls ada
  roster edit 7 "Ada King" 37 CS 1234567890
  roster rm 7
`)
}

// -------------- subcommand impls ----------------

func newController(opt Options) *roster.Controller {
	return roster.New(opt.Store, roster.WithNotifier(ui.Notifier{}), roster.WithLogger(opt.Logger))
}

// withTimeout bounds one whole operation, follow-up refresh included.
func withTimeout(ctx context.Context, opt Options) (context.Context, context.CancelFunc) {
	if opt.Config.Timeout > 0 {
		return context.WithTimeout(ctx, opt.Config.Timeout)
	}
	return context.WithCancel(ctx)
}

func fieldsFrom(a []string) model.Fields {
	return model.Fields{Name: a[0], Age: a[1], ClassName: a[2], PhoneNumber: a[3]}
}

func doList(ctx context.Context, opt Options, query string) int {
	ctx, cancel := withTimeout(ctx, opt)
	defer cancel()

	c := newController(opt)
	if err := c.Refresh(ctx); err != nil {
		return 1
	}
	c.SetSearchQuery(query)
	students := c.FilteredView()
	total := len(c.Snapshot().Students)

	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d", t.Title.Render("Students"), t.Accent.Render("Total"), total)
	if query != "" {
		header += fmt.Sprintf("  %s %d", t.Accent.Render("Matching \""+query+"\""), len(students))
	}

	lines := []string{header, ""}
	if len(students) == 0 {
		lines = append(lines, t.Muted.Render("no students"))
	} else {
		lines = append(lines, ui.StudentTable(students))
	}
	lines = append(lines, "", t.Muted.Render(`Tip: add with roster add "Linus Torvalds" 22 OS 5555555555`))
	ui.Panel(lines)
	return 0
}

func doAdd(ctx context.Context, opt Options, f model.Fields) int {
	ctx, cancel := withTimeout(ctx, opt)
	defer cancel()

	c := newController(opt)
	c.BeginCreate()
	return submit(ctx, c, model.Draft{Fields: f})
}

func doEdit(ctx context.Context, opt Options, id string, f model.Fields) int {
	ctx, cancel := withTimeout(ctx, opt)
	defer cancel()

	c := newController(opt)
	if err := c.Refresh(ctx); err != nil {
		return 1
	}
	s, ok := c.Find(id)
	if !ok {
		ui.Fail("edit: no student with id " + id)
		fmt.Fprintln(ui.Err, ui.Current().Muted.Render("Hint: run `roster ls` to see valid ids"))
		return 2
	}
	c.BeginEdit(s)
	d := c.Snapshot().Draft
	d.Fields = f
	return submit(ctx, c, d)
}

func submit(ctx context.Context, c *roster.Controller, d model.Draft) int {
	err := c.Submit(ctx, d)
	if err == nil {
		return 0
	}
	if errs, ok := roster.ValidationErrorsOf(err); ok {
		for _, name := range errs.Fields() {
			ui.Fail(name + ": " + errs[name].Message)
		}
		return 2
	}
	// request failures were already reported by the notifier
	return 1
}

func doRemove(ctx context.Context, opt Options, id string) int {
	ctx, cancel := withTimeout(ctx, opt)
	defer cancel()

	if err := newController(opt).Remove(ctx, id); err != nil {
		return 1
	}
	return 0
}
