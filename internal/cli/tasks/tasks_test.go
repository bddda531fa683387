package tasks

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/dates"
	"github.com/julianstephens/daybook/internal/entry"
)

var testDay = dates.Date{Day: 5, Month: 3, Year: 2024}

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Config: &config.Config{
			DataDir:     dir,
			EntryFile:   filepath.Join(dir, "today.txt"),
			HistoryFile: filepath.Join(dir, "history.txt"),
		},
		Clock:   dates.FixedClock(testDay),
		Out:     out,
		Confirm: func(string) (bool, error) { return true, nil },
		Now:     func() time.Time { return time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC) },
	}
	return ctx, out
}

func entryFile(t *testing.T, ctx *cli.Context) string {
	t.Helper()
	data, err := os.ReadFile(ctx.Config.EntryFile)
	if err != nil {
		t.Fatalf("failed to read entry file: %v", err)
	}
	return string(data)
}

func mustRun(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
}

func TestAddCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	mustRun(t, (&AddCmd{Subject: []string{"buy", "milk"}}).Run(ctx))
	mustRun(t, (&AddCmd{Subject: []string{"call mom"}, Done: true}).Run(ctx))

	want := "05.03.2024 - Buy milk\n05.03.2024 + Call mom\n"
	if got := entryFile(t, ctx); got != want {
		t.Errorf("entry file = %q, want %q", got, want)
	}
	if !strings.Contains(out.String(), "Added 2. Call mom") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestAddCmdPromptsForSubject(t *testing.T) {
	ctx, _ := setupTestContext(t)
	ctx.Prompt = entry.PrompterFunc(func(max int) (string, error) {
		return "water plants", nil
	})

	mustRun(t, (&AddCmd{}).Run(ctx))
	if got := entryFile(t, ctx); got != "05.03.2024 - Water plants\n" {
		t.Errorf("entry file = %q", got)
	}
}

func TestAddCmdEmptySubject(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if err := (&AddCmd{}).Run(ctx); !errors.Is(err, entry.ErrEmptySubject) {
		t.Errorf("error = %v, want ErrEmptySubject", err)
	}
}

func TestDoneAndUndoneCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)
	mustRun(t, (&AddCmd{Subject: []string{"a"}}).Run(ctx))
	mustRun(t, (&AddCmd{Subject: []string{"b"}}).Run(ctx))
	mustRun(t, (&AddCmd{Subject: []string{"c"}}).Run(ctx))

	mustRun(t, (&DoneCmd{Indices: []int{1, 3}}).Run(ctx))
	want := "05.03.2024 + A\n05.03.2024 - B\n05.03.2024 + C\n"
	if got := entryFile(t, ctx); got != want {
		t.Errorf("after done: %q, want %q", got, want)
	}

	mustRun(t, (&UndoneCmd{Indices: []int{3}}).Run(ctx))
	want = "05.03.2024 + A\n05.03.2024 - B\n05.03.2024 - C\n"
	if got := entryFile(t, ctx); got != want {
		t.Errorf("after undone: %q, want %q", got, want)
	}

	// A bad index anywhere in the list changes nothing
	if err := (&DoneCmd{Indices: []int{2, 9}}).Run(ctx); err == nil {
		t.Error("expected an error for index 9")
	}
	if got := entryFile(t, ctx); got != want {
		t.Errorf("failed done mutated entry: %q", got)
	}
}

func TestIndexValidation(t *testing.T) {
	if err := (&DoneCmd{Indices: []int{0}}).Validate(); err == nil {
		t.Error("DoneCmd accepted index 0")
	}
	if err := (&ChangeCmd{Index: -1}).Validate(); err == nil {
		t.Error("ChangeCmd accepted index -1")
	}
	if err := (&DeleteCmd{Index: 2}).Validate(); err != nil {
		t.Errorf("DeleteCmd rejected index 2: %v", err)
	}
}

func TestCheckAllAndUncheckAll(t *testing.T) {
	ctx, _ := setupTestContext(t)
	mustRun(t, (&AddCmd{Subject: []string{"a"}}).Run(ctx))
	mustRun(t, (&AddCmd{Subject: []string{"b"}}).Run(ctx))

	mustRun(t, (&CheckAllCmd{}).Run(ctx))
	if got := entryFile(t, ctx); got != "05.03.2024 + A\n05.03.2024 + B\n" {
		t.Errorf("after check-all: %q", got)
	}
	mustRun(t, (&UncheckAllCmd{}).Run(ctx))
	if got := entryFile(t, ctx); got != "05.03.2024 - A\n05.03.2024 - B\n" {
		t.Errorf("after uncheck-all: %q", got)
	}
}

func TestChangeCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)
	mustRun(t, (&AddCmd{Subject: []string{"a"}}).Run(ctx))

	mustRun(t, (&ChangeCmd{Index: 1, Subject: []string{"renamed", "task"}}).Run(ctx))
	if got := entryFile(t, ctx); got != "05.03.2024 - renamed task\n" {
		t.Errorf("entry file = %q", got)
	}

	if err := (&ChangeCmd{Index: 2, Subject: []string{"x"}}).Run(ctx); err == nil {
		t.Error("expected error for missing task")
	}
	if err := (&ChangeCmd{Index: 1}).Run(ctx); !errors.Is(err, entry.ErrEmptySubject) {
		t.Errorf("empty change error = %v, want ErrEmptySubject", err)
	}
}

func TestDeleteCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)
	for _, s := range []string{"a", "b", "c"} {
		mustRun(t, (&AddCmd{Subject: []string{s}}).Run(ctx))
	}

	ctx.Confirm = func(string) (bool, error) { return false, nil }
	mustRun(t, (&DeleteCmd{Index: 2}).Run(ctx))
	if got := entryFile(t, ctx); strings.Count(got, "\n") != 3 {
		t.Errorf("declined delete removed a task: %q", got)
	}

	mustRun(t, (&DeleteCmd{Index: 2, Yes: true}).Run(ctx))
	if got := entryFile(t, ctx); got != "05.03.2024 - A\n05.03.2024 - C\n" {
		t.Errorf("after delete: %q", got)
	}

	// Index 2 now refers to C
	mustRun(t, (&DeleteCmd{Index: 2, Yes: true}).Run(ctx))
	if got := entryFile(t, ctx); got != "05.03.2024 - A\n" {
		t.Errorf("after second delete: %q", got)
	}
}

func TestResetCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	mustRun(t, (&ResetCmd{}).Run(ctx))
	if !strings.Contains(out.String(), "Nothing to reset") {
		t.Errorf("unexpected output: %q", out.String())
	}

	mustRun(t, (&AddCmd{Subject: []string{"a"}}).Run(ctx))
	mustRun(t, (&ResetCmd{Yes: true}).Run(ctx))
	if got := entryFile(t, ctx); got != "" {
		t.Errorf("entry file after reset = %q", got)
	}
}

func TestListAndSearchCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	mustRun(t, (&AddCmd{Subject: []string{"buy milk"}, Done: true}).Run(ctx))
	mustRun(t, (&AddCmd{Subject: []string{"call mom"}}).Run(ctx))
	mustRun(t, (&AddCmd{Subject: []string{"buy bread"}}).Run(ctx))

	out.Reset()
	mustRun(t, (&ListCmd{}).Run(ctx))
	listing := out.String()
	for _, want := range []string{"05.03.2024", "1/3 done", "[x]", "1. Buy milk", "3. Buy bread"} {
		if !strings.Contains(listing, want) {
			t.Errorf("list output missing %q:\n%s", want, listing)
		}
	}

	out.Reset()
	mustRun(t, (&ListCmd{Open: true}).Run(ctx))
	if strings.Contains(out.String(), "Buy milk") {
		t.Errorf("--open listed a done task:\n%s", out.String())
	}

	out.Reset()
	mustRun(t, (&SearchCmd{Query: []string{"BUY"}}).Run(ctx))
	if got := out.String(); !strings.Contains(got, "Buy milk") || !strings.Contains(got, "Buy bread") || strings.Contains(got, "Call mom") {
		t.Errorf("search output:\n%s", got)
	}

	out.Reset()
	mustRun(t, (&SearchCmd{Query: []string{"zzz"}}).Run(ctx))
	if !strings.Contains(out.String(), "No tasks match") {
		t.Errorf("search miss output: %q", out.String())
	}
}

func TestCommandsArchivePreviousDay(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := os.WriteFile(ctx.Config.EntryFile, []byte("04.03.2024 + Yesterday\n"), 0600); err != nil {
		t.Fatal(err)
	}

	mustRun(t, (&ListCmd{}).Run(ctx))
	if !strings.Contains(out.String(), "Archived 1 task(s)") {
		t.Errorf("rollover not reported: %q", out.String())
	}
	history, err := os.ReadFile(ctx.Config.HistoryFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(history) != "04.03.2024 + Yesterday\n" {
		t.Errorf("history = %q", history)
	}
}
