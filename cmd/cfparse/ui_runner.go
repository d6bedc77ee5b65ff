package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cfparse/internal/driver"
	"cfparse/internal/ui"
)

type checkOutcome struct {
	results []driver.FileResult
	err     error
}

// runCheckWithUI parses files while a progress view renders on stderr.
func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.DirOptions) ([]driver.FileResult, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(_, _ int, fr driver.FileResult) {
			events <- fileEvent(fr)
		}
		res, err := driver.ParseFiles(ctx, files, optsCopy)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// если представление закрылось раньше, воркеры не должны встать на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func fileEvent(fr driver.FileResult) ui.Event {
	switch {
	case fr.Err != nil:
		return ui.Event{File: fr.Path, Status: ui.StatusFailed}
	case len(fr.Result.Issues) > 0:
		return ui.Event{File: fr.Path, Status: ui.StatusIssues, Issues: len(fr.Result.Issues)}
	default:
		return ui.Event{File: fr.Path, Status: ui.StatusClean}
	}
}
