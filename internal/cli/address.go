package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/dmitrijs2005/carpool/internal/geo"
	"github.com/dmitrijs2005/carpool/internal/views"
)

// makeRaw and restoreTerm are test seams for the terminal mode switch.
var (
	makeRaw     = term.MakeRaw
	restoreTerm = term.Restore
)

// readAddress reads an address, keeping def on empty input. On a terminal
// suggestions appear while typing; otherwise a trailing "?" lists them and
// lets the user pick one by number.
func (a *App) readAddress(ctx context.Context, prompt, def string) (string, error) {
	if a.interactive {
		return a.liveInput(ctx, prompt, def)
	}

	s, err := GetTextOr(a.reader, prompt, def, a.out)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(s, "?") {
		return s, nil
	}

	partial := strings.TrimSpace(strings.TrimSuffix(s, "?"))
	list, err := a.suggester.Suggest(ctx, partial)
	if err != nil {
		a.logger.Warn(ctx, "address suggestions unavailable", "error", err)
	}
	if len(list) == 0 {
		return partial, nil
	}

	fmt.Fprint(a.out, views.Suggestions(list))
	choice, err := getSimpleText(a.reader, "Numéro de l'adresse (vide pour garder la saisie)", a.out)
	if err != nil {
		return "", err
	}
	if n, convErr := strconv.Atoi(choice); convErr == nil && n >= 1 && n <= len(list) {
		return list[n-1].Label, nil
	}
	return partial, nil
}

// lineEditor is the line buffer behind liveInput. Suggestions are written by
// the debouncer goroutine, so they are guarded.
type lineEditor struct {
	buf []rune

	mu          sync.Mutex
	suggestions []geo.Suggestion
}

type keyResult int

const (
	keyEdit keyResult = iota
	keyNone
	keyDone
	keyCancel
)

// key applies one keystroke.
func (e *lineEditor) key(r rune) keyResult {
	switch r {
	case '\r', '\n':
		return keyDone
	case 3, 4: // Ctrl-C, Ctrl-D
		return keyCancel
	case 127, '\b':
		if len(e.buf) == 0 {
			return keyNone
		}
		e.buf = e.buf[:len(e.buf)-1]
		return keyEdit
	case '\t':
		e.mu.Lock()
		defer e.mu.Unlock()
		if len(e.suggestions) == 0 {
			return keyNone
		}
		e.buf = []rune(e.suggestions[0].Label)
		e.suggestions = nil
		return keyEdit
	}
	if r < 32 {
		return keyNone
	}
	e.buf = append(e.buf, r)
	return keyEdit
}

func (e *lineEditor) text() string {
	return strings.TrimSpace(string(e.buf))
}

func (e *lineEditor) setSuggestions(list []geo.Suggestion) {
	e.mu.Lock()
	e.suggestions = list
	e.mu.Unlock()
}

// suggestionPane owns terminal output while liveInput runs. The debouncer
// may still fire after the read returns, so show is a no-op once closed.
type suggestionPane struct {
	out   io.Writer
	label string
	ed    *lineEditor

	mu     sync.Mutex
	closed bool
}

// redraw rewrites the input line; callers hold mu.
func (p *suggestionPane) redraw(text string) {
	fmt.Fprintf(p.out, "\r\x1b[K%s> %s", p.label+" ", text)
}

func (p *suggestionPane) show(list []geo.Suggestion) {
	if len(list) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	fmt.Fprint(p.out, "\r\n")
	for i, s := range list {
		fmt.Fprintf(p.out, "  %d. %s\r\n", i+1, s.Label)
	}
	p.redraw(string(p.ed.buf))
}

func (p *suggestionPane) close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

// liveInput reads a line in raw mode and shows debounced address
// suggestions below it; Tab takes the first one.
func (a *App) liveInput(ctx context.Context, prompt, def string) (string, error) {
	fd := int(os.Stdin.Fd())
	state, err := makeRaw(fd)
	if err != nil {
		a.logger.Debug(ctx, "raw terminal unavailable", "error", err)
		return GetTextOr(a.reader, prompt, def, a.out)
	}
	defer restoreTerm(fd, state)

	label := prompt
	if def != "" {
		label = fmt.Sprintf("%s [%s]", prompt, def)
	}

	ed := &lineEditor{}
	pane := &suggestionPane{out: a.out, label: label, ed: ed}
	defer pane.close()

	deb := geo.NewDebouncer(a.config.SuggestDelay, func(text string) {
		list, err := a.suggester.Suggest(ctx, text)
		if err != nil {
			list = nil
		}
		ed.setSuggestions(list)
		pane.show(list)
	})
	defer deb.Stop()

	pane.mu.Lock()
	pane.redraw("")
	pane.mu.Unlock()

	for {
		r, _, err := a.reader.ReadRune()
		if err != nil {
			return "", err
		}

		pane.mu.Lock()
		res := ed.key(r)
		text := string(ed.buf)
		if res == keyEdit {
			pane.redraw(text)
		}
		pane.mu.Unlock()

		switch res {
		case keyDone:
			fmt.Fprint(a.out, "\r\n")
			if ed.text() == "" {
				return def, nil
			}
			return ed.text(), nil
		case keyCancel:
			fmt.Fprint(a.out, "\r\n")
			return def, nil
		case keyEdit:
			deb.Trigger(strings.TrimSpace(text))
		}
	}
}
