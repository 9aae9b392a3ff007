package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/peterh/liner"

	"mal/eval"
	"mal/reader"
	"mal/types"
)

const (
	historyFile = ".mal_history"
	promptCont  = "  ... "
)

func main() {
	os.Exit(run())
}

func run() int {
	home, _ := os.UserHomeDir()
	histPath := flag.String("history", filepath.Join(home, historyFile), "history file")
	noHistory := flag.Bool("no-history", false, "do not load or save history")
	prompt := flag.String("prompt", "user> ", "prompt text")
	flag.Parse()

	repl, err := eval.New(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ln := liner.NewLiner()
	closeLiner := sync.OnceFunc(func() { _ = ln.Close() })
	defer closeLiner()
	ln.SetCtrlCAborts(true)
	ln.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		return completeSymbol(repl.Env, line, pos)
	})

	if !*noHistory {
		if f, err := os.Open(*histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer saveHistory(ln, *histPath)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go exitOnSignal(sigc, func() {
		if !*noHistory {
			saveHistory(ln, *histPath)
		}
		closeLiner()
	}, os.Exit)

	for {
		input, ok := readForm(ln, *prompt)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		out, err := repl.Rep(input)
		if errors.Is(err, reader.ErrNoForm) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(out)
	}
}

// exitOnSignal waits for a termination signal, runs cleanup and exits
// with status 0.
func exitOnSignal(sigc <-chan os.Signal, cleanup func(), exit func(int)) {
	if _, ok := <-sigc; !ok {
		return
	}
	cleanup()
	exit(0)
}

func saveHistory(ln *liner.State, path string) {
	if f, err := os.Create(path); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}

// readForm prompts until the accumulated lines hold a complete form.
// Ctrl-C drops the pending input; the second result is false on end of input.
func readForm(ln *liner.State, prompt string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = promptCont
		}

		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := reader.ReadStr(src); reader.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}

// completeSymbol completes the word before pos against the names bound in
// env. pos counts runes, as liner passes it.
func completeSymbol(env *types.Env, line string, pos int) (string, []string, string) {
	runes := []rune(line)
	head, tail := string(runes[:pos]), string(runes[pos:])
	start := strings.LastIndexAny(head, " \t\n()[]{}'`~@^,\"") + 1
	prefix := head[start:]
	if prefix == "" {
		return head, nil, tail
	}

	var matches []string
	for _, name := range env.Names() {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	return head[:start], matches, tail
}
