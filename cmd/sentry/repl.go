package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"golang.org/x/term"

	"sentry/internal/identity"
	"sentry/internal/session"
)

var (
	assistantStyle = color.New(color.FgCyan)
	errorStyle     = color.New(color.FgRed)
	hintStyle      = color.New(color.FgHiBlack)
)

// runREPL reads utterances until EOF or /quit. On a TTY it uses readline
// with history; piped stdin degrades to plain line reading so the client
// stays scriptable.
func runREPL(ctx context.Context, sess *session.Session, id *identity.Session) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return runPiped(ctx, sess)
	}

	assistantStyle.Println(sess.Greet())
	hintStyle.Println("Type /quit to exit, /name <name or email> to change who I talk to.")
	fmt.Println()

	home, _ := os.UserHomeDir()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     filepath.Join(home, ".sentry", "history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "/quit",
		Stdin:           readline.NewCancelableStdin(os.Stdin),
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := handleSlashCommand(line, id); quit {
				return nil
			}
			continue
		}

		submit(ctx, sess, line)
	}
}

func runPiped(ctx context.Context, sess *session.Session) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		submit(ctx, sess, line)
	}
	return scanner.Err()
}

func submit(ctx context.Context, sess *session.Session, line string) {
	reply, err := sess.Submit(ctx, line)
	switch {
	case errors.Is(err, session.ErrBusy):
		errorStyle.Println("Still working on the previous request.")
	case err != nil:
		errorStyle.Printf("Error: %v\n", err)
	case reply.Text != "":
		assistantStyle.Println(reply.Text)
	}
}

// handleSlashCommand processes client-side commands; returns true to quit.
func handleSlashCommand(line string, id *identity.Session) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit", "/q":
		return true
	case "/name":
		if len(fields) < 2 {
			errorStyle.Println("Usage: /name <name or email>")
			return false
		}
		arg := strings.Join(fields[1:], " ")
		if strings.Contains(arg, "@") {
			id.SetFromEmail(arg)
		} else {
			id.SetName(arg)
		}
		hintStyle.Printf("Talking to %s now.\n", id.DisplayName())
	default:
		errorStyle.Printf("Unknown command %s\n", fields[0])
	}
	return false
}
