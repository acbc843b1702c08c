package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/youruser/ollama-engineer/pkg/chat"
	"github.com/youruser/ollama-engineer/pkg/config"
	"github.com/youruser/ollama-engineer/pkg/diffview"
	"github.com/youruser/ollama-engineer/pkg/fsops"
	"github.com/youruser/ollama-engineer/pkg/persistence"
	"github.com/youruser/ollama-engineer/pkg/schema"
	"github.com/youruser/ollama-engineer/pkg/ui"
)

const systemPrompt = `You are an elite software engineer with decades of experience across all programming domains.
You provide thoughtful, well-structured solutions while explaining your reasoning.

Core capabilities:
1. Code Analysis & Discussion: analyze code with expert-level insight, explain concepts clearly, debug with precision.
2. File Operations:
   a) Read existing files the user shares for context.
   b) Create new files with complete, properly structured content.
   c) Edit existing files with precise snippet replacements that preserve surrounding context.

Output Format:
You must provide responses in this JSON structure:
{
  "assistant_reply": "Your main explanation or response",
  "files_to_create": [
    {
      "path": "path/to/new/file",
      "content": "complete file content"
    }
  ],
  "files_to_edit": [
    {
      "path": "path/to/existing/file",
      "original_snippet": "exact code to be replaced",
      "new_snippet": "new code to insert"
    }
  ]
}

Guidelines:
1. For normal responses, use 'assistant_reply' only.
2. When creating files, include the full content in 'files_to_create'.
3. For edits, include enough context in original_snippet to locate the change uniquely, and prefer targeted edits over full file replacements.
4. Always explain your changes and reasoning.`

const addCommandPrefix = "/add "

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln("ERROR:", err)
	}

	apiURL := pflag.String("api", cfg.BaseURL, "URL for the OpenAI-compatible API endpoint")
	model := pflag.String("model", cfg.Model, "Technical name of the LLM")
	sessionFile := pflag.String("session-file", cfg.SessionFile, "Use this file to save and resume chat sessions")
	activeLog := pflag.Bool("log", cfg.Debug, "Activate request logging")
	pflag.Parse()

	options := []option.RequestOption{
		option.WithBaseURL(*apiURL),
	}
	if cfg.APIKey != "" {
		options = append(options, option.WithAPIKey(cfg.APIKey))
	}
	if *activeLog {
		options = append(options, option.WithDebugLog(nil))
	}
	client := openai.NewClient(options...)

	// The model host being absent at launch is the only fatal condition.
	if _, err := client.Models.List(context.Background()); err != nil {
		log.Fatalln("ERROR: model host unreachable:", err)
	}

	var history *chat.History
	if *sessionFile != "" {
		history, err = persistence.TryToResumeSession(*sessionFile)
		if err != nil {
			log.Fatalln("ERROR:", err)
		}
	}
	if history == nil {
		history = chat.NewHistory(systemPrompt)
	}

	sessionDir := fsops.RandomDirName()
	ui.Banner(sessionDir)

	t := term.NewTerminal(os.Stdin, "You> ")
	streamer := chat.NewStreamer(client, *model, os.Stdout)
	confirm := func(prompt string) bool {
		t.SetPrompt(prompt + " (y/n): ")
		answer, err := readLine(t)
		t.SetPrompt("You> ")
		return err == nil && strings.EqualFold(strings.TrimSpace(answer), "y")
	}

	for {
		input, err := readLine(t)
		if err != nil {
			if err != io.EOF {
				ui.Error("%v", err)
			}
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if lower := strings.ToLower(input); lower == "exit" || lower == "quit" {
			ui.Info("Goodbye!")
			break
		}
		if handleAddCommand(input, history) {
			continue
		}

		runTurn(streamer, history, sessionDir, input, confirm)

		if *sessionFile != "" {
			if err := persistence.SaveSession(*sessionFile, *model, history); err != nil {
				ui.Error("save session: %v", err)
			}
		}
	}

	ui.Info("Session finished.")
}

// readLine reads one line with the terminal in raw mode, restoring the
// previous state before returning.
func readLine(t *term.Terminal) (string, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", err
	}

	if width, height, err := term.GetSize(fd); err == nil {
		t.SetSize(width, height)
	}

	line, err := t.ReadLine()
	restoreErr := term.Restore(fd, oldState)

	if err != nil {
		return "", err
	}
	return line, restoreErr
}

// handleAddCommand injects a file's content into the conversation when the
// input is an /add command. Returns true if the input was handled. A file
// that cannot be read leaves the history unchanged.
func handleAddCommand(input string, history *chat.History) bool {
	if !strings.HasPrefix(strings.ToLower(input), addCommandPrefix) {
		return false
	}

	path := strings.TrimSpace(input[len(addCommandPrefix):])
	normalized, err := fsops.Normalize(path)
	if err != nil {
		ui.Error("Could not add file %q: %v", path, err)
		return true
	}

	content, err := fsops.ReadFile(normalized)
	if err != nil {
		ui.Error("Could not add file %q: %v", path, err)
		return true
	}

	if history.AddFileContext(normalized, content) {
		ui.Success("Added file %q to conversation.", path)
	} else {
		ui.Info("File %q is already in the conversation.", path)
	}
	return true
}

// runTurn performs one model turn: inject guessed files, stream the reply,
// and apply confirmed file operations. No failure here ends the session.
func runTurn(streamer *chat.Streamer, history *chat.History, sessionDir, input string, confirm func(string) bool) {
	injectGuessedFiles(history, chat.GuessFiles(input))
	history.AddUser(input)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Print(ui.HeaderColor.Sprint("\nAssistant> "))
	resp, err := streamer.Complete(ctx, history)
	fmt.Println()

	if err != nil {
		var parseErr *schema.ParseError
		if errors.As(err, &parseErr) {
			ui.Error("Malformed response from model, no file operations performed: %v", parseErr.Reason)
		} else {
			ui.Error("%v", err)
		}
		return
	}

	history.AddAssistant(resp.AssistantReply)
	applyChanges(resp, history, sessionDir, confirm)
}

func injectGuessedFiles(history *chat.History, candidates []string) {
	for _, candidate := range candidates {
		normalized, err := fsops.Normalize(candidate)
		if err != nil {
			continue
		}
		content, err := fsops.ReadFile(normalized)
		if err != nil {
			continue
		}
		history.AddFileContext(normalized, content)
	}
}

// applyChanges shows each proposed operation and applies the confirmed ones.
// Operations fail independently; one failure never blocks the rest.
func applyChanges(resp *schema.AssistantResponse, history *chat.History, sessionDir string, confirm func(string) bool) {
	for _, create := range resp.FilesToCreate {
		applyCreate(create, history, sessionDir, confirm)
	}

	edits := validEdits(resp.FilesToEdit, history)
	if len(edits) > 0 {
		ui.Header("\nProposed edits:")
	}
	for _, edit := range edits {
		applyEdit(edit, history, confirm)
	}
}

func applyCreate(create schema.FileToCreate, history *chat.History, sessionDir string, confirm func(string) bool) {
	// New files go into the per-run session directory; existing paths are
	// overwritten in place.
	target := create.Path
	if !fsops.Exists(target) {
		target = filepath.Join(sessionDir, filepath.Base(create.Path))
	}

	diffview.RenderCreate(os.Stdout, schema.FileToCreate{Path: target, Content: create.Content})
	if !confirm(fmt.Sprintf("Write %q?", target)) {
		ui.Info("Skipped creating %q.", target)
		return
	}

	if err := fsops.WriteFile(target, create.Content); err != nil {
		ui.Error("Could not create %q: %v", target, err)
		return
	}
	ui.Success("Created file %q", target)

	history.AddAssistant(fmt.Sprintf("✓ Created/updated file at '%s'", target))
	if normalized, err := fsops.Normalize(target); err == nil {
		history.RecordFileContent(normalized, create.Content)
	}
}

func applyEdit(edit schema.FileToEdit, history *chat.History, confirm func(string) bool) {
	if err := diffview.RenderEdit(os.Stdout, edit); err != nil {
		ui.Error("%v", err)
		return
	}
	if !confirm(fmt.Sprintf("Apply this edit to %q?", edit.Path)) {
		ui.Info("Skipped edit to %q.", edit.Path)
		return
	}

	updated, err := fsops.ApplyEdit(edit.Path, edit.OriginalSnippet, edit.NewSnippet)
	if err != nil {
		if errors.Is(err, fsops.ErrSnippetNotFound) {
			ui.Warning("Original snippet not found in %q, no changes made.", edit.Path)
			ui.Warning("Expected snippet:\n%s", edit.OriginalSnippet)
		} else {
			ui.Error("Could not edit %q: %v", edit.Path, err)
		}
		return
	}
	ui.Success("Applied edit to %q", edit.Path)

	history.AddAssistant(fmt.Sprintf("✓ Applied diff edit to '%s'", edit.Path))
	history.RecordFileContent(edit.Path, updated)
}

// validEdits normalizes edit paths and drops edits whose target cannot be
// read, making sure every remaining target's content is in the conversation.
func validEdits(edits []schema.FileToEdit, history *chat.History) []schema.FileToEdit {
	var kept []schema.FileToEdit
	for _, edit := range edits {
		normalized, err := fsops.Normalize(edit.Path)
		if err != nil {
			ui.Warning("Skipping invalid path: %q", edit.Path)
			continue
		}
		if !history.HasFileContext(normalized) {
			content, err := fsops.ReadFile(normalized)
			if err != nil {
				ui.Warning("Skipping edit, could not read %q: %v", edit.Path, err)
				continue
			}
			history.AddFileContext(normalized, content)
		}
		edit.Path = normalized
		kept = append(kept, edit)
	}
	return kept
}
