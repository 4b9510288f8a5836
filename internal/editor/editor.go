// Package editor implements the compose-a-todo-in-your-editor flow.
package editor

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// Draft is a todo composed in the editor, ready to create remotely.
// BodyHTML is the markdown body rendered to HTML, the format Basecamp
// expects for rich-text content.
type Draft struct {
	ProjectID  int64
	TodoListID int64
	Title      string
	BodyHTML   string
}

type frontmatter struct {
	ProjectID  int64  `yaml:"project_id"`
	TodoListID int64  `yaml:"todolist_id"`
	Title      string `yaml:"title"`
}

func template(todolistID int64) string {
	listField := ""
	if todolistID != 0 {
		listField = fmt.Sprintf("%d", todolistID)
	}
	return fmt.Sprintf(`---
project_id:
todolist_id: %s
title:
---

Enter your todo description here in Markdown format.
`, listField)
}

// Compose writes a frontmatter template to a temp file, runs the editor
// on it, and parses the result into a Draft.
func Compose(editorCmd string, todolistID int64) (*Draft, error) {
	f, err := os.CreateTemp("", "tenzing-*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(template(todolistID)); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write template: %w", err)
	}
	f.Close()

	if err := runEditor(editorCmd, path); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}

	return Parse(string(content))
}

// runEditor blocks until the editor exits.
func runEditor(editorCmd, path string) error {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return fmt.Errorf("no editor configured")
	}

	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q failed: %w", editorCmd, err)
	}
	return nil
}

// Parse splits frontmatter from the markdown body and validates the
// required fields.
func Parse(content string) (*Draft, error) {
	meta, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	if fm.ProjectID == 0 || fm.TodoListID == 0 || strings.TrimSpace(fm.Title) == "" {
		return nil, fmt.Errorf("project_id, todolist_id, and title are required")
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(strings.TrimSpace(body)), &html); err != nil {
		return nil, fmt.Errorf("failed to render body: %w", err)
	}

	return &Draft{
		ProjectID:  fm.ProjectID,
		TodoListID: fm.TodoListID,
		Title:      strings.TrimSpace(fm.Title),
		BodyHTML:   strings.TrimSpace(html.String()),
	}, nil
}

func splitFrontmatter(content string) (meta, body string, err error) {
	trimmed := strings.TrimLeft(content, "\n")
	if !strings.HasPrefix(trimmed, "---\n") {
		return "", "", fmt.Errorf("missing frontmatter")
	}
	rest := trimmed[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", "", fmt.Errorf("unterminated frontmatter")
	}
	meta = rest[:end]
	body = rest[end+len("\n---"):]
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}
	return meta, body, nil
}
