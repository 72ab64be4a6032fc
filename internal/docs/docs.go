// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

// Package docs holds the reference topics shown by "skid docs".
package docs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

const wordWrap = 80

// ErrUnknownTopic is returned for a topic that does not exist.
var ErrUnknownTopic = errors.New("unknown topic")

//go:embed topics/*.md
var topics embed.FS

// Topics returns the sorted topic names.
func Topics() []string {
	entries, err := fs.ReadDir(topics, "topics")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}

	slices.Sort(names)

	return names
}

// Lookup returns the markdown source of topic.
func Lookup(topic string) (string, error) {
	data, err := topics.ReadFile(path.Join("topics", topic+".md"))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}

	return string(data), nil
}

// Title returns the first heading of a topic, or the topic name.
func Title(topic string) string {
	source, err := Lookup(topic)
	if err != nil {
		return topic
	}

	first, _, _ := strings.Cut(source, "\n")
	if title, ok := strings.CutPrefix(first, "# "); ok {
		return title
	}

	return topic
}

// Render formats markdown for a terminal.
func Render(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", err
	}

	return renderer.Render(markdown)
}
