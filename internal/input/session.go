package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Question is one prompt in a generator's interview. Key identifies the
// answer in answers files; Message is what the user sees.
type Question struct {
	Key     string
	Message string
	Default string
}

// Answers maps question keys to raw answers.
type Answers map[string]string

// Session asks questions sequentially. Answers supplied up front are used
// instead of prompting; every answer given is recorded for SaveAnswers.
type Session struct {
	p        Prompter
	preset   Answers
	recorded Answers
}

// NewSession creates a session reading from p. preset may be nil.
func NewSession(p Prompter, preset Answers) *Session {
	if preset == nil {
		preset = Answers{}
	}
	return &Session{p: p, preset: preset, recorded: Answers{}}
}

// Answers returns a copy of every answer given so far.
func (s *Session) Answers() Answers {
	out := make(Answers, len(s.recorded))
	for k, v := range s.recorded {
		out[k] = v
	}
	return out
}

// ask returns the trimmed raw answer. Exhausted input counts as a blank
// answer so optional questions fall back to their defaults.
func (s *Session) ask(q Question) (string, error) {
	if v, ok := s.preset[q.Key]; ok {
		v = strings.TrimSpace(v)
		s.recorded[q.Key] = v
		return v, nil
	}

	line, err := s.p.ReadLine(formatPrompt(q.Message, q.Default))
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading %s: %w", q.Key, err)
	}
	line = strings.TrimSpace(line)
	s.recorded[q.Key] = line
	return line, nil
}

// Text asks q and returns the answer, or q.Default when blank.
func (s *Session) Text(q Question) (string, error) {
	v, err := s.ask(q)
	if err != nil {
		return "", err
	}
	if v == "" {
		return q.Default, nil
	}
	return v, nil
}

// Confirm asks a yes/no question, shown with a [y/N] or [Y/n] hint. Only y
// or yes (any case) is true; a blank answer uses q.Default parsed the same
// way.
func (s *Session) Confirm(q Question) (bool, error) {
	hint := "[y/N]"
	if isYes(q.Default) {
		hint = "[Y/n]"
	}
	v, err := s.ask(Question{Key: q.Key, Message: q.Message + " " + hint})
	if err != nil {
		return false, err
	}
	if v == "" {
		return isYes(q.Default), nil
	}
	return isYes(v), nil
}

func isYes(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "y" || v == "yes"
}

// Choose asks for one of choices. Blank or unrecognised answers fall back
// to q.Default. Matching is case-insensitive; the canonical choice is
// returned.
func (s *Session) Choose(q Question, choices []string) (string, error) {
	msg := q.Message
	if len(choices) > 0 {
		msg = fmt.Sprintf("%s [%s]", q.Message, strings.Join(choices, "/"))
	}
	v, err := s.ask(Question{Key: q.Key, Message: msg, Default: q.Default})
	if err != nil {
		return "", err
	}
	for _, c := range choices {
		if strings.EqualFold(c, v) {
			return c, nil
		}
	}
	return q.Default, nil
}

// List asks for a comma separated list. Items are trimmed; blanks and
// duplicates are dropped, first occurrence wins.
func (s *Session) List(q Question) ([]string, error) {
	v, err := s.Text(q)
	if err != nil {
		return nil, err
	}
	return SplitList(v), nil
}

// SplitList splits a comma separated answer into unique, non-empty items.
func SplitList(v string) []string {
	var out []string
	seen := map[string]bool{}
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// LoadAnswers reads an answers file. Scalar values are used verbatim;
// sequences are joined with ", " so list questions accept them.
func LoadAnswers(path string) (Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}

	answers := make(Answers, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			answers[k] = ""
		case []any:
			items := make([]string, 0, len(val))
			for _, item := range val {
				items = append(items, fmt.Sprint(item))
			}
			answers[k] = strings.Join(items, ", ")
		case bool:
			if val {
				answers[k] = "y"
			} else {
				answers[k] = "n"
			}
		default:
			answers[k] = fmt.Sprint(val)
		}
	}
	return answers, nil
}

// SaveAnswers writes answers as YAML with keys in sorted order.
func SaveAnswers(path string, answers Answers) error {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: answers[k], Style: yaml.DoubleQuotedStyle},
		)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding answers: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing answers file: %w", err)
	}
	return nil
}
