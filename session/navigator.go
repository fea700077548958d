// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"strings"
	"sync"

	"github.com/danielhkuo/mock-me/models"
)

// Navigator walks a fixed question list one step at a time, keeping one
// answer draft per visited index.
type Navigator struct {
	mu        sync.Mutex
	questions []models.Question
	index     int
	draft     string
	answers   models.AnswersMap
}

// NewNavigator starts at the first question. questions must not be empty.
func NewNavigator(questions []models.Question) *Navigator {
	qs := make([]models.Question, len(questions))
	copy(qs, questions)
	return &Navigator{
		questions: qs,
		answers:   make(models.AnswersMap),
	}
}

func (n *Navigator) Len() int {
	return len(n.questions)
}

func (n *Navigator) Index() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.index
}

func (n *Navigator) Current() models.Question {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.questions[n.index]
}

func (n *Navigator) IsFirst() bool {
	return n.Index() == 0
}

func (n *Navigator) IsLast() bool {
	return n.Index() == len(n.questions)-1
}

// Draft is the free-text answer for the current question
func (n *Navigator) Draft() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.draft
}

func (n *Navigator) SetDraft(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.draft = text
}

// AppendDraft adds dictated text to the draft, separated by one space
func (n *Navigator) AppendDraft(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.draft == "" {
		n.draft = text
		return
	}
	n.draft = strings.TrimSpace(strings.TrimRight(n.draft, " \t\r\n") + " " + text)
}

// Next saves the draft and moves forward. It returns true, without moving,
// when the current question is the last one and the answers are complete.
func (n *Navigator) Next() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.snapshot()
	if n.index == len(n.questions)-1 {
		return true
	}
	n.index++
	n.restore()
	return false
}

// Previous saves the draft and steps back; no-op on the first question
func (n *Navigator) Previous() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.index == 0 {
		return
	}
	n.snapshot()
	n.index--
	n.restore()
}

// Answers returns a copy of the saved answers
func (n *Navigator) Answers() models.AnswersMap {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make(models.AnswersMap, len(n.answers))
	for i, rec := range n.answers {
		out[i] = rec
	}
	return out
}

// snapshot and restore require mu

func (n *Navigator) snapshot() {
	q := n.questions[n.index]
	n.answers[n.index] = models.AnswerRecord{
		Question: q.Text,
		Answer:   n.draft,
		Type:     q.Type,
	}
}

func (n *Navigator) restore() {
	n.draft = n.answers[n.index].Answer
}
