// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"log/slog"
	"strings"
	"sync"
)

// Recognizer is a continuous speech-to-text engine with interim results.
// Results arrive through Speech.HandleResults; termination through
// HandleEnd or HandleError.
type Recognizer interface {
	Start() error
	Stop() error
}

// Result is one recognized fragment
type Result struct {
	Transcript string
	Final      bool
}

// Speech tracks recognizer state. Final fragments go to the transcript log
// and to onFinal; interim fragments only update Live.
type Speech struct {
	mu        sync.Mutex
	rec       Recognizer
	onFinal   func(string)
	listening bool
	examMode  bool
	live      string
	log       []string
}

// NewSpeech wraps rec; a nil rec makes every operation a no-op
func NewSpeech(rec Recognizer, onFinal func(string)) *Speech {
	return &Speech{rec: rec, onFinal: onFinal}
}

func (s *Speech) Supported() bool {
	return s.rec != nil
}

func (s *Speech) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

func (s *Speech) ExamMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.examMode
}

// Live is the pending interim text
func (s *Speech) Live() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Log returns the finalized user utterances
func (s *Speech) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// HandleResults processes one result batch from the recognizer
func (s *Speech) HandleResults(results []Result) {
	var finals, interim []string
	for _, r := range results {
		if r.Final {
			finals = append(finals, r.Transcript)
		} else {
			interim = append(interim, r.Transcript)
		}
	}
	final := strings.TrimSpace(strings.Join(finals, " "))

	s.mu.Lock()
	if final != "" {
		s.log = append(s.log, final)
	}
	s.live = strings.TrimSpace(strings.Join(interim, " "))
	s.mu.Unlock()

	if final != "" && s.onFinal != nil {
		s.onFinal(final)
	}
}

// EnterExamMode switches to exam mode and starts listening.
// The recognizer is called without holding the lock so it may report back
// through HandleEnd or HandleError synchronously.
func (s *Speech) EnterExamMode() {
	s.mu.Lock()
	s.examMode = true
	if s.rec == nil || s.listening {
		s.mu.Unlock()
		return
	}
	s.listening = true
	s.mu.Unlock()

	if err := s.rec.Start(); err != nil {
		slog.Warn("speech recognition failed to start", "error", err)
		s.mu.Lock()
		s.listening = false
		s.mu.Unlock()
	}
}

// Toggle stops or starts listening. Stopping moves pending interim text
// into the log.
func (s *Speech) Toggle() {
	if s.rec == nil {
		return
	}

	s.mu.Lock()
	wasListening := s.listening
	s.listening = !wasListening
	if wasListening {
		s.flushLocked()
	}
	s.mu.Unlock()

	if wasListening {
		if err := s.rec.Stop(); err != nil {
			slog.Debug("speech recognition stop failed", "error", err)
		}
		return
	}

	// A start error usually means the engine is already running
	if err := s.rec.Start(); err != nil {
		slog.Debug("speech recognition start failed", "error", err)
	}
}

// HandleEnd records recognizer-initiated termination; there is no restart
func (s *Speech) HandleEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listening = false
}

// HandleError records a recognizer error
func (s *Speech) HandleError(err error) {
	slog.Warn("speech recognition error", "error", err)
	s.HandleEnd()
}

// Stop ends listening without flushing
func (s *Speech) Stop() {
	s.mu.Lock()
	wasListening := s.listening
	s.listening = false
	s.mu.Unlock()

	if s.rec != nil && wasListening {
		if err := s.rec.Stop(); err != nil {
			slog.Debug("speech recognition stop failed", "error", err)
		}
	}
}

func (s *Speech) flushLocked() {
	if live := strings.TrimSpace(s.live); live != "" {
		s.log = append(s.log, live)
	}
	s.live = ""
}
