// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"strings"
	"sync"
)

// Voice settings for spoken questions
type Voice struct {
	Lang  string
	Rate  float64
	Pitch float64
}

// DefaultVoice is US English at normal rate and pitch
var DefaultVoice = Voice{Lang: "en-US", Rate: 1, Pitch: 1}

// Synthesizer is a text-to-speech engine
type Synthesizer interface {
	Cancel()
	Speak(text string, v Voice) error
}

// Synth reads questions aloud and records what the interviewer said
type Synth struct {
	mu    sync.Mutex
	synth Synthesizer
	log   []string
}

// NewSynth wraps s; nil means speech output is unsupported
func NewSynth(s Synthesizer) *Synth {
	return &Synth{synth: s}
}

func (s *Synth) Supported() bool {
	return s.synth != nil
}

// Speak cancels any playback in progress and speaks text
func (s *Synth) Speak(text string) error {
	if s.synth == nil || strings.TrimSpace(text) == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.synth.Cancel()
	if err := s.synth.Speak(text, DefaultVoice); err != nil {
		return err
	}
	s.log = append(s.log, text)
	return nil
}

// Log returns the interviewer utterances in order
func (s *Synth) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}
