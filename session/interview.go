// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
)

// Store is the persisted client state an interview reads and writes
type Store interface {
	QuestionSource
	AnswersSink
}

// Deps are the collaborators of an Interview. Only Store is required.
type Deps struct {
	Store       Store
	API         AnswersSubmitter
	Devices     MediaDevices
	Surface     Surface
	Recognizer  Recognizer
	Synthesizer Synthesizer
}

// Transcript holds both sides of the conversation for this session
type Transcript struct {
	Interviewer []string
	User        []string
}

// Interview is one live interview session
type Interview struct {
	Nav        *Navigator
	Camera     *Camera
	Speech     *Speech
	Synth      *Synth
	Submission *Submission
}

// NewInterview bootstraps the question list and wires dictation into the
// answer draft. It returns ErrRedirect when no questions are stored.
func NewInterview(deps Deps) (*Interview, error) {
	qs, err := Bootstrap(deps.Store)
	if err != nil {
		return nil, err
	}

	nav := NewNavigator(qs)
	return &Interview{
		Nav:        nav,
		Camera:     NewCamera(deps.Devices, deps.Surface),
		Speech:     NewSpeech(deps.Recognizer, nav.AppendDraft),
		Synth:      NewSynth(deps.Synthesizer),
		Submission: NewSubmission(deps.Store, deps.API),
	}, nil
}

// StartExam enters exam mode, which starts dictation, then acquires the
// camera. A camera error is returned but leaves the session usable.
func (iv *Interview) StartExam(ctx context.Context) error {
	iv.Speech.EnterExamMode()
	return iv.Camera.Request(ctx, "")
}

// SpeakQuestion reads the current question aloud
func (iv *Interview) SpeakQuestion() error {
	return iv.Synth.Speak(iv.Nav.Current().Text)
}

// Next advances to the following question. On the last question it submits
// instead and returns done with the submission outcome.
func (iv *Interview) Next(ctx context.Context) (done bool, out Outcome, err error) {
	if !iv.Nav.Next() {
		return false, Outcome{}, nil
	}
	out, err = iv.Submission.Submit(ctx, iv.Nav.Answers())
	if err != nil {
		return false, out, err
	}
	return true, out, nil
}

func (iv *Interview) Previous() {
	iv.Nav.Previous()
}

func (iv *Interview) Transcript() Transcript {
	return Transcript{
		Interviewer: iv.Synth.Log(),
		User:        iv.Speech.Log(),
	}
}

// Close releases the camera and stops dictation
func (iv *Interview) Close() {
	iv.Camera.Stop()
	iv.Speech.Stop()
}
