// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/danielhkuo/mock-me/models"
)

type fakeAPI struct {
	mu         sync.Mutex
	submitted  []models.AnswersMap
	submitErr  error
	analyzeErr error
	analysis   *models.AnalyzeResponse
}

func (f *fakeAPI) SubmitAnswers(ctx context.Context, answers models.AnswersMap) (models.SubmitAnswersResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, answers)
	if f.submitErr != nil {
		return models.SubmitAnswersResponse{}, f.submitErr
	}
	return models.SubmitAnswersResponse{OK: true, SubmissionID: "sub-1"}, nil
}

func (f *fakeAPI) Analyze(ctx context.Context, answers models.AnswersMap) (models.AnalyzeResponse, error) {
	if f.analyzeErr != nil {
		return models.AnalyzeResponse{}, f.analyzeErr
	}
	return *f.analysis, nil
}

type failingSink struct{}

func (failingSink) SetAnswers(models.AnswersMap) error { return errors.New("disk full") }

type fakeStream struct {
	label   string
	stopped atomic.Bool
}

func (s *fakeStream) Label() string { return s.label }
func (s *fakeStream) Stop()         { s.stopped.Store(true) }

type fakeDevices struct {
	mu       sync.Mutex
	err      error
	requests []Constraints
	streams  []*fakeStream
	cameras  []DeviceInfo
}

func (d *fakeDevices) GetUserMedia(ctx context.Context, c Constraints) (Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requests = append(d.requests, c)
	if d.err != nil {
		return nil, d.err
	}
	s := &fakeStream{label: "FaceTime HD"}
	d.streams = append(d.streams, s)
	return s, nil
}

func (d *fakeDevices) EnumerateCameras(ctx context.Context) ([]DeviceInfo, error) {
	return d.cameras, nil
}

// fakeSurface reports zero dimensions for the first zeroPolls checks
type fakeSurface struct {
	zeroPolls int32
	polls     atomic.Int32
	attachErr error
}

func (s *fakeSurface) Attach(ctx context.Context, st Stream) error { return s.attachErr }

func (s *fakeSurface) Dimensions() (int, int) {
	if s.polls.Add(1) <= s.zeroPolls {
		return 0, 0
	}
	return 640, 480
}

type fakeRecognizer struct {
	starts, stops int
	startErr      error
}

func (r *fakeRecognizer) Start() error { r.starts++; return r.startErr }
func (r *fakeRecognizer) Stop() error  { r.stops++; return nil }

// callbackRecognizer reports back into the coordinator from inside Start
// and Stop, the way browser engines fire onend or onerror synchronously
type callbackRecognizer struct {
	speech   *Speech
	startErr error
	starts   int
	stops    int
}

func (r *callbackRecognizer) Start() error {
	r.starts++
	if r.startErr != nil {
		r.speech.HandleError(r.startErr)
	}
	return r.startErr
}

func (r *callbackRecognizer) Stop() error {
	r.stops++
	r.speech.HandleResults([]Result{{Transcript: "trailing words", Final: true}})
	r.speech.HandleEnd()
	return nil
}

type fakeSynth struct {
	cancels int
	spoken  []string
	voice   Voice
}

func (s *fakeSynth) Cancel() { s.cancels++ }
func (s *fakeSynth) Speak(text string, v Voice) error {
	s.spoken = append(s.spoken, text)
	s.voice = v
	return nil
}
