// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/mock-me/models"
	"github.com/danielhkuo/mock-me/questionbank"
	"github.com/danielhkuo/mock-me/scoring"
	"github.com/danielhkuo/mock-me/store"
	"github.com/danielhkuo/mock-me/testutil"
)

func newTestInterviewHandler(t *testing.T, persist bool) *InterviewHandler {
	t.Helper()
	if !persist {
		return NewInterviewHandler(questionbank.Default(), nil)
	}
	conn := testutil.SetupTestDB(t)
	return NewInterviewHandler(questionbank.Default(), store.NewSubmissionStore(conn, false))
}

func multipartBody(t *testing.T, demoID string, resume []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if demoID != "" {
		mw.WriteField("demo_id", demoID)
	}
	if resume != nil {
		part, err := mw.CreateFormFile("resume", "resume.pdf")
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		part.Write(resume)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestListDemos(t *testing.T) {
	h := newTestInterviewHandler(t, false)

	w := httptest.NewRecorder()
	h.ListDemos(w, testutil.MakeRequest("GET", "/api/demos/", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var demos []models.Demo
	testutil.AssertJSON(t, w, &demos)

	if len(demos) != 3 {
		t.Fatalf("Expected 3 demos, got %d", len(demos))
	}
	if demos[1].ID != 2 || demos[1].Title != "Product Manager Jobs" {
		t.Errorf("Unexpected second demo: %+v", demos[1])
	}
}

func TestUploadResume(t *testing.T) {
	h := newTestInterviewHandler(t, false)
	bank := questionbank.Default()

	testCases := []struct {
		name     string
		req      func() *http.Request
		expected []models.Question
	}{
		{
			name: "multipart with demo and file",
			req: func() *http.Request {
				body, ct := multipartBody(t, "2", []byte("%PDF-1.4 resume"))
				req := httptest.NewRequest("POST", "/api/upload-resume/", body)
				req.Header.Set("Content-Type", ct)
				return req
			},
			expected: bank.Questions("2"),
		},
		{
			name: "multipart without demo id",
			req: func() *http.Request {
				body, ct := multipartBody(t, "", []byte("resume"))
				req := httptest.NewRequest("POST", "/api/upload-resume/", body)
				req.Header.Set("Content-Type", ct)
				return req
			},
			expected: bank.Questions("1"),
		},
		{
			name: "json numeric demo id",
			req: func() *http.Request {
				return testutil.MakeRequest("POST", "/api/upload-resume/", map[string]any{"demo_id": 3}, nil)
			},
			expected: bank.Questions("3"),
		},
		{
			name: "json string demo id",
			req: func() *http.Request {
				return testutil.MakeRequest("POST", "/api/upload-resume/", map[string]any{"demo_id": "2"}, nil)
			},
			expected: bank.Questions("2"),
		},
		{
			name: "unknown demo id",
			req: func() *http.Request {
				return testutil.MakeRequest("POST", "/api/upload-resume/", map[string]any{"demo_id": 99}, nil)
			},
			expected: bank.Questions("1"),
		},
		{
			name: "malformed json",
			req: func() *http.Request {
				req := httptest.NewRequest("POST", "/api/upload-resume/", strings.NewReader("{nope"))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			expected: bank.Questions("1"),
		},
		{
			name: "no content type",
			req: func() *http.Request {
				return httptest.NewRequest("POST", "/api/upload-resume/", strings.NewReader("demo_id=3"))
			},
			expected: bank.Questions("1"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.UploadResume(w, tc.req())

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.UploadResumeResponse
			testutil.AssertJSON(t, w, &resp)

			if len(resp.Questions) != len(tc.expected) {
				t.Fatalf("Expected %d questions, got %d", len(tc.expected), len(resp.Questions))
			}
			for i := range tc.expected {
				if resp.Questions[i] != tc.expected[i] {
					t.Errorf("Question %d: expected %+v, got %+v", i, tc.expected[i], resp.Questions[i])
				}
			}
		})
	}
}

func TestUploadResume_TooLarge(t *testing.T) {
	h := newTestInterviewHandler(t, false)

	body, ct := multipartBody(t, "1", bytes.Repeat([]byte("x"), MaxUploadSize+10))
	req := httptest.NewRequest("POST", "/api/upload-resume/", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()

	h.UploadResume(w, req)

	testutil.AssertStatus(t, w, http.StatusRequestEntityTooLarge)
}

func TestUploadResume_OversizedJSONFallsBack(t *testing.T) {
	h := newTestInterviewHandler(t, false)

	padding := strings.Repeat("x", 2<<20)
	body := `{"demo_id":"2","padding":"` + padding + `"}`
	req := httptest.NewRequest("POST", "/api/upload-resume/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.UploadResume(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.UploadResumeResponse
	testutil.AssertJSON(t, w, &resp)
	want := questionbank.Default().Questions("1")
	if len(resp.Questions) != len(want) || resp.Questions[0].Text != want[0].Text {
		t.Errorf("Expected default question set, got %+v", resp.Questions)
	}
}

func TestSubmitAnswers_NoStore(t *testing.T) {
	h := newTestInterviewHandler(t, false)

	w := httptest.NewRecorder()
	h.SubmitAnswers(w, testutil.MakeRequest("POST", "/api/submit-answers/", testutil.SampleAnswers(), nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if body := strings.TrimSpace(w.Body.String()); body != `{"ok":true}` {
		t.Errorf("Expected {\"ok\":true}, got %s", body)
	}
}

func TestSubmitAnswers_Malformed(t *testing.T) {
	h := newTestInterviewHandler(t, true)

	req := httptest.NewRequest("POST", "/api/submit-answers/", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	h.SubmitAnswers(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.SubmitAnswersResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.OK || resp.SubmissionID != "" {
		t.Errorf("Expected bare acknowledgement, got %+v", resp)
	}
}

func TestSubmitAndGetSubmission(t *testing.T) {
	h := newTestInterviewHandler(t, true)
	answers := testutil.SampleAnswers()

	w := httptest.NewRecorder()
	h.SubmitAnswers(w, testutil.MakeRequest("POST", "/api/submit-answers/", answers, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SubmitAnswersResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.OK || resp.SubmissionID == "" {
		t.Fatalf("Expected ok with submission_id, got %+v", resp)
	}

	req := testutil.MakeRequest("GET", "/api/submissions/"+resp.SubmissionID, nil, nil)
	req.SetPathValue("id", resp.SubmissionID)
	w = httptest.NewRecorder()
	h.GetSubmission(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var sub models.Submission
	testutil.AssertJSON(t, w, &sub)
	if sub.ID != resp.SubmissionID {
		t.Errorf("Expected ID %s, got %s", resp.SubmissionID, sub.ID)
	}
	if len(sub.Answers) != len(answers) {
		t.Errorf("Expected %d answers, got %d", len(answers), len(sub.Answers))
	}
	want := scoring.Analyze(answers)
	if sub.Analysis.OverallScores != want.OverallScores {
		t.Errorf("Expected overall %+v, got %+v", want.OverallScores, sub.Analysis.OverallScores)
	}
}

func TestGetSubmission_NotFound(t *testing.T) {
	for _, persist := range []bool{false, true} {
		h := newTestInterviewHandler(t, persist)

		req := testutil.MakeRequest("GET", "/api/submissions/missing", nil, nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()
		h.GetSubmission(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	}
}

func TestAnalyze(t *testing.T) {
	h := newTestInterviewHandler(t, false)

	req := testutil.MakeRequest("POST", "/api/analyze/", models.AnalyzeRequest{Answers: testutil.SampleAnswers()}, nil)
	w := httptest.NewRecorder()
	h.Analyze(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.AnalyzeResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].VerbalScore != 3 {
		t.Errorf("Expected verbal score 3, got %d", resp.Results[0].VerbalScore)
	}
	if resp.Results[0].DesignScore != nil {
		t.Error("Behavioral answer must not have a design score")
	}
	if resp.Results[1].DesignScore == nil {
		t.Fatal("Technical answer must have a design score")
	}
	if *resp.Results[1].DesignScore != 2 {
		t.Errorf("Expected design score 2, got %d", *resp.Results[1].DesignScore)
	}
}

func TestAnalyze_Wire(t *testing.T) {
	h := newTestInterviewHandler(t, false)

	testCases := []struct {
		name       string
		body       string
		statusCode int
		expected   string
	}{
		{"empty answers", `{"answers":{}}`, http.StatusOK, `{"results":[],"overall_scores":{"verbal":0,"design":0}}`},
		{"missing answers", `{}`, http.StatusOK, `{"results":[],"overall_scores":{"verbal":0,"design":0}}`},
		{
			"null design score",
			`{"answers":{"0":{"question":"Q","answer":"hi","type":"behavioral"}}}`,
			http.StatusOK,
			`{"results":[{"question":"Q","verbal_score":1,"design_score":null,"feedback":"` + scoring.BehavioralWeak + `","type":"behavioral"}],"overall_scores":{"verbal":1,"design":0}}`,
		},
		{
			"non-numeric keys",
			`{"answers":{"q1":{"question":"Q","answer":"hi","type":"behavioral"}}}`,
			http.StatusOK,
			`{"results":[{"question":"Q","verbal_score":1,"design_score":null,"feedback":"` + scoring.BehavioralWeak + `","type":"behavioral"}],"overall_scores":{"verbal":1,"design":0}}`,
		},
		{"invalid json", `{"answers":`, http.StatusBadRequest, `{"error":"Bad request"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/analyze/", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			h.Analyze(w, req)

			testutil.AssertStatus(t, w, tc.statusCode)
			if body := strings.TrimSpace(w.Body.String()); body != tc.expected {
				t.Errorf("Expected body %s, got %s", tc.expected, body)
			}
		})
	}
}
