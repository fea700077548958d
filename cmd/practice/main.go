// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command practice runs a mock interview in the terminal against the
// mock-me API, or fully offline when no API is configured. Passing -email
// and -password signs in first; -logout signs out and exits.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/mock-me/cliparse"
	"github.com/danielhkuo/mock-me/client"
	"github.com/danielhkuo/mock-me/localstore"
	"github.com/danielhkuo/mock-me/models"
	"github.com/danielhkuo/mock-me/questionbank"
	"github.com/danielhkuo/mock-me/scoring"
	"github.com/danielhkuo/mock-me/session"
)

func main() {
	cfg, err := cliparse.ParsePracticeFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, client.New(cfg.APIBaseURL), os.Stdin, os.Stdout); err != nil {
		slog.Error("practice session failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliparse.PracticeConfig, api *client.Client, in io.Reader, out io.Writer) error {
	st, err := localstore.Open(cfg.StateFile)
	if errors.Is(err, localstore.ErrCorrupt) {
		slog.Warn("discarding unreadable state file", "file", cfg.StateFile, "error", err)
		err = st.Reset()
	}
	if err != nil {
		return err
	}

	if !api.Configured() {
		fmt.Fprintln(out, "No API configured, running offline.")
	}

	if cfg.Logout {
		return signOut(ctx, api, st, out)
	}
	if err := signIn(ctx, cfg, api, st, out); err != nil {
		return err
	}
	listDemos(ctx, cfg.DemoID, api, out)

	if err := upload(ctx, cfg, api, st, out); err != nil {
		return err
	}

	iv, err := session.NewInterview(session.Deps{Store: st, API: api})
	if err != nil {
		return err
	}
	defer iv.Close()

	submitted, err := interview(ctx, iv, bufio.NewScanner(in), out)
	if err != nil || !submitted {
		return err
	}

	report, err := session.BuildReport(ctx, st, api)
	if err != nil {
		return err
	}
	printReport(out, report)
	return nil
}

// signIn validates the credentials and records the role and email locally.
// The server session is best-effort: the demo backend accepts any login.
func signIn(ctx context.Context, cfg cliparse.PracticeConfig, api *client.Client, st *localstore.Store, out io.Writer) error {
	if cfg.Guest() {
		if role, email := st.Auth(); email != "" {
			fmt.Fprintf(out, "Signed in as %s (%s).\n", email, role)
		}
		return nil
	}
	if err := cfg.ValidateLogin(); err != nil {
		return err
	}

	email := strings.TrimSpace(cfg.Email)
	if err := st.SetAuth(cfg.Role, email); err != nil {
		return err
	}

	if api.Configured() {
		if err := remoteSignIn(ctx, cfg, email, api); err != nil {
			slog.Warn("server sign-in failed, continuing locally", "error", err)
		}
	}

	fmt.Fprintf(out, "Signed in as %s (%s).\n", email, cfg.Role)
	return nil
}

func remoteSignIn(ctx context.Context, cfg cliparse.PracticeConfig, email string, api *client.Client) error {
	if cfg.Signup {
		req := models.SignupRequest{Email: email, Password: cfg.Password, Role: cfg.Role}
		if _, err := api.Signup(ctx, req); err != nil {
			return err
		}
	}
	if _, err := api.Login(ctx, email, cfg.Password); err != nil {
		return err
	}

	user, err := api.Me(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("server did not keep the session")
	}
	slog.Debug("server session established", "user_id", user.ID)
	return nil
}

// signOut ends the server session and forgets the local sign-in
func signOut(ctx context.Context, api *client.Client, st *localstore.Store, out io.Writer) error {
	if err := api.Logout(ctx); err != nil && !errors.Is(err, client.ErrNotConfigured) {
		slog.Warn("server sign-out failed", "error", err)
	}
	if err := st.Delete(localstore.KeyRole); err != nil {
		return err
	}
	if err := st.Delete(localstore.KeyEmail); err != nil {
		return err
	}
	fmt.Fprintln(out, "Signed out.")
	return nil
}

// listDemos shows the available interviews, from the server when it answers
// and otherwise from the built-in catalogue
func listDemos(ctx context.Context, selected string, api *client.Client, out io.Writer) {
	demos, err := api.Demos(ctx)
	if err != nil && !errors.Is(err, client.ErrNotConfigured) {
		slog.Warn("could not load interviews, using built-in list", "error", err)
	}
	if len(demos) == 0 {
		demos = questionbank.Default().Demos()
	}

	fmt.Fprintln(out, "Interviews:")
	for _, d := range demos {
		marker := " "
		if strconv.Itoa(d.ID) == strings.TrimSpace(selected) {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %d. %s - %s\n", marker, d.ID, d.Title, d.Description)
	}
}

// upload picks the question set, remotely when possible
func upload(ctx context.Context, cfg cliparse.PracticeConfig, api *client.Client, st *localstore.Store, out io.Writer) error {
	var resume io.Reader
	var filename string
	if cfg.ResumePath != "" {
		f, err := os.Open(cfg.ResumePath)
		if err != nil {
			return fmt.Errorf("failed to open resume: %w", err)
		}
		defer f.Close()
		if info, err := f.Stat(); err == nil {
			fmt.Fprintf(out, "Uploading %s (%s)\n", filepath.Base(cfg.ResumePath), humanize.Bytes(uint64(info.Size())))
		}
		resume, filename = f, filepath.Base(cfg.ResumePath)
	}

	questions, err := api.UploadResume(ctx, cfg.DemoID, filename, resume)
	if err != nil {
		if !errors.Is(err, client.ErrNotConfigured) {
			slog.Warn("upload failed, using built-in questions", "error", err)
		}
		questions = questionbank.Default().Questions(cfg.DemoID)
	}

	if err := st.SetDemoID(cfg.DemoID); err != nil {
		return err
	}
	return st.SetQuestions(questions)
}

// interview reads answers line by line. A blank line submits the draft and
// moves on; ":back" returns to the previous question; ":quit" stops.
func interview(ctx context.Context, iv *session.Interview, sc *bufio.Scanner, out io.Writer) (bool, error) {
	showQuestion(out, iv)

	for sc.Scan() {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		line := sc.Text()
		switch strings.TrimSpace(line) {
		case ":quit":
			return false, nil
		case ":back":
			iv.Previous()
			showQuestion(out, iv)
			continue
		case "":
			done, outcome, err := iv.Next(ctx)
			if err != nil {
				return false, err
			}
			if done {
				if outcome.Remote != nil {
					fmt.Fprintf(out, "Could not reach the server (%v); answers were saved locally.\n", outcome.Remote)
				}
				if outcome.SubmissionID != "" {
					fmt.Fprintf(out, "Submission %s saved.\n", outcome.SubmissionID)
				}
				return true, nil
			}
			showQuestion(out, iv)
			continue
		}

		draft := iv.Nav.Draft()
		if draft != "" {
			draft += "\n"
		}
		iv.Nav.SetDraft(draft + line)
	}
	return false, sc.Err()
}

func showQuestion(out io.Writer, iv *session.Interview) {
	q := iv.Nav.Current()
	fmt.Fprintf(out, "\nQuestion %d of %d (%s)\n%s\n", iv.Nav.Index()+1, iv.Nav.Len(), q.Type, q.Text)

	if q.Type.IsTechnical() {
		fmt.Fprintf(out, "\nStarter:\n%s\n(Running code is not supported here.)\n", session.StarterTemplate(session.LangPython))
	}
	if draft := iv.Nav.Draft(); draft != "" {
		fmt.Fprintf(out, "Saved answer:\n%s\n", draft)
	}
	fmt.Fprintln(out, "Answer, then an empty line to continue (:back, :quit).")
}

func printReport(out io.Writer, r session.Report) {
	fmt.Fprintf(out, "\nInterview report (%s scoring)\n", r.Source)
	for i, res := range r.Analysis.Results {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, res.Question)
		fmt.Fprintf(out, "   Verbal: %d/10 %s\n", res.VerbalScore, scoring.Label(float64(res.VerbalScore)))
		if res.DesignScore != nil {
			fmt.Fprintf(out, "   Design: %d/10 %s\n", *res.DesignScore, scoring.Label(float64(*res.DesignScore)))
		}
		fmt.Fprintf(out, "   %s\n", res.Feedback)
	}

	overall := r.Analysis.OverallScores
	fmt.Fprintf(out, "\nOverall verbal: %.1f %s\n", overall.Verbal, scoring.Label(overall.Verbal))
	if hasDesign(r.Analysis.Results) {
		fmt.Fprintf(out, "Overall design: %.1f %s\n", overall.Design, scoring.Label(overall.Design))
	}
}

func hasDesign(results []models.AnalysisResult) bool {
	for _, r := range results {
		if r.DesignScore != nil {
			return true
		}
	}
	return false
}
