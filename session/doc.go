// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session runs an interview on the client side.

An Interview is built from the question list saved at upload time:

	iv, err := session.NewInterview(session.Deps{Store: st, API: api})
	if errors.Is(err, session.ErrRedirect) {
		// nothing to interview on, go back to upload
	}

The pieces are independent:

  - Navigator: the question pointer and one answer draft per index.
    Next and Previous save the draft before moving.
  - Camera: acquires a capture stream and reports Ready once a frame
    with non-zero size is seen (polled every 150ms).
  - Speech: dictation. Final fragments are appended to the draft and the
    user transcript; interim fragments only update Live.
  - Synth: reads the current question aloud and logs it.
  - Submission: collecting to submitted, once. The answers are saved
    locally first, then sent to the API on a best-effort basis.

Camera, speech and synthesis events arrive on their own goroutines, so every
type here guards its state with a mutex.

BuildReport reads the saved answers and asks the API to score them,
falling back to local scoring on any failure.
*/
package session
