// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is the API client used by the interview flow.

Every call is bounded by a 12 second timeout and returns one of:

  - nil on a 2xx response
  - ErrNotConfigured when no base URL is set
  - *NetworkError when no response arrived
  - *TimeoutError when the deadline passed
  - *StatusError for any other status

Callers pick their own fallback, for example scoring locally when Analyze
fails:

	res, err := c.Analyze(ctx, answers)
	var se *client.StatusError
	if errors.As(err, &se) { ... }
*/
package client
