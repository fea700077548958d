// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring rates interview answers with a deterministic heuristic.

	verbal = clamp(1, 10, len/50 + 2 if STAR keyword)
	design = clamp(1, 10, len/100 + 2 if "scalability")   technical only

Lengths count UTF-16 code units so scores match the browser. Aggregate
averages each kind to one decimal and reports 0 for a kind with no scores.
The same code runs on the server (/api/analyze/) and in the client when the
server cannot be reached.
*/
package scoring
