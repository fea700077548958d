// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package localstore persists the client side of an interview session.

The state lives in a single versioned JSON file:

	{
	  "version": 1,
	  "keys": {
	    "interviewQuestions": [...],
	    "interviewAnswers": {"0": {...}},
	    "authRole": "candidate",
	    "authEmail": "a@b.c",
	    "demoId": "2"
	  }
	}

Open tolerates a missing file. A file that fails to parse or has another
version reports ErrCorrupt; the interview flow treats that the same as
missing state and starts over from upload.
*/
package localstore
