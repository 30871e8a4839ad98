// Package logging configures the process-wide zerolog logger.
//
// lgtm owns the terminal while a review runs, so logs go to a JSON file
// rather than stdout. Each event written with a context carries the review
// session ID.
package logging
