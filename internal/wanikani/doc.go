// Package wanikani talks to the WaniKani v2 REST API. It models the
// resources the study client consumes (subjects, assignments, the summary
// and the user) and submits finished reviews. Requests are made one at a
// time and never retried; callers decide what a failure means.
package wanikani
