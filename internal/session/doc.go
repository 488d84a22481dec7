// Package session drives interactive study sessions. A Review quizzes each
// due item on meaning and reading until both are answered correctly and then
// reports the mistake counts; a Lesson walks through new subjects without
// testing. Sessions are strictly sequential: every collaborator call blocks
// the loop until it returns.
package session
