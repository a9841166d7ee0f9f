// Package language normalizes the language codes accepted from users and
// reported by the recognizer, and lists the languages offered for transcription.
package language
