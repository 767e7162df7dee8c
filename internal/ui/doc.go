// Package ui renders the guessing game as a bubbletea TUI.
//
// The [Model] shows one round at a time: masked title/artist/album lines,
// a guess input, and staged feedback. Reveal state lives in the game
// package; the TUI only renders it and forwards key presses. Playback of
// the active track is fired as a command against the Spotify service when
// a round starts.
package ui
