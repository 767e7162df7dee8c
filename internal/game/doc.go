// Package game implements the guessing engine for En Una Nota.
//
// A [Game] walks a list of tracks; each [Round] hides the playing track's
// title, artist, and album behind reveal flags. Wrong guesses and manual
// hints flip the flags one stage at a time, and every flag starts hidden
// again when the game advances to the next track. Scoring rewards winning
// with few attempts and few reveals.
package game
