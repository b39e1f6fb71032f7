// Package music keeps stage music consistent with the selected alternate.
//
// The Cache knows which songs the game allows, which category (bgm set) each
// stage place draws from, and the songs of each category. When a stage is
// picked with a song that is not allowed, a random song from the stage's own
// category replaces it.
//
// The game's bgm id carries more than the song: the low 40 bits hold the song
// hash and bits 40 to 55 carry the alternate chosen on the stage select screen.
// Song, AltField, WithSong and PackAlt read and write those fields.
package music
