package music

import "stage-alts/core/hash40"

const (
	altShift = 40
	altMask  = 0xFFFF
)

// Song extracts the song hash from a bgm id.
func Song(id uint64) hash40.Hash40 {
	return hash40.Hash40(id & hash40.Mask)
}

// AltField extracts the alternate index carried in bits 40 to 55.
func AltField(id uint64) uint16 {
	return uint16((id >> altShift) & altMask)
}

// WithSong replaces the song hash and keeps every other bit.
func WithSong(id uint64, song hash40.Hash40) uint64 {
	return id&^hash40.Mask | uint64(song)&hash40.Mask
}

// PackAlt stores alt in bits 40 to 55 and keeps every other bit.
func PackAlt(id uint64, alt uint16) uint64 {
	return id&^(altMask<<altShift) | uint64(alt)<<altShift
}
