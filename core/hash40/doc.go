// Package hash40 implements the 40-bit path hash used to key every archive table.
//
// A Hash40 packs the byte length of the lowercased source string into bits 32-39
// and its CRC-32 (IEEE) checksum into the low 32 bits. Two hashes can be
// concatenated without knowing their source strings, which is how alternate
// paths such as "stage/battlefield/normal_s01" are derived from their parts.
//
// # Usage
//
//	stage := hash40.New("stage")
//	path := stage.Join(hash40.New("battlefield"))
//	fmt.Println(path == hash40.New("stage/battlefield")) // true
package hash40
