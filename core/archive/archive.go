package archive

// Archive groups the two index structures of one loaded archive.
type Archive struct {
	Dir    *Directory
	Search *Search
}
