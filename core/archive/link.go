package archive

import "fmt"

// Link is an optional index into the path entry list. The zero value is NoLink.
type Link struct {
	index uint32
	set   bool
}

// NoLink terminates a child chain.
var NoLink = Link{}

// LinkTo returns a link to entry i.
func LinkTo(i int) Link {
	return Link{index: uint32(i), set: true}
}

// Index returns the linked entry and whether the link is set.
func (l Link) Index() (int, bool) {
	return int(l.index), l.set
}

// String implements fmt.Stringer.
func (l Link) String() string {
	if !l.set {
		return "none"
	}
	return fmt.Sprintf("%d", l.index)
}
