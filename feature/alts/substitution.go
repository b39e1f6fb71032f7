package alts

import (
	"fmt"

	"stage-alts/core/hash40"
	"stage-alts/core/paths"
)

// SubstitutionKind says which marker a substitution rewrites.
type SubstitutionKind uint8

const (
	ReplaceNormal SubstitutionKind = iota
	ReplaceBattle
)

// Substitution rewrites the form marker of a path to an alternate's folder,
// e.g. "normal" to "normal_s03".
type Substitution struct {
	Kind SubstitutionKind
	Alt  uint32
}

// AltFolder returns the hash of "<form>_s<NN>" for slot.
func AltFolder(form Form, slot uint32) hash40.Hash40 {
	return hash40.New(fmt.Sprintf("%s_s%02d", form, slot))
}

func (s Substitution) form() Form {
	if s.Kind == ReplaceBattle {
		return FormBattle
	}
	return FormNormal
}

// SubstitutionFor picks the substitution for p. A "normal" component wins
// over a "battle" one. It fails when p has neither.
func SubstitutionFor(p paths.PrettyPath, alt uint32) (Substitution, bool) {
	switch {
	case p.Contains(markerNormal):
		return Substitution{Kind: ReplaceNormal, Alt: alt}, true
	case p.Contains(markerBattle):
		return Substitution{Kind: ReplaceBattle, Alt: alt}, true
	default:
		return Substitution{}, false
	}
}

// Apply returns p with its marker swapped for the alternate folder.
func (s Substitution) Apply(p paths.PrettyPath) (paths.PrettyPath, bool) {
	form := s.form()
	return p.Replace(form.Marker(), AltFolder(form, s.Alt))
}
