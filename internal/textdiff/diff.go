// Package textdiff is the default Differ adapter: unified-style patch
// generation and application backed by sergi/go-diff's diffmatchpatch,
// the pack's concrete precedent for wiring a diff/patch library into a
// Git-shaped Go codebase (see DESIGN.md).
package textdiff

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextRadius is diffmatchpatch's PatchMargin, which counts characters,
// not lines: each hunk carries at least 3 characters of context on either
// side, widened by the library until the context is unique.
const contextRadius = 3

// Differ implements ports.Differ using diffmatchpatch's character-level
// patch text format (not line-based unified diff): Diff produces a patch
// that, when fed to Apply alongside old, reproduces new.
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// New returns a ready-to-use Differ.
func New() *Differ {
	dmp := diffmatchpatch.New()
	dmp.PatchMargin = contextRadius
	return &Differ{dmp: dmp}
}

// Diff computes a patch that transforms old into new.
func (d *Differ) Diff(old, new string) (string, error) {
	patches := d.dmp.PatchMake(old, new)
	return d.dmp.PatchToText(patches), nil
}

// Apply applies patch to text, failing if any hunk does not cleanly apply.
func (d *Differ) Apply(text, patch string) (string, error) {
	if patch == "" {
		return text, nil
	}
	patches, err := d.dmp.PatchFromText(patch)
	if err != nil {
		return "", fmt.Errorf("parsing patch: %w", err)
	}
	result, applied := d.dmp.PatchApply(patches, text)
	for _, ok := range applied {
		if !ok {
			return "", fmt.Errorf("patch hunk failed to apply")
		}
	}
	return result, nil
}
