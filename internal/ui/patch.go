package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/plotsync/internal/prop"
	"github.com/five82/plotsync/internal/widget"
)

// handlePatchKey processes input while the patch prompt is open.
func (m Model) handlePatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.inputActive = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.inputActive = false
		m.input.Blur()
		m.applyPatch(m.input.Value())
		m.reloadSnapshot()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// parsePatch decodes a JSON object typed at the prompt.
func parsePatch(input string) (map[string]any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("empty patch")
	}
	var patch map[string]any
	if err := json.Unmarshal([]byte(input), &patch); err != nil {
		return nil, fmt.Errorf("patch must be a JSON object: %w", err)
	}
	if len(patch) == 0 {
		return nil, errors.New("empty patch")
	}
	return patch, nil
}

// applyPatch sends a local update for the selected object through the
// manager, so renderers receive it like any other local change.
func (m *Model) applyPatch(input string) {
	v, ok := m.selectedView()
	if !ok || m.manager == nil {
		m.setStatus("no object selected", true)
		return
	}
	patch, err := parsePatch(input)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	err = m.manager.Update(v.ID, patch)
	m.setStatus(describePatchResult(v, len(patch), err), err != nil)
}

func describePatchResult(v widget.View, keys int, err error) string {
	target := v.Model + " " + shortID(v.ID.String())
	if err == nil {
		return fmt.Sprintf("patched %d key(s) on %s", keys, target)
	}
	var perr *widget.PatchError
	if !errors.As(err, &perr) {
		return err.Error()
	}
	reasons := make([]string, 0, len(perr.Errors))
	for _, e := range perr.Errors {
		var verr *prop.ValidationError
		if errors.As(e, &verr) {
			reasons = append(reasons, verr.Property+": "+verr.Reason.Error())
		}
	}
	return fmt.Sprintf("%d of %d key(s) rejected on %s: %s", len(perr.Errors), keys, target, strings.Join(reasons, "; "))
}
