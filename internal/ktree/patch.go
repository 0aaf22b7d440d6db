// SPDX-License-Identifier: MPL-2.0

package ktree

import (
	"fmt"
	"os"
	"strings"
)

// endmenuMarker is the Kconfig menu terminator the source directive is
// inserted in front of.
const endmenuMarker = "endmenu"

// MakefileEntry returns the kbuild rule appended to the drivers Makefile:
// obj-$(CONFIG_<flag>) += <name>/.
func MakefileEntry(configFlag, moduleName string) string {
	return fmt.Sprintf("obj-$(CONFIG_%s) += %s/", configFlag, moduleName)
}

// KconfigSource returns the directive inserted into the drivers Kconfig:
// source "drivers/<name>/Kconfig". The path is always drivers-relative, even
// when the drivers directory itself lives under common/.
func KconfigSource(moduleName string) string {
	return fmt.Sprintf("source \"drivers/%s/Kconfig\"", moduleName)
}

// EnsureMakefileEntry appends the module's kbuild rule to the drivers
// Makefile unless any line already mentions the module. A missing Makefile is
// created, matching shell append semantics. Returns whether a line was added.
func (t *Tree) EnsureMakefileEntry(configFlag, moduleName string) (bool, error) {
	path := t.Makefile.String()
	lines, err := readLines(path)
	if err != nil {
		return false, err
	}
	if containsSubstring(lines, moduleName) {
		return false, nil
	}

	lines = append(lines, MakefileEntry(configFlag, moduleName))
	if err := writeLines(path, lines); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveMakefileEntries deletes every Makefile line mentioning the module.
// A missing Makefile is a no-op. Returns the number of lines removed.
func (t *Tree) RemoveMakefileEntries(moduleName string) (int, error) {
	return removeMatchingLines(t.Makefile.String(), moduleName)
}

// EnsureKconfigSource inserts the module's source directive immediately
// before the first endmenu of the drivers Kconfig, unless the module's
// Kconfig is already referenced. A Kconfig without endmenu gets the directive
// appended; a missing Kconfig is created. Returns whether a line was added.
func (t *Tree) EnsureKconfigSource(moduleName string) (bool, error) {
	path := t.Kconfig.String()
	lines, err := readLines(path)
	if err != nil {
		return false, err
	}
	if containsSubstring(lines, moduleName+"/Kconfig") {
		return false, nil
	}

	directive := KconfigSource(moduleName)
	inserted := false
	out := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		if !inserted && strings.TrimSpace(line) == endmenuMarker {
			out = append(out, directive)
			inserted = true
		}
		out = append(out, line)
	}
	if !inserted {
		out = append(out, directive)
	}

	if err := writeLines(path, out); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveKconfigSource deletes every Kconfig line referencing the module's
// Kconfig file. A missing Kconfig is a no-op. Returns the number of lines
// removed.
func (t *Tree) RemoveKconfigSource(moduleName string) (int, error) {
	return removeMatchingLines(t.Kconfig.String(), moduleName+"/Kconfig")
}

// readLines returns the file's lines without terminators. A missing file
// yields no lines and no error, so guarded edits can create it.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// writeLines writes lines back with a trailing newline.
func writeLines(path string, lines []string) error {
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func containsSubstring(lines []string, substr string) bool {
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// removeMatchingLines deletes every line containing substr and reports how
// many were dropped. Missing files are a no-op; the file is only rewritten
// when something actually matched.
func removeMatchingLines(path, substr string) (int, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, nil
	}

	lines, err := readLines(path)
	if err != nil {
		return 0, err
	}

	kept := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		if strings.Contains(line, substr) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return 0, nil
	}

	if err := writeLines(path, kept); err != nil {
		return 0, err
	}
	return removed, nil
}
