// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	stemWidth    = 4
	maxStemValue = 36*36*36*36 - 1
	base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// stemPattern matches 4-character base-36 filename stems.
var stemPattern = regexp.MustCompile(`^[0-9a-zA-Z]{4}$`)

// NextStem scans dir for .tree files with base-36 stems and returns the
// lowest unused stem after the highest one present. An empty directory
// yields "0000"; exhausting "zzzz" is an error.
func NextStem(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading tree directory: %w", err)
	}

	highest := int64(-1)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != TreeExt {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), TreeExt)
		if !stemPattern.MatchString(stem) {
			continue
		}
		value, err := strconv.ParseInt(strings.ToLower(stem), 36, 64)
		if err != nil {
			continue
		}
		if value > highest {
			highest = value
		}
	}

	next := highest + 1
	if next > maxStemValue {
		return "", fmt.Errorf("all %d-digit base-36 filenames are exhausted (zzzz reached)", stemWidth)
	}
	return formatStem(next), nil
}

// formatStem renders a value as a zero-padded base-36 stem.
func formatStem(value int64) string {
	var digits [stemWidth]byte
	for i := stemWidth - 1; i >= 0; i-- {
		digits[i] = base36Digits[value%36]
		value /= 36
	}
	return string(digits[:])
}

// AllocateTree creates the next sequential .tree file in dir, seeded with a
// \date stamp for now and the base-macros import. The directory must
// already exist; an unexpected collision on the computed name is an error.
func AllocateTree(dir string, now time.Time) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("tree directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}

	stem, err := NextStem(dir)
	if err != nil {
		return "", err
	}
	target := filepath.Join(dir, stem+TreeExt)
	if _, err := os.Stat(target); err == nil {
		return "", &ConflictError{Path: target}
	}

	content := fmt.Sprintf("\\date{%s}\n\n\\import{base-macros}\n\n", now.Format("2006-01-02"))
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", target, err)
	}
	return target, nil
}
