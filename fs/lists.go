// Package fs provides filesystem helpers for the input list files
// (cities.txt, keywords.txt) that drive scraping campaigns.
package fs

import (
	"bufio"
	"os"
	"strings"

	"github.com/lmertens/annuaire"
)

// ReadList reads a text file of one entry per line. Blank lines and lines
// starting with '#' are skipped; surrounding whitespace is trimmed.
// Returns ENOTFOUND if the file does not exist.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, annuaire.Errorf(annuaire.ENOTFOUND, "list file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
