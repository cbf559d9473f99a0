// Package corpus scans directories of decoded-document JSON files and
// builds the in-memory fingerprint index used for similarity search.
package corpus

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ziadkadry99/doc-forensics/internal/docval"
	"github.com/ziadkadry99/doc-forensics/internal/fingerprint"
	"github.com/ziadkadry99/doc-forensics/internal/progress"
)

// Loader fingerprints every matching document under a directory root.
type Loader struct {
	Engine   *fingerprint.Engine
	Limits   docval.Limits
	Include  []string
	Exclude  []string
	Reporter progress.Reporter
}

// SkippedFile records a corpus file that could not be fingerprinted. A
// scan never aborts on one bad file.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Index is the result of one corpus scan. Document IDs are the paths
// relative to the scan root.
type Index struct {
	RunID        string                     `json:"run_id"`
	Root         string                     `json:"root"`
	Fingerprints []*fingerprint.Fingerprint `json:"fingerprints"`
	Skipped      []SkippedFile              `json:"skipped,omitempty"`
}

// Load walks root, fingerprints every included JSON document, and returns
// the index.
func (l *Loader) Load(root string) (*Index, error) {
	reporter := l.Reporter
	if reporter == nil {
		reporter = progress.Silent{}
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !matchesInclude(rel, l.Include) || matchesExclude(rel, l.Exclude) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking corpus root %s: %w", root, err)
	}

	index := &Index{RunID: uuid.NewString(), Root: root}
	reporter.Start(len(paths))
	for i, rel := range paths {
		reporter.Update(i+1, rel)
		fp, err := l.fingerprintFile(root, rel)
		if err != nil {
			index.Skipped = append(index.Skipped, SkippedFile{Path: rel, Reason: err.Error()})
			continue
		}
		index.Fingerprints = append(index.Fingerprints, fp)
	}
	reporter.Finish()
	return index, nil
}

func (l *Loader) fingerprintFile(root, rel string) (*fingerprint.Fingerprint, error) {
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	value, err := docval.Decode(doc, l.Limits)
	if err != nil {
		return nil, err
	}
	return l.Engine.Fingerprint(value, filepath.ToSlash(rel)), nil
}
