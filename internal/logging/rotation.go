package logging

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const filePrefix = "leadnexus_"

// rotate removes the oldest log files in dir until at most keep remain.
// Only files named "leadnexus_*.log" are considered.
func rotate(dir string, keep int) error {
	if keep < 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	type candidate struct {
		path    string
		modTime int64
	}
	var files []candidate
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, candidate{path: filepath.Join(dir, name), modTime: info.ModTime().UnixNano()})
	}
	if len(files) <= keep {
		return nil
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime == files[j].modTime {
			return files[i].path < files[j].path
		}
		return files[i].modTime < files[j].modTime
	})
	for _, f := range files[:len(files)-keep] {
		os.Remove(f.path)
	}
	return nil
}
