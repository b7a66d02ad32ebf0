// Package backup snapshots the app's data files into timestamped
// directories and restores them later. A snapshot copies every file under
// the persistence gateway's namespace plus a manifest describing it.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"studydesk/internal/fsutil"
)

const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"

	// namespacePrefix matches the persistence gateway's file naming. Only
	// files under this prefix belong to the app and get backed up.
	namespacePrefix = "studydesk-"
)

// nameLayout is the timestamp format of backup directory names. A
// millisecond suffix (_XXX) is appended so rapid backups stay unique.
const nameLayout = "2006-01-02_150405"

// Manager creates, lists, and restores backups under <dataDir>/backups.
type Manager struct {
	dataDir    string
	backupDir  string
	appVersion string
}

// Manifest describes one backup directory.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo is the listing view of a backup.
type BackupInfo struct {
	Name      string
	Path      string
	CreatedAt time.Time
	Stats     map[string]int
}

func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
	}
}

// Create snapshots every namespaced data file into a new backup directory
// and returns its name. A half-written backup is removed on failure.
func (m *Manager) Create() (string, error) {
	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format(nameLayout), now.Nanosecond()/1e6)
	dest := filepath.Join(m.backupDir, name)

	if err := os.MkdirAll(dest, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	files, err := m.dataFiles()
	if err != nil {
		_ = os.RemoveAll(dest)
		return "", err
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Stats:      make(map[string]int),
	}

	for _, filename := range files {
		src := filepath.Join(m.dataDir, filename)
		if err := copyFileAtomic(src, filepath.Join(dest, filename)); err != nil {
			_ = os.RemoveAll(dest)
			return "", fmt.Errorf("failed to copy %s: %w", filename, err)
		}
		manifest.Files = append(manifest.Files, filename)

		// Collection sizes for the task and group files
		if key, ok := collectionStatKey(filename); ok {
			if count, err := countItems(src); err == nil {
				manifest.Stats[key] = count
			}
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err == nil {
		err = fsutil.WriteFileAtomic(filepath.Join(dest, ManifestFile), data, 0600)
	}
	if err != nil {
		_ = os.RemoveAll(dest)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return name, nil
}

// dataFiles lists every namespaced file currently in the data directory.
func (m *Manager) dataFiles() ([]string, error) {
	entries, err := os.ReadDir(m.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), namespacePrefix) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// List returns every backup, newest first.
func (m *Manager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.loadInfo(entry.Name())
		if err != nil {
			continue // not a backup directory
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// loadInfo builds a BackupInfo from the manifest, falling back to the
// timestamp encoded in the directory name when the manifest is unreadable.
func (m *Manager) loadInfo(name string) (*BackupInfo, error) {
	path := filepath.Join(m.backupDir, name)

	info := &BackupInfo{Name: name, Path: path, Stats: map[string]int{}}
	var manifest Manifest
	if err := readJSON(filepath.Join(path, ManifestFile), &manifest); err == nil {
		info.CreatedAt = manifest.CreatedAt
		if manifest.Stats != nil {
			info.Stats = manifest.Stats
		}
		return info, nil
	}

	createdAt, err := parseBackupName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid backup: %s", name)
	}
	info.CreatedAt = createdAt
	return info, nil
}

// Restore copies a backup's files back into the data directory. A safety
// backup of the current state is taken first, and every restored file is
// checked to be valid JSON.
func (m *Manager) Restore(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	src := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	files, err := m.backupFiles(src)
	if err != nil {
		return err
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("failed to create safety backup: %w", err)
	}

	for _, filename := range files {
		from := filepath.Join(src, filename)
		if _, err := os.Stat(from); os.IsNotExist(err) {
			continue
		}
		if err := copyFileAtomic(from, filepath.Join(m.dataDir, filename)); err != nil {
			return fmt.Errorf("failed to restore %s (safety backup: %s): %w", filename, safetyName, err)
		}
	}

	for _, filename := range files {
		if err := validateJSON(filepath.Join(m.dataDir, filename)); err != nil {
			return fmt.Errorf("restored file %s is invalid (safety backup: %s): %w", filename, safetyName, err)
		}
	}

	return nil
}

// backupFiles returns the files a backup holds, preferring the manifest
// and falling back to a namespace scan of the backup directory.
func (m *Manager) backupFiles(backupPath string) ([]string, error) {
	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err == nil {
		return manifest.Files, nil
	}

	entries, err := os.ReadDir(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), namespacePrefix) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// RestoreLatest restores from the most recent backup.
func (m *Manager) RestoreLatest() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups available")
	}
	return m.Restore(backups[0].Name)
}

// Delete removes one backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	path := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(path)
}

// Prune deletes old backups, keeping the keepCount most recent, and
// returns how many were removed.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// GetBackup returns information about one backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(m.backupDir, name)); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	return m.loadInfo(name)
}

// validateBackupName rejects anything that is not a bare timestamped
// directory name, so a crafted name can't escape the backups directory.
func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

func copyFileAtomic(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(dst, data, 0600)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// validateJSON checks that a file parses as JSON. A missing file is fine:
// a backup may predate keys that exist today.
func validateJSON(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var v any
	return json.Unmarshal(data, &v)
}

// collectionStatKey maps a data file to its stats key. Only the task and
// group collections carry a count; the scalar settings files do not.
func collectionStatKey(filename string) (string, bool) {
	switch filename {
	case namespacePrefix + "tasks.json":
		return "tasks", true
	case namespacePrefix + "groups.json":
		return "groups", true
	}
	return "", false
}

// countItems counts the entries of a JSON array file.
func countItems(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// parseBackupName extracts the timestamp from a backup directory name,
// with or without the millisecond suffix.
func parseBackupName(name string) (time.Time, error) {
	base, suffix := name, ""
	// The layout itself contains an underscore, so only a second one
	// separates the millisecond suffix.
	if i := strings.LastIndex(name, "_"); i > len(nameLayout)-7 {
		base, suffix = name[:i], name[i+1:]
	}

	ts, err := time.Parse(nameLayout, base)
	if err != nil {
		return time.Time{}, err
	}

	if suffix != "" {
		ms, err := strconv.Atoi(suffix)
		if err != nil || len(suffix) != 3 || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds in %q", name)
		}
		ts = ts.Add(time.Duration(ms) * time.Millisecond)
	}

	return ts, nil
}
