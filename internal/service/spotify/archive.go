package spotify

//go:generate $MOCKGEN -source=archive.go -destination=mocks/archive_mock.go

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dsmirnov/spotify-grabber/internal/constants"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
	"github.com/dsmirnov/spotify-grabber/internal/utils"
)

const (
	// archiveTimestampLayout is the timestamp format stored in archive entries.
	archiveTimestampLayout = "2006-01-02 15:04:05"

	// legacyArchiveFilename is the tab-separated archive format of older releases.
	legacyArchiveFilename = ".song_archive"

	// legacyArchiveFieldCount is the number of tab-separated fields per legacy line:
	// id, timestamp, artist, track name, relative filename.
	legacyArchiveFieldCount = 5
)

// ArchiveEntry is one finished download recorded in the archive.
type ArchiveEntry struct {
	// Artist is the primary artist of the downloaded track.
	Artist string `json:"artist"`
	// TrackName is the title of the downloaded track.
	TrackName string `json:"track_name"`
	// AudioType is the content classification: music or episode.
	AudioType string `json:"audio_type"`
	// FullPath is the absolute or root-relative path of the downloaded file.
	FullPath string `json:"fullpath"`
	// Timestamp is when the entry was recorded, in archiveTimestampLayout.
	Timestamp string `json:"timestamp"`
}

// Archive is the persistent ledger of finished downloads keyed by track ID.
type Archive interface {
	// Exists reports whether the track ID is recorded in the archive.
	Exists(trackID string) bool
	// Add records a finished download. Re-adding an existing ID overwrites it.
	Add(ctx context.Context, trackID, artist, trackName, fullPath, audioType string) error
	// Remove deletes the entry for the track ID. Removing an absent ID is a no-op.
	Remove(ctx context.Context, trackID string) error
	// Get returns the entry for the track ID.
	Get(trackID string) (*ArchiveEntry, bool)
	// All returns a copy of every recorded entry.
	All() map[string]*ArchiveEntry
	// MigrateLegacyArchives imports tab-separated archives of older releases
	// found under the given roots and deletes them after a successful import.
	MigrateLegacyArchives(ctx context.Context, roots []string) error
}

// ArchiveImpl implements Archive over a single JSON file,
// rewritten whole on every mutation.
type ArchiveImpl struct {
	// path is the location of the JSON archive file.
	path string
	// mutex guards entries and the file rewrite.
	mutex sync.Mutex
	// entries holds the in-memory state of the archive.
	entries map[string]*ArchiveEntry
}

// NewArchive loads the archive from the given path.
// A missing or corrupt file yields an empty archive, a corrupt one is logged.
func NewArchive(ctx context.Context, path string) Archive {
	archive := &ArchiveImpl{
		path:    path,
		entries: make(map[string]*ArchiveEntry),
	}

	archive.load(ctx)

	return archive
}

// Exists reports whether the track ID is recorded in the archive.
func (a *ArchiveImpl) Exists(trackID string) bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	_, ok := a.entries[trackID]

	return ok
}

// Add records a finished download. Re-adding an existing ID overwrites it.
func (a *ArchiveImpl) Add(ctx context.Context, trackID, artist, trackName, fullPath, audioType string) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.entries[trackID] = &ArchiveEntry{
		Artist:    artist,
		TrackName: trackName,
		AudioType: audioType,
		FullPath:  fullPath,
		Timestamp: time.Now().Format(archiveTimestampLayout),
	}

	return a.save(ctx)
}

// Remove deletes the entry for the track ID. Removing an absent ID is a no-op.
func (a *ArchiveImpl) Remove(ctx context.Context, trackID string) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if _, ok := a.entries[trackID]; !ok {
		return nil
	}

	delete(a.entries, trackID)

	return a.save(ctx)
}

// Get returns the entry for the track ID.
func (a *ArchiveImpl) Get(trackID string) (*ArchiveEntry, bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	entry, ok := a.entries[trackID]

	return entry, ok
}

// All returns a copy of every recorded entry.
func (a *ArchiveImpl) All() map[string]*ArchiveEntry {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	result := make(map[string]*ArchiveEntry, len(a.entries))
	for id, entry := range a.entries {
		entryCopy := *entry
		result[id] = &entryCopy
	}

	return result
}

// MigrateLegacyArchives imports tab-separated archives of older releases.
// Roots without a legacy file are skipped silently, the import is idempotent.
func (a *ArchiveImpl) MigrateLegacyArchives(ctx context.Context, roots []string) error {
	for _, root := range roots {
		if root == "" {
			continue
		}

		legacyPath := filepath.Join(root, legacyArchiveFilename)
		if exists, _ := utils.IsFileExist(legacyPath); !exists {
			continue
		}

		if err := a.migrateLegacyArchive(ctx, root, legacyPath); err != nil {
			return fmt.Errorf("failed to migrate legacy archive '%s': %w", legacyPath, err)
		}
	}

	return nil
}

func (a *ArchiveImpl) migrateLegacyArchive(ctx context.Context, root, legacyPath string) error {
	lines, err := utils.ReadUniqueLinesFromFile(legacyPath)
	if err != nil {
		return err
	}

	a.mutex.Lock()

	imported := 0

	for _, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) < legacyArchiveFieldCount {
			logger.Warnf(ctx, "Skipping malformed legacy archive line: %s", line)

			continue
		}

		trackID := strings.TrimSpace(fields[0])
		if trackID == "" {
			continue
		}

		// Existing entries win over the legacy file.
		if _, ok := a.entries[trackID]; ok {
			continue
		}

		// Legacy lines carry paths relative to the archive's directory.
		fullPath := fields[4]

		resolved := filepath.Join(root, fullPath)
		if exists, _ := utils.IsFileExist(resolved); exists {
			fullPath = resolved
		}

		a.entries[trackID] = &ArchiveEntry{
			Artist:    fields[2],
			TrackName: fields[3],
			AudioType: audioTypeMusic,
			FullPath:  fullPath,
			Timestamp: fields[1],
		}

		imported++
	}

	err = a.save(ctx)

	a.mutex.Unlock()

	if err != nil {
		return err
	}

	if err = os.Remove(legacyPath); err != nil {
		return fmt.Errorf("failed to remove migrated legacy archive: %w", err)
	}

	logger.Infof(ctx, "Migrated %d entries from legacy archive '%s'", imported, legacyPath)

	return nil
}

// load reads the archive file into memory.
// A corrupt file is logged and treated as empty rather than aborting the session.
func (a *ArchiveImpl) load(ctx context.Context) {
	content, err := os.ReadFile(filepath.Clean(a.path))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnf(ctx, "Failed to read download archive '%s': %v", a.path, err)
		}

		return
	}

	var entries map[string]*ArchiveEntry
	if err = json.Unmarshal(content, &entries); err != nil {
		logger.Warnf(ctx, "Download archive '%s' is corrupt, starting with an empty one: %v", a.path, err)

		return
	}

	// A file holding the JSON literal "null" decodes into a nil map.
	if entries == nil {
		return
	}

	a.entries = entries
}

// save rewrites the whole archive file. Callers must hold the mutex.
func (a *ArchiveImpl) save(ctx context.Context) error {
	content, err := json.MarshalIndent(a.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal download archive: %w", err)
	}

	if err = os.WriteFile(a.path, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write download archive: %w", err)
	}

	logger.Debugf(ctx, "Download archive saved: %d entries", len(a.entries))

	return nil
}
