package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Meta tracks ingestion metadata for a corpus.
type Meta struct {
	CorpusID     string    `json:"corpus_id"`
	Root         string    `json:"root"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastIngestAt time.Time `json:"last_ingest_at"`
}

// Init resolves paths for root, creates state directories, and loads or
// creates the corpus meta record.
func Init(root string) (Paths, *Meta, error) {
	paths, err := PathsFor(root)
	if err != nil {
		return Paths{}, nil, err
	}
	meta, err := initAt(paths)
	return paths, meta, err
}

// InitIn is Init with an explicit base directory.
func InitIn(base, root string) (Paths, *Meta, error) {
	paths := PathsIn(base, root)
	meta, err := initAt(paths)
	return paths, meta, err
}

func initAt(paths Paths) (*Meta, error) {
	if err := EnsureDirs(paths); err != nil {
		return nil, err
	}

	meta, err := LoadMeta(paths)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		now := time.Now()
		meta = &Meta{
			CorpusID:  paths.CorpusID,
			Root:      paths.Root,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := SaveMeta(paths, meta); err != nil {
			return nil, err
		}
	}
	return meta, nil
}

// LoadMeta reads the meta record, returning nil when none exists yet.
func LoadMeta(paths Paths) (*Meta, error) {
	data, err := os.ReadFile(paths.MetaFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read corpus meta: %w", err)
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse corpus meta: %w", err)
	}
	return &meta, nil
}

// SaveMeta writes the meta record.
func SaveMeta(paths Paths, meta *Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal corpus meta: %w", err)
	}
	if err := os.WriteFile(paths.MetaFile, data, 0o644); err != nil {
		return fmt.Errorf("write corpus meta: %w", err)
	}
	return nil
}
