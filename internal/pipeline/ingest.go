// Package pipeline implements the batch pipeline stages: ingestion,
// transformation, validation and analysis, plus the runner that sequences
// them.
package pipeline

import (
	"path/filepath"

	"gamepipe/internal/config"
	"gamepipe/internal/logger"
	"gamepipe/internal/table"
)

// Raw snapshot artifact names written during ingestion.
const (
	SteamRawFile  = "steam_raw.csv"
	TwitchRawFile = "twitch_raw.csv"
)

// Ingest reads both raw source files into tables and persists snapshots of
// them under the configured raw directory. A missing source file is a hard
// failure; there is no meaningful recovery.
func Ingest(cfg *config.Config, log *logger.Logger) (steam, twitch *table.Table, err error) {
	steam, err = table.ReadFile(cfg.SteamPath())
	if err != nil {
		return nil, nil, err
	}

	twitch, err = table.ReadFile(cfg.TwitchPath())
	if err != nil {
		return nil, nil, err
	}

	if err := steam.WriteFile(filepath.Join(cfg.Paths.RawData, SteamRawFile)); err != nil {
		return nil, nil, err
	}

	if err := twitch.WriteFile(filepath.Join(cfg.Paths.RawData, TwitchRawFile)); err != nil {
		return nil, nil, err
	}

	log.Info("ingestion complete",
		"steam_rows", steam.Len(),
		"twitch_rows", twitch.Len(),
		"snapshot_dir", cfg.Paths.RawData)

	return steam, twitch, nil
}
