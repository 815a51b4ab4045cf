package integration

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gamepipe/internal/config"
	"gamepipe/internal/logger"
	"gamepipe/internal/pipeline"
	"gamepipe/internal/table"
)

const steamCSV = `name,genres,price_overview,is_free
Halo,"[{'id': '1', 'description': 'Action'}]","{'currency': 'USD', 'initial': 2499, 'final': 1999, 'discount_percent': 20}",False
Minecraft,"[{'id': '25', 'description': 'Adventure'}]","{'currency': 'USD', 'initial': 2999, 'final': 2999, 'discount_percent': 0}",False
Fortnite,"[{'id': '1', 'description': 'Action'}]",,True
Catalog Only,"[{'id': '23', 'description': 'Indie'}]","{'currency': 'USD', 'final': 999}",False
`

const twitchCSV = `Game,Hours_watched,Hours_streamed,Peak_viewers,Peak_channels,Streamers,Avg_viewers,Avg_channels,Avg_viewer_ratio
Halo,100,10,500,20,30,50,5,1.5
Halo,200,20,700,25,40,70,7,2.5
Minecraft,400,40,900,30,50,90,9,3.5
Fortnite,800,80,1100,40,60,110,11,4.5
Stream Only,50,5,100,2,3,10,1,0.5
`

func writeFixtures(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()

	cfg := &config.Config{
		Paths: config.PathsConfig{
			RawData:       filepath.Join(base, "raw"),
			ProcessedData: filepath.Join(base, "processed"),
		},
		Files: config.FilesConfig{
			SteamDataset:  "steam_app_data.csv",
			TwitchDataset: "Twitch_game_data.csv",
		},
		Logging: config.LoggingConfig{Level: "error"},
	}

	if err := os.MkdirAll(cfg.Paths.RawData, 0755); err != nil {
		t.Fatalf("failed to create raw dir: %v", err)
	}

	if err := os.WriteFile(cfg.SteamPath(), []byte(steamCSV), 0644); err != nil {
		t.Fatalf("failed to write steam fixture: %v", err)
	}

	if err := os.WriteFile(cfg.TwitchPath(), []byte(twitchCSV), 0644); err != nil {
		t.Fatalf("failed to write twitch fixture: %v", err)
	}

	return cfg
}

func TestPipeline_EndToEnd(t *testing.T) {
	cfg := writeFixtures(t)
	log := logger.NewLoggerTo(io.Discard, "error")

	result, err := pipeline.NewRunner(cfg, log).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Violations) > 0 {
		t.Fatalf("unexpected validation failures: %v", result.Violations)
	}

	// Raw snapshots written during ingestion.
	for _, name := range []string{pipeline.SteamRawFile, pipeline.TwitchRawFile} {
		if _, err := os.Stat(filepath.Join(cfg.Paths.RawData, name)); err != nil {
			t.Errorf("snapshot %s not written: %v", name, err)
		}
	}

	merged, err := table.ReadFile(filepath.Join(cfg.Paths.ProcessedData, pipeline.MergedFile))
	if err != nil {
		t.Fatalf("merged artifact unreadable: %v", err)
	}

	// Halo, Minecraft, Fortnite survive; the two singletons are dropped.
	if merged.Len() != 3 {
		t.Fatalf("merged rows = %d, want 3", merged.Len())
	}

	games := merged.Column("game")
	for _, g := range games {
		if g == "catalog only" || g == "stream only" {
			t.Errorf("singleton title %q survived the inner join", g)
		}
	}

	gameIdx := merged.ColumnIndex("game")
	priceIdx := merged.ColumnIndex("price")
	hoursIdx := merged.ColumnIndex("hours_watched")

	for _, row := range merged.Rows {
		switch row[gameIdx] {
		case "halo":
			if row[hoursIdx] != "300" {
				t.Errorf("halo hours_watched = %q, want 300", row[hoursIdx])
			}

			if row[priceIdx] != "19.99" {
				t.Errorf("halo price = %q, want 19.99", row[priceIdx])
			}
		case "fortnite":
			if row[priceIdx] != "0" {
				t.Errorf("fortnite price = %q, want 0 (free game)", row[priceIdx])
			}
		}
	}

	if result.Summary == nil {
		t.Fatal("analysis summary missing")
	}

	if result.Summary.SpearmanCorr == nil {
		t.Error("Spearman correlation missing from summary")
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.ProcessedData, pipeline.AnalysisFile))
	if err != nil {
		t.Fatalf("analysis artifact not written: %v", err)
	}

	if !strings.HasPrefix(string(data), "spearman_corr,spearman_p,kruskal_stat,kruskal_p") {
		t.Errorf("unexpected analysis header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestPipeline_Idempotent(t *testing.T) {
	cfg := writeFixtures(t)
	log := logger.NewLoggerTo(io.Discard, "error")

	if _, err := pipeline.NewRunner(cfg, log).Run(); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	first, err := os.ReadFile(filepath.Join(cfg.Paths.ProcessedData, pipeline.MergedFile))
	if err != nil {
		t.Fatalf("failed to read merged artifact: %v", err)
	}

	if _, err := pipeline.NewRunner(cfg, log).Run(); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	second, err := os.ReadFile(filepath.Join(cfg.Paths.ProcessedData, pipeline.MergedFile))
	if err != nil {
		t.Fatalf("failed to re-read merged artifact: %v", err)
	}

	if string(first) != string(second) {
		t.Error("re-running the pipeline changed the merged artifact")
	}
}

func TestPipeline_MissingSourceIsHardFailure(t *testing.T) {
	cfg := writeFixtures(t)

	if err := os.Remove(cfg.TwitchPath()); err != nil {
		t.Fatalf("failed to remove fixture: %v", err)
	}

	log := logger.NewLoggerTo(io.Discard, "error")

	if _, err := pipeline.NewRunner(cfg, log).Run(); err == nil {
		t.Error("Run should fail hard when a source file is missing")
	}
}
