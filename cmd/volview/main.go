package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"volview/internal/logging"
	"volview/internal/models"
	"volview/pkg/axis"
	"volview/pkg/config"
	"volview/pkg/loader"
	"volview/pkg/modes"
	"volview/pkg/render"
	"volview/pkg/script"
	"volview/pkg/session"
	"volview/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputDir := flag.String("input", "", "Directory containing 2D image slices")
	configPath := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	modeName := flag.String("mode", "", "Initial mode: slice, multiview, ortho or volume (default: from config)")
	axisName := flag.String("axis", "", "Main axis for slice and multiview modes: z, y or x")
	scriptPath := flag.String("script", "", "YAML script of viewer actions to replay")
	snapshotPath := flag.String("snapshot", "", "Write a PNG snapshot of the final view to this file")
	extractSlices := flag.Bool("extract-slices", false, "Extract and save windowed slices along all axes")
	slicesDir := flag.String("slices-dir", "slices", "Directory to save extracted slices")
	numCores := flag.Int("cores", runtime.NumCPU(), "Number of CPU cores to use for slice extraction (default: all available)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", *configPath)
		return
	}

	// Validate inputs
	if *inputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *verbose {
		cfg.Output.Verbose = true
	}
	if *modeName != "" {
		if cfg.Viewer.InitialMode, err = render.ParseMode(*modeName); err != nil {
			log.Fatalf("Invalid mode: %v", err)
		}
	}

	level := slog.LevelInfo
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	vol, err := loader.LoadDirectory(*inputDir, loader.Defaults{
		Spacing:      cfg.Volume.Spacing.Array(),
		WindowCenter: cfg.Window.Center,
		WindowWidth:  cfg.Window.Width,
	})
	if err != nil {
		log.Fatalf("Failed to load volume: %v", err)
	}

	frames := 0
	surface := render.SurfaceFunc(func(b *render.Bundle) {
		frames++
		logging.Logger().Debug("present", "frame", frames, "mode", b.Mode, "version", b.Version)
	})

	ctrl := modes.NewController(modes.NewMachine(session.New(), cfg.Options()), surface)
	ctrl.Bind(vol)
	if cfg.Window.Auto {
		ctrl.AutoWindow()
	}
	ctrl.SwitchMode(cfg.Viewer.InitialMode)
	if *axisName != "" {
		a, err := axis.Parse(*axisName)
		if err != nil {
			log.Fatalf("Invalid axis: %v", err)
		}
		ctrl.SetMainAxis(int(a))
	}

	if *scriptPath != "" {
		steps, err := script.Load(*scriptPath)
		if err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
		sink := func(name string, b *render.Bundle) error {
			return writeSnapshot(b, filepath.Join(cfg.Output.SnapshotDir, name+".png"), cfg.Output.PixelsPerMM)
		}
		if err := script.Run(ctrl, steps, sink); err != nil {
			log.Fatalf("Script failed: %v", err)
		}
	}

	out, err := yaml.Marshal(newReport(vol, ctrl.Last()))
	if err != nil {
		log.Fatalf("Failed to encode summary: %v", err)
	}
	fmt.Print(string(out))

	if *snapshotPath != "" {
		if err := writeSnapshot(ctrl.Last(), *snapshotPath, cfg.Output.PixelsPerMM); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		fmt.Printf("Snapshot saved to: %s\n", *snapshotPath)
	}

	// Extract and save slices if requested
	if *extractSlices {
		viewer := visualization.NewViewer(vol)
		viewer.SetWorkers(*numCores)
		lower, upper := ctrl.Last().ContrastLimits[0], ctrl.Last().ContrastLimits[1]
		for _, a := range axis.All {
			axisDir := filepath.Join(*slicesDir, strings.ToLower(a.Letter()))
			fmt.Printf("Saving %s slices to: %s\n", a.Label(), axisDir)
			if err := viewer.SaveSliceSequence(a, axisDir, lower, upper); err != nil {
				log.Printf("Warning: Failed to save %s slices: %v", a.Label(), err)
			}
		}
		fmt.Println("Slice extraction completed!")
	}
}

// report is the YAML document printed after a run
type report struct {
	Volume struct {
		Description string       `yaml:"description"`
		Summary     string       `yaml:"summary"`
		Tags        []models.Tag `yaml:"tags,omitempty"`
	} `yaml:"volume"`
	View render.Summary `yaml:"view"`
}

func newReport(vol *models.Volume, b *render.Bundle) report {
	var r report
	r.Volume.Description = vol.Description
	r.Volume.Summary = vol.Summary()
	r.Volume.Tags = vol.Tags
	r.View = render.Summarize(b)
	return r
}

func writeSnapshot(b *render.Bundle, path string, pxPerMM float64) error {
	img, err := visualization.Snapshot(b, pxPerMM)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return visualization.SaveImage(img, path)
}
