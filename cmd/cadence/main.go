// Package main is the entry point for the cadence terminal metronome.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/cadence/internal/config"
	"github.com/dshills/cadence/internal/timeline"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	doc, err := loadDocument(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	r, err := doc.BuildRhythm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var tl *timeline.Timeline
	if doc.Timeline != nil {
		tl, err = doc.BuildTimeline()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer tl.Dispose()
	}

	view, err := NewView(r, tl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		view.Stop()
	}()

	if err := view.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

type options struct {
	DocumentPath string
	Overrides    map[string]string // env-style overrides from flags
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool
	var bpm float64
	var signature string
	var subdivs int
	var grouping string

	flag.StringVar(&opts.DocumentPath, "config", "", "Path to rhythm/timeline document (.toml, .json, .yaml, .lua)")
	flag.StringVar(&opts.DocumentPath, "c", "", "Path to rhythm/timeline document (shorthand)")
	flag.Float64Var(&bpm, "bpm", 0, "Tempo in beats per minute")
	flag.StringVar(&signature, "signature", "", "Time signature, e.g. 7/8")
	flag.IntVar(&subdivs, "subdivisions", 0, "Pulses per beat")
	flag.StringVar(&grouping, "grouping", "", "Custom beat grouping, e.g. 3,2,2")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Cadence - terminal metronome and timeline player\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cadence [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cadence                          120 BPM in 4/4\n")
		fmt.Fprintf(os.Stderr, "  cadence -bpm 90 -signature 7/8   Odd meter\n")
		fmt.Fprintf(os.Stderr, "  cadence -c song.toml             Play a document\n")
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  space  pause/resume    +/-  tempo up/down    q  quit\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Cadence %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Flags become the highest-priority overlay, above the process
	// environment, using the same keys as the env loader.
	opts.Overrides = make(map[string]string)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bpm":
			opts.Overrides[config.EnvBPM] = f.Value.String()
		case "signature":
			opts.Overrides[config.EnvTimeSignature] = f.Value.String()
		case "subdivisions":
			opts.Overrides[config.EnvSubDivisions] = f.Value.String()
		case "grouping":
			opts.Overrides[config.EnvGrouping] = f.Value.String()
		}
	})

	return opts
}

// loadDocument loads the document named by flag or environment, falls
// back to a default rhythm, then applies env and flag overlays.
func loadDocument(opts options) (*config.Document, error) {
	path := opts.DocumentPath
	if path == "" {
		if envPath, ok := os.LookupEnv(config.EnvDocumentPath); ok {
			path = envPath
		}
	}

	var doc *config.Document
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		doc = loaded
	} else {
		doc = &config.Document{
			Rhythm: &config.RhythmDoc{
				BPM:           120,
				TimeSignature: config.TimeSignatureDoc{Upper: 4, Lower: 4},
			},
		}
	}

	env := func(key string) (string, bool) {
		if v, ok := opts.Overrides[key]; ok {
			return v, true
		}
		return os.LookupEnv(key)
	}
	if err := config.ApplyEnv(doc, env); err != nil {
		return nil, err
	}
	return doc, nil
}
