// flicker simulates the per-frame flux a camera integrates from the PWM light
// sources of a scene.
//
// Usage:
//
//	flicker -scene scene.yaml [-csv out.csv] [-plot out.png] [-seed N] [-v]
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"sort"
	"strconv"

	"github.com/synaptecltd/flicker"
	"github.com/synaptecltd/flicker/chart"
	"github.com/synaptecltd/flicker/metrics"
	"github.com/synaptecltd/flicker/scene"
)

func mainImpl() error {
	scenePath := flag.String("scene", "", "scene description (yaml)")
	csvPath := flag.String("csv", "", "write the flux series to this CSV file, - for stdout")
	plotPath := flag.String("plot", "", "write a PNG plot of the flux series")
	seed := flag.Uint64("seed", 0, "seed for random exposure phases, 0 picks one")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if len(flag.Args()) != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}
	if *scenePath == "" {
		return errors.New("-scene is required")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	data, err := os.ReadFile(*scenePath)
	if err != nil {
		return err
	}
	s, err := scene.ParseScene(data)
	if err != nil {
		return fmt.Errorf("%s: %w", *scenePath, err)
	}
	logger.Debug("scene loaded",
		"path", *scenePath,
		"sources", len(s.Sources),
		"exposure_ms", s.Camera.Exposure(),
		"frame_rate", s.Camera.FrameRate(),
		"duration_s", s.Camera.Duration(),
		"phase", s.Camera.PhaseFuncName(),
		"wraparound", s.Camera.Wraparound())

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	r := rand.New(rand.NewPCG(*seed, 0))
	logger.Debug("random source", "seed", *seed)

	out, err := s.Simulate(r)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(out))
	for name := range out {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		series := out[name]
		summary, err := metrics.Summarize(series.Phi, true)
		if err != nil {
			logger.Warn("no metrics", "source", name, "err", err)
			continue
		}
		logger.Info("flicker",
			"source", name,
			"frames", series.Len(),
			"mean", summary.Mean,
			"stddev", summary.StdDev,
			"min", summary.Min,
			"max", summary.Max,
			"percent_flicker", summary.PercentFlicker)
	}

	if *csvPath != "" {
		if err := writeCSVFile(*csvPath, names, out); err != nil {
			return err
		}
		logger.Debug("csv written", "path", *csvPath)
	}

	if *plotPath != "" {
		p, err := chart.FramePlot(*scenePath, out)
		if err != nil {
			return err
		}
		if err := chart.SavePNG(p, *plotPath); err != nil {
			return err
		}
		logger.Debug("plot written", "path", *plotPath)
	}
	return nil
}

func writeCSVFile(path string, names []string, out map[string]flicker.FrameSeries) error {
	if path == "-" {
		return writeCSV(os.Stdout, names, out)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeCSV(f, names, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeCSV writes one row per frame: the timestamp followed by each source's flux.
// All series come from the same camera and share one time axis.
func writeCSV(w io.Writer, names []string, out map[string]flicker.FrameSeries) error {
	if len(names) == 0 {
		return errors.New("no series to write")
	}
	cw := csv.NewWriter(w)

	header := append([]string{"time_s"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	time := out[names[0]].Time
	row := make([]string, len(header))
	for i := range time {
		row[0] = strconv.FormatFloat(time[i], 'g', -1, 64)
		for j, name := range names {
			row[j+1] = strconv.FormatFloat(out[name].Phi[i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "flicker: %s.\n", err)
		os.Exit(1)
	}
}
