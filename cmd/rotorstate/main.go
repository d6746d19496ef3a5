// Command rotorstate loads a turbine layout and prints the state of every
// rotor component in it.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dm-vev/turbine/server/turbine"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func main() {
	var (
		configPath = flag.String("config", "turbine.toml", "path of the configuration file, created if it does not exist")
		layoutPath = flag.String("layout", "", "path of the TOML or YAML layout to load")
		dumpPath   = flag.String("dump", "", "if set, write the block states of all components to this file")
	)
	flag.Parse()

	if err := run(os.Stdout, *configPath, *layoutPath, *dumpPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, configPath, layoutPath, dumpPath string) error {
	uc, err := turbine.LoadConfig(configPath)
	if err != nil {
		return err
	}
	level, err := uc.LogLevel()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	conf, err := uc.Config(log)
	if err != nil {
		return err
	}
	h := conf.New()

	if layoutPath != "" {
		l, err := turbine.LoadLayout(layoutPath)
		if err != nil {
			return err
		}
		if err := l.Apply(h); err != nil {
			return err
		}
	}
	if err := printHost(w, h); err != nil {
		return err
	}
	if dumpPath != "" {
		return dump(h, dumpPath)
	}
	return nil
}

func printHost(w io.Writer, h *turbine.Host) error {
	title := cases.Title(language.English)
	for _, c := range h.Components() {
		state, err := h.State(c.Pos)
		if err != nil {
			return err
		}
		model, err := h.ModelVariant(c.Pos)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v %v %v: %v (model %d)\n", c.Pos, title.String(c.Variant.String()), title.String(c.Kind.String()), state, model)
	}
	for _, ctrl := range h.Controllers() {
		lo, hi := ctrl.Bounds()
		fmt.Fprintf(w, "turbine %v %v to %v: assembled=%v active=%v", ctrl.ID(), lo, hi, ctrl.Assembled(), ctrl.Active())
		if centre, ok := h.RotorCentre(ctrl.ID()); ok {
			fmt.Fprintf(w, " rotor centre=(%.1f,%.1f,%.1f)", centre[0], centre[1], centre[2])
		}
		fmt.Fprintln(w)
	}

	g := h.Grid()
	lo, hi := g.Bounds()
	fmt.Fprintf(w, "%d blocks, bounds (%.0f,%.0f,%.0f) to (%.0f,%.0f,%.0f), checksum %016x\n", g.Len(), lo[0], lo[1], lo[2], hi[0], hi[1], hi[2], g.Checksum())

	renders, resolves := h.Metrics().Snapshot()
	fmt.Fprintf(w, "%d render updates, %d state computations\n", total(renders), total(resolves))
	return nil
}

func total[K comparable](m map[K]uint64) (n uint64) {
	for _, v := range m {
		n += v
	}
	return n
}

func dump(h *turbine.Host, path string) error {
	states, err := h.BlockStates()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}
	if err := turbine.WriteStates(f, states); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
