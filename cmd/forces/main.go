// Command forces runs the forces automaton in the terminal: an interactive
// editor with -n, otherwise a batch run that prints the final grid.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"force-ca/internal/app"
	"force-ca/internal/runner"
	"force-ca/internal/session"
	"force-ca/internal/tui"

	"github.com/integrii/flaggy"
)

type envOptions struct {
	interactive bool
	exportPath  string
}

func main() {
	eo, cfg := initOptions()

	s, lib, err := cfg.NewSession()
	if err != nil {
		log.Fatal(err)
	}

	if eo.interactive {
		ui, err := tui.NewConsoleUI(s, lib, tui.Options{ExportPath: eo.exportPath, TPS: cfg.TPS})
		if err != nil {
			log.Fatal(err)
		}
		r := runner.New(tui.Target{S: s}, &runner.Options{Interval: cfg.Interval}, nil)
		r.RegisterViewer(ui)
		err = ui.Start()
		r.Close()
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	batch(s, cfg)
}

func batch(s *session.Session, cfg *app.Config) {
	if cfg.MaxSteps <= 0 {
		flaggy.ShowHelpAndExit("batch mode needs a positive maxSteps")
	}
	m := s.Machine()
	mc := m.Config()
	fmt.Printf("Forces simulation started...\n")
	fmt.Printf("  Dimension: %v x %v\n", mc.Rows, mc.Cols)
	fmt.Printf("  Tie-break: %v\n", mc.TieBreak)
	fmt.Printf("  Max generations: %v\n", cfg.MaxSteps)

	stateCh := make(chan runner.Status, 10)
	r := runner.New(m, &runner.Options{Interval: cfg.Interval, MaxSteps: cfg.MaxSteps}, stateCh)

	startTime := time.Now()
	r.Run()
	for st := range stateCh {
		if st.Mode == runner.StateFinished {
			totalTime := time.Since(startTime).Round(time.Millisecond)
			fmt.Printf("Finished, generation: %v, population: %v, total running time: %v\n", st.Generation, st.Population, totalTime)
			break
		}
		if st.Mode == runner.StateRun && st.Generation > 0 && st.Generation%10 == 0 {
			log.Printf("generation %v, population %v, step time %v", st.Generation, st.Population, st.StepTime)
		}
	}

	var final string
	r.Sync(func() { final = m.Grid().Encode(m.Grid().Whole()) })
	r.Close()
	fmt.Println(final)
}

func initOptions() (*envOptions, *app.Config) {
	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	eo := &envOptions{exportPath: "selection.yaml"}

	flaggy.SetName("forces")
	flaggy.SetDescription("Forces cellular automaton")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	cfg.BindFlaggy(flaggy.DefaultParser)
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start the interactive editor")
	flaggy.String(&eo.exportPath, "o", "export", "File the editor exports the selection to")
	flaggy.Parse()

	return eo, cfg
}
