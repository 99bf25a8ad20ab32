//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"force-ca/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sess, lib, err := cfg.NewSession()
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sess, lib, cfg.Scale, cfg.HUD)
	g := sess.Grid()

	ebiten.SetWindowTitle("force-ca - " + sess.Machine().Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(g.Cols()*cfg.Scale+max(cfg.HUD, 0), g.Rows()*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
