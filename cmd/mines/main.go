package main

import (
	"flag"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	log = logrus.New()

	configPath string
	board      string
	verbose    bool
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
	flag.StringVar(&board, "board", "", `board as "width:height:mines", overrides the config`)
	flag.BoolVar(&verbose, "v", false, "log to stderr")
}

func main() {
	flag.Parse()

	c, err := config.Load(configPath)
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}

	// the board owns the terminal; logs go to the log file unless asked for
	var logOut io.Writer = io.Discard
	if verbose {
		logOut = os.Stderr
	}
	if err := logging.Setup(log, logOut, c); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	params := c.Board.Params()
	if board != "" {
		p, err := mines.ParseSeed(board)
		if err != nil {
			log.Fatal("invalid board: ", err)
		}
		params = *p
	}

	log.WithFields(c.Fields()).WithField("params", params.Seed()).Debug("starting")

	t := &terminal{
		in:    os.Stdin,
		out:   os.Stdout,
		clear: term.IsTerminal(int(os.Stdout.Fd())),
	}
	if err := t.run(params, mines.NewSource()); err != nil {
		log.Fatal(err)
	}
}
