package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/input"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/render"
)

const clearScreen = "\033[H\033[2J"

var errQuit = errors.New("quit")

type terminal struct {
	in    io.Reader
	out   io.Writer
	clear bool

	scanner *bufio.Scanner
}

func (t *terminal) readLine() (string, error) {
	if t.scanner == nil {
		t.scanner = bufio.NewScanner(t.in)
	}
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return t.scanner.Text(), nil
}

func (t *terminal) draw(s *mines.Session, message string) error {
	if t.clear {
		fmt.Fprint(t.out, clearScreen)
	}
	view := s.View()
	if err := render.Grid(t.out, view); err != nil {
		return err
	}
	if err := render.Status(t.out, view); err != nil {
		return err
	}
	if message != "" {
		fmt.Fprintln(t.out, message)
	}
	return nil
}

// run deals rounds until the input ends or the player quits.
func (t *terminal) run(params mines.GameParams, rnd mines.Source) error {
	s := mines.NewSession(rnd)
	for round := 1; ; round++ {
		if err := s.Start(params); err != nil {
			return err
		}
		log.WithField("round", round).Debug("new round")

		err := t.round(s)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(t.out, "Press enter to play again, q to quit.")
		line, err := t.readLine()
		if errors.Is(err, errQuit) || line == "q" {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// round plays one session until it is lost.
func (t *terminal) round(s *mines.Session) error {
	message := ""
	for {
		if err := t.draw(s, message); err != nil {
			return err
		}
		message = ""

		fmt.Fprint(t.out, "Enter X Y (o X Y to open, f X Y to flag, q to quit): ")
		line, err := t.readLine()
		if err != nil {
			return err
		}

		cmd, err := input.Parse(line)
		if errors.Is(err, input.ErrEmpty) {
			continue
		}
		if err != nil {
			message = err.Error()
			continue
		}

		switch cmd.Move {
		case input.Quit:
			return errQuit
		case input.Flag:
			if _, err := s.Flag(cmd.X, cmd.Y); err != nil {
				message = err.Error()
			}
		case input.Open:
			outcome, err := s.Reveal(cmd.X, cmd.Y)
			if err != nil {
				message = err.Error()
				continue
			}
			log.WithFields(logrus.Fields{
				"x":       cmd.X,
				"y":       cmd.Y,
				"outcome": outcome,
			}).Debug("reveal")
			if !outcome.Safe() {
				return t.draw(s, "Game over: You hit a bomb!!")
			}
		}
	}
}
