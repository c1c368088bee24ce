// pgnbook loads a PGN game (replayed from its FEN tag when it has one)
// alongside an opening-catalog CSV and reports the book classification of the
// resulting line, plus its available continuations. Without -pgn it reports
// on the standard starting position; there is no option to pass a bare FEN.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/herohde/chesspractice/pkg/session"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

var (
	pgnPath     = flag.String("pgn", "", "Path to a PGN game file")
	catalogPath = flag.String("catalog", "", "Path to an opening-catalog CSV (required)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: pgnbook -catalog=openings.csv [-pgn=game.pgn]

pgnbook reports the named opening (or "Book Move" if more than one opening
shares the line) for the final position of a PGN game, and lists the book's
continuations from there.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	logw.Infof(ctx, "pgnbook %v", version)

	if *catalogPath == "" {
		flag.Usage()
		logw.Exitf(ctx, "Missing -catalog")
	}

	f, err := os.Open(*catalogPath)
	if err != nil {
		logw.Exitf(ctx, "Cannot open catalog %v: %v", *catalogPath, err)
	}
	defer f.Close()

	s := session.New(ctx, "pgnbook")
	if err := s.LoadOpeningCatalog(ctx, f); err != nil {
		logw.Exitf(ctx, "Invalid catalog %v: %v", *catalogPath, err)
	}

	if *pgnPath != "" {
		data, err := os.ReadFile(*pgnPath)
		if err != nil {
			logw.Exitf(ctx, "Cannot open PGN %v: %v", *pgnPath, err)
		}
		moves, err := s.LoadPGN(ctx, string(data))
		if err != nil {
			logw.Exitf(ctx, "Invalid PGN %v: %v", *pgnPath, err)
		}
		logw.Infof(ctx, "Loaded %v moves from %v", len(moves), *pgnPath)
	}

	if op, ok := s.CurrentOpening(); ok {
		if v, has := op.Variation.V(); has {
			fmt.Printf("opening: %v (%v)\n", op.Name, v)
		} else {
			fmt.Printf("opening: %v\n", op.Name)
		}
	} else {
		fmt.Println("opening: <not in book>")
	}

	conts, ok := s.Continuations()
	if !ok || len(conts) == 0 {
		fmt.Println("continuations: none")
		return
	}
	fmt.Println("continuations:")
	for _, c := range conts {
		if c.HasOpening {
			fmt.Printf("  %v -> %v\n", c.SAN, c.Opening.Name)
		} else {
			fmt.Printf("  %v\n", c.SAN)
		}
	}
}
