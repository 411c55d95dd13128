// fenrir-perft walks the legal move tree of a position to a fixed depth
// and reports node counts, the standard way to validate move generation
// against known-good figures. Results can be cached in the on-disk store
// so repeated runs over deep trees are instant.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ogmore/fenrir/internal/board"
	"github.com/ogmore/fenrir/internal/storage"
)

var (
	fen        = flag.String("fen", "", "position to count (default: the variant's start position)")
	variant    = flag.String("variant", "standard", "standard, antichess, atomic, crazyhouse, threecheck or kingofthehill")
	depth      = flag.Int("depth", 5, "perft depth")
	divide     = flag.Bool("divide", false, "print per-root-move subtotals")
	useCache   = flag.Bool("cache", false, "cache results in the on-disk store")
	verbose    = flag.Bool("v", false, "debug logging")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal().Err(err).Msg("create cpu profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("start cpu profile")
		}
		defer pprof.StopCPUProfile()
	}

	v, err := board.ParseVariant(*variant)
	if err != nil {
		log.Fatal().Err(err).Msg("bad variant")
	}

	position := *fen
	if position == "" {
		position = board.StartingFEN(v)
	}
	pos, err := board.NewPosition(position, v)
	if err != nil {
		log.Fatal().Err(err).Str("fen", position).Msg("bad position")
	}

	var store *storage.Store
	if *useCache {
		store, err = storage.Open(log)
		if err != nil {
			log.Fatal().Err(err).Msg("open store")
		}
		defer store.Close()
	}

	if *divide {
		runDivide(pos, *depth)
		return
	}

	if store != nil {
		if nodes, ok, err := store.LoadPerft(pos, *depth); err != nil {
			log.Warn().Err(err).Msg("cache lookup failed")
		} else if ok {
			log.Debug().Msg("cache hit")
			fmt.Println(nodes)
			return
		}
	}

	start := time.Now()
	nodes := pos.Perft(*depth)
	elapsed := time.Since(start)

	log.Info().
		Int("depth", *depth).
		Uint64("nodes", nodes).
		Dur("elapsed", elapsed).
		Float64("mnps", float64(nodes)/1e6/elapsed.Seconds()).
		Msg("perft complete")
	fmt.Println(nodes)

	if store != nil {
		if err := store.SavePerft(pos, *depth, nodes); err != nil {
			log.Warn().Err(err).Msg("cache store failed")
		}
		if err := store.TouchPosition(pos); err != nil {
			log.Warn().Err(err).Msg("position record failed")
		}
	}
}

func runDivide(pos *board.Position, depth int) {
	counts := pos.Divide(depth)

	moves := make([]string, 0, len(counts))
	for m := range counts {
		moves = append(moves, m)
	}
	sort.Strings(moves)

	var total uint64
	for _, m := range moves {
		fmt.Printf("%s: %d\n", m, counts[m])
		total += counts[m]
	}
	fmt.Printf("total: %d\n", total)
}
