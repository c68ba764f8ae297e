package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/eitancoronel/AI-Rummikub/config"
	"github.com/eitancoronel/AI-Rummikub/engine"
	"github.com/eitancoronel/AI-Rummikub/experiments"
	"github.com/eitancoronel/AI-Rummikub/experiments/metrics"
	"github.com/eitancoronel/AI-Rummikub/server"
	"github.com/eitancoronel/AI-Rummikub/strategy"
)

func main() {
	mode := flag.String("mode", "game", "game, experiment or serve")
	agent1 := flag.String("agent1", "greedy", "strategy for seat 0 (random, greedy, mcts)")
	agent2 := flag.String("agent2", "random", "strategy for seat 1 (random, greedy, mcts)")
	games := flag.Int("games", 1, "number of games to play in game mode")
	seed := flag.Uint64("seed", 0, "rng seed, 0 picks a fixed default")
	configPath := flag.String("config", "", "optional YAML config file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Experiment.Seed = *seed
	}

	switch *mode {
	case "game":
		if err := runGames(*agent1, *agent2, *games, cfg.Experiment.Seed); err != nil {
			log.Fatal().Err(err).Msg("game run failed")
		}
	case "experiment":
		suite := suiteFromConfig(cfg)
		dir, err := experiments.Run(suite)
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		fmt.Printf("experiment records written to %s\n", dir)
	case "serve":
		if err := server.New(cfg.Server.Addr, cfg.Experiment.Seed).ListenAndServe(); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

func runGames(kind1, kind2 string, games int, seed uint64) error {
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	s1, err := strategy.New(strategy.Kind(kind1), rng)
	if err != nil {
		return err
	}
	s2, err := strategy.New(strategy.Kind(kind2), rng)
	if err != nil {
		return err
	}

	wins := [2]int{}
	ties := 0
	for i := 0; i < games; i++ {
		e := engine.New(rng, [2]strategy.Strategy{s1, s2})
		outcome, err := e.Run()
		if err != nil {
			return err
		}
		switch outcome.Winner {
		case -1:
			ties++
		default:
			wins[outcome.Winner]++
		}
		log.Info().Int("game", i+1).Int("winner", outcome.Winner).Int("turns", outcome.Turns).Msg("game finished")
	}

	fmt.Printf("%s (seat 0): %d wins\n", kind1, wins[0])
	fmt.Printf("%s (seat 1): %d wins\n", kind2, wins[1])
	fmt.Printf("ties: %d\n", ties)
	return nil
}

func suiteFromConfig(cfg config.Config) experiments.Suite {
	agents := make([]metrics.AgentConfig, len(cfg.Agents))
	for i, a := range cfg.Agents {
		agents[i] = metrics.AgentConfig{
			ID:              a.ID,
			Kind:            strategy.Kind(a.Kind),
			Episodes:        a.Episodes,
			RolloutsPerNode: a.RolloutsPerNode,
			RolloutDepth:    a.RolloutDepth,
		}
	}

	// Every distinct pair of configured agents plays each other.
	var matchups [][2]int
	for i := 0; i < len(agents); i++ {
		for j := i + 1; j < len(agents); j++ {
			matchups = append(matchups, [2]int{agents[i].ID, agents[j].ID})
		}
	}

	return experiments.Suite{
		Name:     cfg.Experiment.Name,
		Games:    cfg.Experiment.Games,
		Seed:     cfg.Experiment.Seed,
		Agents:   agents,
		Matchups: matchups,
	}
}
