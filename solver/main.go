/* Copyright 2021, Arkadiusz Zarychta, arkadiusz.zarychta@h-brs.de */

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	"git.solver4all.com/azaryc2s/rpq"
)

var (
	inputs      rpq.ArrayStringFlags
	outputF     *string
	configF     *string
	resolver    *string
	strat       *string
	engine      *string
	maxNodes    *int
	parallelism *int
	verify      *bool
	logLvl      *int
)

func main() {
	flag.Var(&inputs, "input", "Path to an input instance (.json or plain r p q text). Can be given multiple times")
	outputF = flag.String("output", "", "Path to the output file. By default the input json will be overwritten adding the solution. Only valid with a single input")
	configF = flag.String("config", "", "Path to a yaml config file. Flags given explicitly override its values")
	resolver = flag.String("resolver", rpq.RESOLVER_CARLIER, "Resolver to use. Possible: {SCHRAGE, SCHRAGE_PMTN, CARLIER, BRUTEFORCE}")
	strat = flag.String("strat", rpq.STRAT_DFS, "Search strategy of the branch and bound. Possible: {DFS, BEST, BFS}")
	engine = flag.String("engine", rpq.ENGINE_LOGN, "Schrage implementation. LOGN (heaps, default) or N2")
	maxNodes = flag.Int("maxNodes", 0, "Node limit of the branch and bound. 0 means no limit; when reached the best solution found is stored as not optimal")
	parallelism = flag.Int("parallel", 1, "Number of instances solved at the same time")
	verify = flag.Bool("verify", true, "Recompute the Cmax of every found order")
	logLvl = flag.Int("log", 2, "Level of the logging output. Higher value is more verbose. Range 1-4")

	flag.Parse()
	if len(inputs) == 0 {
		inputs.Set("input.json")
	}

	cfg := rpq.DefaultConfig()
	var err error
	if *configF != "" {
		cfg, err = rpq.LoadConfig(*configF)
		if err != nil {
			rpq.InitLoggers(cfg.LogLevel)
			rpq.Log(1, "At %s: %s\n", *configF, err.Error())
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "resolver":
			cfg.Resolver = *resolver
		case "strat":
			cfg.Strategy = *strat
		case "engine":
			cfg.Engine = *engine
		case "maxNodes":
			cfg.MaxNodes = *maxNodes
		case "parallel":
			cfg.Parallelism = *parallelism
		case "verify":
			cfg.Verify = *verify
		case "log":
			cfg.LogLevel = *logLvl
		}
	})
	rpq.InitLoggers(cfg.LogLevel)
	if err = cfg.Validate(); err != nil {
		rpq.Log(1, "Invalid settings: %s\n", err.Error())
		os.Exit(1)
	}
	if *outputF != "" && len(inputs) > 1 {
		rpq.Log(1, "-output can only be used with a single input, got %d\n", len(inputs))
		os.Exit(1)
	}

	var insts []*rpq.RPQInstance
	for _, inputF := range inputs {
		inst, err := rpq.LoadFile(inputF)
		if err != nil {
			rpq.Log(1, "At %s: %s\n", inputF, err.Error())
			os.Exit(1)
		}
		insts = append(insts, inst)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err = rpq.SolveBatch(ctx, insts, cfg); err != nil {
		rpq.Log(1, "%s\n", err.Error())
		os.Exit(1)
	}

	for i, inst := range insts {
		writeSolution(inputs[i], inst)
	}
}

func writeSolution(inputF string, inst *rpq.RPQInstance) {
	var fileName string
	if *outputF != "" {
		fileName = *outputF
	} else if strings.HasSuffix(inputF, ".json") {
		fileName = inputF //overwrite the input file
	} else {
		fileName = inputF + ".json"
	}
	if err := rpq.WriteInstance(fileName, inst); err != nil {
		rpq.Log(1, "At %s: %s\n", fileName, err.Error())
		return
	}
	rpq.Log(3, "Wrote solution of %s to %s", inst.Name, fileName)
}
