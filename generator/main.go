package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"git.solver4all.com/azaryc2s/rpq"
)

var jobs rpq.ArrayIntFlags
var name *string
var output *string
var count *int
var rngStart *int
var rngEnd *int
var seed *int64

func main() {
	flag.Var(&jobs, "n", "List of number of jobs")
	name = flag.String("name", "rpq", "Name for the instance")
	output = flag.String("outputDir", ".", "Output directory")
	count = flag.Int("count", 1, "Number of instances per job count")
	rngStart = flag.Int("rngStart", 1, "The lowest value for r, p and q")
	rngEnd = flag.Int("rngEnd", 100, "The upper bound (exclusive) for r, p and q")
	seed = flag.Int64("seed", 0, "Seed of the random generator. 0 takes the current time")

	flag.Parse()
	if len(jobs) == 0 {
		log.Printf("No job counts given, use -n")
		return
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	for l := 0; l < *count; l++ {
		for _, n := range jobs {
			instName := fmt.Sprintf("%s_%d_%d", *name, n, l)
			inst, err := rpq.RandomInstance(instName, n, *rngStart, *rngEnd, rng)
			if err != nil {
				log.Fatal(err)
			}
			inst.Comment = fmt.Sprintf("%s instance Nr. %d with %d jobs, values drawn from [%d,%d) with seed %d", *name, l, n, *rngStart, *rngEnd, *seed)
			err = rpq.WriteInstance(fmt.Sprintf("%s/%s.json", *output, instName), inst)
			if err != nil {
				log.Fatal(err)
			}
		}
	}
}
