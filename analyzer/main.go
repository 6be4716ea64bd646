package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"git.solver4all.com/azaryc2s/rpq"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "analyzer"
	app.Usage = "print a csv summary of all solved instances in a directory"
	app.ArgsUsage = "DIR"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "only-unproven",
			Usage: "list only instances without a proven optimum",
		},
		cli.BoolFlag{
			Name:  "no-color",
			Usage: "do not color the warnings",
		},
	}
	app.Action = analyze

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func analyze(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.NewExitError("No directory passed!", 1)
	}
	dirName := c.Args().First()
	dir, err := ioutil.ReadDir(dirName)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Couldn't open directory %s: %s", dirName, err.Error()), 1)
	}
	warn := func(color chalk.Color, format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		if !c.Bool("no-color") {
			msg = color.Color(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
	}

	fmt.Println(rpq.SummaryHeader)
	for _, f := range dir {
		fileName := dirName + "/" + f.Name()
		if !strings.HasSuffix(fileName, ".json") {
			continue
		}
		inst, err := rpq.LoadFile(fileName)
		if err != nil {
			warn(chalk.Red, "Couldn't read %s: %s", f.Name(), err.Error())
			continue
		}
		if inst.Solution == nil {
			warn(chalk.Yellow, "No solution for %s", inst.Name)
			continue
		}
		s, err := rpq.Summarize(inst)
		if err != nil {
			warn(chalk.Red, "Couldn't analyze %s: %s", inst.Name, err.Error())
			continue
		}
		if c.Bool("only-unproven") && s.Optimal {
			continue
		}
		if !s.Valid {
			warn(chalk.Red, "Invalid solution for %s:%s", s.Name, s.Comment)
		} else if !s.Optimal {
			warn(chalk.Yellow, "Optimality of %s is unproven (gap %.4f)", s.Name, s.Gap)
		}
		fmt.Println(s.CSV())
	}
	return nil
}
