// Copyright (c) 2024, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package lnsim_main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/pkg/errors"

	"github.com/lnsim/lnsim/cli"
	"github.com/lnsim/lnsim/logger"
	"github.com/lnsim/lnsim/progctx"
	"github.com/lnsim/lnsim/simulation"
)

type MainArgs struct {
	Seed       int64
	Run        uint64
	ConfigFile string
	LogLevel   string
	Batch      bool

	seedSet bool
	runSet  bool
}

func parseArgs(arguments []string, errOutput io.Writer) (*MainArgs, error) {
	args := &MainArgs{}
	fs := flag.NewFlagSet("lnsim", flag.ContinueOnError)
	fs.SetOutput(errOutput)

	fs.Int64Var(&args.Seed, "seed", simulation.DefaultSeed, "set the root seed of all random streams (0: time-based)")
	fs.Uint64Var(&args.Run, "run", simulation.DefaultRun, "set the run number, for independent replications with the same seed")
	fs.StringVar(&args.ConfigFile, "config", "", "load the experiment configuration from a YAML file")
	fs.StringVar(&args.LogLevel, "log", "warn", "set logging level: micro, trace, debug, info, note, warn, error, off")
	fs.BoolVar(&args.Batch, "batch", false, "run the configured sweep, print 'distance tx rx' per sample and exit")

	if err := fs.Parse(arguments); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected argument '%s'", fs.Arg(0))
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			args.seedSet = true
		case "run":
			args.runSet = true
		}
	})
	return args, nil
}

// createConfig loads the configuration file, if any; explicit -seed and -run flags override the file.
func createConfig(args *MainArgs) (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if len(args.ConfigFile) > 0 {
		var err error
		if cfg, err = simulation.LoadConfigFile(args.ConfigFile); err != nil {
			return nil, err
		}
	}
	if args.seedSet || len(args.ConfigFile) == 0 {
		cfg.Seed = args.Seed
	}
	if args.runSet || len(args.ConfigFile) == 0 {
		cfg.Run = args.Run
	}
	return cfg, nil
}

// Main runs the program with the given command line arguments, until the console exits, the batch
// sweep completes or ctx is cancelled.
func Main(ctx *progctx.ProgCtx, arguments []string, cliOptions *cli.CliOptions) error {
	args, err := parseArgs(arguments, os.Stderr)
	if err != nil {
		return err
	}
	level, err := logger.ParseLevelString(args.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	cfg, err := createConfig(args)
	if err != nil {
		return err
	}
	sim, err := simulation.NewSimulation(cfg)
	if err != nil {
		return err
	}
	ctx.CancelOnSignal(syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)

	if args.Batch {
		err = RunBatch(ctx, sim, os.Stdout)
		ctx.Cancel(err)
		ctx.Wait()
		return err
	}

	logger.SetStdoutCallback(cli.Cli)
	ctx.Defer(func() {
		_ = os.Stdin.Close()
	})
	rt := cli.NewCmdRunner(ctx, sim)
	go func() {
		err := cli.Cli.Run(rt, cliOptions)
		ctx.Cancel(errors.Wrapf(err, "console exit"))
	}()

	<-ctx.Done()
	logger.Debugf("waiting for lnsim to stop gracefully ...")
	ctx.Wait()
	if reason := ctx.Reason(); reason != nil && errors.Cause(reason) != context.Canceled {
		return reason
	}
	return nil
}

// RunBatch runs the configured sweep of sim and writes one 'distance tx rx' line per sample to w.
func RunBatch(ctx context.Context, sim *simulation.Simulation, w io.Writer) error {
	bw := bufio.NewWriter(w)
	err := sim.Sweep(ctx, sim.GetConfig().Sweep, func(sample simulation.Sample) error {
		_, err := fmt.Fprintf(bw, "%g %g %g\n", sample.Distance, sample.TxPowerDbm, sample.RxPowerDbm)
		return err
	})
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	return err
}
