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

package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lnsim/lnsim/logger"
	"github.com/lnsim/lnsim/prng"
	"github.com/lnsim/lnsim/progctx"
	"github.com/lnsim/lnsim/radiomodel"
	"github.com/lnsim/lnsim/randvar"
	"github.com/lnsim/lnsim/simulation"
	. "github.com/lnsim/lnsim/types"
)

const (
	Prompt = "> "
)

type CommandContext struct {
	context.Context
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

func (cc *CommandContext) outputStr(msg string) {
	_, _ = fmt.Fprint(cc.output, msg)
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

// Err returns the last error that occurred during command execution.
func (cc *CommandContext) Err() error {
	return cc.err
}

func (cc *CommandContext) outputItemsAsYaml(items interface{}) {
	var itemsYaml yaml.Node

	err := itemsYaml.Encode(items)
	logger.PanicIfError(err)

	for _, content := range itemsYaml.Content {
		content.Style = yaml.FlowStyle
	}

	data, err := yaml.Marshal(&itemsYaml)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

type CmdRunner struct {
	sim  *simulation.Simulation
	ctx  *progctx.ProgCtx
	help Help
}

func NewCmdRunner(ctx *progctx.ProgCtx, sim *simulation.Simulation) *CmdRunner {
	return &CmdRunner{
		ctx:  ctx,
		sim:  sim,
		help: newHelp(),
	}
}

func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		cmd := Command{}
		if err := parseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) GetPrompt() string {
	return fmt.Sprintf("%s%s", rt.sim.Model().GetName(), Prompt)
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Context: rt.ctx,
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Model != nil {
		rt.executeModel(cc, cmd.Model)
	} else if cmd.Exponent != nil {
		rt.executeExponent(cc, cmd.Exponent)
	} else if cmd.Reference != nil {
		rt.executeReference(cc, cmd.Reference)
	} else if cmd.Shadowing != nil {
		rt.executeShadowing(cc, cmd.Shadowing)
	} else if cmd.Variable != nil {
		rt.executeVariable(cc, cmd.Variable)
	} else if cmd.Stream != nil {
		rt.executeStream(cc, cmd.Stream)
	} else if cmd.Seed != nil {
		rt.executeSeed(cc, cmd.Seed)
	} else if cmd.Eval != nil {
		rt.executeEval(cc, cmd.Eval)
	} else if cmd.Sweep != nil {
		rt.executeSweep(cc, cmd.Sweep)
	} else if cmd.Config != nil {
		rt.executeConfig(cc, cmd.Config)
	} else if cmd.LogLevel != nil {
		rt.executeLogLevel(cc, cmd.LogLevel)
	} else if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
	} else if cmd.Exit != nil {
		rt.executeExit(cc, cmd.Exit)
	} else {
		logger.Panicf("unimplemented command: %#v", cmd)
	}
}

func (rt *CmdRunner) executeModel(cc *CommandContext, cmd *ModelCmd) {
	if len(cmd.Model) > 0 {
		model := radiomodel.NewLossModel(cmd.Model)
		if model == nil {
			cc.errorf("model '%v' is not defined", cmd.Model)
			return
		}
		if err := rt.sim.SetModelType(model.GetName()); err != nil {
			cc.error(err)
			return
		}
	}
	cc.outputf("%v\n", rt.sim.Model().GetName())
}

func (rt *CmdRunner) executeExponent(cc *CommandContext, cmd *ExponentCmd) {
	if cmd.Exponent != nil {
		n, err := cmd.Exponent.Float()
		if err == nil {
			err = rt.sim.SetExponent(n)
		}
		if err != nil {
			cc.error(err)
			return
		}
	}
	cc.outputf("%v\n", rt.sim.GetConfig().Model.Params.Exponent)
}

func (rt *CmdRunner) executeReference(cc *CommandContext, cmd *ReferenceCmd) {
	if cmd.Distance != nil {
		dist, err1 := cmd.Distance.Float()
		loss, err2 := cmd.Loss.Float()
		if err1 != nil || err2 != nil {
			cc.error(err1)
			cc.error(err2)
			return
		}
		if err := rt.sim.SetReference(dist, loss); err != nil {
			cc.error(err)
			return
		}
	}
	p := rt.sim.GetConfig().Model.Params
	cc.outputf("distance %v m, loss %v dB\n", p.ReferenceDistance, p.ReferenceLoss)
}

func (rt *CmdRunner) executeShadowing(cc *CommandContext, cmd *ShadowingCmd) {
	if cmd.Mean != nil {
		mean, err1 := cmd.Mean.Float()
		variance, err2 := cmd.Variance.Float()
		if err1 != nil || err2 != nil {
			cc.error(err1)
			cc.error(err2)
			return
		}
		if err := rt.sim.SetShadowing(mean, variance); err != nil {
			cc.error(err)
			return
		}
	}
	p := rt.sim.GetConfig().Model.Params
	cc.outputf("mean %v dB, variance %v dB^2\n", p.ShadowingMean, p.ShadowingVariance)
}

func (rt *CmdRunner) executeVariable(cc *CommandContext, cmd *VariableCmd) {
	if cmd.Spec != nil {
		if err := rt.sim.SetVariable(*cmd.Spec); err != nil {
			cc.error(err)
			return
		}
	}
	switch m := rt.sim.Model().(type) {
	case *radiomodel.LogNormalShadowing:
		cc.outputf("%v\n", m.GetShadowingVariable())
	case *radiomodel.RandomLoss:
		cc.outputf("%v\n", m.GetVariable())
	default:
		cc.outputf("none\n")
	}
}

func (rt *CmdRunner) executeStream(cc *CommandContext, cmd *StreamCmd) {
	var stream int64
	if cmd.Auto != nil {
		stream = randvar.AutoStream
	} else if cmd.Stream != nil {
		var err error
		if stream, err = cmd.Stream.Int(); err != nil {
			cc.error(err)
			return
		}
	} else {
		stream = int64(prng.NewUnitRandom() * math.MaxInt32)
	}
	n := rt.sim.AssignStreams(stream)
	if stream < 0 {
		cc.outputf("auto (%d stream(s))\n", n)
	} else {
		cc.outputf("%d (%d stream(s))\n", stream, n)
	}
}

func (rt *CmdRunner) executeSeed(cc *CommandContext, cmd *SeedCmd) {
	if cmd.Seed != nil {
		seed, err := cmd.Seed.Int()
		if err != nil {
			cc.error(err)
			return
		}
		run := rt.sim.GetConfig().Run
		if cmd.Run != nil {
			r, err := cmd.Run.Int()
			if err != nil || r < 0 {
				cc.errorf("invalid run number '%s'", cmd.Run.Val)
				return
			}
			run = uint64(r)
		}
		rt.sim.SetSeed(seed, run)
	}
	cc.outputf("seed %d, run %d\n", prng.GetSeed(), prng.GetRun())
}

func (rt *CmdRunner) executeEval(cc *CommandContext, cmd *EvalCmd) {
	a, b := NewVector(0, 0, 0), NewVector(0, 0, 0)
	if cmd.Distance != nil {
		d, err := cmd.Distance.Float()
		if err != nil {
			cc.error(err)
			return
		}
		b.X = d
	} else {
		var err error
		if a, err = cmd.From.vector(); err != nil {
			cc.error(err)
			return
		}
		if b, err = cmd.To.vector(); err != nil {
			cc.error(err)
			return
		}
	}

	txPower := rt.sim.GetConfig().Sweep.TxPowerDbm
	if cmd.TxPower != nil {
		var err error
		if txPower, err = cmd.TxPower.Float(); err != nil {
			cc.error(err)
			return
		}
	}
	count := 1
	if cmd.Count != nil {
		count = *cmd.Count
	}
	if count <= 0 {
		cc.errorf("count must be positive")
		return
	}

	for i := 0; i < count; i++ {
		cc.outputf("%.4f\n", rt.sim.Evaluate(txPower, a, b))
	}
}

func (p *Position) vector() (Vector, error) {
	x, err := p.X.Float()
	if err != nil {
		return Vector{}, err
	}
	y, err := p.Y.Float()
	if err != nil {
		return Vector{}, err
	}
	z, err := p.Z.Float()
	if err != nil {
		return Vector{}, err
	}
	return NewVector(x, y, z), nil
}

func (rt *CmdRunner) executeSweep(cc *CommandContext, cmd *SweepCmd) {
	sweep := rt.sim.GetConfig().Sweep
	var err error
	if cmd.Start != nil {
		if sweep.Start, err = cmd.Start.Float(); err != nil {
			cc.error(err)
			return
		}
		if sweep.Stop, err = cmd.Stop.Float(); err != nil {
			cc.error(err)
			return
		}
		if sweep.Step, err = cmd.Step.Float(); err != nil {
			cc.error(err)
			return
		}
	}
	if cmd.TxPower != nil {
		if sweep.TxPowerDbm, err = cmd.TxPower.Float(); err != nil {
			cc.error(err)
			return
		}
	}
	if cmd.Samples != nil {
		sweep.Samples = *cmd.Samples
	}

	samples := make([]simulation.Sample, 0, sweep.Samples)
	err = rt.sim.Sweep(rt.ctx, sweep, func(sample simulation.Sample) error {
		samples = append(samples, sample)
		return nil
	})
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputItemsAsYaml(samples)
}

func (rt *CmdRunner) executeConfig(cc *CommandContext, cmd *ConfigCmd) {
	if cmd.Load != nil {
		cfg, err := simulation.LoadConfigFile(*cmd.Load)
		if err != nil {
			cc.error(err)
			return
		}
		sim, err := simulation.NewSimulation(cfg)
		if err != nil {
			cc.error(err)
			return
		}
		rt.sim = sim
		logger.Infof("loaded config '%s'", *cmd.Load)
	}

	data, err := yaml.Marshal(rt.sim.ExportConfig())
	logger.PanicIfError(err)

	if cmd.Save != nil {
		if err = os.WriteFile(*cmd.Save, data, 0644); err != nil {
			cc.error(errors.Wrapf(err, "writing config file '%s'", *cmd.Save))
		}
		return
	}
	cc.outputStr(string(data))
}

func (rt *CmdRunner) executeLogLevel(cc *CommandContext, cmd *LogLevelCmd) {
	if cmd.Level == "" {
		cc.outputf("%v\n", logger.GetLevelString(logger.GetLevel()))
	} else {
		lv, err := logger.ParseLevelString(cmd.Level)
		if err != nil {
			cc.error(err)
			return
		}
		logger.SetLevel(lv)
	}
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if len(cmd.HelpTopic) > 0 {
		cc.outputStr(rt.help.outputCommandHelp(cmd.HelpTopic))
	} else {
		cc.outputStr(rt.help.outputGeneralHelp())
	}
}

func (rt *CmdRunner) executeExit(cc *CommandContext, cmd *ExitCmd) {
	rt.ctx.Cancel("exit")
}
