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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lnsim/lnsim/logger"
	"github.com/lnsim/lnsim/progctx"
	"github.com/lnsim/lnsim/simulation"
)

func TestParseBytes(t *testing.T) {
	var cmd Command
	assert.NotNil(t, parseBytes([]byte("wrongcmd"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("model"), &cmd))
	assert.True(t, cmd.Model != nil && cmd.Model.Model == "")
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("model logdistance"), &cmd))
	assert.Equal(t, "logdistance", cmd.Model.Model)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("exponent 2.5"), &cmd))
	assert.Equal(t, "2.5", cmd.Exponent.Exponent.Val)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("exponent"), &cmd))
	assert.Nil(t, cmd.Exponent.Exponent)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("reference 1 -40.5"), &cmd))
	assert.Equal(t, "1", cmd.Reference.Distance.Val)
	assert.Equal(t, "-40.5", cmd.Reference.Loss.Val)
	assert.NotNil(t, parseBytes([]byte("reference 1"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("shadowing 0 1e-3"), &cmd))
	assert.Equal(t, "1e-3", cmd.Shadowing.Variance.Val)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte(`variable "ns3::NormalRandomVariable[Mean=0|Variance=4]"`), &cmd))
	assert.Equal(t, "ns3::NormalRandomVariable[Mean=0|Variance=4]", *cmd.Variable.Spec)
	assert.NotNil(t, parseBytes([]byte(`variable Normal`), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("stream 7"), &cmd))
	assert.Equal(t, "7", cmd.Stream.Stream.Val)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("stream auto"), &cmd))
	assert.NotNil(t, cmd.Stream.Auto)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("stream"), &cmd))
	assert.True(t, cmd.Stream.Auto == nil && cmd.Stream.Stream == nil)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("seed -3 run 2"), &cmd))
	assert.Equal(t, "-3", cmd.Seed.Seed.Val)
	assert.Equal(t, "2", cmd.Seed.Run.Val)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("seed 5"), &cmd))
	assert.Nil(t, cmd.Seed.Run)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("eval 5000"), &cmd))
	assert.Equal(t, "5000", cmd.Eval.Distance.Val)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("eval from 0 0 0 to 3 -4 1.5 tx 15 n 3"), &cmd))
	assert.Nil(t, cmd.Eval.Distance)
	assert.Equal(t, "-4", cmd.Eval.To.Y.Val)
	assert.Equal(t, "15", cmd.Eval.TxPower.Val)
	assert.Equal(t, 3, *cmd.Eval.Count)
	assert.NotNil(t, parseBytes([]byte("eval"), &cmd))
	assert.NotNil(t, parseBytes([]byte("eval from 0 0 0"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("sweep 50 200 50 tx 20 samples 10"), &cmd))
	assert.Equal(t, "200", cmd.Sweep.Stop.Val)
	assert.Equal(t, 10, *cmd.Sweep.Samples)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("sweep samples 10"), &cmd))
	assert.Nil(t, cmd.Sweep.Start)
	assert.NotNil(t, parseBytes([]byte("sweep 50 200"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte(`config load "exp.yaml"`), &cmd))
	assert.Equal(t, "exp.yaml", *cmd.Config.Load)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("config"), &cmd))
	assert.True(t, cmd.Config.Load == nil && cmd.Config.Save == nil)

	assert.True(t, parseBytes([]byte("loglevel debug"), &cmd) == nil && cmd.LogLevel != nil)
	assert.True(t, parseBytes([]byte("log W"), &cmd) == nil && cmd.LogLevel != nil)
	assert.True(t, parseBytes([]byte("help"), &cmd) == nil && cmd.Help != nil)
	assert.True(t, parseBytes([]byte("help sweep"), &cmd) == nil && cmd.Help != nil)
	assert.True(t, parseBytes([]byte("exit"), &cmd) == nil && cmd.Exit != nil)
}

func newTestRunner(t *testing.T) *CmdRunner {
	cfg := simulation.DefaultConfig()
	cfg.Seed = 3
	sim, err := simulation.NewSimulation(cfg)
	assert.Nil(t, err)
	return NewCmdRunner(progctx.New(context.Background()), sim)
}

func runCommand(t *testing.T, rt *CmdRunner, cmdline string) string {
	var output bytes.Buffer
	assert.Nil(t, rt.HandleCommand(cmdline, &output))
	return output.String()
}

func TestModelCommands(t *testing.T) {
	rt := newTestRunner(t)
	assert.Equal(t, "lognormal> ", rt.GetPrompt())

	assert.Equal(t, "lognormal\nDone\n", runCommand(t, rt, "model"))
	assert.Equal(t, "logdistance\nDone\n", runCommand(t, rt, "model LogDistance"))
	assert.Equal(t, "logdistance> ", rt.GetPrompt())
	assert.Equal(t, "Error: model 'tworay' is not defined\n", runCommand(t, rt, "model tworay"))

	assert.Equal(t, "2.5\nDone\n", runCommand(t, rt, "exponent 2.5"))
	assert.Equal(t, "distance 1 m, loss 40 dB\nDone\n", runCommand(t, rt, "reference 1 40"))
	assert.Equal(t, "-50.0000\nDone\n", runCommand(t, rt, "eval 10 tx 15"))
	assert.Contains(t, runCommand(t, rt, "reference 0 40"), "Error: ")
	assert.Contains(t, runCommand(t, rt, "shadowing 0 4"), "Error: ")

	assert.Equal(t, "lognormal\nDone\n", runCommand(t, rt, "model lognormal"))
	assert.Equal(t, "mean 0 dB, variance 0 dB^2\nDone\n", runCommand(t, rt, "shadowing"))
	assert.Equal(t, "mean 1 dB, variance 0 dB^2\nDone\n", runCommand(t, rt, "shadowing 1 0"))
	assert.Equal(t, "-51.0000\n-51.0000\nDone\n", runCommand(t, rt, "eval from 0 0 0 to 6 8 0 tx 15 n 2"))
	assert.Contains(t, runCommand(t, rt, "shadowing 0 -4"), "Error: ")
	assert.Contains(t, runCommand(t, rt, "eval 10 n 0"), "Error: ")
	assert.Equal(t, "Normal[Mean=1|Variance=0]\nDone\n", runCommand(t, rt, "variable"))
}

func TestVariableAndStreamCommands(t *testing.T) {
	rt := newTestRunner(t)

	assert.Equal(t, "random\nDone\n", runCommand(t, rt, "model random"))
	assert.Equal(t, "Constant[Constant=1]\nDone\n", runCommand(t, rt, "variable"))
	assert.Equal(t, "Uniform[Min=20|Max=100]\nDone\n", runCommand(t, rt, `variable "ns3::UniformRandomVariable[Min=20|Max=100]"`))
	assert.Contains(t, runCommand(t, rt, `variable "Uniform[Min=100|Max=20]"`), "Error: ")
	assert.Contains(t, runCommand(t, rt, "exponent 2"), "Error: ")

	assert.Equal(t, "7 (1 stream(s))\nDone\n", runCommand(t, rt, "stream 7"))
	first := runCommand(t, rt, "eval 10 n 3")
	runCommand(t, rt, "stream 8")
	assert.NotEqual(t, first, runCommand(t, rt, "eval 10 n 3"))
	runCommand(t, rt, "stream 7")
	assert.Equal(t, first, runCommand(t, rt, "eval 10 n 3"))

	assert.Equal(t, "auto (1 stream(s))\nDone\n", runCommand(t, rt, "stream auto"))
	assert.Nil(t, rt.sim.GetConfig().Model.Stream)
	assert.Contains(t, runCommand(t, rt, "stream"), " (1 stream(s))\nDone\n")
	assert.NotNil(t, rt.sim.GetConfig().Model.Stream)
}

func TestSeedCommand(t *testing.T) {
	rt := newTestRunner(t)

	assert.Equal(t, "seed 3, run 1\nDone\n", runCommand(t, rt, "seed"))
	assert.Equal(t, "seed 5, run 2\nDone\n", runCommand(t, rt, "seed 5 run 2"))
	assert.Equal(t, "seed 6, run 2\nDone\n", runCommand(t, rt, "seed 6"))
	assert.Contains(t, runCommand(t, rt, "seed 6 run -1"), "Error: ")

	runCommand(t, rt, "shadowing 0 4")
	runCommand(t, rt, "stream 1")
	runCommand(t, rt, "seed 9")
	first := runCommand(t, rt, "eval 100 n 4")
	runCommand(t, rt, "seed 9")
	assert.Equal(t, first, runCommand(t, rt, "eval 100 n 4"))
}

func TestSweepCommand(t *testing.T) {
	rt := newTestRunner(t)
	runCommand(t, rt, "model logdistance")

	output := runCommand(t, rt, "sweep 50 100 50 tx 15 samples 2")
	assert.Contains(t, output, "- {distance: 50, tx: 15, rx: ")
	assert.Contains(t, output, "- {distance: 100, tx: 15, rx: -91.6777")
	assert.Equal(t, 5, bytes.Count([]byte(output), []byte("\n")))

	assert.Contains(t, runCommand(t, rt, "sweep 50 100 0"), "Error: ")
	assert.Contains(t, runCommand(t, rt, "sweep samples 0"), "Error: ")
}

func TestConfigCommand(t *testing.T) {
	rt := newTestRunner(t)
	runCommand(t, rt, "exponent 2.5")

	output := runCommand(t, rt, "config")
	assert.Contains(t, output, "type: lognormal")
	assert.Contains(t, output, "exponent: 2.5")

	filename := filepath.Join(t.TempDir(), "exp.yaml")
	assert.Equal(t, "Done\n", runCommand(t, rt, fmt.Sprintf("config save %q", filename)))

	rt2 := newTestRunner(t)
	output = runCommand(t, rt2, fmt.Sprintf("config load %q", filename))
	assert.Contains(t, output, "exponent: 2.5")
	assert.Equal(t, 2.5, rt2.sim.GetConfig().Model.Params.Exponent)

	assert.Contains(t, runCommand(t, rt2, `config load "does-not-exist.yaml"`), "Error: ")
}

func TestLogLevelCommand(t *testing.T) {
	prev := logger.GetLevel()
	defer logger.SetLevel(prev)

	rt := newTestRunner(t)
	assert.Equal(t, "Done\n", runCommand(t, rt, "loglevel debug"))
	assert.Equal(t, "debug\nDone\n", runCommand(t, rt, "loglevel"))
	assert.Equal(t, logger.DebugLevel, logger.GetLevel())
}

func TestHelpAndExit(t *testing.T) {
	rt := newTestRunner(t)
	assert.Contains(t, runCommand(t, rt, "help"), "eval")
	assert.Contains(t, runCommand(t, rt, "help eval"), "Evaluate the received power")
	assert.Contains(t, runCommand(t, rt, "wrongcmd"), "Error: ")

	var output bytes.Buffer
	assert.Equal(t, context.Canceled, rt.HandleCommand("exit", &output))
	assert.Equal(t, context.Canceled, rt.HandleCommand("model", &output))
}

type mockCliHandler struct {
	expectedCmd string
	handleError error
	handleCount int
	t           *testing.T
}

func (hnd *mockCliHandler) HandleCommand(cmd string, output io.Writer) error {
	assert.Equal(hnd.t, hnd.expectedCmd, cmd)
	hnd.handleCount += 1
	return hnd.handleError
}

func (hnd *mockCliHandler) GetPrompt() string {
	return "> "
}

func TestCliStartStop(t *testing.T) {
	Cli = newCliInstance()
	handler := mockCliHandler{
		expectedCmd: "help",
		t:           t,
	}

	opt := DefaultCliOptions()
	r, w, _ := os.Pipe()
	opt.Stdin = r
	err := make(chan error, 1)
	go func() {
		err <- Cli.Run(&handler, opt)
	}()
	<-Cli.Started
	fmt.Fprint(w, "help\n")
	time.Sleep(time.Millisecond * 500)
	_ = w.Close()
	Cli.Stop()

	assert.Nil(t, <-err)
	assert.Equal(t, 1, handler.handleCount)
}

func TestCliCommandError(t *testing.T) {
	Cli = newCliInstance()
	handler := mockCliHandler{
		expectedCmd: "xyz",
		handleError: fmt.Errorf("undefined command"),
		t:           t,
	}

	opt := DefaultCliOptions()
	r, w, _ := os.Pipe()
	opt.Stdin = r
	err := make(chan error, 1)
	go func() {
		err <- Cli.Run(&handler, opt)
	}()
	<-Cli.Started
	fmt.Fprint(w, "xyz\n")

	assert.NotNil(t, <-err)
	assert.Equal(t, 1, handler.handleCount)

	Cli.Stop()
}
