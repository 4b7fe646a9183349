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
	"strconv"

	"github.com/alecthomas/participle"
	"github.com/pkg/errors"
)

// noinspection GoStructTag
type Command struct {
	Config    *ConfigCmd    `  @@` //nolint
	Eval      *EvalCmd      `| @@` //nolint
	Exit      *ExitCmd      `| @@` //nolint
	Exponent  *ExponentCmd  `| @@` //nolint
	Help      *HelpCmd      `| @@` //nolint
	LogLevel  *LogLevelCmd  `| @@` //nolint
	Model     *ModelCmd     `| @@` //nolint
	Reference *ReferenceCmd `| @@` //nolint
	Seed      *SeedCmd      `| @@` //nolint
	Shadowing *ShadowingCmd `| @@` //nolint
	Stream    *StreamCmd    `| @@` //nolint
	Sweep     *SweepCmd     `| @@` //nolint
	Variable  *VariableCmd  `| @@` //nolint
}

// Number is a signed integer or floating point literal.
// noinspection GoStructTag
type Number struct {
	Val string `@( [ "-" | "+" ] ( Float | Int ) )` //nolint
}

func (n *Number) Float() (float64, error) {
	v, err := strconv.ParseFloat(n.Val, 64)
	return v, errors.Wrapf(err, "invalid number '%s'", n.Val)
}

func (n *Number) Int() (int64, error) {
	v, err := strconv.ParseInt(n.Val, 10, 64)
	return v, errors.Wrapf(err, "invalid integer '%s'", n.Val)
}

// noinspection GoStructTag
type Position struct {
	X Number `@@` //nolint
	Y Number `@@` //nolint
	Z Number `@@` //nolint
}

// noinspection GoStructTag
type ModelCmd struct {
	Cmd   struct{} `"model"`    //nolint
	Model string   `[ @Ident ]` //nolint
}

// noinspection GoStructTag
type ExponentCmd struct {
	Cmd      struct{} `"exponent"` //nolint
	Exponent *Number  `[ @@ ]`     //nolint
}

// noinspection GoStructTag
type ReferenceCmd struct {
	Cmd      struct{} `( "reference" | "ref" )` //nolint
	Distance *Number  `[ @@`                    //nolint
	Loss     *Number  `  @@ ]`                  //nolint
}

// noinspection GoStructTag
type ShadowingCmd struct {
	Cmd      struct{} `"shadowing"` //nolint
	Mean     *Number  `[ @@`        //nolint
	Variance *Number  `  @@ ]`      //nolint
}

// noinspection GoStructTag
type VariableCmd struct {
	Cmd  struct{} `( "variable" | "var" )` //nolint
	Spec *string  `[ @String ]`            //nolint
}

// noinspection GoStructTag
type StreamCmd struct {
	Cmd    struct{}  `"stream"` //nolint
	Auto   *AutoFlag `[ @@`     //nolint
	Stream *Number   `| @@ ]`   //nolint
}

// noinspection GoStructTag
type AutoFlag struct {
	Dummy struct{} `"auto"` //nolint
}

// noinspection GoStructTag
type SeedCmd struct {
	Cmd  struct{} `"seed"`           //nolint
	Seed *Number  `[ @@`             //nolint
	Run  *Number  `  [ "run" @@ ] ]` //nolint
}

// noinspection GoStructTag
type EvalCmd struct {
	Cmd      struct{}  `"eval"`       //nolint
	Distance *Number   `( @@`         //nolint
	From     *Position `| "from" @@`  //nolint
	To       *Position `  "to" @@ )`  //nolint
	TxPower  *Number   `[ "tx" @@ ]`  //nolint
	Count    *int      `[ "n" @Int ]` //nolint
}

// noinspection GoStructTag
type SweepCmd struct {
	Cmd     struct{} `"sweep"`            //nolint
	Start   *Number  `[ @@`               //nolint
	Stop    *Number  `  @@`               //nolint
	Step    *Number  `  @@ ]`             //nolint
	TxPower *Number  `[ "tx" @@ ]`        //nolint
	Samples *int     `[ "samples" @Int ]` //nolint
}

// noinspection GoStructTag
type ConfigCmd struct {
	Cmd  struct{} `"config"`           //nolint
	Load *string  `[ "load" @String`   //nolint
	Save *string  `| "save" @String ]` //nolint
}

type LogLevelCmd struct {
	Cmd   struct{} `( "loglevel" | "log" )`                                                                                      //nolint
	Level string   `[@( "micro"|"trace"|"debug"|"info"|"note"|"warn"|"error"|"crit"|"off"|"none"|"T"|"D"|"I"|"N"|"W"|"E"|"C" )]` //nolint
}

// noinspection GoStructTag
type HelpCmd struct {
	Cmd       struct{} `"help"`     //nolint
	HelpTopic string   `[ @Ident ]` //nolint
}

// noinspection GoStructTag
type ExitCmd struct {
	Cmd struct{} `( "exit" | "quit" )` //nolint
}

var (
	commandParser = participle.MustBuild(&Command{})
)

func parseBytes(b []byte, cmd *Command) error {
	return commandParser.ParseBytes(b, cmd)
}
