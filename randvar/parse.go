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

package randvar

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle"
	"github.com/pkg/errors"
)

// noinspection GoStructTag
type variableSpec struct {
	Namespace string          `[ @"ns3" ":" ":" ]`             //nolint
	Name      string          `@Ident`                         //nolint
	Attrs     []*attributeArg `[ "[" [ @@ ( "|" @@ )* ] "]" ]` //nolint
}

// noinspection GoStructTag
type attributeArg struct {
	Key   string `@Ident "="`                         //nolint
	Value string `@( [ "-" | "+" ] ( Float | Int ) )` //nolint
}

var variableParser = participle.MustBuild(&variableSpec{})

// Parse creates a random variable from an attribute string such as "Normal[Mean=0|Variance=4]" or
// "ns3::UniformRandomVariable[Min=20|Max=100]". Attributes not given keep their default value.
func Parse(spec string) (Stream, error) {
	var vs variableSpec
	if err := variableParser.ParseBytes([]byte(spec), &vs); err != nil {
		return nil, errors.Wrapf(err, "parse random variable %q", spec)
	}
	if vs.Name == "" {
		return nil, errors.Errorf("parse random variable %q: missing type", spec)
	}

	attrs := make(map[string]float64, len(vs.Attrs))
	for _, a := range vs.Attrs {
		v, err := strconv.ParseFloat(a.Value, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidParameter, "attribute %s=%s", a.Key, a.Value)
		}
		attrs[a.Key] = v
	}

	switch strings.TrimSuffix(vs.Name, "RandomVariable") {
	case "Normal":
		if err := checkKeys(attrs, "Mean", "Variance", "Bound"); err != nil {
			return nil, err
		}
		n, err := NewBoundedNormal(getAttr(attrs, "Mean", 0), getAttr(attrs, "Variance", 1),
			getAttr(attrs, "Bound", DefaultNormalBound))
		if err != nil {
			return nil, err
		}
		return n, nil
	case "Uniform":
		if err := checkKeys(attrs, "Min", "Max"); err != nil {
			return nil, err
		}
		u, err := NewUniform(getAttr(attrs, "Min", 0), getAttr(attrs, "Max", 1))
		if err != nil {
			return nil, err
		}
		return u, nil
	case "Constant":
		if err := checkKeys(attrs, "Constant"); err != nil {
			return nil, err
		}
		return NewConstant(getAttr(attrs, "Constant", 0)), nil
	default:
		return nil, errors.Errorf("unknown random variable type '%s'", vs.Name)
	}
}

func getAttr(attrs map[string]float64, key string, def float64) float64 {
	if v, ok := attrs[key]; ok {
		return v
	}
	return def
}

func checkKeys(attrs map[string]float64, allowed ...string) error {
	for k := range attrs {
		found := false
		for _, a := range allowed {
			if k == a {
				found = true
				break
			}
		}
		if !found {
			return errors.Wrapf(ErrInvalidParameter, "unknown attribute '%s'", k)
		}
	}
	return nil
}
