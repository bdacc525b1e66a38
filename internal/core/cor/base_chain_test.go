// Copyright 2025 Krishna Sharma
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cor_test

import (
	goctx "context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zeebo/assert"

	"github.com/Krishna-Sharma-g/youtube-to-blog/internal/core/cor"
)

// appendCommand appends its own suffix to the string piped through the chain.
type appendCommand struct {
	cor.BaseCommand
	suffix string
	fail   bool
	ran    bool
}

func newAppendCommand(name, suffix string, fail bool) *appendCommand {
	return &appendCommand{BaseCommand: *cor.NewBaseCommand(name), suffix: suffix, fail: fail}
}

func (a *appendCommand) Execute(context cor.Context) {
	a.ran = true
	if a.fail {
		context.AddError(a.GetName(), errors.New("boom"))
		return
	}
	in := context.Get(a.GetInputParam()).(string)
	context.Add(cor.CtxOut, in+a.suffix)
}

func newChainContext(input string) cor.Context {
	ctx := cor.NewBaseContext()
	ctx.SetContext(goctx.Background())
	ctx.Add(cor.CtxIn, input)
	return ctx
}

func TestChainPipesOutputToNextInput(t *testing.T) {
	chain := cor.NewBaseChain("test-chain")
	chain.AddCommand(newAppendCommand("first", "-a", false))
	chain.AddCommand(newAppendCommand("second", "-b", false))

	ctx := newChainContext("start")
	chain.Execute(ctx)

	assert.False(t, ctx.HasErrors())
	assert.Equal(t, "start-a-b", ctx.Get(cor.CtxOut).(string))
}

func TestChainStopsOnFirstError(t *testing.T) {
	first := newAppendCommand("first", "-a", true)
	second := newAppendCommand("second", "-b", false)
	chain := cor.NewBaseChain("test-chain")
	chain.AddCommand(first)
	chain.AddCommand(second)

	ctx := newChainContext("start")
	chain.Execute(ctx)

	assert.True(t, ctx.HasErrors())
	assert.True(t, first.ran)
	assert.False(t, second.ran)
}

func TestChainContinueOnFailureRunsAllCommands(t *testing.T) {
	first := newAppendCommand("first", "-a", true)
	second := newAppendCommand("second", "-b", false)
	chain := cor.NewBaseChain("test-chain")
	chain.ContinueOnFailure(true)
	chain.AddCommand(first)
	chain.AddCommand(second)

	ctx := newChainContext("start")
	chain.Execute(ctx)

	assert.True(t, ctx.HasErrors())
	assert.True(t, second.ran)
}

func TestChainSkipsNonExecutableCommand(t *testing.T) {
	chain := cor.NewBaseChain("test-chain")
	chain.AddCommand(newAppendCommand("first", "-a", false))

	// No CtxIn value: the command's precondition fails and it never runs.
	ctx := cor.NewBaseContext()
	ctx.SetContext(goctx.Background())
	chain.Execute(ctx)

	assert.Nil(t, ctx.Get(cor.CtxOut))
}

func TestContextCloseRemovesTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scratch.mp3")
	assert.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))

	ctx := cor.NewBaseContext()
	ctx.SetContext(goctx.Background())
	ctx.AddTempFile(path)
	ctx.Close()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
