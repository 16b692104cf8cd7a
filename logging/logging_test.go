/*
 * logging_test.go, part of gocell.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{"": zapcore.InfoLevel, "DEBUG": zapcore.DebugLevel, "warn": zapcore.WarnLevel, " error ": zapcore.ErrorLevel} {
		l, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, l, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestFieldsReachZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromCore(core).Named("cell").With(String("id", "abc"))
	l.Debug("move rejected", Int("clashes", 3), Float64("d", 1.5))
	l.Info("done", Err(errors.New("boom")), Bool("ok", false))
	require.Equal(t, 2, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, "move rejected", e.Message)
	assert.Equal(t, "cell", e.LoggerName)
	ctx := e.ContextMap()
	assert.Equal(t, "abc", ctx["id"])
	assert.EqualValues(t, 3, ctx["clashes"])
	assert.Equal(t, "boom", logs.All()[1].ContextMap()["error"])
}

func TestNewAndNop(t *testing.T) {
	l, err := New(Config{Level: "debug", Format: "json"})
	require.NoError(t, err)
	l.Debug("hello")
	_, err = New(Config{Level: "nope"})
	assert.Error(t, err)
	n := NewNop()
	n.With(Int("a", 1)).Named("x").Error("ignored")
}
