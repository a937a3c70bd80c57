// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stache

import (
	"io"

	seelog "github.com/cihub/seelog"
	"github.com/mohae/stache/parse"
)

// The parse package owns the seelog wiring; these are thin forwarders so
// logging for the whole module can be configured from this root package
// too, without reaching into parse directly.

// DisableLog disables all library log output.
func DisableLog() {
	parse.DisableLog()
}

// UseLogger uses a specified seelog.LoggerInterface to output library log.
// Use this func if you are using Seelog logging system in your app.
func UseLogger(newLogger seelog.LoggerInterface) {
	parse.UseLogger(newLogger)
}

// SetLogWriter uses a specified io.Writer to output library log.
// Use this func if you are not using Seelog logging system in your app.
func SetLogWriter(writer io.Writer) error {
	return parse.SetLogWriter(writer)
}

// FlushLog flushes any buffered log output. Call this before app shutdown.
func FlushLog() {
	parse.FlushLog()
}
