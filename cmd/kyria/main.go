// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// kyria runs the Kyria keymap on a host: the OLED screens and the RGB
// matrix react to key events read from the keyboard's debug log.
package main

import (
	"log/slog"
	"os"
	"time"

	"gitlab.com/greyxor/slogor"
)

func main() {
	slog.SetDefault(slog.New(
		slogor.NewHandler(os.Stderr, &slogor.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.DateTime,
			ShowSource: true,
		})),
	)
	Execute()
}
