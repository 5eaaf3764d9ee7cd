// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package oledsink

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"time"
)

// ServeHTTP streams the panel to a GET request: one image part now, one on
// every change and one every Keepalive. The stream ends on Halt or when the
// client goes away.
func (d *Display) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}
	log := slog.Default().With("package", "oledsink", "remote", r.RemoteAddr)
	boundary := multipart.NewWriter(io.Discard).Boundary()
	w.Header().Set("Content-Type", mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{"boundary": boundary}))
	w.Header().Set("Cache-Control", "no-store")

	var keepalive <-chan time.Time
	if d.keepalive > 0 {
		t := time.NewTicker(d.keepalive)
		defer t.Stop()
		keepalive = t.C
	}
	flusher, _ := w.(http.Flusher)
	log.Debug("preview client connected")
	for first := true; ; first = false {
		body, changed, stop, err := d.current()
		if err != nil {
			log.Warn("encoding preview failed", "format", d.format, "err", err)
			return
		}
		if err := writePart(w, boundary, first, d.format.mimeType(), body); err != nil {
			log.Debug("preview client gone", "err", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
		select {
		case <-changed:
		case <-keepalive:
		case <-stop:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// writePart writes one part and the boundary after it. Browsers only show a
// part once its closing boundary arrived, so it is sent right away instead of
// with the next frame.
func writePart(w io.Writer, boundary string, first bool, mimeType string, body []byte) error {
	var b bytes.Buffer
	if first {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
	}
	fmt.Fprintf(&b, "Content-Type: %s\r\nContent-Length: %d\r\n\r\n", mimeType, len(body))
	b.Write(body)
	fmt.Fprintf(&b, "\r\n--%s\r\n", boundary)
	_, err := b.WriteTo(w)
	return err
}

var _ http.Handler = &Display{}
