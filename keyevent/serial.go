// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keyevent

import (
	"fmt"
	"io"
	"strings"

	"go.bug.st/serial"
)

// DefaultBaud is the speed of the firmware's USB serial console.
const DefaultBaud = 9600

// OpenSerial opens the serial port at path for reading key log lines.
func OpenSerial(path string, baud int) (io.ReadCloser, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.Open(path, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("keyevent: %s: %w", path, err)
	}
	// Reads block until a key is pressed, which may take a while.
	if err := port.SetReadTimeout(serial.NoTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("keyevent: %s: %w", path, err)
	}
	return port, nil
}

// Ports lists the serial ports, USB modems first.
func Ports() ([]string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("keyevent: %w", err)
	}
	var usb, other []string
	for _, n := range names {
		if isUSBModem(n) {
			usb = append(usb, n)
		} else {
			other = append(other, n)
		}
	}
	return append(usb, other...), nil
}

func isUSBModem(name string) bool {
	return strings.Contains(name, "usbmodem") || strings.Contains(name, "ttyACM")
}
