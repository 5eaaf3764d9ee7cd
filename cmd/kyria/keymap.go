// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/GermanBionicSystems/kyria/keymap"
	"github.com/GermanBionicSystems/kyria/layer"
	"github.com/spf13/cobra"
)

var keymapCmd = &cobra.Command{
	Use:   "keymap [layer...]",
	Short: "Print the keymap",
	Long:  "Print the layers of the keymap as they sit on the keyboard, all of them by default.",
	RunE: func(cmd *cobra.Command, args []string) error {
		layers, err := parseLayers(args)
		if err != nil {
			return err
		}
		return printKeymap(cmd.OutOrStdout(), &keymap.JSVE, layers)
	},
}

func init() {
	rootCmd.AddCommand(keymapCmd)
}

func parseLayers(args []string) ([]layer.Layer, error) {
	if len(args) == 0 {
		out := make([]layer.Layer, layer.Count)
		for i := range out {
			out[i] = layer.Layer(i)
		}
		return out, nil
	}
	var out []layer.Layer
	for _, a := range args {
		found := false
		for i := 0; i < layer.Count; i++ {
			if strings.EqualFold(a, layer.Layer(i).String()) {
				out = append(out, layer.Layer(i))
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown layer %q", a)
		}
	}
	return out, nil
}

// rows is the number of keys per printed row, both halves together.
var rows = [...]int{12, 12, 16, 10}

const widest = 16

func printKeymap(w io.Writer, m *keymap.Keymap, layers []layer.Layer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for n, l := range layers {
		if n != 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", l)
		i := 0
		for _, count := range rows {
			// Shorter rows are centered so the halves line up.
			cells := make([]string, (widest-count)/2, widest+1)
			for j := 0; j < count; j++ {
				p, _ := keymap.Position(i)
				cells = append(cells, m.Code(l, p).String())
				if j == count/2-1 {
					cells = append(cells, "|")
				}
				i++
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
		}
	}
	return tw.Flush()
}
