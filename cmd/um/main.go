package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tengyifei/icfp-universal-machine/pkg/um"
)

func main() {
	restoreFile := flag.String("restore", "", "resume from a snapshot file instead of loading a program")
	outputFile := flag.String("o", "", "also write console output to this file")
	snapshotFile := flag.String("snapshot", "", "write a state snapshot here before each Input instruction blocks")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <program-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := slog.New(newDiagHandler(os.Stderr))

	var outputFH *os.File
	if *outputFile != "" {
		var err error
		outputFH, err = os.Create(*outputFile)
		if err != nil {
			log.Error("opening output file", "error", err)
			os.Exit(2)
		}
		defer outputFH.Close()
	}
	out := io.Writer(os.Stdout)
	if outputFH != nil {
		out = io.MultiWriter(os.Stdout, outputFH)
	}

	console := newRawConsole()
	defer console.restore()

	var vm *um.VM
	switch {
	case *restoreFile != "":
		restoreFH, err := os.Open(*restoreFile)
		if err != nil {
			log.Error("opening restore file", "error", err)
			os.Exit(2)
		}
		defer restoreFH.Close()

		state, err := um.LoadSnapshot(restoreFH)
		if err != nil {
			log.Error("loading snapshot", "error", err)
			os.Exit(3)
		}
		vm = um.Resume(state, console.reader(), out)

	case flag.NArg() == 1:
		programFH, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Error("opening program file", "error", err)
			os.Exit(2)
		}
		program, err := io.ReadAll(programFH)
		programFH.Close()
		if err != nil {
			log.Error("reading program file", "error", err)
			os.Exit(2)
		}
		vm = um.New(program, console.reader(), out)

	default:
		flag.Usage()
		os.Exit(1)
	}

	if *snapshotFile != "" {
		vm.OnBeforeInput(func(state um.Machine) error {
			f, err := os.Create(*snapshotFile)
			if err != nil {
				return fmt.Errorf("creating snapshot file: %w", err)
			}
			defer f.Close()
			if err := um.Snapshot(f, state); err != nil {
				return fmt.Errorf("writing snapshot: %w", err)
			}
			return nil
		})
	}

	if err := vm.Run(); err != nil {
		console.restore()
		log.Error("machine halted with error", "error", err)
		if isLoadError(err) {
			os.Exit(3)
		}
		os.Exit(4)
	}
}

// isLoadError reports whether err stems from decoding the program image
// itself, which the teacher's CLI exits with a distinct status from a
// runtime failure partway through execution.
func isLoadError(err error) bool {
	return errors.Is(err, um.ErrUnknownInstruction)
}
