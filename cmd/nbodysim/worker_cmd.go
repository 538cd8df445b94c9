package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/landxcape/nbody-sim-core/internal/worker"
)

// workerCmd runs the engine as a long-lived process that speaks the
// spec §6 worker collaborator protocol over stdin/stdout: one JSON
// request per line in, one JSON response per line out, preceded by a
// startup ready message. This is the native-collaborator entry point a
// host application (a GUI, a notebook kernel, another process) would
// launch and talk to instead of importing the Go packages directly.
func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "run as a line-delimited JSON request/response worker on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveWorker(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func serveWorker(in io.Reader, out io.Writer) error {
	w := worker.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ready := w.Run(ctx)
	defer w.Close()

	enc := json.NewEncoder(out)
	if err := enc.Encode(ready); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req worker.Request
		if err := json.Unmarshal(line, &req); err != nil {
			if encErr := enc.Encode(worker.FatalMessage{Type: "fatal", Error: fmt.Sprintf("malformed request: %v", err)}); encErr != nil {
				return encErr
			}
			continue
		}

		resp := w.Submit(ctx, req)
		if err := enc.Encode(resp); err != nil {
			return err
		}

		if req.Command == worker.CommandDispose {
			break
		}
	}
	return scanner.Err()
}
