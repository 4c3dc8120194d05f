package main

import (
	"context"
	"log"
	"runtime"

	"github.com/nxadm/tail"
)

// tailServerLog follows the language server's stderr file and copies each
// line into the editor log, so the two logs interleave in one place.
func tailServerLog(ctx context.Context, logg *log.Logger, path string) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:        true,
		Poll:          runtime.GOOS == "windows", // on Windows poll for file changes instead of using the default inotify
		Logger:        tail.DiscardingLogger,
		CompleteLines: true,
	})
	if err != nil {
		return err
	}
	go func() {
		defer t.Cleanup()
		for {
			select {
			case <-ctx.Done():
				//nolint:errcheck
				t.Stop()
				return
			case line, ok := <-t.Lines:
				if !ok {
					return
				}
				if line.Err != nil {
					logg.Printf("server stderr tail: %v", line.Err)
					continue
				}
				logg.Printf("server stderr: %s", line.Text)
			}
		}
	}()
	return nil
}
