package executor

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// relaySignals keeps the shim alive and transparent while the child
// runs. SIGINT and SIGQUIT already reach the child through the shared
// foreground process group, so they are only kept from killing the
// shim before the child has exited; SIGTERM and SIGHUP are delivered
// to the shim alone and get forwarded.
func relaySignals(cmd *exec.Cmd) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGTERM, syscall.SIGHUP:
					// Best-effort: the child may already be gone.
					_ = cmd.Process.Signal(sig)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
