package main

import (
	"errors"
	"fmt"
	"os"

	"gestured/internal/ipc"
)

// ============================================================================
// gesturectl - Command-line IPC client for gestured
// ============================================================================
//
// Usage:
//   gesturectl key
//   gesturectl focus com.example.Terminal
//   gesturectl reset
//   gesturectl reload
//
// Options:
//   -socket PATH    Unix domain socket path (default: $GESTURED_IPC_SOCKET or /tmp/gestured.sock)
// ============================================================================

const defaultSocketPath = "/tmp/gestured.sock"

var errUsage = errors.New("usage")

func main() {
	socketPath := defaultSocketPath
	if p := os.Getenv("GESTURED_IPC_SOCKET"); p != "" {
		socketPath = p
	}

	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "-socket" || args[0] == "--socket") {
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "error: -socket requires an argument\n")
			os.Exit(1)
		}
		socketPath = args[1]
		args = args[2:]
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		printUsage()
		os.Exit(0)
	}

	ev, err := parseCommand(args)
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		printUsage()
		os.Exit(1)
	}

	if err := ipc.Send(socketPath, ev); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("ok")
}

// parseCommand maps command-line words to a control event.
func parseCommand(args []string) (ipc.Event, error) {
	if len(args) == 0 {
		return nil, errUsage
	}

	switch args[0] {
	case "key", "keystroke":
		return ipc.KeyPressed{}, nil

	case "focus", "app":
		if len(args) < 2 || args[1] == "" {
			return nil, fmt.Errorf("%s requires an application name", args[0])
		}
		return ipc.AppFocused{App: args[1]}, nil

	case "reset":
		return ipc.ResetGestures{}, nil

	case "reload", "reload-config":
		return ipc.ReloadConfig{}, nil

	default:
		return nil, fmt.Errorf("unknown command: %s", args[0])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `gesturectl - Control the gestured daemon via IPC

Usage:
  gesturectl [options] <command> [args]

Options:
  -socket PATH    Unix domain socket path (default: $GESTURED_IPC_SOCKET or %s)

Commands:
  key, keystroke          Report a keystroke (starts the typing cooldown)
  focus, app <name>       Report the frontmost application
  reset                   Abandon every in-flight gesture
  reload, reload-config   Re-read the daemon's config file
  help, -h, --help        Show this help message

Examples:
  gesturectl focus org.mozilla.firefox
  gesturectl -socket /run/user/1000/gestured.sock reload
`, defaultSocketPath)
}
