package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runWidget(nil)
	}

	switch args[0] {
	case "run":
		return runWidget(args[1:])
	case "shutdown", "reboot", "logout", "hibernate", "sleep":
		return runAction(args[0], args[1:])
	case "palette":
		return runPalette(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(os.Stderr)
		return 2
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: systool [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Open the widget (default)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  shutdown            Power off the machine")
	fmt.Fprintln(w, "  reboot              Restart the machine")
	fmt.Fprintln(w, "  logout              End the current session")
	fmt.Fprintln(w, "  hibernate           Hibernate to disk")
	fmt.Fprintln(w, "  sleep               Suspend to RAM")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  palette             Pick an action from a launcher menu")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'systool <command> --help' for command-specific options.")
}

func isHelpArg(args []string) bool {
	return len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help")
}
