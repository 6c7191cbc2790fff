package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"frontpanel/host/client"
	"frontpanel/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate")
	timeout = flag.Duration("timeout", client.DefaultTimeout, "Reply timeout")
	verbose = flag.Bool("verbose", false, "Enable verbose output")
)

func main() {
	flag.Parse()

	fmt.Println("Panel Host - Front Panel Console")
	fmt.Println("================================")

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Connecting to panel on %s...\n", *device)
	conn, err := client.Connect(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()
	conn.Timeout = *timeout

	fmt.Println("Connected successfully!")
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		switch strings.ToLower(parts[0]) {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		case "watch":
			watch(conn, 5*time.Second)

		default:
			runCommand(conn, line)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(conn *client.Client, line string) {
	if *verbose {
		fmt.Printf("-> %s\n", line)
	}

	reply, err := conn.Command(line)
	for _, l := range reply {
		fmt.Println(l)
	}

	var cmdErr *client.CommandError
	switch {
	case errors.As(err, &cmdErr):
		fmt.Fprintf(os.Stderr, "Error: %s\n", cmdErr.Reason)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	case *verbose:
		fmt.Println("<- ok")
	}
}

// watch prints unsolicited status lines for d
func watch(conn *client.Client, d time.Duration) {
	end := time.Now().Add(d)
	for time.Now().Before(end) {
		line, err := conn.ReadLine()
		if errors.Is(err, client.ErrTimeout) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println(line)
	}
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  A<mV>          - Set amplitude (100-2500)")
	fmt.Println("  B<mV>          - Set offset (50-1250)")
	fmt.Println("  C<Hz>          - Set frequency (1-62500)")
	fmt.Println("  W<0-3>         - Select waveform (sine, triangle, sawtooth, square)")
	fmt.Println("  K<0-15>        - Inject a keypad key")
	fmt.Println("  S              - Print status")
	fmt.Println("  E0/E1          - Generator off/on")
	fmt.Println("  watch          - Print status lines for 5 seconds")
	fmt.Println("  quit/exit/q    - Exit the program")
	fmt.Println()
}
