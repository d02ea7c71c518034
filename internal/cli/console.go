package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"prover-node-mgr/internal/node"
)

// NewConsoleCmd creates the interactive console command.
func NewConsoleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run the interactive operator menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runConsole(cmd.Context())
		},
	}
}

func (a *App) runConsole(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	deps, err := a.buildDeps(ctx)
	if err != nil {
		return err
	}

	mgr := node.NewManager(deps)
	startBackgroundTasks(ctx, deps, mgr)

	return runMenu(ctx, mgr, os.Stdin, os.Stdout)
}

const menu = `
===== Prover Node Manager =====
 1) Create node
 2) List nodes
 3) View node logs
 4) Remove node
 5) Exit
Select an option: `

// runMenu drives the blocking numbered menu. Invalid selections and empty
// node ids re-prompt; runtime failures abort the console (fail-fast), with
// the single exception of a node that started but failed its liveness
// probe, which is reported and leaves the menu running.
func runMenu(ctx context.Context, mgr *node.Manager, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, menu)
		line, ok := readLine(scanner)
		if !ok {
			return nil // stdin closed
		}

		switch line {
		case "1":
			id, ok := promptNodeID(scanner, out)
			if !ok {
				return nil
			}
			if id == "" {
				fmt.Fprintln(out, "Node id must not be empty.")
				continue
			}
			if err := mgr.CreateNode(ctx, id); err != nil {
				if errors.Is(err, node.ErrStartupFailed) {
					fmt.Fprintln(out, err.Error())
					continue
				}
				return err
			}
			fmt.Fprintf(out, "Node %s is up.\n", id)

		case "2":
			infos, err := mgr.ListNodes(ctx)
			if err != nil {
				return err
			}
			renderNodeList(out, infos)
			fmt.Fprint(out, "Press Enter to continue...")
			if _, ok := readLine(scanner); !ok {
				return nil
			}

		case "3":
			id, ok := promptNodeID(scanner, out)
			if !ok {
				return nil
			}
			if id == "" {
				fmt.Fprintln(out, "Node id must not be empty.")
				continue
			}
			if err := streamLogs(ctx, mgr, id, out); err != nil {
				return err
			}

		case "4":
			id, ok := promptNodeID(scanner, out)
			if !ok {
				return nil
			}
			if id == "" {
				fmt.Fprintln(out, "Node id must not be empty.")
				continue
			}
			if err := mgr.RemoveNode(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Node %s removed.\n", id)

		case "5":
			return nil

		default:
			fmt.Fprintln(out, "Invalid option, try again.")
		}
	}
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func promptNodeID(scanner *bufio.Scanner, out io.Writer) (string, bool) {
	fmt.Fprint(out, "Enter node id: ")
	return readLine(scanner)
}

func renderNodeList(out io.Writer, infos []node.Info) {
	if len(infos) == 0 {
		fmt.Fprintln(out, "No nodes found.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS\tAGE")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Status, info.Age)
	}
	w.Flush()
}

// streamLogs follows the node's output until the operator interrupts.
// Ctrl-C cancels only the stream and returns to the menu.
func streamLogs(ctx context.Context, mgr *node.Manager, id string, out io.Writer) error {
	streamCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprintf(out, "Streaming logs for %s (Ctrl-C to stop)...\n", id)
	if err := mgr.StreamLogs(streamCtx, id, out); err != nil && streamCtx.Err() == nil {
		return err
	}
	fmt.Fprintln(out)
	return nil
}
