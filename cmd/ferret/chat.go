package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/ferret/config"
	agentpkg "github.com/mohammad-safakhou/ferret/internal/agent"
	"github.com/mohammad-safakhou/ferret/internal/session"
	"github.com/mohammad-safakhou/ferret/internal/telemetry"
)

func chatCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive research tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(*cfgPath)
			ag, err := agentpkg.New(cfg, telemetry.NewLogger("AGENT"), nil)
			if err != nil {
				return err
			}
			sess, err := session.NewSession("chat", cfg.Session.TTL)
			if err != nil {
				return err
			}
			runChat(cmd.Context(), ag, sess, os.Stdin, cmd.OutOrStdout())
			return nil
		},
	}
}

func runChat(ctx context.Context, ag *agentpkg.Agent, sess *session.Session, in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)
	for {
		choice, ok := displayMenu(reader, out)
		if !ok {
			return
		}

		switch choice {
		case "1":
			query, ok := prompt(reader, out, "\nEnter your search query: ")
			if !ok {
				return
			}
			fmt.Fprintln(out, "\nInitiating research...")
			res := ag.RunSearch(ctx, sess, query)
			fmt.Fprintln(out, "\nResearch Results:")
			fmt.Fprintln(out, res.Answer)

		case "2":
			fmt.Fprintln(out, "\nYou can enter either:")
			fmt.Fprintln(out, "- A URL (starting with http:// or https://)")
			fmt.Fprintln(out, "- Or any text to extract information from")
			input, ok := prompt(reader, out, "\nEnter URL or text: ")
			if !ok {
				return
			}
			fmt.Fprintln(out, "\nExtracting information...")
			res := ag.RunExtract(ctx, sess, input)
			fmt.Fprintln(out, "\nExtracted Information:")
			fmt.Fprintln(out, res.Answer)

		case "3":
			fmt.Fprintln(out, "\nThank you for using the Research Tool!")
			return

		default:
			fmt.Fprintln(out, "\nInvalid option. Please try again.")
		}

		if _, ok := prompt(reader, out, "\nPress Enter to continue..."); !ok {
			return
		}
	}
}

func displayMenu(reader *bufio.Reader, out io.Writer) (string, bool) {
	fmt.Fprintln(out, "\n=== Research Tool Menu ===")
	fmt.Fprintln(out, "1. Search (Comprehensive research with context)")
	fmt.Fprintln(out, "2. Extract (Extract information from URL or text)")
	fmt.Fprintln(out, "   - Enter a URL (starting with http:// or https://)")
	fmt.Fprintln(out, "   - Or enter any text to extract information from")
	fmt.Fprintln(out, "3. Exit")
	return prompt(reader, out, "Select an option (1-3): ")
}

func prompt(reader *bufio.Reader, out io.Writer, msg string) (string, bool) {
	fmt.Fprint(out, msg)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}
