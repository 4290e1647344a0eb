package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream director events over SSE",
		Long: `Connect to the director SSE endpoint and stream events in real-time.

Events include:
  - state_update: Full director view after any change
  - game_started: The round has started
  - game_event: A director banner
  - hint: A hider position revealed to seekers

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Exit after this many events (0 streams until interrupted)")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time       `json:"time"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func streamEvents(ctx context.Context, w io.Writer, limit int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	body, err := client.directorEvents(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	jsonOutput := cfg.Output == "json"
	if !jsonOutput {
		_, _ = fmt.Fprintln(w, "Connected to director stream")
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var currentEvent string
	var dataLines []string
	seen := 0

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "event: ") {
			currentEvent = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		} else if line == "" {
			// End of event
			if currentEvent != "" && currentEvent != "connected" {
				printEvent(w, currentEvent, strings.Join(dataLines, "\n"), jsonOutput)
				seen++
				if limit > 0 && seen >= limit {
					return nil
				}
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil {
		// Context cancellation is expected
		if ctx.Err() != nil {
			if !jsonOutput {
				_, _ = fmt.Fprintln(w, "\nDisconnected")
			}
			return nil
		}
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		_, _ = fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

// printEvent writes one event. The SSE data is the wire envelope; its payload
// is unwrapped for display.
func printEvent(w io.Writer, event, data string, jsonOutput bool) {
	now := time.Now()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	payload := json.RawMessage(data)
	if err := json.Unmarshal([]byte(data), &envelope); err == nil && len(envelope.Data) > 0 {
		payload = envelope.Data
	}

	if jsonOutput {
		evt := SSEEvent{
			Time:  now,
			Event: event,
			Data:  payload,
		}
		jsonData, _ := json.Marshal(evt)
		_, _ = fmt.Fprintln(w, string(jsonData))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	// Truncate data if it's too long for display
	displayData := string(payload)
	if len(displayData) > 100 {
		displayData = displayData[:100] + "..."
	}
	displayData = strings.ReplaceAll(displayData, "\n", " ")
	_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, event, displayData)
}
