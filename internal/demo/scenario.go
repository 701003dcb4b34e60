package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zhubert/thinkprompt/internal/thinking"
)

// Scenario is a scripted stream of thinking text followed by a reply.
type Scenario struct {
	Chunks []string
	Reply  string
}

// ScenarioFor builds the scripted reasoning for a line of user input. The
// reply echoes the input back as markdown.
func ScenarioFor(line string) Scenario {
	words := strings.Fields(line)

	chunks := []string{
		fmt.Sprintf("Reading the input: %q\n", line),
		fmt.Sprintf("It has %d word(s) and %d character(s).\n", len(words), len([]rune(line))),
	}
	for i, w := range words {
		chunks = append(chunks, fmt.Sprintf("Word %d is %q", i+1, w))
		chunks = append(chunks, fmt.Sprintf(", %d letter(s).\n", len([]rune(w))))
	}
	if strings.HasSuffix(strings.TrimSpace(line), "?") {
		chunks = append(chunks, "It looks like a question, so the reply should answer it.\n")
	}
	chunks = append(chunks, "Writing the echo reply.\n")

	return Scenario{
		Chunks: chunks,
		Reply:  fmt.Sprintf("**You said:** %s", line),
	}
}

// Stream writes the scenario's chunks to w, pausing delay between them.
// It stops early with ctx's error if ctx ends.
func (sc Scenario) Stream(ctx context.Context, w thinking.Writer, delay time.Duration) error {
	for _, chunk := range sc.Chunks {
		if err := sleep(ctx, delay); err != nil {
			return err
		}
		if _, err := w.WriteString(chunk); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
