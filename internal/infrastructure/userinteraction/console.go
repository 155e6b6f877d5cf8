package userinteraction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"

	"github.com/fatih/color"
)

var exampleQueries = []string{
	"Current trends in generative AI and large language models",
	"AI safety and regulatory developments in 2024",
	"Enterprise AI adoption and business transformation",
	"Impact of multimodal AI on business operations",
	"Open-source AI models vs proprietary solutions",
	"AI governance and compliance frameworks for enterprises",
	"Future of AI in healthcare and medical research",
	"AI-powered automation in manufacturing and supply chain",
}

var _ output.UserInteractionPort = (*Console)(nil)

type Console struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewConsole() *Console {
	return &Console{
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// NewConsoleWithStreams is used by tests to capture output.
func NewConsoleWithStreams(in io.Reader, out io.Writer) *Console {
	return &Console{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// SelectQuery runs the start menu. The second return value is false when the
// user chose to exit.
func (c *Console) SelectQuery(ctx context.Context) (string, bool, error) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintln(c.out, "\nAI RESEARCH & DECISION ASSISTANT")
	fmt.Fprintln(c.out, strings.Repeat("=", 50))
	fmt.Fprintln(c.out, "Choose an option:")
	fmt.Fprintln(c.out, "1. Enter your own research query")
	fmt.Fprintln(c.out, "2. Select from example queries")
	fmt.Fprintln(c.out, "3. Exit")

	for {
		choice, err := c.readLine("\nEnter your choice (1-3): ")
		if err != nil {
			return "", false, err
		}

		switch choice {
		case "1":
			query, err := c.readLine("\nEnter your AI research query: ")
			if err != nil {
				return "", false, err
			}
			if query == "" {
				fmt.Fprintln(c.out, "Please enter a valid query.")
				continue
			}
			return query, true, nil

		case "2":
			query, err := c.selectExample()
			if err != nil {
				return "", false, err
			}
			return query, true, nil

		case "3":
			return "", false, nil

		default:
			fmt.Fprintln(c.out, "Please enter 1, 2, or 3")
		}
	}
}

func (c *Console) selectExample() (string, error) {
	fmt.Fprintln(c.out, "\nExample Queries:")
	fmt.Fprintln(c.out, strings.Repeat("-", 30))
	for i, example := range exampleQueries {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, example)
	}

	for {
		choice, err := c.readLine(fmt.Sprintf("\nSelect example (1-%d): ", len(exampleQueries)))
		if err != nil {
			return "", err
		}

		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(exampleQueries) {
			fmt.Fprintf(c.out, "Please enter a number between 1 and %d\n", len(exampleQueries))
			continue
		}

		return exampleQueries[idx-1], nil
	}
}

func (c *Console) ShowPhase(ctx context.Context, phase entity.Phase) {
	label := color.New(color.FgYellow)
	label.Fprintf(c.out, "... %s\n", phase)
}

func (c *Console) ShowReport(ctx context.Context, result *entity.WorkflowResult) {
	header := color.New(color.FgGreen, color.Bold)
	section := color.New(color.FgCyan, color.Bold)
	divider := strings.Repeat("=", 50)

	fmt.Fprintln(c.out)
	header.Fprintln(c.out, "AI RESEARCH & DECISION ASSISTANT RESULTS")
	fmt.Fprintln(c.out, strings.Repeat("=", 60))

	section.Fprintln(c.out, "SUMMARY")
	fmt.Fprintln(c.out, divider)
	if result.Summary != "" {
		fmt.Fprintln(c.out, result.Summary)
	} else {
		fmt.Fprintln(c.out, "No summary available")
	}
	fmt.Fprintln(c.out)

	section.Fprintln(c.out, "KEY TRENDS")
	fmt.Fprintln(c.out, divider)
	if len(result.KeyTrends) > 0 {
		for i, trend := range result.KeyTrends {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, trend)
		}
	} else {
		fmt.Fprintln(c.out, "No specific trends identified")
	}
	fmt.Fprintln(c.out)

	section.Fprintln(c.out, "BUSINESS IMPACT")
	fmt.Fprintln(c.out, divider)
	printImpact(c.out, "Short Term", result.BusinessImpact.ShortTerm)
	printImpact(c.out, "Medium Term", result.BusinessImpact.MediumTerm)
	printImpact(c.out, "Long Term", result.BusinessImpact.LongTerm)
	fmt.Fprintln(c.out)

	section.Fprintln(c.out, "RECOMMENDED ACTIONS")
	fmt.Fprintln(c.out, divider)
	if len(result.RecommendedActions) > 0 {
		for i, action := range result.RecommendedActions {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, action.Action)
			fmt.Fprintf(c.out, "   Priority: %s\n", action.Priority)
			fmt.Fprintf(c.out, "   Timeline: %s\n", action.Timeline)
			if action.Rationale != "" {
				fmt.Fprintf(c.out, "   Rationale: %s\n", action.Rationale)
			}
			fmt.Fprintln(c.out)
		}
	} else {
		fmt.Fprintln(c.out, "No specific actions recommended")
	}
}

func (c *Console) AskRunAgain(ctx context.Context) (bool, error) {
	for {
		answer, err := c.readLine("\nWould you like to analyze another query? (y/n): ")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(c.out, "Please enter 'y' for yes or 'n' for no")
		}
	}
}

func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func printImpact(out io.Writer, horizon, description string) {
	if description == "" {
		description = "Assessment pending"
	}
	fmt.Fprintf(out, "• %s: %s\n", horizon, description)
}
