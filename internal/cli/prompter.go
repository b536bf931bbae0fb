package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/homework-heap/internal/model"
	"github.com/Veraticus/homework-heap/internal/report"
	"github.com/Veraticus/homework-heap/internal/review"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// ErrInputTerminated is returned when stdin closes before the operator answers.
var ErrInputTerminated = errors.New("input terminated")

// Prompter implements the interactive CLI boundary of a run.
type Prompter struct {
	writer       io.Writer
	reader       *NonBlockingReader
	reviewer     *review.Reviewer
	showProgress bool
}

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithCancelKeyword sets the word that cancels the run at the review prompt.
func WithCancelKeyword(keyword string) PrompterOption {
	return func(p *Prompter) {
		p.reviewer = review.New(keyword)
	}
}

// WithProgress forces the move progress bar on or off.
func WithProgress(enabled bool) PrompterOption {
	return func(p *Prompter) {
		p.showProgress = enabled
	}
}

// NewCLIPrompter creates a new CLI prompter with the given reader and writer.
// The progress bar is enabled only when writer is a terminal.
func NewCLIPrompter(reader io.Reader, writer io.Writer, opts ...PrompterOption) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	p := &Prompter{
		reader:       NewNonBlockingReader(reader),
		writer:       writer,
		reviewer:     review.New(review.DefaultCancelKeyword),
		showProgress: isTerminal(writer),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ShowBanner prints the program title and the directory being organized.
func (p *Prompter) ShowBanner(root string) {
	p.println(FormatTitle("HomeworkHeap"))
	p.println(fmt.Sprintf("Working with %s directory: %s", filepath.Base(root), root))
	p.println("")
}

// ShowInfo prints an informational line.
func (p *Prompter) ShowInfo(message string) {
	p.println(FormatInfo(message))
}

// ShowWarning prints a warning line.
func (p *Prompter) ShowWarning(message string) {
	p.println(FormatWarning(message))
}

// ShowSuccess prints a success line.
func (p *Prompter) ShowSuccess(message string) {
	p.println(FormatSuccess(message))
}

// ReviewSelection shows the numbered candidates once, reads one line, and parses it.
func (p *Prompter) ReviewSelection(ctx context.Context, files []string) (model.SelectionDecision, error) {
	if err := ctx.Err(); err != nil {
		return model.SelectionDecision{}, err
	}

	var list strings.Builder
	for i, name := range files {
		if i > 0 {
			list.WriteString("\n")
		}
		fmt.Fprintf(&list, "%3d. %s", i+1, name)
	}

	if _, err := fmt.Fprintln(p.writer, RenderBox("Files to move", list.String())); err != nil {
		return model.SelectionDecision{}, fmt.Errorf("failed to write file list: %w", err)
	}

	instructions := fmt.Sprintf(`Want to save any files from being moved? (These files will stay where they are.)

- To save files, enter their numbers separated by commas.
- To move all files, simply press Enter.
- Type '%s' + Enter to cancel.`, p.reviewer.CancelKeyword())
	if _, err := fmt.Fprintln(p.writer, instructions); err != nil {
		return model.SelectionDecision{}, fmt.Errorf("failed to write instructions: %w", err)
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt("> ")); err != nil {
		return model.SelectionDecision{}, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.readAnswer(ctx)
	if err != nil {
		return model.SelectionDecision{}, err
	}

	return p.reviewer.Parse(answer, files), nil
}

// ConfirmCleanup asks whether the holding folder should be deleted and returns the raw answer.
// End of input yields an empty answer; a canceled context is still an error.
func (p *Prompter) ConfirmCleanup(ctx context.Context, folderName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.println(Rule())
	prompt := fmt.Sprintf("Do you want to delete the '%s' folder? (yes/no): ", folderName)
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	// Closed input is a negative answer: the files have moved and the summary must still print.
	answer, err := p.readAnswer(ctx)
	if errors.Is(err, ErrInputTerminated) {
		p.println("")
		return "", nil
	}
	if err != nil {
		return "", err
	}
	p.println("")
	return answer, nil
}

// ShowMoveResult prints the moved count and every per-file error.
func (p *Prompter) ShowMoveResult(outcome model.MoveOutcome) {
	if outcome.Count > 0 {
		p.println(FormatSuccess(fmt.Sprintf("Successfully moved %d file(s)", outcome.Count)))
	} else {
		p.println(FormatWarning("No files were moved"))
	}

	if len(outcome.Errors) > 0 {
		p.println("")
		p.println(FormatError(fmt.Sprintf("Errors (%d):", len(outcome.Errors))))
		for _, e := range outcome.Errors {
			p.println("  - " + e)
		}
	}
	p.println("")
}

// ShowSummary prints the final JSON summary under a heading.
func (p *Prompter) ShowSummary(summary model.RunSummary) error {
	p.println(Rule())
	p.println(FormatHeading("Cleanup Summary:"))
	p.println(Rule())
	return report.Render(p.writer, summary)
}

// MoveProgress returns an observer for the relocator. On a terminal it drives a
// progress bar; otherwise it does nothing.
func (p *Prompter) MoveProgress(total int) func(name string, err error) {
	if !p.showProgress || total <= 1 {
		return func(string, error) {}
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Moving files...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	return func(string, error) {
		if err := bar.Add(1); err != nil {
			slog.Debug("Failed to update progress bar", "error", err)
		}
	}
}

func (p *Prompter) readAnswer(ctx context.Context) (string, error) {
	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrInputTerminated
		}
		if errors.Is(err, ErrInputCancelled) {
			return "", fmt.Errorf("%w: %w", ErrInputCancelled, ctx.Err())
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return answer, nil
}

func (p *Prompter) println(line string) {
	if _, err := fmt.Fprintln(p.writer, line); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
