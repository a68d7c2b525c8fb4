package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepbot/internal/questiongen"
	"github.com/abhisek/prepbot/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	Long: "Start a practice session. With --plain the session runs as a line-oriented " +
		"loop over stdin and stdout instead of the full-screen interface.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if plain, _ := cmd.Flags().GetBool("plain"); !plain {
			return runApp(cmd)
		}

		role, _ := cmd.Flags().GetString("role")
		typ, _ := cmd.Flags().GetString("type")
		t, err := questiongen.ParseType(typ)
		if err != nil {
			return err
		}

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		provider, err := e.provider(cmd.Context())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		gen, err := e.generator(provider)
		if err != nil {
			return err
		}

		ctrl := session.New(gen, e.evaluator(provider), session.WithLogger(e.log))
		sel := session.Selection{Role: role, Type: t}
		return runPlain(cmd.Context(), ctrl, cmd.InOrStdin(), cmd.OutOrStdout(), sel)
	},
}

func init() {
	practiceCmd.Flags().Bool("plain", false, "Use a line-oriented interface instead of the TUI")
	practiceCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
	practiceCmd.Flags().StringP("role", "r", questiongen.Roles[0], "Role to practice for")
	practiceCmd.Flags().StringP("type", "t", string(questiongen.Coding), "Question type: coding, technical or behavioral")
}

const plainHelp = `Type your answer and finish it with a blank line.
Commands:
  :role <name>   switch role
  :type <type>   switch question type (coding, technical, behavioral)
  :progress      show your progress
  :reset         clear progress and start over
  :quit          leave`

// plainSession drives a Controller over line-oriented input.
type plainSession struct {
	ctrl  *session.Controller
	sel   session.Selection
	in    *bufio.Scanner
	out   io.Writer
	shown *session.Question
}

// runPlain loops question, answer, feedback until :quit or end of input.
func runPlain(ctx context.Context, ctrl *session.Controller, in io.Reader, out io.Writer, sel session.Selection) error {
	p := &plainSession{
		ctrl: ctrl,
		sel:  sel,
		in:   bufio.NewScanner(in),
		out:  out,
	}
	p.in.Buffer(make([]byte, 0, 64*1024), 1<<20)

	fmt.Fprintln(out, plainHelp)
	for ctx.Err() == nil {
		if q := ctrl.Render(ctx, p.sel); q != p.shown {
			p.printQuestion(q)
			p.shown = q
		}

		text, ok := p.readAnswer()
		if !ok {
			p.printProgress()
			return p.in.Err()
		}

		if cmdline := strings.TrimSpace(text); strings.HasPrefix(cmdline, ":") {
			quit, err := p.command(cmdline)
			if err != nil {
				fmt.Fprintln(out, "Error:", err)
			}
			if quit {
				p.printProgress()
				return nil
			}
			continue
		}

		fb, err := ctrl.Submit(ctx, text)
		switch {
		case errors.Is(err, session.ErrEmptyAnswer):
			fmt.Fprintln(out, "Warning: Please enter an answer before submitting.")
			continue
		case err != nil:
			fmt.Fprintln(out, "Error:", err)
			continue
		}

		fmt.Fprintf(out, "\nScore: %d/100\n", fb.Score)
		fmt.Fprintf(out, "Feedback: %s\n", fb.Feedback)
		fmt.Fprintf(out, "Improvement: %s\n", fb.Improvement)
	}
	return nil
}

// readAnswer collects lines up to the first blank one. A line starting
// with ':' is returned on its own as a command. ok is false at end of
// input with nothing read.
func (p *plainSession) readAnswer() (text string, ok bool) {
	var lines []string
	for p.in.Scan() {
		line := p.in.Text()
		if len(lines) == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if strings.TrimSpace(line) == "" {
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		return strings.Join(lines, "\n"), true
	}
	return "", false
}

// command handles a ':' line. quit reports whether the loop should stop.
func (p *plainSession) command(line string) (quit bool, err error) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "quit", "q", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(p.out, plainHelp)
	case "progress":
		p.printProgress()
	case "reset":
		p.ctrl.Reset()
		fmt.Fprintln(p.out, "Progress cleared.")
	case "role":
		if arg == "" {
			return false, errors.New("usage: :role <name>")
		}
		p.sel.Role = arg
	case "type":
		t, err := questiongen.ParseType(arg)
		if err != nil {
			return false, err
		}
		p.sel.Type = t
	default:
		return false, fmt.Errorf("unknown command %q (try :help)", ":"+name)
	}
	return false, nil
}

func (p *plainSession) printQuestion(q *session.Question) {
	fmt.Fprintf(p.out, "\nQuestion (%s):\n", p.ctrl.State().CurrentType.Label())
	if q.Empty() {
		fmt.Fprintln(p.out, "No question available.")
	} else {
		fmt.Fprintln(p.out, q.Text)
	}
	fmt.Fprintln(p.out)
}

func (p *plainSession) printProgress() {
	sum := p.ctrl.Summary()
	fmt.Fprintln(p.out, "\nProgress")
	if sum.Attempts == 0 {
		fmt.Fprintln(p.out, "  No attempts yet.")
		return
	}

	fmt.Fprintf(p.out, "  Attempts: %d  Average: %s\n", sum.Attempts, session.FormatAverage(sum.Average))
	parts := make([]string, len(sum.ByType))
	for i, ta := range sum.ByType {
		parts[i] = fmt.Sprintf("%s %s", ta.Type.Label(), session.FormatAverage(ta.Average))
	}
	fmt.Fprintf(p.out, "  %s\n", strings.Join(parts, " | "))
	fmt.Fprintln(p.out, "  Recent:")
	for _, a := range sum.Recent {
		fmt.Fprintf(p.out, "    %s\n", a)
	}
}
