package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptConfirmer asks yes/no questions on a terminal-like stream pair.
// Anything other than y/yes is a no; unrecognised answers re-ask.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptConfirmer returns a confirmer reading answers from in and writing prompts to out
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm implements jpeg.Confirmer. The default answer is no.
func (c *PromptConfirmer) Confirm(prompt string) (bool, error) {
	for {
		fmt.Fprintf(c.out, "%s [y/N]: ", prompt)

		line, err := c.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))

		switch answer {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "":
			if err != nil {
				fmt.Fprintln(c.out)
				return false, err
			}
			return false, nil
		}

		if err != nil {
			fmt.Fprintln(c.out)
			return false, err
		}
		fmt.Fprintln(c.out, "Error: invalid input")
	}
}
