/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"mitei-ledger-go/internal/api"
	"mitei-ledger-go/internal/common"

	"go.uber.org/zap"
)

const prompt = "> "

// Console is a line-oriented driver over BankService. It keeps at most one
// session token for the operator at the terminal.
type Console struct {
	bank  *api.BankService
	in    *bufio.Scanner
	out   io.Writer
	token string
	owner string
}

func New(bank *api.BankService, in io.Reader, out io.Writer) *Console {
	return &Console{
		bank: bank,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run reads commands until quit, end of input, or ctx is done. Cancelling
// ctx interrupts a pending read and Run returns ctx.Err().
func (c *Console) Run(ctx context.Context) error {
	common.WriteHeader(c.out, "MITEI BANK", common.DefaultWidth)
	fmt.Fprintln(c.out, "Type 'help' for a list of commands.")

	done := make(chan struct{})
	defer close(done)
	lines, readErr := c.readLines(done)

	for {
		if err := ctx.Err(); err != nil {
			c.goodbye()
			return err
		}

		fmt.Fprint(c.out, c.prompt())
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			c.goodbye()
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := readErr(); err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				c.goodbye()
				return nil
			}
			if quit := c.execute(ctx, line); quit {
				c.goodbye()
				return nil
			}
		}
	}
}

// readLines scans input on its own goroutine so a blocked read never holds
// up cancellation. The goroutine exits at end of input or once done is
// closed and its next read returns.
func (c *Console) readLines(done <-chan struct{}) (<-chan string, func() error) {
	lines := make(chan string)
	var err error

	go func() {
		defer close(lines)
		for c.in.Scan() {
			select {
			case lines <- c.in.Text():
			case <-done:
				return
			}
		}
		err = c.in.Err()
	}()

	// Only called after lines is closed, so err is settled.
	return lines, func() error { return err }
}

// execute runs one input line and reports whether the operator asked to quit.
func (c *Console) execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	if name == "quit" || name == "exit" {
		return true
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(c.out, "Unknown command %q. Type 'help' for a list of commands.\n", name)
		return false
	}
	if len(args) != len(cmd.args) {
		fmt.Fprintf(c.out, "Usage: %s\n", cmd.usage(name))
		return false
	}

	if err := cmd.run(ctx, c, args); err != nil {
		zap.L().Error("Command failed", zap.String("command", name), zap.Error(err))
	}
	return false
}

func (c *Console) prompt() string {
	if c.owner == "" {
		return prompt
	}
	return fmt.Sprintf("[%s] %s", c.owner, prompt)
}

func (c *Console) goodbye() {
	if c.token != "" {
		c.bank.Logout(c.token)
		c.token, c.owner = "", ""
	}
	common.WriteFooter(c.out, "Goodbye!", common.DefaultWidth)
}

// dropStaleSession forgets the local token once the service no longer
// recognises it, so the prompt reflects the logged-out state.
func (c *Console) dropStaleSession() {
	if c.token == "" {
		return
	}
	if _, err := c.bank.Session(c.token); err != nil {
		c.token, c.owner = "", ""
	}
}
