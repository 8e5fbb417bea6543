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
	"context"
	"fmt"
	"sort"
	"strings"

	"mitei-ledger-go/internal/common"
	"mitei-ledger-go/internal/models"
	"mitei-ledger-go/internal/money"
)

type command struct {
	args        []string
	description string
	run         func(ctx context.Context, c *Console, args []string) error
}

func (cmd command) usage(name string) string {
	if len(cmd.args) == 0 {
		return name
	}
	return name + " <" + strings.Join(cmd.args, "> <") + ">"
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"create": {
			args:        []string{"account", "password"},
			description: "Create a new account with a 5-digit password",
			run:         runCreate,
		},
		"login": {
			args:        []string{"account", "password"},
			description: "Log in to an existing account",
			run:         runLogin,
		},
		"logout": {
			description: "Log out of the current account",
			run:         runLogout,
		},
		"balance": {
			description: "Check the current balance",
			run:         runBalance,
		},
		"deposit": {
			args:        []string{"amount"},
			description: "Deposit money",
			run:         runDeposit,
		},
		"withdraw": {
			args:        []string{"amount"},
			description: "Withdraw money",
			run:         runWithdraw,
		},
		"send": {
			args:        []string{"recipient", "amount"},
			description: "Send money to another account",
			run:         runSend,
		},
		"help": {
			description: "Show this list",
			run:         runHelp,
		},
	}
}

// report prints the outcome of a BankService call. Business failures are
// already rendered into result.Error; only backend faults come back as err.
func (c *Console) report(result *models.OperationResult, err error) error {
	if result.Success {
		if result.Message != "" {
			fmt.Fprintln(c.out, result.Message)
		}
	} else {
		fmt.Fprintln(c.out, result.Error)
		c.dropStaleSession()
	}
	return err
}

func runCreate(ctx context.Context, c *Console, args []string) error {
	return c.report(c.bank.CreateAccount(ctx, args[0], args[1]))
}

func runLogin(ctx context.Context, c *Console, args []string) error {
	result, err := c.bank.Login(ctx, args[0], args[1])
	if result.Success {
		if c.token != "" {
			c.bank.Logout(c.token)
		}
		c.token, c.owner = result.Token, result.AccountNumber
	}
	return c.report(result, err)
}

func runLogout(_ context.Context, c *Console, _ []string) error {
	result := c.bank.Logout(c.token)
	c.token, c.owner = "", ""
	return c.report(result, nil)
}

func runBalance(ctx context.Context, c *Console, _ []string) error {
	return c.printBalance(ctx, "Your balance is")
}

func (c *Console) printBalance(ctx context.Context, label string) error {
	result, err := c.bank.Balance(ctx, c.token)
	if result.Success {
		fmt.Fprintf(c.out, "%s: %s\n", label, money.Format(result.NewBalance))
	}
	return c.report(result, err)
}

func runDeposit(ctx context.Context, c *Console, args []string) error {
	return c.report(c.bank.Deposit(ctx, c.token, args[0]))
}

func runWithdraw(ctx context.Context, c *Console, args []string) error {
	return c.report(c.bank.Withdraw(ctx, c.token, args[0]))
}

func runSend(ctx context.Context, c *Console, args []string) error {
	result, err := c.bank.Send(ctx, c.token, args[0], args[1])
	if err := c.report(result, err); err != nil || !result.Success {
		return err
	}
	return c.printBalance(ctx, "Your new balance is")
}

func runHelp(_ context.Context, c *Console, _ []string) error {
	names := make([]string, 0, len(commands)+1)
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(c.out, "Commands:")
	for i, name := range names {
		fmt.Fprintf(c.out, "%s%-28s %s\n", common.BoxPrefix(false), commands[name].usage(name), commands[name].description)
		if i == len(names)-1 {
			fmt.Fprintf(c.out, "%s%-28s %s\n", common.BoxPrefix(true), "quit", "Leave the bank")
		}
	}
	return nil
}
