package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to dealerdesk (type 'help' for commands)")

	fmt.Fprintln(a.out, "Checking session...")
	a.session.Check(ctx)
	if user, ok := a.session.CurrentUser(); ok {
		fmt.Fprintf(a.out, "Welcome back, %s (%s)\n", user.Username, user.Role)
	} else {
		fmt.Fprintln(a.out, "Not logged in.")
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "ddesk %s> ", a.status())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami()
		case "list", "get", "create", "delete", "sales", "document":
			if err := a.runView(ctx, cmd, args); err != nil {
				a.printError(err)
			}
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if _, ok := a.session.CurrentUser(); ok {
		fmt.Fprintln(a.out, "Available commands:")
		fmt.Fprintln(a.out, "  list <resource> [page]        list branches|vehicles|customers|orders")
		fmt.Fprintln(a.out, "  get <resource> <id>           show one entity")
		fmt.Fprintln(a.out, "  create <resource> k=v ...     create an entity")
		fmt.Fprintln(a.out, "  delete <resource> <id>        delete an entity")
		fmt.Fprintln(a.out, "  sales                         per-branch sales summary")
		fmt.Fprintln(a.out, "  document <order-id>           download an order document")
		fmt.Fprintln(a.out, "  whoami, logout, exit")
		return
	}
	fmt.Fprintln(a.out, "Available commands: login, exit")
}

func (a *App) whoami() {
	user, ok := a.session.CurrentUser()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s\n", user.Username, user.Email, user.Role)
}
