package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkazymov/dealerdesk/internal/client/api"
	"github.com/mkazymov/dealerdesk/internal/common"
)

func (a *App) login(ctx context.Context) {
	identifier, err := GetSimpleText(a.reader, "Enter email or username", a.out)
	if err != nil {
		a.printError(err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		a.printError(err)
		return
	}

	user, err := a.session.Login(ctx, identifier, password)
	if err != nil {
		a.printError(err)
		return
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Username, user.Role)
}

func (a *App) logout(ctx context.Context) {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
}

// printError renders errors per the taxonomy: validation errors list their
// field messages for the form layer (here, the terminal), everything else
// degrades to a single line.
func (a *App) printError(err error) {
	var ve *api.ValidationError
	switch {
	case errors.As(err, &ve):
		fmt.Fprintln(a.out, "Validation failed:", ve.Message)
		for field, msgs := range ve.Fields {
			for _, msg := range msgs {
				fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
			}
		}
	case errors.Is(err, common.ErrUnauthorized):
		fmt.Fprintln(a.out, "Unauthorized.")
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Not found.")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}
