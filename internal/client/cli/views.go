package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mkazymov/dealerdesk/internal/client/api"
	"github.com/mkazymov/dealerdesk/internal/client/guard"
	"github.com/mkazymov/dealerdesk/internal/client/resource"
	"github.com/mkazymov/dealerdesk/internal/client/session"
	"github.com/mkazymov/dealerdesk/internal/models"
)

const defaultPageSize = 10

// view is one dashboard screen: typed operations over a single resource,
// gated by role allow-lists. viewRoles gates reading, mutateRoles gates
// create/delete. An empty list admits any authenticated user.
type view struct {
	viewRoles   []models.Role
	mutateRoles []models.Role

	list   func(ctx context.Context, p api.Params) error
	get    func(ctx context.Context, id int) error
	create func(ctx context.Context, fields map[string]any) error
	remove func(ctx context.Context, id int) error
}

func (a *App) registerViews() {
	a.views = make(map[string]view)

	adminOnly := []models.Role{models.RoleAdmin}
	salesStaff := []models.Role{models.RoleAdmin, models.RoleSales}

	registerCollection(a, a.branches, nil, adminOnly, renderBranch)
	registerCollection(a, a.vehicles, nil, salesStaff, renderVehicle)
	registerCollection(a, a.customers, salesStaff, salesStaff, renderCustomer)
	registerCollection(a, a.orders, salesStaff, salesStaff, renderOrder)
}

// registerCollection adapts a typed collection into a view. All resources
// go through the same code path; only rendering and allow-lists differ.
func registerCollection[T any](a *App, col *resource.Collection[T], viewRoles, mutateRoles []models.Role, render func(w io.Writer, item T)) {
	a.views[col.Name()] = view{
		viewRoles:   viewRoles,
		mutateRoles: mutateRoles,
		list: func(ctx context.Context, p api.Params) error {
			page, err := col.List(ctx, p)
			if err != nil {
				return err
			}
			for _, item := range page.Items {
				render(a.out, item)
			}
			fmt.Fprintf(a.out, "page %d, %d of %d total\n", max(p.Page, 1), len(page.Items), page.Total)
			return nil
		},
		get: func(ctx context.Context, id int) error {
			item, err := col.Get(ctx, id)
			if err != nil {
				return err
			}
			render(a.out, item)
			return nil
		},
		create: func(ctx context.Context, fields map[string]any) error {
			item, err := col.Create(ctx, fields)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Created:")
			render(a.out, item)
			return nil
		},
		remove: func(ctx context.Context, id int) error {
			if err := col.Remove(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Deleted.")
			return nil
		},
	}
}

// allow evaluates the guard for the current session and reports the outcome
// to the user when the view may not render.
func (a *App) allow(roles []models.Role) bool {
	user, _ := a.session.CurrentUser()
	switch guard.Evaluate(a.session.State(), user.Role, roles...) {
	case guard.Show:
		return true
	case guard.Loading:
		fmt.Fprintln(a.out, "Session is still being checked, try again.")
		return false
	default:
		if a.session.State() == session.StateAuthenticated {
			fmt.Fprintln(a.out, "Your role does not allow this view.")
		} else {
			fmt.Fprintln(a.out, "Please log in first.")
		}
		return false
	}
}

func (a *App) runView(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "sales":
		if !a.allow([]models.Role{models.RoleAdmin, models.RoleSales}) {
			return nil
		}
		return a.salesView(ctx)
	case "document":
		if len(args) != 1 {
			return fmt.Errorf("usage: document <order-id>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("order id must be a number")
		}
		if !a.allow([]models.Role{models.RoleAdmin, models.RoleSales}) {
			return nil
		}
		return a.downloadDocument(ctx, id)
	}

	if len(args) == 0 {
		return fmt.Errorf("usage: %s <resource> ...", cmd)
	}
	name := args[0]
	v, ok := a.views[name]
	if !ok {
		return fmt.Errorf("unknown resource %q", name)
	}
	args = args[1:]

	switch cmd {
	case "list":
		if !a.allow(v.viewRoles) {
			return nil
		}
		p := api.Params{Page: 1, PageSize: defaultPageSize}
		if len(args) > 0 {
			page, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("page must be a number")
			}
			p.Page = page
		}
		return v.list(ctx, p)

	case "get":
		if !a.allow(v.viewRoles) {
			return nil
		}
		if len(args) != 1 {
			return fmt.Errorf("usage: get %s <id>", name)
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("id must be a number")
		}
		return v.get(ctx, id)

	case "create":
		if !a.allow(v.mutateRoles) {
			return nil
		}
		fields, err := parseFields(args)
		if err != nil {
			return err
		}
		return v.create(ctx, fields)

	case "delete":
		if !a.allow(v.mutateRoles) {
			return nil
		}
		if len(args) != 1 {
			return fmt.Errorf("usage: delete %s <id>", name)
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("id must be a number")
		}
		return v.remove(ctx, id)
	}

	return fmt.Errorf("unknown command %q", cmd)
}

// parseFields turns "name=Center city=Riga price=19900" into a payload map,
// coercing numbers and booleans.
func parseFields(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expected at least one field=value pair")
	}
	fields := make(map[string]any, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field %q, expected name=value", arg)
		}
		fields[name] = coerce(value)
	}
	return fields, nil
}

func coerce(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func renderBranch(w io.Writer, b models.Branch) {
	fmt.Fprintf(w, "#%d %s — %s, %s (%.4f, %.4f)\n", b.ID, b.Name, b.City, b.Address, b.Latitude, b.Longitude)
}

func renderVehicle(w io.Writer, v models.Vehicle) {
	branch := "-"
	if v.Branch != nil {
		branch = v.Branch.Name
	}
	fmt.Fprintf(w, "#%d %s %s %d vin=%s %.2f %s branch=%s\n", v.ID, v.Make, v.Model, v.Year, v.VIN, v.Price, v.Status, branch)
}

func renderCustomer(w io.Writer, c models.Customer) {
	fmt.Fprintf(w, "#%d %s %s %s\n", c.ID, c.FullName, c.Phone, c.Email)
}

func renderOrder(w io.Writer, o models.Order) {
	customer := "-"
	if o.Customer != nil {
		customer = o.Customer.FullName
	}
	vehicle := "-"
	if o.Vehicle != nil {
		vehicle = o.Vehicle.Make + " " + o.Vehicle.Model
	}
	fmt.Fprintf(w, "#%d %s %s %.2f customer=%s vehicle=%s\n", o.ID, o.Number, o.Status, o.Total, customer, vehicle)
}
