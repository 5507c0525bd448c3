package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inventoryhub/admin-console/internal/client"
	"github.com/inventoryhub/admin-console/internal/core/domain"
	"github.com/inventoryhub/admin-console/internal/order"
	"github.com/inventoryhub/admin-console/internal/session"
)

// Console is the interactive shell tying the session manager, the API
// wrappers, and the order builder together. It owns the active section and
// the catalog snapshot; both are replaced wholesale on refresh, never
// mutated in place.
type Console struct {
	session *session.Manager
	api     *client.Client
	builder *order.Builder
	confirm Confirmer
	in      *bufio.Reader
	out     io.Writer
	logger  zerolog.Logger

	section   Section
	catalog   []domain.Product
	needLogin bool
}

// NewConsole wires a console over the given streams.
func NewConsole(mgr *session.Manager, api *client.Client, in io.Reader, out io.Writer, logger zerolog.Logger) *Console {
	br := bufio.NewReader(in)
	return &Console{
		session: mgr,
		api:     api,
		builder: order.NewBuilder(mgr),
		confirm: NewTerminalConfirmer(br, out),
		in:      br,
		out:     out,
		logger:  logger,
	}
}

// Run resolves the current identity, forcing login when needed, then
// serves commands until EOF or quit. Identity is always resolved before
// any section is shown.
func (c *Console) Run(ctx context.Context) error {
	c.session.OnSessionExpired(func() { c.needLogin = true })

	principal, err := c.ensurePrincipal(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	fmt.Fprintf(c.out, "Welcome, %s (%s)\n", principal.Username, principal.Role)

	c.section = SectionDashboard
	c.load(ctx, LoadDashboard)

	for {
		if c.needLogin {
			c.needLogin = false
			principal, err = c.ensurePrincipal(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
			fmt.Fprintf(c.out, "Welcome, %s (%s)\n", principal.Username, principal.Role)
		}

		fmt.Fprintf(c.out, "\n[%s] > ", c.section)
		line, err := c.in.ReadString('\n')
		if err != nil {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			c.printHelp()
		case "logout":
			c.session.Logout()
			c.needLogin = true
		case "refresh":
			c.load(ctx, loaderFor(c.section))
		case "new-order":
			c.newOrder(ctx)
		case "add-product":
			c.addProduct(ctx)
		case "edit-product":
			c.editProduct(ctx, args)
		case "delete-product":
			c.deleteProduct(ctx, args)
		case "order-status":
			c.orderStatus(ctx, args)
		case "delete-order":
			c.deleteOrder(ctx, args)
		case "add-user":
			c.addUser(ctx)
		case "user-role":
			c.userRole(ctx, args)
		default:
			if target, ok := SectionByName(cmd); ok {
				next, loader := Transition(c.section, target, c.session.Capabilities())
				if next == c.section && loader == LoadNothing && target != c.section {
					fmt.Fprintln(c.out, "You do not have access to that section.")
					continue
				}
				c.section = next
				c.load(ctx, loader)
				continue
			}
			fmt.Fprintf(c.out, "Unknown command %q; try \"help\".\n", cmd)
		}
	}
}

// ensurePrincipal loops on the login prompt until a principal exists.
func (c *Console) ensurePrincipal(ctx context.Context) (*domain.Principal, error) {
	for {
		principal, err := c.session.CurrentPrincipal(ctx)
		if err != nil {
			return nil, err
		}
		if principal != nil {
			return principal, nil
		}

		username, ok := c.confirm.Choose("Username", "")
		if !ok {
			return nil, io.EOF
		}
		password, _ := c.confirm.Choose("Password", "")

		principal, err = c.session.Authenticate(ctx, username, password)
		if err != nil {
			var authErr *domain.AuthError
			if errors.As(err, &authErr) {
				fmt.Fprintf(c.out, "Login failed: %s\n", authErr.Error())
				continue
			}
			return nil, err
		}
		return principal, nil
	}
}

func loaderFor(s Section) Loader {
	switch s {
	case SectionProducts:
		return LoadProducts
	case SectionOrders:
		return LoadOrders
	case SectionReports:
		return LoadReports
	case SectionUsers:
		return LoadUsers
	}
	return LoadDashboard
}

// load fetches and renders one section's data. On failure the previously
// rendered state is left alone; only the error message is shown.
func (c *Console) load(ctx context.Context, loader Loader) {
	switch loader {
	case LoadDashboard:
		stats, err := c.api.Reports.DashboardStats(ctx)
		if err != nil {
			c.fail(err)
			return
		}
		RenderDashboard(c.out, stats)
	case LoadProducts:
		products, err := c.api.Products.List(ctx)
		if err != nil {
			c.fail(err)
			return
		}
		c.catalog = products
		RenderProducts(c.out, products)
	case LoadOrders:
		orders, err := c.api.Orders.List(ctx)
		if err != nil {
			c.fail(err)
			return
		}
		RenderOrders(c.out, orders)
	case LoadReports:
		days := 30
		if v, ok := c.confirm.Choose("Report period in days", "30"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				days = n
			}
		}
		sales, err := c.api.Reports.Sales(ctx, days)
		if err != nil {
			c.fail(err)
			return
		}
		RenderSales(c.out, sales)
		inventory, err := c.api.Reports.Inventory(ctx)
		if err != nil {
			c.fail(err)
			return
		}
		RenderInventory(c.out, inventory)
	case LoadUsers:
		users, err := c.api.Users.List(ctx)
		if err != nil {
			c.fail(err)
			return
		}
		RenderUsers(c.out, users)
	}
}

// fail reports an action failure. A session-expired error stays silent
// here: the expiry hook has already queued the login prompt.
func (c *Console) fail(err error) {
	if errors.Is(err, domain.ErrSessionExpired) {
		return
	}
	fmt.Fprintf(c.out, "Error: %v\n", err)
}

func (c *Console) newOrder(ctx context.Context) {
	if !c.session.Capabilities().CanMutateOrders {
		fmt.Fprintln(c.out, "You do not have permission to create orders.")
		return
	}

	// Fresh snapshot so the selectable list reflects current stock.
	products, err := c.api.Products.List(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.catalog = products
	c.builder.StartDraft(products)
	if len(c.builder.Selectable()) == 0 {
		fmt.Fprintln(c.out, "No products in stock; cannot create an order.")
		c.builder.Cancel()
		return
	}

	name, _ := c.confirm.Choose("Customer name", "")
	email, _ := c.confirm.Choose("Customer email", "")
	c.builder.SetCustomer(name, email)

	fmt.Fprintln(c.out, "Available products:")
	for _, p := range c.builder.Selectable() {
		fmt.Fprintf(c.out, "  %s  %s (stock: %d)\n", p.ID, p.Name, p.StockQuantity)
	}

	for i := 0; ; i++ {
		id, ok := c.confirm.Choose(fmt.Sprintf("Line %d product id (empty to finish)", i+1), "")
		if !ok {
			break
		}
		quantityStr, _ := c.confirm.Choose("Quantity", "1")
		quantity, _ := strconv.Atoi(quantityStr)
		if err := c.builder.SetLine(i, id, quantity); err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
		if !c.confirm.Confirm("Add another item?") {
			break
		}
		c.builder.AddLine()
	}

	draft, err := c.builder.ValidateAndBuild()
	if err != nil {
		c.fail(err)
		c.builder.Cancel()
		return
	}

	created, err := c.builder.Submit(ctx, draft)
	if err != nil {
		c.fail(err)
		c.builder.Cancel()
		return
	}
	fmt.Fprintf(c.out, "Order %s created, total %.2f\n", created.OrderNumber, created.TotalAmount)

	// Order creation changed inventory: reload orders, products, and
	// stats, in that order, each awaited before the next.
	c.load(ctx, LoadOrders)
	c.load(ctx, LoadProducts)
	c.load(ctx, LoadDashboard)
}

func (c *Console) addProduct(ctx context.Context) {
	if !c.session.Capabilities().CanMutateProducts {
		fmt.Fprintln(c.out, "You do not have permission to modify products.")
		return
	}
	name, ok := c.confirm.Choose("Name", "")
	if !ok {
		return
	}
	sku, ok := c.confirm.Choose("SKU", "")
	if !ok {
		return
	}
	description, _ := c.confirm.Choose("Description", "")
	category, _ := c.confirm.Choose("Category", "")
	priceStr, _ := c.confirm.Choose("Price", "0")
	stockStr, _ := c.confirm.Choose("Stock quantity", "0")
	thresholdStr, _ := c.confirm.Choose("Low stock threshold", strconv.Itoa(domain.DefaultLowStockThreshold))

	price, _ := strconv.ParseFloat(priceStr, 64)
	stock, _ := strconv.Atoi(stockStr)
	threshold, _ := strconv.Atoi(thresholdStr)

	created, err := c.api.Products.Create(ctx, client.CreateProductInput{
		Name:              name,
		SKU:               sku,
		Description:       description,
		Category:          category,
		Price:             price,
		StockQuantity:     stock,
		LowStockThreshold: threshold,
	})
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Product %s created (%s)\n", created.Name, created.ID)
	c.load(ctx, LoadProducts)
}

func (c *Console) editProduct(ctx context.Context, args []string) {
	if !c.session.Capabilities().CanMutateProducts {
		fmt.Fprintln(c.out, "You do not have permission to modify products.")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: edit-product <id>")
		return
	}
	current, ok := c.findProduct(args[0])
	if !ok {
		fmt.Fprintln(c.out, "Unknown product id; run \"products\" first.")
		return
	}

	name, _ := c.confirm.Choose("Name", current.Name)
	description, _ := c.confirm.Choose("Description", current.Description)
	category, _ := c.confirm.Choose("Category", current.Category)
	priceStr, _ := c.confirm.Choose("Price", strconv.FormatFloat(current.Price, 'f', 2, 64))
	stockStr, _ := c.confirm.Choose("Stock quantity", strconv.Itoa(current.StockQuantity))
	thresholdStr, _ := c.confirm.Choose("Low stock threshold", strconv.Itoa(current.LowStockThreshold))

	price, _ := strconv.ParseFloat(priceStr, 64)
	stock, _ := strconv.Atoi(stockStr)
	threshold, _ := strconv.Atoi(thresholdStr)

	updated, err := c.api.Products.Update(ctx, current.ID, client.UpdateProductInput{
		Name:              &name,
		Description:       &description,
		Category:          &category,
		Price:             &price,
		StockQuantity:     &stock,
		LowStockThreshold: &threshold,
	})
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Product %s updated\n", updated.Name)
	c.load(ctx, LoadProducts)
}

func (c *Console) deleteProduct(ctx context.Context, args []string) {
	if !c.session.Capabilities().CanMutateProducts {
		fmt.Fprintln(c.out, "You do not have permission to modify products.")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: delete-product <id>")
		return
	}
	if !c.confirm.Confirm("Are you sure you want to delete this product?") {
		return
	}
	if err := c.api.Products.Delete(ctx, args[0]); err != nil {
		c.fail(err)
		return
	}
	c.load(ctx, LoadProducts)
}

func (c *Console) orderStatus(ctx context.Context, args []string) {
	if !c.session.Capabilities().CanMutateOrders {
		fmt.Fprintln(c.out, "You do not have permission to manage orders.")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: order-status <id>")
		return
	}
	statuses := make([]string, len(domain.OrderStatuses))
	for i, s := range domain.OrderStatuses {
		statuses[i] = string(s)
	}
	value, ok := c.confirm.Choose("New status ("+strings.Join(statuses, ", ")+")", "")
	if !ok {
		return
	}
	status := domain.OrderStatus(strings.ToLower(value))
	if !status.Valid() {
		fmt.Fprintf(c.out, "Invalid status. Please use one of: %s\n", strings.Join(statuses, ", "))
		return
	}
	if _, err := c.api.Orders.UpdateStatus(ctx, args[0], status); err != nil {
		c.fail(err)
		return
	}
	c.load(ctx, LoadOrders)
}

func (c *Console) deleteOrder(ctx context.Context, args []string) {
	if !c.session.Capabilities().CanMutateOrders {
		fmt.Fprintln(c.out, "You do not have permission to manage orders.")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: delete-order <id>")
		return
	}
	if !c.confirm.Confirm("Delete this order? Unshipped stock quantities will be restored.") {
		return
	}
	if err := c.api.Orders.Delete(ctx, args[0]); err != nil {
		c.fail(err)
		return
	}
	c.load(ctx, LoadOrders)
	c.load(ctx, LoadProducts)
	c.load(ctx, LoadDashboard)
}

func (c *Console) addUser(ctx context.Context) {
	if !c.session.Capabilities().CanManageUsers {
		fmt.Fprintln(c.out, "Only admins can create users.")
		return
	}
	username, ok := c.confirm.Choose("Username", "")
	if !ok {
		return
	}
	password, ok := c.confirm.Choose("Password", "")
	if !ok {
		return
	}
	roleValue, _ := c.confirm.Choose("Role (staff, manager, admin)", string(domain.RoleStaff))
	role := domain.Role(strings.ToLower(roleValue))
	if !role.Valid() {
		fmt.Fprintln(c.out, "Invalid role. Please use one of: staff, manager, admin")
		return
	}
	created, err := c.api.Users.Create(ctx, client.CreateUserInput{Username: username, Password: password, Role: role})
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "User %s created\n", created.Username)
	c.load(ctx, LoadUsers)
}

func (c *Console) userRole(ctx context.Context, args []string) {
	if !c.session.Capabilities().CanManageUsers {
		fmt.Fprintln(c.out, "Only admins can change user roles.")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: user-role <id>")
		return
	}
	roleValue, ok := c.confirm.Choose("New role (staff, manager, admin)", "")
	if !ok {
		return
	}
	role := domain.Role(strings.ToLower(roleValue))
	if !role.Valid() {
		fmt.Fprintln(c.out, "Invalid role. Please use one of: staff, manager, admin")
		return
	}
	if err := c.api.Users.ChangeRole(ctx, args[0], role); err != nil {
		c.fail(err)
		return
	}
	c.load(ctx, LoadUsers)
}

func (c *Console) findProduct(id string) (domain.Product, bool) {
	for _, p := range c.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `Sections: dashboard, products, orders, reports, users
Actions:  new-order, add-product, edit-product <id>, delete-product <id>,
          order-status <id>, delete-order <id>, add-user, user-role <id>
Other:    refresh, logout, help, quit`)
}
