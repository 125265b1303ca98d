package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dukerupert/atelier/internal/domain"
	"github.com/dukerupert/atelier/internal/session"
	"github.com/shopspring/decimal"
)

const usage = `usage: atelier <command> [arguments]

session:
  login --token T [--email E] [--role user|admin]
  logout
  whoami

catalog:
  products [--category ID] [--search TEXT]
  product <id>
  categories

cart:
  cart [show]
  cart add <productId> [quantity]
  cart update <productId> <quantity>
  cart remove <productId>
  cart sync | clear

wishlist:
  wishlist [show]
  wishlist add|remove|toggle <productId>
  wishlist sync

custom orders:
  custom-order create --item NAME --description TEXT [--quantity N] [--budget AMOUNT] [--reference ID]
  custom-order list
  custom-order get <id>
  custom-order pay <id>

admin:
  admin list [--status STATUS]
  admin approve|quote <id> --price AMOUNT [--note TEXT]
  admin reject <id> [--note TEXT]
  admin status <id> <PROCESSING|SHIPPED|DELIVERED>

orders:
  checkout --name N --line1 L --city C --state S --postal P --country CC --phone PH [--line2 L] [--notes TEXT]
  orders [id]
`

var errUsage = errors.New("invalid usage")

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "login":
		err = a.login(ctx, rest)
	case "logout":
		err = a.session.Logout(ctx)
		if err == nil {
			fmt.Fprintln(a.out, "signed out")
		}
	case "whoami":
		a.whoami()
	case "products":
		err = a.products(ctx, rest)
	case "product":
		err = a.product(ctx, rest)
	case "categories":
		err = a.categories(ctx)
	case "cart":
		err = a.cartCmd(ctx, rest)
	case "wishlist":
		err = a.wishlistCmd(ctx, rest)
	case "custom-order":
		err = a.customOrderCmd(ctx, rest)
	case "admin":
		err = a.adminCmd(ctx, rest)
	case "checkout":
		err = a.checkoutCmd(ctx, rest)
	case "orders":
		err = a.ordersCmd(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
	default:
		fmt.Fprintf(a.out, "unknown command %q\n\n%s", cmd, usage)
		return errUsage
	}
	return err
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// requireArgs checks the positional arguments left after flag parsing.
func requireArgs(cmd string, args []string, n int) error {
	if len(args) < n {
		return fmt.Errorf("%s: expected %d argument(s), got %d: %w", cmd, n, len(args), errUsage)
	}
	return nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, domain.Errorf(domain.EINVALID, "cli", "invalid amount %q", s)
	}
	return d, nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", a.out)
	token := fs.String("token", "", "bearer token issued by the backend")
	email := fs.String("email", "", "email shown by whoami")
	role := fs.String("role", session.RoleUser, "user or admin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Tokens issued by the mock backend carry the identity: role:id.
	id := *token
	if _, rest, ok := strings.Cut(*token, ":"); ok {
		id = rest
	}

	if err := a.session.Login(ctx, session.Record{
		Token: *token,
		User:  session.User{ID: id, Email: *email, Role: *role},
	}); err != nil {
		return err
	}

	// A fresh session adopts the server's view of cart and wishlist.
	a.cart.SyncWithBackend(ctx)
	a.wishlist.SyncWithBackend(ctx)

	fmt.Fprintf(a.out, "signed in as %s (%s)\n", id, *role)
	return nil
}

func (a *app) whoami() {
	rec, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(a.out, "guest")
		return
	}
	if rec.User.Email != "" {
		fmt.Fprintf(a.out, "%s <%s> (%s)\n", rec.User.ID, rec.User.Email, rec.User.Role)
		return
	}
	fmt.Fprintf(a.out, "%s (%s)\n", rec.User.ID, rec.User.Role)
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := newFlagSet("products", a.out)
	category := fs.String("category", "", "category id")
	search := fs.String("search", "", "search text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := a.catalog.ListProducts(ctx, domain.ProductFilter{CategoryID: *category, Search: *search})
	if err != nil {
		return err
	}
	printProducts(a.out, products)
	return nil
}

func (a *app) product(ctx context.Context, args []string) error {
	if err := requireArgs("product", args, 1); err != nil {
		return err
	}
	p, err := a.catalog.GetProduct(ctx, args[0])
	if err != nil {
		return err
	}
	printProduct(a.out, p)
	return nil
}

func (a *app) categories(ctx context.Context) error {
	categories, err := a.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	printCategories(a.out, categories)
	return nil
}

func (a *app) cartCmd(ctx context.Context, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "show":
	case "add":
		if err := requireArgs("cart add", args, 1); err != nil {
			return err
		}
		quantity := 1
		if len(args) > 1 {
			if _, err := fmt.Sscan(args[1], &quantity); err != nil {
				return fmt.Errorf("cart add: invalid quantity %q: %w", args[1], errUsage)
			}
		}
		p, err := a.catalog.GetProduct(ctx, args[0])
		if err != nil {
			return err
		}
		a.cart.AddItem(ctx, p, quantity)
	case "update":
		if err := requireArgs("cart update", args, 2); err != nil {
			return err
		}
		var quantity int
		if _, err := fmt.Sscan(args[1], &quantity); err != nil {
			return fmt.Errorf("cart update: invalid quantity %q: %w", args[1], errUsage)
		}
		a.cart.UpdateQuantity(ctx, args[0], quantity)
	case "remove":
		if err := requireArgs("cart remove", args, 1); err != nil {
			return err
		}
		a.cart.RemoveItem(ctx, args[0])
	case "sync":
		a.cart.SyncWithBackend(ctx)
	case "clear":
		a.cart.ClearCart(ctx)
	default:
		return fmt.Errorf("cart: unknown subcommand %q: %w", sub, errUsage)
	}

	printCart(a.out, a.cart.State())
	return nil
}

func (a *app) wishlistCmd(ctx context.Context, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "show":
	case "sync":
		a.wishlist.SyncWithBackend(ctx)
	case "remove":
		if err := requireArgs("wishlist remove", args, 1); err != nil {
			return err
		}
		if !a.wishlist.IsInWishlist(args[0]) {
			fmt.Fprintf(a.out, "%s is not in the wishlist\n", args[0])
			break
		}
		a.wishlist.RemoveItem(ctx, args[0])
	case "add", "toggle":
		if err := requireArgs("wishlist "+sub, args, 1); err != nil {
			return err
		}
		p, err := a.catalog.GetProduct(ctx, args[0])
		if err != nil {
			return err
		}
		if sub == "add" {
			a.wishlist.AddItem(ctx, p)
		} else {
			a.wishlist.ToggleItem(ctx, p)
		}
	default:
		return fmt.Errorf("wishlist: unknown subcommand %q: %w", sub, errUsage)
	}

	printWishlist(a.out, a.wishlist.State())
	return nil
}

func (a *app) customOrderCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("custom-order: missing subcommand: %w", errUsage)
	}
	sub, args := args[0], args[1:]

	switch sub {
	case "create":
		fs := newFlagSet("custom-order create", a.out)
		item := fs.String("item", "", "item name")
		description := fs.String("description", "", "what should be made")
		quantity := fs.Int("quantity", 1, "number of pieces")
		budget := fs.String("budget", "0", "budget for the whole request")
		reference := fs.String("reference", "", "catalog product to use as reference")
		if err := fs.Parse(args); err != nil {
			return err
		}
		amount, err := parseMoney(*budget)
		if err != nil {
			return err
		}

		req := domain.CustomOrderRequest{
			ItemName:    *item,
			Description: *description,
			Quantity:    *quantity,
			Budget:      amount,
		}
		if *reference != "" {
			req.ReferenceProductID = reference
		}
		o, err := a.customOrders.Create(ctx, req)
		if err != nil {
			return err
		}
		printCustomOrder(a.out, o, domain.ActorUser)
	case "list":
		orders, err := a.customOrders.ListMine(ctx)
		if err != nil {
			return err
		}
		printCustomOrders(a.out, orders)
	case "get":
		if err := requireArgs("custom-order get", args, 1); err != nil {
			return err
		}
		o, err := a.customOrders.Get(ctx, args[0])
		if err != nil {
			return err
		}
		printCustomOrder(a.out, o, a.actor())
	case "pay":
		if err := requireArgs("custom-order pay", args, 1); err != nil {
			return err
		}
		o, err := a.customOrders.Pay(ctx, args[0])
		if err != nil {
			return err
		}
		printCustomOrder(a.out, o, domain.ActorUser)
	default:
		return fmt.Errorf("custom-order: unknown subcommand %q: %w", sub, errUsage)
	}
	return nil
}

func (a *app) adminCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("admin: missing subcommand: %w", errUsage)
	}
	sub, args := args[0], args[1:]

	if sub == "list" {
		fs := newFlagSet("admin list", a.out)
		status := fs.String("status", "", "only orders in this status")
		if err := fs.Parse(args); err != nil {
			return err
		}
		var filter *domain.CustomOrderStatus
		if *status != "" {
			s, err := domain.ParseCustomOrderStatus(*status)
			if err != nil {
				return err
			}
			filter = &s
		}
		orders, err := a.customOrders.AdminList(ctx, filter)
		if err != nil {
			return err
		}
		printCustomOrders(a.out, orders)
		return nil
	}

	// Every other admin subcommand takes the order id first, then flags.
	if err := requireArgs("admin "+sub, args, 1); err != nil {
		return err
	}
	id, args := args[0], args[1:]

	var (
		o   domain.CustomOrder
		err error
	)
	switch sub {
	case "approve", "quote":
		fs := newFlagSet("admin "+sub, a.out)
		price := fs.String("price", "", "agreed price for the whole request")
		note := fs.String("note", "", "note shown to the customer")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *price == "" {
			return fmt.Errorf("admin %s: --price is required: %w", sub, errUsage)
		}
		amount, err := parseMoney(*price)
		if err != nil {
			return err
		}
		if sub == "approve" {
			o, err = a.customOrders.Approve(ctx, id, amount, *note)
		} else {
			o, err = a.customOrders.Quote(ctx, id, amount, *note)
		}
		if err != nil {
			return err
		}
	case "reject":
		fs := newFlagSet("admin reject", a.out)
		note := fs.String("note", "", "reason shown to the customer")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if o, err = a.customOrders.Reject(ctx, id, *note); err != nil {
			return err
		}
	case "status":
		if err := requireArgs("admin status", args, 1); err != nil {
			return err
		}
		status, err := domain.ParseCustomOrderStatus(args[0])
		if err != nil {
			return err
		}
		if o, err = a.customOrders.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
	default:
		return fmt.Errorf("admin: unknown subcommand %q: %w", sub, errUsage)
	}

	printCustomOrder(a.out, o, domain.ActorAdmin)
	return nil
}

func (a *app) checkoutCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("checkout", a.out)
	var addr domain.Address
	fs.StringVar(&addr.FullName, "name", "", "recipient name")
	fs.StringVar(&addr.Line1, "line1", "", "address line 1")
	fs.StringVar(&addr.Line2, "line2", "", "address line 2")
	fs.StringVar(&addr.City, "city", "", "city")
	fs.StringVar(&addr.State, "state", "", "state or region")
	fs.StringVar(&addr.PostalCode, "postal", "", "postal code")
	fs.StringVar(&addr.Country, "country", "", "two-letter country code")
	fs.StringVar(&addr.Phone, "phone", "", "contact phone")
	notes := fs.String("notes", "", "delivery notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	order, err := a.checkout.Checkout(ctx, domain.CheckoutRequest{ShippingAddress: addr, Notes: *notes})
	if err != nil {
		return err
	}
	printOrder(a.out, order)
	return nil
}

func (a *app) ordersCmd(ctx context.Context, args []string) error {
	if len(args) > 0 {
		order, err := a.checkout.GetOrder(ctx, args[0])
		if err != nil {
			return err
		}
		printOrder(a.out, order)
		return nil
	}

	orders, err := a.checkout.ListMyOrders(ctx)
	if err != nil {
		return err
	}
	printOrders(a.out, orders)
	return nil
}

func (a *app) actor() domain.Actor {
	if a.session.IsAdmin() {
		return domain.ActorAdmin
	}
	return domain.ActorUser
}
