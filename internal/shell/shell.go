// Package shell implements the interactive storefront: a read-eval-print
// loop over the view models, with the credential gate applied to every
// protected command.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/ordernest/storefront/internal/domain/user"
	"github.com/ordernest/storefront/internal/session"
	"github.com/ordernest/storefront/internal/view"
	"github.com/ordernest/storefront/pkg/health"
)

// Authenticator is the slice of the auth backend the shell itself consumes.
// The views take their own, narrower interfaces.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, r user.Registration) error
	Me(ctx context.Context) (*user.Profile, error)
}

// Options carries the shell's dependencies.
type Options struct {
	Auth      Authenticator
	Inventory view.Inventory
	Orders    view.Orders
	Payments  view.Payments
	Identity  view.Identity
	Store     *session.Store
	Prober    *health.Prober

	// WatchInterval is the polling interval of the watch command.
	WatchInterval time.Duration

	In     io.Reader
	Out    io.Writer
	Logger *zap.Logger
}

// Shell is the interactive storefront session. It owns the view models and
// the guard; the guard's redirect lands the user back at the login prompt
// by printing the sign-in notice.
type Shell struct {
	auth   Authenticator
	store  *session.Store
	guard  *view.Guard
	prober *health.Prober

	products *view.ProductsView
	detail   *view.ProductDetailView
	order    *view.OrderDetailView

	watchInterval time.Duration

	in  *bufio.Reader
	out io.Writer
	lg  *zap.Logger
}

// New assembles a Shell and its views.
func New(opts Options) *Shell {
	s := &Shell{
		auth:          opts.Auth,
		store:         opts.Store,
		prober:        opts.Prober,
		watchInterval: opts.WatchInterval,
		in:            bufio.NewReader(opts.In),
		out:           opts.Out,
		lg:            opts.Logger,
	}
	if s.watchInterval <= 0 {
		s.watchInterval = 3 * time.Second
	}

	s.guard = view.NewGuard(opts.Store, opts.Logger, s.sessionExpired)
	s.products = view.NewProductsView(opts.Inventory, s.guard)
	s.detail = view.NewProductDetailView(opts.Inventory, opts.Orders, s.guard)
	s.order = view.NewOrderDetailView(opts.Orders, opts.Identity, opts.Payments, s.guard)
	return s
}

// Run prints the landing banner and drives the loop until EOF, "exit", or
// ctx cancellation. Commands that prompt for more input (login, register)
// read follow-up lines from the same reader, so the loop reads lines
// directly instead of through a scanner with its own buffer.
func (s *Shell) Run(ctx context.Context) error {
	s.banner()

	for {
		s.prompt()
		line, readErr := s.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) > 0 {
			cmd, args := fields[0], fields[1:]
			if cmd == "exit" || cmd == "quit" {
				s.printf("Bye!\n")
				return nil
			}
			s.dispatch(ctx, cmd, args)
		}

		if readErr != nil {
			return nil
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, cmd string, args []string) {
	s.lg.Debug("Command", zap.String("cmd", cmd), zap.Int("args", len(args)))

	switch cmd {
	case "help":
		s.help()
	case "login":
		s.cmdLogin(ctx)
	case "register":
		s.cmdRegister(ctx)
	case "logout":
		s.cmdLogout()
	case "products":
		s.gated(func() { s.cmdProducts(ctx, strings.Join(args, " ")) })
	case "product":
		s.gated(func() { s.cmdProduct(ctx, args) })
	case "buy":
		s.gated(func() { s.cmdBuy(ctx, args) })
	case "order":
		s.gated(func() { s.cmdOrder(ctx, args) })
	case "pay":
		s.gated(func() { s.cmdPay(ctx) })
	case "refresh":
		s.gated(func() { s.cmdRefresh(ctx) })
	case "watch":
		s.gated(func() { s.cmdWatch(ctx) })
	case "whoami":
		s.gated(func() { s.cmdWhoami(ctx) })
	case "status":
		s.cmdStatus(ctx)
	default:
		s.printf("Unknown command: %s (try 'help')\n", cmd)
	}
}

// gated applies the route gate: protected commands run only with a stored
// credential. The check is local; an expired token is discovered when the
// command's backend call fails.
func (s *Shell) gated(run func()) {
	if !s.guard.Allow() {
		s.printf("Please sign in first (try 'login').\n")
		return
	}
	run()
}

// sessionExpired is the guard's redirect target: by the time it runs the
// credential is already cleared, so the next prompt shows the signed-out
// state.
func (s *Shell) sessionExpired() {
	s.printf("Your session has expired. Please sign in again.\n")
}

func (s *Shell) banner() {
	s.printf("Welcome to OrderNest.\n")
	s.printf("Browse products, place orders, track payments.\n")
	if s.store.Authenticated() {
		s.printf("Signed in. Type 'products' to browse, or 'help' for commands.\n")
	} else {
		s.printf("Type 'login' or 'register' to get started, or 'help' for commands.\n")
	}
}

func (s *Shell) prompt() {
	state := "signed out"
	if s.store.Authenticated() {
		state = "signed in"
	}
	s.printf("ordernest (%s) > ", state)
}

func (s *Shell) help() {
	s.printf(`Commands:
  login               sign in with email and password
  register            create an account
  logout              discard the stored credential
  products [query]    list products, optionally filtered
  product <id>        show one product
  buy <qty>           order the shown product
  order <id>          show an order
  pay                 pay for the shown order
  refresh             re-fetch the shown order
  watch               poll the shown order until payment settles
  whoami              show the signed-in profile
  status              check backend reachability
  exit                leave
`)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
