package shell

import (
	"context"
	"strconv"

	"github.com/ordernest/storefront/internal/backend"
	"github.com/ordernest/storefront/internal/domain/user"
)

func (s *Shell) cmdLogin(ctx context.Context) {
	// Signed-in users heading for login get bounced to the catalog instead.
	if s.store.Authenticated() {
		s.printf("Already signed in.\n")
		s.cmdProducts(ctx, "")
		return
	}

	email, err := s.readLine("Email")
	if err != nil {
		return
	}
	password, err := s.readSecret("Password")
	if err != nil {
		return
	}

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.printf("%s\n", backend.Reason(err, "Unable to sign in. Please try again."))
		return
	}
	if err := s.store.SetToken(token); err != nil {
		s.printf("Signing in failed: could not save the credential.\n")
		return
	}

	s.printf("Signed in.\n")
	s.cmdProducts(ctx, "")
}

func (s *Shell) cmdRegister(ctx context.Context) {
	var (
		r   user.Registration
		err error
	)
	if r.FirstName, err = s.readLine("First name"); err != nil {
		return
	}
	if r.LastName, err = s.readLine("Last name"); err != nil {
		return
	}
	if r.Email, err = s.readLine("Email"); err != nil {
		return
	}
	if r.Password, err = s.readSecret("Password"); err != nil {
		return
	}

	// Validation failures block the submit; nothing reaches the network.
	if errs := r.Validate(); len(errs) > 0 {
		for _, field := range []string{user.FieldFirstName, user.FieldLastName, user.FieldEmail, user.FieldPassword} {
			if msg, ok := errs[field]; ok {
				s.printf("  %s: %s\n", field, msg)
			}
		}
		return
	}

	if err := s.auth.Register(ctx, r); err != nil {
		s.printf("%s\n", backend.Reason(err, "Unable to register. Please try again."))
		return
	}
	s.printf("Account created. Sign in with 'login'.\n")
}

func (s *Shell) cmdLogout() {
	if err := s.store.Clear(); err != nil {
		s.printf("Signing out failed: could not clear the credential.\n")
		return
	}
	s.printf("Signed out.\n")
}

func (s *Shell) cmdProducts(ctx context.Context, query string) {
	s.products.SetQuery(query)
	s.products.Load(ctx)
	if msg := s.products.Err(); msg != "" {
		s.printf("%s\n", msg)
		return
	}
	// The load may have torn the session down; nothing left to render then.
	if !s.guard.Allow() {
		return
	}
	s.renderProducts(s.products.Visible())
}

func (s *Shell) cmdProduct(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.printf("Usage: product <id>\n")
		return
	}
	s.detail.Load(ctx, args[0])
	if msg := s.detail.Err(); msg != "" {
		s.printf("%s\n", msg)
		return
	}
	s.renderProductDetail()
}

func (s *Shell) cmdBuy(ctx context.Context, args []string) {
	if s.detail.Product() == nil {
		s.printf("Show a product first (try 'product <id>').\n")
		return
	}
	if len(args) > 1 {
		s.printf("Usage: buy [qty]\n")
		return
	}
	if len(args) == 1 {
		qty, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			s.printf("Usage: buy [qty]\n")
			return
		}
		s.detail.SetQuantity(qty)
	}
	if !s.detail.CanBuy() {
		s.printf("This product is out of stock.\n")
		return
	}

	orderID, ok := s.detail.Buy(ctx)
	if !ok {
		if msg := s.detail.BuyErr(); msg != "" {
			s.printf("%s\n", msg)
		}
		return
	}

	s.printf("Order placed: %s\n", orderID)
	s.loadOrder(ctx, orderID)
}

func (s *Shell) cmdOrder(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.printf("Usage: order <id>\n")
		return
	}
	s.loadOrder(ctx, args[0])
}

func (s *Shell) loadOrder(ctx context.Context, id string) {
	s.order.Load(ctx, id)
	if msg := s.order.Err(); msg != "" {
		s.printf("%s\n", msg)
		return
	}
	s.renderOrder()
}

func (s *Shell) cmdPay(ctx context.Context) {
	if s.order.Order() == nil {
		s.printf("Show an order first (try 'order <id>').\n")
		return
	}
	if !s.order.CanPay() {
		if s.order.PaymentInitiated() {
			s.printf("Payment already initiated. Use 'refresh' or 'watch' to track it.\n")
		} else {
			s.printf("This order has no pending payment.\n")
		}
		return
	}

	s.order.PayNow(ctx)
	if msg := s.order.PayErr(); msg != "" {
		s.printf("%s\n", msg)
		return
	}
	if s.order.PaymentInitiated() {
		s.printf("Payment initiated. Use 'refresh' or 'watch' to track confirmation.\n")
	}
}

func (s *Shell) cmdRefresh(ctx context.Context) {
	if s.order.Order() == nil {
		s.printf("Show an order first (try 'order <id>').\n")
		return
	}
	s.order.Refresh(ctx)
	if msg := s.order.Err(); msg != "" {
		s.printf("%s\n", msg)
		return
	}
	s.renderOrder()
}

func (s *Shell) cmdWatch(ctx context.Context) {
	if s.order.Order() == nil {
		s.printf("Show an order first (try 'order <id>').\n")
		return
	}
	s.printf("Watching payment status (Ctrl-C to stop)...\n")
	status := s.order.Watch(ctx, s.watchInterval)
	if msg := s.order.Err(); msg != "" {
		s.printf("%s\n", msg)
		return
	}
	s.printf("Payment status: %s\n", status)
}

func (s *Shell) cmdWhoami(ctx context.Context) {
	p, err := s.auth.Me(ctx)
	if err != nil {
		if s.guard.Expire(err) {
			return
		}
		s.printf("%s\n", backend.Reason(err, "Unable to load user details."))
		return
	}
	s.printf("%s <%s>\n", p.FullName(), p.Email)
}

func (s *Shell) cmdStatus(ctx context.Context) {
	if s.prober == nil {
		s.printf("No backends configured.\n")
		return
	}
	for _, r := range s.prober.Run(ctx) {
		state := "ok"
		if r.Err != nil {
			state = "unreachable"
		}
		s.printf("  %-12s %s\n", r.Name, state)
	}
}
