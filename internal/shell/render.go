package shell

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/ordernest/storefront/internal/domain/product"
)

func formatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return currency + " " + amount.StringFixed(2)
}

func (s *Shell) renderProducts(list []product.Product) {
	if len(list) == 0 {
		s.printf("No products found.\n")
		return
	}

	w := tabwriter.NewWriter(s.out, 2, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range list {
		stock := "out of stock"
		if p.InStock() {
			stock = strconv.Itoa(p.AvailableQuantity)
		}
		fmt.Fprintln(w, p.ID+"\t"+p.Name+"\t"+formatAmount(p.Price, p.Currency)+"\t"+stock)
	}
}

func (s *Shell) renderProductDetail() {
	p := s.detail.Product()
	if p == nil {
		return
	}

	s.printf("%s  [%s]\n", p.Name, s.detail.Swatch())
	s.printf("  Price:    %s\n", formatAmount(p.Price, p.Currency))
	if p.InStock() {
		s.printf("  In stock: %d\n", p.AvailableQuantity)
		s.printf("  Quantity: %d (change with 'buy <qty>')\n", s.detail.Quantity())
	} else {
		s.printf("  Out of stock.\n")
	}
	if p.Description != "" {
		s.printf("  %s\n", p.Description)
	}
}

func (s *Shell) renderOrder() {
	o := s.order.Order()
	if o == nil {
		return
	}

	s.printf("Order %s\n", o.ID)
	s.printf("  Item:     %s x%d\n", o.Item.ProductName, o.Item.Quantity)
	s.printf("  Total:    %s\n", formatAmount(o.Item.TotalAmount, o.Item.Currency))
	s.printf("  Status:   %s\n", o.Status)
	s.printf("  Payment:  %s%s\n", s.order.PaymentStatus(), initiatedSuffix(s.order.PaymentInitiated()))

	if p := s.order.Profile(); p != nil {
		s.printf("  Buyer:    %s <%s>\n", p.FullName(), p.Email)
	} else if msg := s.order.ProfileErr(); msg != "" {
		s.printf("  Buyer:    %s\n", msg)
	}

	if s.order.CanPay() {
		s.printf("  Payment pending. Type 'pay' to pay now.\n")
	}
}

func initiatedSuffix(initiated bool) string {
	if initiated {
		return " (payment initiated, awaiting confirmation)"
	}
	return ""
}
