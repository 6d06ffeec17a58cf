package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/angelmondragon/scancart-backend/internal/scancart"
)

const helpText = `commands:
  <barcode>     scan a product
  scan <code>   scan a code that collides with a command name
  + <id>        increase quantity
  - <id>        decrease quantity
  del <n>       delete the n-th line
  clear         delete every line
  refresh       reload the cart from the server
  dismiss       hide the scan error
  list          print the cart
  quit          exit`

func run(ctx context.Context, session *scancart.Session, in io.Reader, out io.Writer) error {
	if err := session.Refresh(ctx); err != nil {
		fmt.Fprintf(out, "could not load cart: %v\n", err)
	}
	render(out, session)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit, err := dispatch(ctx, session, out, line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
		render(out, session)
	}
	return scanner.Err()
}

func dispatch(ctx context.Context, session *scancart.Session, out io.Writer, line string) (bool, error) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(out, helpText)
		return false, nil
	case "list":
		return false, nil
	case "refresh":
		return false, session.Refresh(ctx)
	case "dismiss":
		session.DismissScanError()
		return false, nil
	case "clear":
		return false, session.DeleteAll(ctx)
	case "scan":
		code := strings.TrimSpace(line[len(fields[0]):])
		if code == "" {
			return false, fmt.Errorf("usage: scan <code>")
		}
		return false, session.Scan(ctx, code)
	case "+", "-":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: %s <product id>", fields[0])
		}
		if fields[0] == "+" {
			return false, session.Increase(ctx, fields[1])
		}
		return false, session.Decrease(ctx, fields[1])
	case "del":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: del <line number>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("line number must be numeric")
		}
		return false, session.DeleteAt(ctx, n-1)
	}
	return false, session.Scan(ctx, line)
}

func render(out io.Writer, session *scancart.Session) {
	items := session.Items()
	if len(items) == 0 {
		fmt.Fprintln(out, "(cart is empty)")
	}
	for i, item := range items {
		fmt.Fprintf(out, "%2d. %-24s x%-3d %10s\n", i+1, item.Product.ProductName, item.Quantity, item.LineTotal().StringFixed(2))
	}
	totals := session.Totals()
	fmt.Fprintf(out, "items %d  price %s  discount %s  total %s\n",
		totals.GrandCount,
		totals.GrandPrice.StringFixed(2),
		totals.GrandDiscount.StringFixed(2),
		totals.GrandTotal.StringFixed(2),
	)
	if msg := session.ScanError(); msg != "" {
		fmt.Fprintf(out, "! %s\n", msg)
	}
}
