package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests substitute a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	List(ctx context.Context, bucket string) error
	Watch(ctx context.Context, args []string) error
	Join(ctx context.Context, args []string) error
	Bid(ctx context.Context, args []string) error
	Products(ctx context.Context, args []string) error
	Banners(ctx context.Context, args []string) error
	Packages(ctx context.Context) error
	TopUp(ctx context.Context) error
	History(ctx context.Context) error
	Profile(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches. Unknown commands are reported back. The loop exits on scanner
// EOF, context cancellation, or "exit"/"quit".
//
// Handler errors are printed, not propagated; the loop itself never dies on
// a failed command.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	report := func(err error) {
		if err != nil {
			printlnFn("error:", err)
		}
	}

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Printf("soukbid (%s)> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Commands: home, live, upcoming, ended, watch <id>, join <id>, bid <id>, products, banners, packages, topup, history, profile, logout, exit")
			} else {
				printlnFn("Commands: home, live, upcoming, ended, watch <id>, products, banners, login, register, exit")
			}

		case "login":
			report(a.Login(ctx))

		case "register":
			report(a.Register(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "home":
			report(a.Home(ctx))

		case "live", "upcoming", "ended":
			report(a.List(ctx, cmd))

		case "watch":
			report(a.Watch(ctx, args))

		case "join":
			report(a.Join(ctx, args))

		case "bid":
			report(a.Bid(ctx, args))

		case "products":
			report(a.Products(ctx, args))

		case "banners":
			report(a.Banners(ctx, args))

		case "packages":
			report(a.Packages(ctx))

		case "topup":
			report(a.TopUp(ctx))

		case "history":
			report(a.History(ctx))

		case "profile":
			report(a.Profile(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
