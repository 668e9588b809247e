package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/soukbid/soukbid-cli/internal/client/api"
)

// Products browses the catalog. An optional argument filters by category;
// "products search <term>" searches by name, "products show <id>" prints one
// product in full.
func (a *App) Products(ctx context.Context, args []string) error {
	if len(args) == 2 && args[0] == "show" {
		return a.showProduct(ctx, args[1])
	}

	params := api.ListProductsParams{Limit: 20}
	if len(args) >= 2 && args[0] == "search" {
		params.Search = strings.Join(args[1:], " ")
	} else if len(args) == 1 {
		params.Category = args[0]
	}

	products, err := a.api.ListProducts(ctx, params)
	if err != nil {
		return fmt.Errorf("product fetch failed: %w", err)
	}
	if len(products) == 0 {
		categories, cerr := a.api.ListCategories(ctx)
		if cerr == nil && len(categories) > 0 {
			fmt.Println("No products found. Categories:", strings.Join(categories, ", "))
			return nil
		}
		fmt.Println("No products found.")
		return nil
	}

	for _, p := range products {
		fmt.Printf("[%s] %s — market %dc", p.ID, p.Name, p.MarketPrice)
		if p.Brand != "" {
			fmt.Printf(" (%s)", p.Brand)
		}
		fmt.Println()
	}
	return nil
}

func (a *App) showProduct(ctx context.Context, id string) error {
	p, err := a.api.GetProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("product %s: %w", id, err)
	}
	fmt.Printf("%s — market %dc\n", p.Name, p.MarketPrice)
	if p.Brand != "" {
		fmt.Println("brand:", p.Brand)
	}
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	for k, v := range p.Specifications {
		fmt.Printf("  %s: %s\n", k, v)
	}
	return nil
}

// Banners lists the promotional banners. Admin subcommands manage them:
// "banners add" creates one interactively, "banners on|off <id>" flips
// visibility, "banners rm <id>" deletes.
func (a *App) Banners(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			return a.addBanner(ctx)
		case "on", "off":
			if len(args) != 2 {
				return fmt.Errorf("usage: banners %s <banner-id>", args[0])
			}
			return a.setBannerActive(ctx, args[1], args[0] == "on")
		case "rm":
			if len(args) != 2 {
				return fmt.Errorf("usage: banners rm <banner-id>")
			}
			if err := a.api.DeleteBanner(ctx, args[1]); err != nil {
				return fmt.Errorf("banner delete failed: %w", err)
			}
			fmt.Println("Banner deleted.")
			return nil
		default:
			return fmt.Errorf("unknown banners subcommand %q", args[0])
		}
	}

	banners, err := a.api.ListBanners(ctx)
	if err != nil {
		return fmt.Errorf("banner fetch failed: %w", err)
	}
	for _, b := range banners {
		active := " "
		if b.IsActive {
			active = "*"
		}
		fmt.Printf("%s [%s] %s — %s\n", active, b.ID, b.Title, b.Description)
	}
	return nil
}

func (a *App) addBanner(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Banner title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Banner description", os.Stdout)
	if err != nil {
		return err
	}
	imageURL, err := getSimpleText(a.reader, "Image URL", os.Stdout)
	if err != nil {
		return err
	}

	active := true
	banner, err := a.api.CreateBanner(ctx, api.BannerInput{
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		IsActive:    &active,
	})
	if err != nil {
		return fmt.Errorf("banner create failed: %w", err)
	}
	fmt.Printf("Banner created: [%s] %s\n", banner.ID, banner.Title)
	return nil
}

func (a *App) setBannerActive(ctx context.Context, id string, active bool) error {
	banner, err := a.api.UpdateBanner(ctx, id, api.BannerInput{IsActive: &active})
	if err != nil {
		return fmt.Errorf("banner update failed: %w", err)
	}
	state := "hidden"
	if banner.IsActive {
		state = "visible"
	}
	fmt.Printf("Banner %s is now %s.\n", banner.ID, state)
	return nil
}

// Packages lists the purchasable coin bundles.
func (a *App) Packages(ctx context.Context) error {
	packages, err := a.api.ListCoinPackages(ctx)
	if err != nil {
		return fmt.Errorf("package fetch failed: %w", err)
	}
	for _, p := range packages {
		fmt.Printf("[%s] %s — %d coins", p.ID, p.Name, p.Coins)
		if p.Bonus > 0 {
			fmt.Printf(" +%d bonus", p.Bonus)
		}
		fmt.Printf(" for $%d.%02d\n", p.PriceUSD/100, p.PriceUSD%100)
	}
	return nil
}

// TopUp runs the simulated purchase flow: pick an amount, create a payment
// intent, confirm it, and credit the wallet locally once the backend
// acknowledges. The local credit is a display update only; the next server
// round-trip overwrites it with the authoritative balance.
func (a *App) TopUp(ctx context.Context) error {
	if !a.store.LoggedIn() {
		fmt.Println("Log in first to top up.")
		return nil
	}

	raw, err := getSimpleText(a.reader, "Coins to buy", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := strconv.Atoi(raw)
	if err != nil || amount <= 0 {
		return fmt.Errorf("invalid amount %q", raw)
	}

	intent, err := a.api.CreatePaymentIntent(ctx, amount, "usd")
	if err != nil {
		return fmt.Errorf("payment intent failed: %w", err)
	}

	payment, err := a.api.ConfirmPayment(ctx, intent.ID)
	if err != nil {
		return fmt.Errorf("payment confirmation failed: %w", err)
	}

	coins := payment.Coins
	if coins == 0 {
		coins = amount
	}
	a.store.AddCoins(coins)
	fmt.Printf("Purchase complete: +%d coins. Wallet: %d coins\n", coins, a.store.Coins())
	return nil
}

// History shows the user's past payments.
func (a *App) History(ctx context.Context) error {
	if !a.store.LoggedIn() {
		fmt.Println("Log in first.")
		return nil
	}

	history, err := a.api.PaymentHistory(ctx, 1, 20)
	if err != nil {
		return fmt.Errorf("history fetch failed: %w", err)
	}
	if len(history) == 0 {
		fmt.Println("No payments yet.")
		return nil
	}
	for _, p := range history {
		fmt.Printf("%s  %s  +%d coins (%s)\n", p.CreatedAt.Format("2006-01-02 15:04"), p.Status, p.Coins, p.Currency)
	}
	return nil
}

// Profile shows the authenticated user and participation summary.
func (a *App) Profile(ctx context.Context) error {
	u := a.store.User()
	if u == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s> [%s]\n", u.Name, u.Email, a.store.Initials())
	fmt.Printf("Wallet: %d coins\n", a.store.Coins())
	if u.EmailVerified {
		fmt.Println("Email verified.")
	}
	return nil
}
