package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates through the store. The
// store keeps the failure reason; it is printed here so the user can retry.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if !a.store.Login(ctx, email, password) {
		fmt.Println("Login failed:", a.store.Err())
		return nil
	}

	fmt.Printf("Welcome back, %s! Wallet: %d coins\n", a.store.User().Name, a.store.Coins())
	return nil
}

// Register prompts for the new account's details and signs the user up.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if !a.store.Register(ctx, name, email, password, phone) {
		fmt.Println("Registration failed:", a.store.Err())
		return nil
	}

	fmt.Printf("Account created. Wallet: %d coins\n", a.store.Coins())
	return nil
}

// Logout ends the session and clears local caches.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	fmt.Println("Logged out.")
	return nil
}
