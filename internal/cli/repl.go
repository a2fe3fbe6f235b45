package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	hasAddresses() bool
	report(ctx context.Context, err error)

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Addresses(ctx context.Context) error
	AddTrip(ctx context.Context) error
	History(ctx context.Context) error
	Map(ctx context.Context, refresh bool) error
	Search(ctx context.Context, query string) error
	Suggest(ctx context.Context, partial string) error
	User(ctx context.Context, email string) error
	Comment(ctx context.Context, email string) error
}

const (
	helpLoggedOut = "Commandes : login, map [refresh], search <adresse>, suggest <texte>, user <email>, help, exit"
	helpGated     = "Commandes : addresses, logout, help, exit"
	helpLoggedIn  = "Commandes : profile, addresses, addtrip, history, map [refresh], search <adresse>, suggest <texte>, user <email>, comment <email>, logout, help, exit"
)

// commands that need a session, and those still allowed while the address
// gate is closed
var (
	needsLogin = map[string]bool{
		"logout": true, "profile": true, "addresses": true, "addtrip": true, "history": true, "comment": true,
	}
	openWhileGated = map[string]bool{
		"addresses": true, "logout": true, "help": true, "exit": true, "quit": true,
	}
)

// runREPL reads one command per line from reader and dispatches it to a.
// Command handlers prompt through the same reader, so their answers are the
// lines that follow the command. It returns on EOF, "exit"/"quit" or when ctx
// is done. Handler errors are reported to the user and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("covoit %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.Join(parts[1:], " ")

		if needsLogin[cmd] && !a.isLoggedIn() {
			printlnFn("Veuillez vous connecter (commande 'login').")
			continue
		}
		if a.isLoggedIn() && !a.hasAddresses() && !openWhileGated[cmd] {
			printlnFn("Veuillez renseigner vos adresses domicile et travail (commande 'addresses').")
			continue
		}

		err = nil
		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn(helpLoggedOut)
			case !a.hasAddresses():
				printlnFn(helpGated)
			default:
				printlnFn(helpLoggedIn)
			}

		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "addresses":
			err = a.Addresses(ctx)
		case "addtrip":
			err = a.AddTrip(ctx)
		case "history":
			err = a.History(ctx)
		case "map":
			err = a.Map(ctx, arg == "refresh")

		case "search":
			if arg == "" {
				printlnFn("Usage : search <adresse>")
				continue
			}
			err = a.Search(ctx, arg)

		case "suggest":
			err = a.Suggest(ctx, arg)

		case "user":
			if arg == "" {
				printlnFn("Usage : user <email>")
				continue
			}
			err = a.User(ctx, arg)

		case "comment":
			if arg == "" {
				printlnFn("Usage : comment <email>")
				continue
			}
			err = a.Comment(ctx, arg)

		case "exit", "quit":
			printlnFn("Au revoir !")
			return

		default:
			printlnFn("Commande inconnue :", cmd)
		}

		if err != nil {
			a.report(ctx, err)
		}
	}
}
