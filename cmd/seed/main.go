// Command seed populates a MoneyMate database with demo accounts and
// sample data. It talks to the core only through the manager facade,
// like any other caller.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/config"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/manager"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/util"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.yaml (optional)")
		dbPath     = flag.String("db", "", "database path (defaults to the configured one)")
		withAdmin  = flag.Bool("admin", false, "also create an admin account (prompts for the bootstrap password)")
	)
	flag.Parse()

	// optional .env next to the binary, same knobs as the environment
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dm, err := manager.Open(*dbPath, cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dm.Close()

	aliceID := mustRegister(dm, "alice", "alice@example.com", "correct-horse-battery")
	bobID := mustRegister(dm, "bob", "bob@example.com", "staple-horse-battery")

	if *withAdmin {
		bootstrap, err := readAdminPassword()
		if err != nil {
			log.Fatalf("read admin password: %v", err)
		}
		check("register admin", dm.Users.RegisterAdmin("admin", "admin@example.com", "admin-panel-pass", bootstrap))
	}

	check("category groceries", dm.AddCategory(manager.CreateCategoryInput{
		UserID: aliceID, Name: "Groceries", Color: "#2e7d32", Icon: "cart",
	}))
	check("category travel", dm.AddCategory(manager.CreateCategoryInput{
		UserID: aliceID, Name: "Travel", Color: "#1565c0", Icon: "plane",
	}))

	check("contact bob", dm.AddContact(aliceID, "Bob"))

	check("expense lunch", dm.AddExpense(manager.CreateExpenseInput{
		UserID: aliceID, Title: "Lunch", Price: 12.50, Date: "2025-01-10", Category: "Groceries",
	}))
	check("expense train", dm.AddExpense(manager.CreateExpenseInput{
		UserID: aliceID, Title: "Train ticket", Price: 27.80, Date: "2025-01-12", Category: "Travel",
	}))

	check("transaction credit", dm.AddTransaction(manager.CreateTransactionInput{
		FromUserID: aliceID, ToUserID: bobID,
		Type: "credit", Amount: 50, Date: "2025-01-15", Description: "rent share",
	}))
	check("transaction debit", dm.AddTransaction(manager.CreateTransactionInput{
		FromUserID: aliceID, ToUserID: bobID,
		Type: "debit", Amount: 20, Date: "2025-01-16", Description: "groceries split",
	}))

	tables := dm.ListTables()
	if tables.Success {
		fmt.Printf("seeded database, tables: %v\n", tables.Data)
	}
}

func mustRegister(dm *manager.DatabaseManager, username, email, password string) uint {
	res := dm.RegisterUser(username, email, password)
	if !res.Success {
		log.Fatalf("register %s: %s", username, res.Error)
	}
	data := res.Data.(map[string]interface{})
	return data["user_id"].(uint)
}

func check(what string, res util.Result) {
	if !res.Success {
		log.Fatalf("seed %s: %s", what, res.Error)
	}
}

// readAdminPassword prompts without echo on a terminal, falling back to
// the MONEYMATE_AUTH_ADMIN_PASSWORD environment variable otherwise.
func readAdminPassword() (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		if pwd := os.Getenv("MONEYMATE_AUTH_ADMIN_PASSWORD"); pwd != "" {
			return pwd, nil
		}
		return "", fmt.Errorf("stdin is not a terminal and MONEYMATE_AUTH_ADMIN_PASSWORD is unset")
	}
	fmt.Fprint(os.Stderr, "admin bootstrap password: ")
	pwd, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
