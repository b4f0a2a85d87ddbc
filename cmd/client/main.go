package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/crewdeck/crewdeck/internal/client/api"
	"github.com/crewdeck/crewdeck/internal/client/nav"
	"github.com/crewdeck/crewdeck/internal/client/session"
	"github.com/crewdeck/crewdeck/pkg/utilities"
)

const (
	viewLogin     nav.View = "login"
	viewEmployees nav.View = "employees"
	viewQuizzes   nav.View = "quizzes"
	viewTech      nav.View = "technologies"
)

func main() {
	_ = godotenv.Load()

	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	baseURL := os.Getenv("CREWDECK_API")
	if baseURL == "" {
		baseURL = "http://localhost:4000"
	}

	tokenPath, err := session.DefaultTokenPath()
	if err != nil {
		sugar.Fatalf("resolve token path: %v", err)
	}
	sess, err := session.New(session.NewFileStore(tokenPath))
	if err != nil {
		sugar.Fatalf("init session: %v", err)
	}

	navigator := nav.New(sess, viewLogin)
	navigator.Protect(viewEmployees, viewQuizzes, viewTech)

	client := api.New(baseURL, sess, func() {
		fmt.Println("session expired, please log in again")
		navigator.Go(viewLogin)
	})

	if sess.Snapshot().Authenticated {
		fmt.Println("restored session from disk")
	}

	fmt.Println("commands: register | login | logout | employees | quizzes | technologies | tech <name> | verify | quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s]> ", navigator.Current())
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		run(ctx, scanner, client, navigator, fields)
		cancel()

		if fields[0] == "quit" {
			return
		}
	}
}

func run(ctx context.Context, scanner *bufio.Scanner, client *api.Client, navigator *nav.Navigator, fields []string) {
	switch fields[0] {
	case "register":
		email, password := promptCredentials(scanner)
		if err := client.Register(ctx, email, password); err != nil {
			fmt.Println("register failed:", err)
			return
		}
		fmt.Println("registered and logged in")
		navigator.Go(viewEmployees)
	case "login":
		email, password := promptCredentials(scanner)
		user, err := client.Login(ctx, email, password)
		if err != nil {
			fmt.Println("login failed:", err)
			return
		}
		fmt.Println("logged in as", user.Email)
		navigator.Go(viewEmployees)
	case "logout":
		if err := client.Logout(); err != nil {
			fmt.Println("logout:", err)
		}
		navigator.Go(viewLogin)
	case "verify":
		identity, err := client.Verify(ctx)
		if err != nil {
			fmt.Println("verify failed:", err)
			return
		}
		fmt.Println("token is valid for", identity.Email)
	case "employees":
		if !navigator.Go(viewEmployees) {
			fmt.Println("log in first")
			return
		}
		employees, err := client.Employees(ctx)
		if err != nil {
			fmt.Println("employees:", err)
			return
		}
		for _, e := range employees {
			fmt.Printf("%s  %s  %s\n", e.ID, e.Name, e.Designation)
		}
	case "quizzes":
		if !navigator.Go(viewQuizzes) {
			fmt.Println("log in first")
			return
		}
		quizzes, err := client.Quizzes(ctx)
		if err != nil {
			fmt.Println("quizzes:", err)
			return
		}
		for _, q := range quizzes {
			fmt.Printf("Q: %s\nA: %s\n", q.Question, q.Answer)
		}
	case "technologies":
		if !navigator.Go(viewTech) {
			fmt.Println("log in first")
			return
		}
		names, err := client.Technologies(ctx)
		if err != nil {
			fmt.Println("technologies:", err)
			return
		}
		for _, n := range names {
			fmt.Println(n.Name)
		}
	case "tech":
		if len(fields) < 2 {
			fmt.Println("usage: tech <name>")
			return
		}
		if !navigator.Go(viewTech) {
			fmt.Println("log in first")
			return
		}
		topic, err := client.QuestionsFor(ctx, fields[1])
		if err != nil {
			fmt.Println("tech:", err)
			return
		}
		fmt.Printf("%s: %s\n", topic.Name, topic.Questions)
	case "quit":
	default:
		fmt.Println("unknown command:", fields[0])
	}
}

func promptCredentials(scanner *bufio.Scanner) (string, string) {
	fmt.Print("email: ")
	scanner.Scan()
	email := strings.TrimSpace(scanner.Text())
	fmt.Print("password: ")
	scanner.Scan()
	password := scanner.Text()
	return email, password
}
